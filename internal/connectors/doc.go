// Package connectors provides the shared resilience layer for the external
// legal-data sources: rate limiting, bounded retry with exponential
// backoff, and total error classification.
//
// Every failure crossing a connector boundary is mapped to exactly one
// ServiceError kind; callers never see raw transport errors. Source
// packages (bger, entscheidsuche, legalis) build on the Client in this
// package and only contain request construction and response mapping.
package connectors
