// Package mcp provides an MCP (Model Context Protocol) server adapter for
// lexsearch. It exposes citation validation, formatting and translation
// plus the cache-first search tools to AI assistants.
package mcp

import "errors"

// ErrMissingCitationService is returned when the citation service is not provided.
var ErrMissingCitationService = errors.New("mcp: citation service is required")

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
