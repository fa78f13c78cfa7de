// Package domain defines the core business entities for lexsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Decision: A court decision record fetched from an external source
//   - Commentary: A legal commentary (doctrine) record
//   - SearchFilters / SearchResult: query parameters and results
//   - CacheEntry: a TTL-bound cached payload with access accounting
//   - QueryLogEntry: an analytics row for one executed lookup
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
