package mcp

import (
	"github.com/lexhelvetia/lexsearch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Citation parses, validates, formats and translates citations.
	Citation driving.CitationService

	// Retrieval runs cache-first lookups against the external sources.
	Retrieval driving.RetrievalService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Citation == nil {
		return ErrMissingCitationService
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
