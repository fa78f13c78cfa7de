package driving

import (
	"context"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
)

// RetrievalService runs cache-first lookups against the external
// legal-data sources. Every operation follows the same state machine:
// parse input, check cache, on miss fetch externally, persist, cache,
// return. Independent sources are queried with no ordering guarantees
// between them.
type RetrievalService interface {
	// SearchFederal queries the federal court search source.
	SearchFederal(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error)

	// SearchCantonal queries the cantonal decision aggregator.
	SearchCantonal(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error)

	// SearchCommentary queries the commentary search source.
	SearchCommentary(ctx context.Context, filters domain.SearchFilters) (*domain.CommentaryResult, error)

	// GetDecision fetches one decision by external identifier. A
	// missing record is an expected outcome, not an error.
	GetDecision(ctx context.Context, externalID string) (dec *domain.Decision, found bool, err error)

	// CacheStats reports cache diagnostics.
	CacheStats(ctx context.Context, topN int) (domain.CacheStats, error)
}
