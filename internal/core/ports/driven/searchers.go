package driven

import (
	"context"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
)

// DecisionSearcher is an external decision search source (federal court
// search or cantonal aggregator) behind a resilient client.
//
// Implementations rate-limit, retry and classify failures; callers only
// ever see connectors.ServiceError values, never raw transport errors.
type DecisionSearcher interface {
	// Search runs a filtered query and returns matching records plus
	// the source-reported total.
	Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Decision, int, error)

	// GetByID fetches one record by its external identifier. A missing
	// record is an expected outcome: found is false and err is nil.
	GetByID(ctx context.Context, externalID string) (dec *domain.Decision, found bool, err error)

	// Name identifies the source, e.g. "bger".
	Name() string
}

// CommentarySearcher is an external commentary search source.
type CommentarySearcher interface {
	Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Commentary, int, error)
	Name() string
}
