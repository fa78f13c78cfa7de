package driven

import (
	"context"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
)

// DecisionStore persists decision records durably, independent of cache
// lifetime.
//
// Upsert identity is the record's external identifier: concurrent upserts
// of the same external id must converge to a single row. Scalar fields are
// last-write-wins, but LastFetchedAt always advances.
type DecisionStore interface {
	// UpsertDecision inserts or replaces the record identified by
	// dec.ExternalID.
	UpsertDecision(ctx context.Context, dec domain.Decision) error

	// GetDecision returns the persisted record for the external id, or
	// domain.ErrNotFound.
	GetDecision(ctx context.Context, externalID string) (*domain.Decision, error)
}

// CommentaryStore persists commentary records with the same upsert
// semantics as DecisionStore.
type CommentaryStore interface {
	UpsertCommentary(ctx context.Context, c domain.Commentary) error
	GetCommentary(ctx context.Context, externalID string) (*domain.Commentary, error)
}

// QueryLog records executed lookups for analytics. Append-only.
type QueryLog interface {
	// Record appends one log entry.
	Record(ctx context.Context, entry domain.QueryLogEntry) error

	// Recent returns the newest entries, newest first, up to limit.
	Recent(ctx context.Context, limit int) ([]domain.QueryLogEntry, error)
}
