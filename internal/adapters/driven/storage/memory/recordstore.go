package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
	"github.com/lexhelvetia/lexsearch/internal/core/ports/driven"
)

// Ensure the record stores implement their interfaces.
var (
	_ driven.DecisionStore   = (*DecisionStore)(nil)
	_ driven.CommentaryStore = (*CommentaryStore)(nil)
	_ driven.QueryLog        = (*QueryLog)(nil)
)

// DecisionStore is an in-memory implementation of driven.DecisionStore.
type DecisionStore struct {
	mu        sync.Mutex
	decisions map[string]domain.Decision
}

// NewDecisionStore creates a new in-memory decision store.
func NewDecisionStore() *DecisionStore {
	return &DecisionStore{
		decisions: make(map[string]domain.Decision),
	}
}

// UpsertDecision stores or updates the record keyed by its external id.
func (s *DecisionStore) UpsertDecision(_ context.Context, dec domain.Decision) error {
	if dec.ExternalID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dec.LastFetchedAt.IsZero() {
		dec.LastFetchedAt = time.Now()
	}
	if existing, ok := s.decisions[dec.ExternalID]; ok {
		if dec.FullText == "" {
			dec.FullText = existing.FullText
		}
		if !dec.LastFetchedAt.After(existing.LastFetchedAt) {
			dec.LastFetchedAt = existing.LastFetchedAt.Add(time.Nanosecond)
		}
	}
	s.decisions[dec.ExternalID] = dec
	return nil
}

// GetDecision returns the record for the external id, or domain.ErrNotFound.
func (s *DecisionStore) GetDecision(_ context.Context, externalID string) (*domain.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dec, ok := s.decisions[externalID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &dec, nil
}

// CommentaryStore is an in-memory implementation of driven.CommentaryStore.
type CommentaryStore struct {
	mu      sync.Mutex
	entries map[string]domain.Commentary
}

// NewCommentaryStore creates a new in-memory commentary store.
func NewCommentaryStore() *CommentaryStore {
	return &CommentaryStore{
		entries: make(map[string]domain.Commentary),
	}
}

// UpsertCommentary stores or updates the record keyed by its external id.
func (s *CommentaryStore) UpsertCommentary(_ context.Context, c domain.Commentary) error {
	if c.ExternalID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.LastFetchedAt.IsZero() {
		c.LastFetchedAt = time.Now()
	}
	if existing, ok := s.entries[c.ExternalID]; ok {
		if !c.LastFetchedAt.After(existing.LastFetchedAt) {
			c.LastFetchedAt = existing.LastFetchedAt.Add(time.Nanosecond)
		}
	}
	s.entries[c.ExternalID] = c
	return nil
}

// GetCommentary returns the record for the external id, or domain.ErrNotFound.
func (s *CommentaryStore) GetCommentary(_ context.Context, externalID string) (*domain.Commentary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.entries[externalID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// QueryLog is an in-memory implementation of driven.QueryLog.
type QueryLog struct {
	mu      sync.Mutex
	entries []domain.QueryLogEntry
}

// NewQueryLog creates a new in-memory query log.
func NewQueryLog() *QueryLog {
	return &QueryLog{}
}

// Record appends one log entry.
func (s *QueryLog) Record(_ context.Context, entry domain.QueryLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, entry)
	return nil
}

// Recent returns the newest entries, newest first.
func (s *QueryLog) Recent(_ context.Context, limit int) ([]domain.QueryLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	var out []domain.QueryLogEntry
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}
