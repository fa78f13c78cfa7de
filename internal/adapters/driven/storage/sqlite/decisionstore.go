package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
	"github.com/lexhelvetia/lexsearch/internal/core/ports/driven"
)

// dateLayout is how decision dates are stored. Dates carry no time-of-day
// information worth keeping.
const dateLayout = "2006-01-02"

// decisionStore implements driven.DecisionStore.
type decisionStore struct {
	store *Store
}

var _ driven.DecisionStore = (*decisionStore)(nil)

// UpsertDecision inserts or replaces the record identified by
// dec.ExternalID. LastFetchedAt advances strictly even when the caller's
// timestamp does not: concurrent upserts of the same id converge to one
// row with a monotonically increasing fetch time.
func (s *decisionStore) UpsertDecision(ctx context.Context, dec domain.Decision) error {
	if dec.ExternalID == "" {
		return fmt.Errorf("%w: decision external id is empty", domain.ErrInvalidInput)
	}

	areasJSON, err := json.Marshal(dec.LegalAreas)
	if err != nil {
		return fmt.Errorf("marshalling legal areas: %w", err)
	}

	fetchedAt := dec.LastFetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO decisions (
			external_id, source, title, summary, decision_date,
			language, canton, legal_areas, url, full_text, last_fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(external_id) DO UPDATE SET
			source          = excluded.source,
			title           = excluded.title,
			summary         = excluded.summary,
			decision_date   = excluded.decision_date,
			language        = excluded.language,
			canton          = excluded.canton,
			legal_areas     = excluded.legal_areas,
			url             = excluded.url,
			full_text       = CASE WHEN excluded.full_text != '' THEN excluded.full_text ELSE decisions.full_text END,
			last_fetched_at = MAX(excluded.last_fetched_at, decisions.last_fetched_at + 1)
	`,
		dec.ExternalID, dec.Source, dec.Title, dec.Summary, formatDate(dec.Date),
		dec.Language, dec.Canton, string(areasJSON), dec.URL, dec.FullText,
		fetchedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("%w: upserting decision: %v", domain.ErrStorage, err)
	}
	return nil
}

// GetDecision returns the persisted record for the external id, or
// domain.ErrNotFound.
func (s *decisionStore) GetDecision(ctx context.Context, externalID string) (*domain.Decision, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT external_id, source, title, summary, decision_date,
		       language, canton, legal_areas, url, full_text, last_fetched_at
		FROM decisions WHERE external_id = ?
	`, externalID)

	var (
		dec       domain.Decision
		dateStr   string
		areasJSON string
		fetchedNs int64
	)
	err := row.Scan(
		&dec.ExternalID, &dec.Source, &dec.Title, &dec.Summary, &dateStr,
		&dec.Language, &dec.Canton, &areasJSON, &dec.URL, &dec.FullText, &fetchedNs,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading decision: %v", domain.ErrStorage, err)
	}

	if err := json.Unmarshal([]byte(areasJSON), &dec.LegalAreas); err != nil {
		return nil, fmt.Errorf("%w: decoding legal areas: %v", domain.ErrStorage, err)
	}
	dec.Date = parseDate(dateStr)
	dec.LastFetchedAt = time.Unix(0, fetchedNs)
	return &dec, nil
}

// commentaryStore implements driven.CommentaryStore.
type commentaryStore struct {
	store *Store
}

var _ driven.CommentaryStore = (*commentaryStore)(nil)

func (s *commentaryStore) UpsertCommentary(ctx context.Context, c domain.Commentary) error {
	if c.ExternalID == "" {
		return fmt.Errorf("%w: commentary external id is empty", domain.ErrInvalidInput)
	}

	fetchedAt := c.LastFetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO commentaries (
			external_id, source, authors, title, summary,
			statute, year, language, url, last_fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(external_id) DO UPDATE SET
			source          = excluded.source,
			authors         = excluded.authors,
			title           = excluded.title,
			summary         = excluded.summary,
			statute         = excluded.statute,
			year            = excluded.year,
			language        = excluded.language,
			url             = excluded.url,
			last_fetched_at = MAX(excluded.last_fetched_at, commentaries.last_fetched_at + 1)
	`,
		c.ExternalID, c.Source, c.Authors, c.Title, c.Summary,
		c.Statute, c.Year, c.Language, c.URL, fetchedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("%w: upserting commentary: %v", domain.ErrStorage, err)
	}
	return nil
}

func (s *commentaryStore) GetCommentary(ctx context.Context, externalID string) (*domain.Commentary, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT external_id, source, authors, title, summary,
		       statute, year, language, url, last_fetched_at
		FROM commentaries WHERE external_id = ?
	`, externalID)

	var (
		c         domain.Commentary
		fetchedNs int64
	)
	err := row.Scan(
		&c.ExternalID, &c.Source, &c.Authors, &c.Title, &c.Summary,
		&c.Statute, &c.Year, &c.Language, &c.URL, &fetchedNs,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading commentary: %v", domain.ErrStorage, err)
	}

	c.LastFetchedAt = time.Unix(0, fetchedNs)
	return &c, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
