package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
	"github.com/lexhelvetia/lexsearch/internal/core/ports/driven"
)

// queryLog implements driven.QueryLog.
type queryLog struct {
	store *Store
}

var _ driven.QueryLog = (*queryLog)(nil)

// Record appends one log entry. A missing id or timestamp is filled in.
func (q *queryLog) Record(ctx context.Context, entry domain.QueryLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := q.store.db.ExecContext(ctx, `
		INSERT INTO query_log (id, tool, query, language, result_count, from_cache, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Tool, entry.Query, entry.Language, entry.ResultCount,
		boolToInt(entry.FromCache), entry.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("%w: recording query: %v", domain.ErrStorage, err)
	}
	return nil
}

// Recent returns the newest entries, newest first.
func (q *queryLog) Recent(ctx context.Context, limit int) ([]domain.QueryLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := q.store.db.QueryContext(ctx, `
		SELECT id, tool, query, language, result_count, from_cache, created_at
		FROM query_log
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: listing query log: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	var entries []domain.QueryLogEntry
	for rows.Next() {
		var (
			entry     domain.QueryLogEntry
			fromCache int
			createdNs int64
		)
		if err := rows.Scan(&entry.ID, &entry.Tool, &entry.Query, &entry.Language,
			&entry.ResultCount, &fromCache, &createdNs); err != nil {
			return nil, fmt.Errorf("%w: scanning query log entry: %v", domain.ErrStorage, err)
		}
		entry.FromCache = fromCache != 0
		entry.CreatedAt = time.Unix(0, createdNs)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing query log: %v", domain.ErrStorage, err)
	}
	return entries, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
