package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
	"github.com/lexhelvetia/lexsearch/internal/core/ports/driven"
)

// cacheStore implements driven.CacheStore.
type cacheStore struct {
	store *Store
}

var _ driven.CacheStore = (*cacheStore)(nil)

// Get returns the cached value for key. Hit accounting rides on the same
// UPDATE that reads the value, so concurrent readers never lose an
// increment. An expired entry is deleted and reported as a miss.
func (c *cacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	now := time.Now()

	var value []byte
	err := c.store.db.QueryRowContext(ctx, `
		UPDATE cache_entries
		SET hit_count = hit_count + 1, last_accessed_at = ?
		WHERE key = ? AND expires_at > ?
		RETURNING value
	`, now.UnixNano(), key, now.UnixNano()).Scan(&value)
	if err == nil {
		return value, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("%w: reading cache entry: %v", domain.ErrStorage, err)
	}

	// Either absent or expired. Deleting the expired row here keeps the
	// read path self-cleaning even when Sweep never runs.
	_, err = c.store.db.ExecContext(ctx,
		"DELETE FROM cache_entries WHERE key = ? AND expires_at <= ?",
		key, now.UnixNano())
	if err != nil {
		return nil, false, fmt.Errorf("%w: expiring cache entry: %v", domain.ErrStorage, err)
	}
	return nil, false, nil
}

// Set stores value under key with the given TTL. The hit count and
// creation time of an existing entry survive the overwrite.
func (c *cacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := time.Now()
	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, expires_at, hit_count, last_accessed_at, created_at)
		VALUES (?, ?, ?, 0, 0, ?)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			expires_at = excluded.expires_at
	`, key, value, now.Add(ttl).UnixNano(), now.UnixNano())
	if err != nil {
		return fmt.Errorf("%w: writing cache entry: %v", domain.ErrStorage, err)
	}
	return nil
}

// Delete removes the entry for key.
func (c *cacheStore) Delete(ctx context.Context, key string) error {
	_, err := c.store.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("%w: deleting cache entry: %v", domain.ErrStorage, err)
	}
	return nil
}

// Sweep removes all expired entries.
func (c *cacheStore) Sweep(ctx context.Context) (int, error) {
	res, err := c.store.db.ExecContext(ctx,
		"DELETE FROM cache_entries WHERE expires_at <= ?", time.Now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("%w: sweeping cache: %v", domain.ErrStorage, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: counting swept entries: %v", domain.ErrStorage, err)
	}
	return int(n), nil
}

// Stats reports live and expired entry counts plus the topN most-read
// live entries.
func (c *cacheStore) Stats(ctx context.Context, topN int) (domain.CacheStats, error) {
	now := time.Now().UnixNano()

	var stats domain.CacheStats
	row := c.store.db.QueryRowContext(ctx, `
		SELECT
			COUNT(CASE WHEN expires_at > ? THEN 1 END),
			COUNT(CASE WHEN expires_at <= ? THEN 1 END)
		FROM cache_entries
	`, now, now)
	if err := row.Scan(&stats.Entries, &stats.Expired); err != nil {
		return domain.CacheStats{}, fmt.Errorf("%w: counting cache entries: %v", domain.ErrStorage, err)
	}

	if topN <= 0 {
		return stats, nil
	}

	rows, err := c.store.db.QueryContext(ctx, `
		SELECT key, value, expires_at, hit_count, last_accessed_at, created_at
		FROM cache_entries
		WHERE expires_at > ?
		ORDER BY hit_count DESC, key ASC
		LIMIT ?
	`, now, topN)
	if err != nil {
		return domain.CacheStats{}, fmt.Errorf("%w: listing cache entries: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry      domain.CacheEntry
			expiresNs  int64
			accessedNs int64
			createdNs  int64
		)
		if err := rows.Scan(&entry.Key, &entry.Value, &expiresNs, &entry.HitCount, &accessedNs, &createdNs); err != nil {
			return domain.CacheStats{}, fmt.Errorf("%w: scanning cache entry: %v", domain.ErrStorage, err)
		}
		entry.ExpiresAt = time.Unix(0, expiresNs)
		if accessedNs > 0 {
			entry.LastAccessedAt = time.Unix(0, accessedNs)
		}
		entry.CreatedAt = time.Unix(0, createdNs)
		stats.MostAccessed = append(stats.MostAccessed, entry)
	}
	if err := rows.Err(); err != nil {
		return domain.CacheStats{}, fmt.Errorf("%w: listing cache entries: %v", domain.ErrStorage, err)
	}
	return stats, nil
}
