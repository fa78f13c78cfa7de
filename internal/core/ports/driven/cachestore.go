package driven

import (
	"context"
	"time"

	"github.com/lexhelvetia/lexsearch/internal/core/domain"
)

// CacheStore is a keyed, TTL-bound cache of serialised lookup results.
//
// Implementations must be safe for concurrent callers: hit accounting on
// Get must never lose increments, and a Set racing a Get on the same key
// must leave one coherent entry.
type CacheStore interface {
	// Get returns the value for key. An entry past its expiry is
	// deleted as a side effect and reported as a miss: expired data is
	// never returned. A hit increments the entry's hit count and
	// refreshes its last-accessed time.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key with the given TTL, overwriting any
	// existing entry wholesale. An existing entry's hit count is
	// preserved across the overwrite.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the entry for key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// Sweep removes all expired entries, returning how many were
	// removed. It exists for entries that expire without ever being
	// read again.
	Sweep(ctx context.Context) (int, error)

	// Stats reports diagnostics including the most-accessed entries,
	// up to topN of them.
	Stats(ctx context.Context, topN int) (domain.CacheStats, error)
}
