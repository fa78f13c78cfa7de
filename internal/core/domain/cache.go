package domain

import "time"

// CacheEntry is one keyed, TTL-bound cached payload. Entries are written
// wholesale and never partially updated; only the access-accounting fields
// (HitCount, LastAccessedAt) change after creation.
type CacheEntry struct {
	// Key is the cache key, derived from the normalised lookup.
	Key string

	// Value is the opaque serialised payload.
	Value []byte

	// ExpiresAt is the absolute expiry timestamp. An entry is never
	// served at or past this instant; an expired entry is deleted on
	// the read that discovers it.
	ExpiresAt time.Time

	// HitCount is the number of successful reads. Monotonically
	// non-decreasing; preserved when the entry is overwritten.
	HitCount int64

	// LastAccessedAt is the time of the last successful read.
	LastAccessedAt time.Time

	// CreatedAt is when the entry was first written.
	CreatedAt time.Time
}

// Expired reports whether the entry is past its expiry at the given time.
func (e CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// CacheStats summarises the cache store for diagnostics.
type CacheStats struct {
	// Entries is the number of live (non-expired) entries.
	Entries int64

	// Expired is the number of entries past expiry but not yet swept.
	Expired int64

	// MostAccessed lists the highest-hit entries, most-hit first.
	MostAccessed []CacheEntry
}
