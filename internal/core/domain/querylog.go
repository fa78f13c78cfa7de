package domain

import "time"

// QueryLogEntry is one analytics row recording an executed lookup. The
// log is append-only and independent of the cache lifecycle.
type QueryLogEntry struct {
	// ID is a generated unique row id.
	ID string

	// Tool names the operation that ran, e.g. "search_federal_decisions".
	Tool string

	// Query is the query text or identifier that was looked up.
	Query string

	// Language is the language filter in effect, if any.
	Language string

	// ResultCount is the number of records returned to the caller.
	ResultCount int

	// FromCache is true when the lookup was served from cache.
	FromCache bool

	// CreatedAt is when the lookup ran.
	CreatedAt time.Time
}
