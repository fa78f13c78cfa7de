package domain

import "time"

// MaxSearchLimit caps the number of results any single search returns,
// regardless of what the caller asks for.
const MaxSearchLimit = 50

// DefaultSearchLimit applies when the caller does not set a limit.
const DefaultSearchLimit = 10

// SearchFilters configures a search against an external legal-data source.
// All fields except Query are optional.
type SearchFilters struct {
	// Query is the free-text query.
	Query string

	// Language restricts results to one publication language (de/fr/it).
	Language string

	// Canton restricts cantonal searches to one canton code.
	Canton string

	// FromDate and ToDate bound the decision date. Zero values mean
	// unbounded.
	FromDate time.Time
	ToDate   time.Time

	// LegalArea restricts results to one legal area tag.
	LegalArea string

	// Limit is the maximum number of results. Values below 1 fall back
	// to DefaultSearchLimit; values above MaxSearchLimit are clamped.
	Limit int
}

// EffectiveLimit returns the limit after defaulting and clamping.
func (f SearchFilters) EffectiveLimit() int {
	switch {
	case f.Limit < 1:
		return DefaultSearchLimit
	case f.Limit > MaxSearchLimit:
		return MaxSearchLimit
	}
	return f.Limit
}

// SearchResult is the outcome of one decision search.
type SearchResult struct {
	// Decisions holds the matching records, at most EffectiveLimit many.
	Decisions []Decision

	// Total is the source-reported total match count, which can exceed
	// len(Decisions).
	Total int

	// FromCache is true when the result was served from the cache store
	// without touching the external source.
	FromCache bool
}

// CommentaryResult is the outcome of one commentary search.
type CommentaryResult struct {
	Entries   []Commentary
	Total     int
	FromCache bool
}
