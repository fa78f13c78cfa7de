package domain

import "time"

// Decision is a court decision record fetched from an external legal-data
// source. The external identifier is the upsert identity: repeated fetches
// of the same decision converge to a single persisted row.
type Decision struct {
	// ExternalID is the source-assigned unique identifier, e.g. the
	// docket or publication reference. Never empty.
	ExternalID string

	// Source names the external source the record came from.
	Source string

	// Title is the decision's display title or official reference.
	Title string

	// Summary is the regeste / headnote, when the source provides one.
	Summary string

	// Date is the decision date.
	Date time.Time

	// Language is the language the decision was published in (de/fr/it).
	Language string

	// Canton is the two-letter canton code for cantonal decisions,
	// empty for federal ones.
	Canton string

	// LegalAreas is the set of legal areas the source tags the decision
	// with, e.g. "Obligationenrecht", "droit pénal".
	LegalAreas []string

	// URL points at the source's public page for the decision.
	URL string

	// FullText is the decision's full text. Optional and large; empty
	// in search listings, populated by by-identifier lookups.
	FullText string

	// LastFetchedAt is when the record was last fetched from the
	// external source. Strictly advances on every upsert.
	LastFetchedAt time.Time
}

// Commentary is a legal commentary (doctrine) record from a commentary
// search source. Like Decision, identity is the external identifier.
type Commentary struct {
	// ExternalID is the source-assigned unique identifier.
	ExternalID string

	// Source names the external source the record came from.
	Source string

	// Authors is the author segment, e.g. "Gauch/Schluep".
	Authors string

	// Title is the work's title.
	Title string

	// Summary is an abstract, when the source provides one.
	Summary string

	// Statute optionally names the canonical statute code the
	// commentary annotates, e.g. "OR".
	Statute string

	// Year is the publication year.
	Year int

	// Language is the publication language.
	Language string

	// URL points at the source's public page for the work.
	URL string

	// LastFetchedAt is when the record was last fetched. Strictly
	// advances on every upsert.
	LastFetchedAt time.Time
}
