// Package citation implements parsing, validation, formatting and
// cross-language translation of Swiss legal citations.
//
// Swiss federal law is published in German, French and Italian, and the
// same Federal Supreme Court decision is cited as BGE, ATF or DTF depending
// on the language. The engine normalises any of the four supported
// renderings (de/fr/it/en) into one structured representation and can
// re-render it in any target language.
//
// Parsing, validation and formatting are pure functions over immutable
// values; the package holds no mutable state and is safe for concurrent use.
package citation
