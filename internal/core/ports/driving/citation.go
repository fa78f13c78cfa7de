package driving

import "github.com/lexhelvetia/lexsearch/internal/citation"

// CitationService exposes the citation engine to driving adapters.
// All operations are pure and synchronous; failures are recovered into
// structured results, never raised as errors, except for Format, where an
// unrenderable component set is a caller error.
type CitationService interface {
	// Parse analyses one citation string.
	Parse(text string) citation.Parsed

	// ParseMultiple extracts all citations from running text.
	ParseMultiple(text string) []citation.Parsed

	// Validate checks a citation against its kind's grammar.
	Validate(text string) citation.ValidationResult

	// Format renders components in the target language.
	Format(c citation.Components, lang citation.Language) (citation.Formatted, error)

	// Translate renders components in every supported language,
	// omitting languages that cannot be rendered.
	Translate(c citation.Components) map[citation.Language]string
}
