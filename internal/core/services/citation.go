package services

import (
	"github.com/lexhelvetia/lexsearch/internal/citation"
	"github.com/lexhelvetia/lexsearch/internal/core/ports/driving"
)

// Ensure CitationService implements the interface.
var _ driving.CitationService = (*CitationService)(nil)

// CitationService exposes the citation engine behind the driving port.
// The engine is pure and stateless, so the service carries no fields.
type CitationService struct{}

// NewCitationService creates a new citation service.
func NewCitationService() *CitationService {
	return &CitationService{}
}

// Parse analyses one citation string.
func (s *CitationService) Parse(text string) citation.Parsed {
	return citation.Parse(text)
}

// ParseMultiple extracts all citations from running text.
func (s *CitationService) ParseMultiple(text string) []citation.Parsed {
	return citation.ParseMultiple(text)
}

// Validate checks a citation against its kind's grammar.
func (s *CitationService) Validate(text string) citation.ValidationResult {
	return citation.Validate(text)
}

// Format renders components in the target language.
func (s *CitationService) Format(c citation.Components, lang citation.Language) (citation.Formatted, error) {
	return citation.Format(c, lang)
}

// Translate renders components in every supported language.
func (s *CitationService) Translate(c citation.Components) map[citation.Language]string {
	return citation.AllTranslations(c)
}
