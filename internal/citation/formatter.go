package citation

import (
	"errors"
	"fmt"
	"strings"
)

// Formatting errors.
var (
	// ErrUnsupportedLanguage indicates the target language is not one of
	// de/fr/it/en.
	ErrUnsupportedLanguage = errors.New("citation: unsupported language")

	// ErrUnknownStatute indicates the statute code is not in the
	// translation table.
	ErrUnknownStatute = errors.New("citation: unknown statute code")

	// ErrInvalidComponents indicates the component set cannot be rendered
	// (missing or out-of-range fields).
	ErrInvalidComponents = errors.New("citation: invalid components")
)

// seriesNames is the full name of the federal decision series per language,
// used for full references.
var seriesNames = map[Language]string{
	German:  "Entscheidungen des Schweizerischen Bundesgerichts",
	French:  "Arrêts du Tribunal fédéral suisse",
	Italian: "Decisioni del Tribunale federale svizzero",
	English: "Decisions of the Swiss Federal Supreme Court",
}

// pageMarkers is the pinpoint-page token per language, used in doctrine
// citations.
var pageMarkers = map[Language]string{
	German:  "S.",
	French:  "p.",
	Italian: "pag.",
	English: "p.",
}

// Formatted is the result of rendering a component set in one language.
type Formatted struct {
	// Citation is the canonical citation string.
	Citation string

	// FullReference is the citation followed by the statute's or series'
	// full name, when one exists for the kind.
	FullReference string
}

// Format renders a component set as a canonical citation string in the
// target language. It is a pure function: identical inputs always produce
// byte-identical output, and the components are never mutated.
func Format(c Components, lang Language) (Formatted, error) {
	if !lang.Valid() {
		return Formatted{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	switch v := c.(type) {
	case CourtDecision:
		return formatCourtDecision(v, lang)
	case Statute:
		return formatStatute(v, lang)
	case CantonalDecision:
		return formatCantonalDecision(v)
	case Doctrine:
		return formatDoctrine(v, lang)
	default:
		return Formatted{}, fmt.Errorf("%w: kind %q cannot be formatted", ErrInvalidComponents, c.Kind())
	}
}

func formatCourtDecision(d CourtDecision, lang Language) (Formatted, error) {
	if d.Volume <= 0 || d.Page <= 0 {
		return Formatted{}, fmt.Errorf("%w: volume and page must be positive", ErrInvalidComponents)
	}
	if !ValidChamber(d.Chamber) {
		return Formatted{}, fmt.Errorf("%w: chamber %q not in I..V", ErrInvalidComponents, d.Chamber)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d %s %d", decisionPrefixes[lang], d.Volume, d.Chamber, d.Page)
	if d.Consideration != "" {
		fmt.Fprintf(&b, " %s %s", considerationMarkers[lang], d.Consideration)
	}
	cit := b.String()

	return Formatted{
		Citation:      cit,
		FullReference: fmt.Sprintf("%s (%s)", cit, seriesNames[lang]),
	}, nil
}

func formatStatute(s Statute, lang Language) (Formatted, error) {
	if s.Article <= 0 {
		return Formatted{}, fmt.Errorf("%w: article must be positive", ErrInvalidComponents)
	}
	abbrev, ok := StatuteAbbrev(s.Code, lang)
	if !ok {
		return Formatted{}, fmt.Errorf("%w: %q", ErrUnknownStatute, s.Code)
	}
	labels := labelTable[lang]

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d%s", labels.Article, s.Article, s.ArticleSuffix)
	if s.Paragraph != nil {
		fmt.Fprintf(&b, " %s %d", labels.Paragraph, *s.Paragraph)
	}
	if s.Letter != "" {
		fmt.Fprintf(&b, " %s %s", labels.Letter, s.Letter)
	}
	if s.Number != nil {
		fmt.Fprintf(&b, " %s %d", labels.Number, *s.Number)
	}
	fmt.Fprintf(&b, " %s", abbrev)
	cit := b.String()

	name, _ := StatuteName(s.Code, lang)
	return Formatted{
		Citation:      cit,
		FullReference: fmt.Sprintf("%s (%s)", cit, name),
	}, nil
}

// formatCantonalDecision renders a cantonal docket reference. Cantonal
// citations carry no language-specific vocabulary, so the rendering is the
// same in every language.
func formatCantonalDecision(d CantonalDecision) (Formatted, error) {
	if d.Court == "" || d.Canton == "" || d.Docket == "" {
		return Formatted{}, fmt.Errorf("%w: court, canton and docket are required", ErrInvalidComponents)
	}
	cit := fmt.Sprintf("%s %s %s", d.Court, d.Canton, d.Docket)
	return Formatted{Citation: cit, FullReference: cit}, nil
}

func formatDoctrine(d Doctrine, lang Language) (Formatted, error) {
	if d.Authors == "" || d.Title == "" {
		return Formatted{}, fmt.Errorf("%w: authors and title are required", ErrInvalidComponents)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s", d.Authors, d.Title)
	if d.Year > 0 {
		fmt.Fprintf(&b, ", %d", d.Year)
	}
	if d.Page > 0 {
		fmt.Fprintf(&b, ", %s %d", pageMarkers[lang], d.Page)
	}
	cit := b.String()
	return Formatted{Citation: cit, FullReference: cit}, nil
}

// AllTranslations renders the component set in every supported language.
// Languages whose rendering fails are omitted rather than failing the
// whole call: a partial translation set is a valid outcome for incomplete
// component sets.
func AllTranslations(c Components) map[Language]string {
	out := make(map[Language]string, len(Languages))
	for _, lang := range Languages {
		f, err := Format(c, lang)
		if err != nil {
			continue
		}
		out[lang] = f.Citation
	}
	return out
}
