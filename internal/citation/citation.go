package citation

// Language identifies one of the supported citation languages.
type Language string

const (
	// German is the primary language of the framework and the default
	// when no language signal is present in the input.
	German  Language = "de"
	French  Language = "fr"
	Italian Language = "it"
	English Language = "en"
)

// Languages lists all supported languages in canonical order.
var Languages = []Language{German, French, Italian, English}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	switch l {
	case German, French, Italian, English:
		return true
	}
	return false
}

// Kind identifies the kind of legal reference a citation denotes.
type Kind string

const (
	KindCourtDecision    Kind = "court_decision"
	KindStatute          Kind = "statute"
	KindCantonalDecision Kind = "cantonal_decision"
	KindDoctrine         Kind = "doctrine"
	KindUnknown          Kind = "unknown"
)

// Components is the closed set of citation variants. Each variant carries
// only the fields that exist for its kind, so a statute can never hold a
// volume or chamber. Values are immutable once produced by the parser;
// formatting renders new strings without touching the source components.
type Components interface {
	// Kind returns the variant's citation kind.
	Kind() Kind
}

// Chamber is an ordinal section of the Federal Supreme Court decision
// series. The set is fixed and language-invariant.
type Chamber string

const (
	ChamberI   Chamber = "I"
	ChamberII  Chamber = "II"
	ChamberIII Chamber = "III"
	ChamberIV  Chamber = "IV"
	ChamberV   Chamber = "V"
)

// ValidChamber reports whether c is one of the five published chambers.
func ValidChamber(c Chamber) bool {
	switch c {
	case ChamberI, ChamberII, ChamberIII, ChamberIV, ChamberV:
		return true
	}
	return false
}

// CourtDecision references a published Federal Supreme Court decision.
// Volume, chamber and page are identical across all four language
// renderings; only the prefix and label vocabulary change.
type CourtDecision struct {
	// Volume is the publication volume (positive).
	Volume int

	// Chamber is the deciding chamber, one of I..V.
	Chamber Chamber

	// Page is the first page of the decision (positive).
	Page int

	// Consideration optionally points into the decision's reasoning,
	// e.g. "2.3" for "E. 2.3" / "consid. 2.3". Empty when absent.
	Consideration string
}

// Kind implements Components.
func (CourtDecision) Kind() Kind { return KindCourtDecision }

// Statute references a provision of a federal statute. Code holds the
// canonical internal statute code shared by all language abbreviations
// (e.g. both "OR" and "CO" normalise to the canonical code "OR").
type Statute struct {
	// Code is the canonical statute code.
	Code string

	// Article is the article number (positive).
	Article int

	// ArticleSuffix is an optional alphabetic suffix, e.g. the "a" in
	// Art. 336a. Empty when absent.
	ArticleSuffix string

	// Paragraph is the optional paragraph (Abs./al./cpv.). Nil when absent.
	Paragraph *int

	// Letter is the optional letter (lit./let./lett.). Empty when absent.
	Letter string

	// Number is the optional sub-number (Ziff./ch./n.). Nil when absent.
	Number *int
}

// Kind implements Components.
func (Statute) Kind() Kind { return KindStatute }

// CantonalDecision references a decision of a cantonal court by docket
// number. Cantonal decisions have no unified publication series, so the
// docket is the identifying component.
type CantonalDecision struct {
	// Court is the court abbreviation, e.g. "OGer" or "HGer".
	Court string

	// Canton is the two-letter canton code, e.g. "ZH".
	Canton string

	// Docket is the court-assigned case number, e.g. "LB110023".
	Docket string
}

// Kind implements Components.
func (CantonalDecision) Kind() Kind { return KindCantonalDecision }

// Doctrine references legal commentary or scholarly writing.
type Doctrine struct {
	// Authors is the author segment as cited, e.g. "Gauch/Schluep".
	Authors string

	// Title is the cited work's title.
	Title string

	// Year is the publication year. Zero when absent.
	Year int

	// Page is the optional pinpoint page. Zero when absent.
	Page int
}

// Kind implements Components.
func (Doctrine) Kind() Kind { return KindDoctrine }

// Unknown marks input the parser could not classify.
type Unknown struct{}

// Kind implements Components.
func (Unknown) Kind() Kind { return KindUnknown }

// Parsed is the result of parsing a raw citation string. Raw always holds
// the original input unchanged; Valid is derived from validation of the
// extracted components, never stored independently.
type Parsed struct {
	// Kind is the detected citation kind.
	Kind Kind

	// Language is the detected source language.
	Language Language

	// Raw is the original input text, unmodified.
	Raw string

	// Components holds the extracted variant. For KindUnknown this is
	// Unknown{}.
	Components Components

	// Valid reports whether the components passed validation.
	Valid bool

	// Suggestions contains correction hints when Valid is false.
	Suggestions []string
}
