package citation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ValidationResult reports the outcome of validating a citation string.
type ValidationResult struct {
	// Valid is true when the input matches its kind's grammar exactly.
	Valid bool

	// Kind is the detected citation kind, KindUnknown when undetectable.
	Kind Kind

	// Language is the detected source language.
	Language Language

	// Normalized is the canonical rendering in the detected language.
	// Empty when Valid is false.
	Normalized string

	// Components holds the extracted variant when validation succeeded.
	Components Components

	// Errors lists grammar violations. Non-empty iff Valid is false.
	Errors []string

	// Warnings lists accepted deviations that were normalised away.
	Warnings []string
}

// cantonCodes is the fixed set of two-letter canton abbreviations.
var cantonCodes = map[string]bool{
	"AG": true, "AI": true, "AR": true, "BE": true, "BL": true, "BS": true,
	"FR": true, "GE": true, "GL": true, "GR": true, "JU": true, "LU": true,
	"NE": true, "NW": true, "OW": true, "SG": true, "SH": true, "SO": true,
	"SZ": true, "TG": true, "TI": true, "UR": true, "VD": true, "VS": true,
	"ZG": true, "ZH": true,
}

var (
	decisionPrefixIdxRe = regexp.MustCompile(`(?i)\b(BGE|ATF|DTF)`)
	articleMarkerIdxRe  = regexp.MustCompile(`(?i)\bart\.`)
	bracketedTripleRe   = regexp.MustCompile(`(?i)\(\s*(BGE|ATF|DTF)\s+\d{1,3}\s+[IV]+\s+\d+\s*\)`)

	courtDecisionRe = regexp.MustCompile(
		`^(?i:(BGE|ATF|DTF))\s+(\d{1,3})\s+(?i:(I|II|III|IV|V))\s+(\d+)(?:\s+(?:E\.|consid\.)\s*(\d+(?:\.\d+)*))?$`)

	cantonalRe = regexp.MustCompile(
		`^([A-Z][A-Za-z]{1,7})\s+([A-Z]{2})\s+([A-Z]{1,4}\s?\d{2,6}(?:/\d{1,4})?)$`)

	doctrineRe = regexp.MustCompile(
		`^([\p{Lu}][\p{L}\-]+(?:/[\p{Lu}][\p{L}\-]+)*),\s+(.+?),\s+(\d{4})(?:,\s+(?:S\.|p\.|pag\.)\s*(\d+))?$`)

	// Diagnostics for near-miss inputs.
	missingSpaceRe   = regexp.MustCompile(`(?i)\b(BGE|ATF|DTF|Art\.)\d`)
	wrongSeparatorRe = regexp.MustCompile(`(?i)\b(BGE|ATF|DTF)[._/-]`)
	chamberTokenRe   = regexp.MustCompile(`(?i)^(?:BGE|ATF|DTF)\s+\d{1,3}\s+(\S+)`)
)

// Validate checks a citation string against the grammar of its detected
// kind and language and, on success, returns the canonical normalised
// rendering. Validation is idempotent: validating the normalised form
// yields the same normalised form.
func Validate(text string) ValidationResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ValidationResult{
			Kind:     KindUnknown,
			Language: German,
			Errors:   []string{"empty citation"},
		}
	}

	lang := DetectLanguage(trimmed)
	kind := detectKind(trimmed)

	switch kind {
	case KindCourtDecision:
		return validateCourtDecision(trimmed, lang)
	case KindStatute:
		return validateStatute(trimmed, lang)
	case KindCantonalDecision:
		return validateCantonal(trimmed, lang)
	case KindDoctrine:
		return validateDoctrine(trimmed, lang)
	default:
		return ValidationResult{
			Kind:     KindUnknown,
			Language: lang,
			Errors:   []string{"unrecognised citation format"},
		}
	}
}

// detectKind classifies the citation kind. Decision prefixes outrank
// statute markers, with one exception: a statute citation that embeds a
// bracketed decision reference (e.g. "art. 2 al. 2 CC (ATF 120 II 5)")
// stays a statute when the statute marker appears first positionally.
func detectKind(text string) Kind {
	courtLoc := decisionPrefixIdxRe.FindStringIndex(text)
	statuteLoc := articleMarkerIdxRe.FindStringIndex(text)

	if courtLoc != nil && statuteLoc != nil &&
		statuteLoc[0] < courtLoc[0] && bracketedTripleRe.MatchString(text) {
		return KindStatute
	}
	if courtLoc != nil {
		return KindCourtDecision
	}
	if statuteLoc != nil {
		return KindStatute
	}
	if m := cantonalRe.FindStringSubmatch(text); m != nil && cantonCodes[m[2]] {
		return KindCantonalDecision
	}
	if doctrineRe.MatchString(text) {
		return KindDoctrine
	}
	return KindUnknown
}

func validateCourtDecision(text string, lang Language) ValidationResult {
	res := ValidationResult{Kind: KindCourtDecision, Language: lang}

	m := courtDecisionRe.FindStringSubmatch(text)
	if m == nil {
		res.Errors = courtDecisionDiagnostics(text)
		return res
	}

	volume, _ := strconv.Atoi(m[2])
	page, _ := strconv.Atoi(m[4])
	chamber := Chamber(strings.ToUpper(m[3]))

	if m[3] != string(chamber) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("chamber %q normalised to %q", m[3], chamber))
	}
	if upper := strings.ToUpper(m[1]); m[1] != upper {
		res.Warnings = append(res.Warnings, fmt.Sprintf("prefix %q normalised to %q", m[1], upper))
	}

	comp := CourtDecision{
		Volume:        volume,
		Chamber:       chamber,
		Page:          page,
		Consideration: m[5],
	}
	formatted, err := Format(comp, lang)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	res.Valid = true
	res.Components = comp
	res.Normalized = formatted.Citation
	return res
}

// courtDecisionDiagnostics explains why a prefix-bearing string failed the
// decision grammar. Every deviation is a hard failure; the messages exist
// to drive correction suggestions.
func courtDecisionDiagnostics(text string) []string {
	var errs []string

	if missingSpaceRe.MatchString(text) {
		errs = append(errs, "missing space between citation components")
	}
	if wrongSeparatorRe.MatchString(text) {
		errs = append(errs, "components must be separated by spaces, not punctuation")
	}
	if m := chamberTokenRe.FindStringSubmatch(text); m != nil {
		if !ValidChamber(Chamber(strings.ToUpper(m[1]))) {
			errs = append(errs, "chamber must be a Roman numeral in I, II, III, IV, V")
		}
	}
	if len(errs) == 0 {
		errs = append(errs, "expected format: <prefix> <volume> <chamber> <page>")
	}
	return errs
}

func validateStatute(text string, lang Language) ValidationResult {
	res := ValidationResult{Kind: KindStatute, Language: lang}
	labels := labelTable[lang]

	re := statuteGrammar(labels)
	m := re.FindStringSubmatch(text)
	if m == nil {
		res.Errors = statuteDiagnostics(text, labels)
		return res
	}

	article, _ := strconv.Atoi(m[1])
	comp := Statute{
		Article:       article,
		ArticleSuffix: m[2],
	}
	if m[3] != "" {
		p, _ := strconv.Atoi(m[3])
		comp.Paragraph = &p
	}
	comp.Letter = m[4]
	if m[5] != "" {
		n, _ := strconv.Atoi(m[5])
		comp.Number = &n
	}

	codeToken := m[6]
	canonical, ok := CanonicalCode(codeToken)
	if !ok {
		res.Errors = append(res.Errors, fmt.Sprintf("unknown statute abbreviation %q", codeToken))
		return res
	}
	comp.Code = canonical

	// The code token must belong to the detected language family.
	if expected, _ := StatuteAbbrev(canonical, lang); expected != codeToken {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("abbreviation %q normalised to %q for language %s", codeToken, expected, lang))
	}

	formatted, err := Format(comp, lang)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	res.Valid = true
	res.Components = comp
	res.Normalized = formatted.Citation
	return res
}

// statuteGrammar builds the grammar for one language's label set. Markers
// are case-sensitive: German capitalises the article marker, French and
// Italian do not.
func statuteGrammar(labels labelSet) *regexp.Regexp {
	return regexp.MustCompile(`^` +
		regexp.QuoteMeta(labels.Article) + `\s+(\d+)([a-z])?` +
		`(?:\s+` + regexp.QuoteMeta(labels.Paragraph) + `\s+(\d+))?` +
		`(?:\s+` + regexp.QuoteMeta(labels.Letter) + `\s+([a-z]))?` +
		`(?:\s+` + regexp.QuoteMeta(labels.Number) + `\s+(\d+))?` +
		`\s+([^\s(]+)(?:\s+\(.*\))?$`)
}

func statuteDiagnostics(text string, labels labelSet) []string {
	var errs []string

	if missingSpaceRe.MatchString(text) {
		errs = append(errs, "missing space after article marker")
	}
	if strings.HasPrefix(strings.ToLower(text), "art.") &&
		!strings.HasPrefix(text, labels.Article) {
		errs = append(errs, fmt.Sprintf("article marker must be written %q", labels.Article))
	}
	if len(errs) == 0 {
		errs = append(errs, fmt.Sprintf(
			"expected format: %s <number> [%s <n>] [%s <a-z>] [%s <n>] <code>",
			labels.Article, labels.Paragraph, labels.Letter, labels.Number))
	}
	return errs
}

func validateCantonal(text string, lang Language) ValidationResult {
	res := ValidationResult{Kind: KindCantonalDecision, Language: lang}

	m := cantonalRe.FindStringSubmatch(text)
	if m == nil || !cantonCodes[m[2]] {
		res.Errors = append(res.Errors, "expected format: <court> <canton> <docket>")
		return res
	}

	comp := CantonalDecision{Court: m[1], Canton: m[2], Docket: strings.ReplaceAll(m[3], " ", "")}
	formatted, err := Format(comp, lang)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	res.Valid = true
	res.Components = comp
	res.Normalized = formatted.Citation
	return res
}

func validateDoctrine(text string, lang Language) ValidationResult {
	res := ValidationResult{Kind: KindDoctrine, Language: lang}

	m := doctrineRe.FindStringSubmatch(text)
	if m == nil {
		res.Errors = append(res.Errors, "expected format: <authors>, <title>, <year>[, <page>]")
		return res
	}

	year, _ := strconv.Atoi(m[3])
	comp := Doctrine{Authors: m[1], Title: m[2], Year: year}
	if m[4] != "" {
		comp.Page, _ = strconv.Atoi(m[4])
	}

	formatted, err := Format(comp, lang)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	res.Valid = true
	res.Components = comp
	res.Normalized = formatted.Citation
	return res
}
