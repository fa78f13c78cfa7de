package citation

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Parse analyses a single citation string: it detects kind and language,
// extracts structured components and validates them. When validation
// fails, the result carries correction suggestions and whatever components
// could still be extracted leniently.
func Parse(text string) Parsed {
	res := Validate(text)

	parsed := Parsed{
		Kind:       res.Kind,
		Language:   res.Language,
		Raw:        text,
		Components: res.Components,
		Valid:      res.Valid,
	}

	if !res.Valid {
		if parsed.Components == nil {
			parsed.Components = extractLenient(text, res.Kind)
		}
		parsed.Suggestions = buildSuggestions(res.Kind, res.Language, res.Errors)
	}
	return parsed
}

// extractLenient pulls components out of near-miss input, tolerating the
// separator and casing mistakes the strict grammar rejects. Components
// that cannot be recovered stay absent.
func extractLenient(text string, kind Kind) Components {
	switch kind {
	case KindCourtDecision:
		if m := lenientCourtRe.FindStringSubmatch(text); m != nil {
			volume, _ := strconv.Atoi(m[2])
			page, _ := strconv.Atoi(m[4])
			return CourtDecision{
				Volume:  volume,
				Chamber: Chamber(strings.ToUpper(m[3])),
				Page:    page,
			}
		}
	case KindStatute:
		if m := lenientStatuteRe.FindStringSubmatch(text); m != nil {
			article, _ := strconv.Atoi(m[1])
			s := Statute{Article: article, ArticleSuffix: m[2]}
			if code, ok := CanonicalCode(m[3]); ok {
				s.Code = code
			}
			return s
		}
	}
	return Unknown{}
}

var (
	lenientCourtRe = regexp.MustCompile(
		`(?i)\b(BGE|ATF|DTF)[\s._-]*(\d{1,3})[\s._-]*(I{1,3}|IV|V)[\s._-]*(\d+)`)

	lenientStatuteRe = regexp.MustCompile(
		`(?i)\bart\.?\s*(\d+)([a-z])?\b.*?\b([A-Za-zÄÖÜäöü.]{2,6})\s*$`)
)

// expectedFormats holds the per-language format template shown in
// correction suggestions, one per citation kind.
var expectedFormats = map[Kind]map[Language]string{
	KindCourtDecision: {
		German:  "BGE <Band> <Abteilung I-V> <Seite>",
		French:  "ATF <volume> <cour I-V> <page>",
		Italian: "DTF <volume> <corte I-V> <pagina>",
		English: "BGE <volume> <chamber I-V> <page>",
	},
	KindStatute: {
		German:  "Art. <Nummer> [Abs. <n>] [lit. <a-z>] [Ziff. <n>] <Gesetz>",
		French:  "art. <numéro> [al. <n>] [let. <a-z>] [ch. <n>] <loi>",
		Italian: "art. <numero> [cpv. <n>] [lett. <a-z>] [n. <n>] <legge>",
		English: "Art. <number> [para. <n>] [let. <a-z>] [no. <n>] <act>",
	},
	KindCantonalDecision: {
		German:  "<Gericht> <Kanton> <Geschäftsnummer>",
		French:  "<tribunal> <canton> <numéro de dossier>",
		Italian: "<tribunale> <cantone> <numero di incarto>",
		English: "<court> <canton> <docket number>",
	},
	KindDoctrine: {
		German:  "<Autoren>, <Titel>, <Jahr>[, S. <Seite>]",
		French:  "<auteurs>, <titre>, <année>[, p. <page>]",
		Italian: "<autori>, <titolo>, <anno>[, pag. <pagina>]",
		English: "<authors>, <title>, <year>[, p. <page>]",
	},
}

// workedExamples holds one canonical example per kind and language.
var workedExamples = map[Kind]map[Language]string{
	KindCourtDecision: {
		German:  "BGE 147 IV 73",
		French:  "ATF 147 IV 73",
		Italian: "DTF 147 IV 73",
		English: "BGE 147 IV 73",
	},
	KindStatute: {
		German:  "Art. 97 Abs. 1 OR",
		French:  "art. 97 al. 1 CO",
		Italian: "art. 97 cpv. 1 CO",
		English: "Art. 97 para. 1 CO",
	},
	KindCantonalDecision: {
		German:  "OGer ZH LB110023",
		French:  "TC VD HC12023",
		Italian: "TA TI 522019100",
		English: "OGer ZH LB110023",
	},
	KindDoctrine: {
		German:  "Gauch/Schluep, Schweizerisches Obligationenrecht, 2020, S. 123",
		French:  "Tercier/Pichonnaz, Le droit des obligations, 2019, p. 45",
		Italian: "Trezzini, Commentario al Codice di diritto processuale, 2017, pag. 88",
		English: "Gauch/Schluep, Swiss Law of Obligations, 2020, p. 123",
	},
}

// buildSuggestions produces 2-4 correction hints: the expected-format
// template, one worked example, and up to two of the validator's specific
// error messages.
func buildSuggestions(kind Kind, lang Language, errs []string) []string {
	if kind == KindUnknown {
		kind = KindCourtDecision
	}

	suggestions := []string{
		"expected format: " + expectedFormats[kind][lang],
		"example: " + workedExamples[kind][lang],
	}
	for _, e := range errs {
		if len(suggestions) == 4 {
			break
		}
		suggestions = append(suggestions, e)
	}
	return suggestions
}

// multiCourtRe matches complete decision citations inside running text.
var multiCourtRe = regexp.MustCompile(
	`\b(?:BGE|ATF|DTF)\s+\d{1,3}\s+(?:III|II|IV|I|V)\s+\d+(?:\s+(?:E\.|consid\.)\s*\d+(?:\.\d+)*)?`)

// multiStatuteRes matches complete statute citations, one pattern per
// language since the label vocabulary differs.
var multiStatuteRes = buildMultiStatuteRes()

func buildMultiStatuteRes() []*regexp.Regexp {
	codes := make([]string, 0, len(statuteTable)*4)
	seen := make(map[string]bool)
	for _, entry := range statuteTable {
		for _, lang := range Languages {
			a := entry.Abbrev[lang]
			if !seen[a] {
				seen[a] = true
				codes = append(codes, regexp.QuoteMeta(a))
			}
		}
	}
	// Longest first so "LCart" is not clipped to "LC".
	sort.Slice(codes, func(i, j int) bool { return len(codes[i]) > len(codes[j]) })
	alternation := strings.Join(codes, "|")

	// The citation is group 1. \b cannot close the match because the
	// dot-terminated codes (Cst., Cost.) end on a non-word character, so
	// the right boundary is spelled out and left unclaimed.
	res := make([]*regexp.Regexp, 0, len(Languages))
	for _, lang := range Languages {
		labels := labelTable[lang]
		res = append(res, regexp.MustCompile(
			`\b(`+regexp.QuoteMeta(labels.Article)+`\s+\d+[a-z]?`+
				`(?:\s+`+regexp.QuoteMeta(labels.Paragraph)+`\s+\d+)?`+
				`(?:\s+`+regexp.QuoteMeta(labels.Letter)+`\s+[a-z])?`+
				`(?:\s+`+regexp.QuoteMeta(labels.Number)+`\s+\d+)?`+
				`\s+(?:`+alternation+`))(?:[\s,;:.)]|$)`))
	}
	return res
}

type span struct {
	start, end int
	text       string
}

// ParseMultiple extracts every citation found in a piece of running text.
// Identical matches are deduplicated, first-occurrence order is preserved,
// and a substring claimed by one kind's pattern is never counted again by
// another kind's pattern.
func ParseMultiple(text string) []Parsed {
	var candidates []span
	for _, loc := range multiCourtRe.FindAllStringIndex(text, -1) {
		candidates = append(candidates, span{loc[0], loc[1], text[loc[0]:loc[1]]})
	}
	for _, re := range multiStatuteRes {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			candidates = append(candidates, span{m[2], m[3], text[m[2]:m[3]]})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		// Longer match wins at the same position.
		return candidates[i].end > candidates[j].end
	})

	var (
		results []Parsed
		seen    = make(map[string]bool)
		lastEnd = -1
	)
	for _, c := range candidates {
		if c.start < lastEnd {
			continue // overlaps a match already claimed
		}
		if seen[c.text] {
			lastEnd = c.end
			continue
		}
		seen[c.text] = true
		lastEnd = c.end
		results = append(results, Parse(c.text))
	}
	return results
}
