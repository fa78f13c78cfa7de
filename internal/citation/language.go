package citation

import (
	"regexp"
	"strings"
)

// languageMarkers are the whole-word tokens that identify a language inside
// a statute citation. They are evaluated before decision prefixes: a mixed
// citation with the wrong prefix but correct markers is more common than
// the reverse, and the markers are the more specific signal.
//
// "art." is shared by French and Italian and carries no signal, so it is
// not listed. "let." is shared by French and English and resolves through
// the article marker's casing, like shared abbreviation families do.
var languageMarkers = []struct {
	Languages []Language
	Tokens    []string
}{
	{[]Language{German}, []string{"Abs.", "Ziff.", "lit."}},
	{[]Language{French}, []string{"al.", "alinéa", "ch."}},
	{[]Language{French, English}, []string{"let."}},
	{[]Language{Italian}, []string{"cpv.", "lett.", "n."}},
	{[]Language{English}, []string{"para.", "no."}},
}

var markerPatterns = buildMarkerPatterns()

type markerPattern struct {
	Languages []Language
	Re        *regexp.Regexp
}

func buildMarkerPatterns() []markerPattern {
	patterns := make([]markerPattern, 0, len(languageMarkers))
	for _, m := range languageMarkers {
		alts := make([]string, len(m.Tokens))
		for i, tok := range m.Tokens {
			alts[i] = regexp.QuoteMeta(tok)
		}
		// Whole-word: preceded by start or space, followed by space.
		// \b does not work after "." so the boundary is spelled out.
		re := regexp.MustCompile(`(?:^|\s)(` + strings.Join(alts, "|") + `)(?:\s|$)`)
		patterns = append(patterns, markerPattern{Languages: m.Languages, Re: re})
	}
	return patterns
}

// DetectLanguage determines the source language of a citation string.
// Signals are evaluated in a fixed precedence order until one fires:
//
//  1. language-specific paragraph/letter/number markers as whole words
//  2. the decision-series prefix (BGE/ATF/DTF)
//  3. the statute-abbreviation language family
//  4. German, the framework's primary language
//
// When markers of several languages appear, the earliest marker in the
// text decides; ties fall to table order (de, fr, it, en).
func DetectLanguage(text string) Language {
	if lang, ok := detectByMarker(text); ok {
		return lang
	}
	if lang, ok := detectByPrefix(text); ok {
		return lang
	}
	if lang, ok := detectByStatuteCode(text); ok {
		return lang
	}
	return German
}

func detectByMarker(text string) (Language, bool) {
	best := -1
	var bestLangs []Language
	for _, p := range markerPatterns {
		loc := p.Re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if best == -1 || loc[0] < best {
			best = loc[0]
			bestLangs = p.Languages
		}
	}
	if best == -1 {
		return "", false
	}
	if len(bestLangs) == 1 {
		return bestLangs[0], true
	}
	return disambiguateFamily(text, bestLangs), true
}

var prefixRe = regexp.MustCompile(`(?i)\b(BGE|ATF|DTF)\b`)

func detectByPrefix(text string) (Language, bool) {
	m := prefixRe.FindString(text)
	if m == "" {
		return "", false
	}
	lang, ok := prefixLanguages[strings.ToUpper(m)]
	return lang, ok
}

// detectByStatuteCode resolves the language from the statute-abbreviation
// family. Shared abbreviations (CO is French, Italian and English alike)
// are disambiguated by the article marker's casing: German and English
// capitalise "Art.", French and Italian write "art.".
func detectByStatuteCode(text string) (Language, bool) {
	for _, tok := range strings.Fields(text) {
		tok = strings.Trim(tok, "(),;")
		langs := abbrevLanguages(tok)
		if len(langs) == 0 {
			continue
		}
		if len(langs) == 1 {
			return langs[0], true
		}
		return disambiguateFamily(text, langs), true
	}
	return "", false
}

func disambiguateFamily(text string, langs []Language) Language {
	in := func(want Language) bool {
		for _, l := range langs {
			if l == want {
				return true
			}
		}
		return false
	}

	capitalised := strings.Contains(text, "Art.")
	lower := strings.Contains(text, "art.")

	switch {
	case capitalised && in(German):
		return German
	case capitalised && in(English):
		return English
	case lower && in(French):
		return French
	case lower && in(Italian):
		return Italian
	}
	return langs[0]
}
