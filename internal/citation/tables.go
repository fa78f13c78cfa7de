package citation

import "sort"

// statuteEntry holds the per-language abbreviations and full names of one
// federal statute. The map key is the canonical internal code, which by
// convention equals the German abbreviation.
type statuteEntry struct {
	Abbrev map[Language]string
	Name   map[Language]string
}

// statuteTable is the bidirectional statute-code translation table. It is
// pure data: never mutated after initialisation.
var statuteTable = map[string]statuteEntry{
	"OR": {
		Abbrev: map[Language]string{German: "OR", French: "CO", Italian: "CO", English: "CO"},
		Name: map[Language]string{
			German:  "Obligationenrecht",
			French:  "Code des obligations",
			Italian: "Codice delle obbligazioni",
			English: "Code of Obligations",
		},
	},
	"ZGB": {
		Abbrev: map[Language]string{German: "ZGB", French: "CC", Italian: "CC", English: "CC"},
		Name: map[Language]string{
			German:  "Zivilgesetzbuch",
			French:  "Code civil",
			Italian: "Codice civile",
			English: "Civil Code",
		},
	},
	"StGB": {
		Abbrev: map[Language]string{German: "StGB", French: "CP", Italian: "CP", English: "SCC"},
		Name: map[Language]string{
			German:  "Strafgesetzbuch",
			French:  "Code pénal",
			Italian: "Codice penale",
			English: "Swiss Criminal Code",
		},
	},
	"BV": {
		Abbrev: map[Language]string{German: "BV", French: "Cst.", Italian: "Cost.", English: "Cst."},
		Name: map[Language]string{
			German:  "Bundesverfassung",
			French:  "Constitution fédérale",
			Italian: "Costituzione federale",
			English: "Federal Constitution",
		},
	},
	"ZPO": {
		Abbrev: map[Language]string{German: "ZPO", French: "CPC", Italian: "CPC", English: "CPC"},
		Name: map[Language]string{
			German:  "Zivilprozessordnung",
			French:  "Code de procédure civile",
			Italian: "Codice di procedura civile",
			English: "Civil Procedure Code",
		},
	},
	"StPO": {
		Abbrev: map[Language]string{German: "StPO", French: "CPP", Italian: "CPP", English: "CrimPC"},
		Name: map[Language]string{
			German:  "Strafprozessordnung",
			French:  "Code de procédure pénale",
			Italian: "Codice di procedura penale",
			English: "Criminal Procedure Code",
		},
	},
	"SchKG": {
		Abbrev: map[Language]string{German: "SchKG", French: "LP", Italian: "LEF", English: "DEBA"},
		Name: map[Language]string{
			German:  "Bundesgesetz über Schuldbetreibung und Konkurs",
			French:  "Loi fédérale sur la poursuite pour dettes et la faillite",
			Italian: "Legge federale sulla esecuzione e sul fallimento",
			English: "Debt Enforcement and Bankruptcy Act",
		},
	},
	"DSG": {
		Abbrev: map[Language]string{German: "DSG", French: "LPD", Italian: "LPD", English: "FADP"},
		Name: map[Language]string{
			German:  "Datenschutzgesetz",
			French:  "Loi fédérale sur la protection des données",
			Italian: "Legge federale sulla protezione dei dati",
			English: "Federal Act on Data Protection",
		},
	},
	"UWG": {
		Abbrev: map[Language]string{German: "UWG", French: "LCD", Italian: "LCSl", English: "UCA"},
		Name: map[Language]string{
			German:  "Bundesgesetz gegen den unlauteren Wettbewerb",
			French:  "Loi fédérale contre la concurrence déloyale",
			Italian: "Legge federale contro la concorrenza sleale",
			English: "Unfair Competition Act",
		},
	},
	"KG": {
		Abbrev: map[Language]string{German: "KG", French: "LCart", Italian: "LCart", English: "CartA"},
		Name: map[Language]string{
			German:  "Kartellgesetz",
			French:  "Loi sur les cartels",
			Italian: "Legge sui cartelli",
			English: "Cartel Act",
		},
	},
	"MWSTG": {
		Abbrev: map[Language]string{German: "MWSTG", French: "LTVA", Italian: "LIVA", English: "VATA"},
		Name: map[Language]string{
			German:  "Mehrwertsteuergesetz",
			French:  "Loi sur la TVA",
			Italian: "Legge sull'IVA",
			English: "Value Added Tax Act",
		},
	},
	"VwVG": {
		Abbrev: map[Language]string{German: "VwVG", French: "PA", Italian: "PA", English: "APA"},
		Name: map[Language]string{
			German:  "Verwaltungsverfahrensgesetz",
			French:  "Loi fédérale sur la procédure administrative",
			Italian: "Legge federale sulla procedura amministrativa",
			English: "Administrative Procedure Act",
		},
	},
}

// labelSet holds the fixed per-language tokens used inside a statute
// citation. Casing follows each language's convention: German capitalises
// the article marker, French and Italian do not.
type labelSet struct {
	Article   string
	Paragraph string
	Letter    string
	Number    string
}

var labelTable = map[Language]labelSet{
	German:  {Article: "Art.", Paragraph: "Abs.", Letter: "lit.", Number: "Ziff."},
	French:  {Article: "art.", Paragraph: "al.", Letter: "let.", Number: "ch."},
	Italian: {Article: "art.", Paragraph: "cpv.", Letter: "lett.", Number: "n."},
	English: {Article: "Art.", Paragraph: "para.", Letter: "let.", Number: "no."},
}

// decisionPrefixes maps each target language to its Federal Supreme Court
// series prefix. English has no series of its own, so English renderings
// reuse the German prefix.
var decisionPrefixes = map[Language]string{
	German:  "BGE",
	French:  "ATF",
	Italian: "DTF",
	English: "BGE",
}

// prefixLanguages maps each national series prefix to the language it
// unambiguously implies. BGE implies German; English is never detected
// from a prefix.
var prefixLanguages = map[string]Language{
	"BGE": German,
	"ATF": French,
	"DTF": Italian,
}

// considerationMarkers maps each language to its consideration marker.
var considerationMarkers = map[Language]string{
	German:  "E.",
	French:  "consid.",
	Italian: "consid.",
	English: "consid.",
}

// CanonicalCode resolves a statute abbreviation in any language to its
// canonical internal code. The lookup first tries the canonical key and
// then reverse-scans the abbreviation columns, so "CO", "Cst." or "DEBA"
// all resolve the same way "OR", "BV" and "SchKG" do.
func CanonicalCode(abbrev string) (string, bool) {
	if _, ok := statuteTable[abbrev]; ok {
		return abbrev, true
	}
	for code, entry := range statuteTable {
		for _, a := range entry.Abbrev {
			if a == abbrev {
				return code, true
			}
		}
	}
	return "", false
}

// StatuteAbbrev renders a canonical statute code in the target language.
func StatuteAbbrev(code string, lang Language) (string, bool) {
	entry, ok := statuteTable[code]
	if !ok {
		return "", false
	}
	a, ok := entry.Abbrev[lang]
	return a, ok
}

// StatuteName returns the full statute name in the target language.
func StatuteName(code string, lang Language) (string, bool) {
	entry, ok := statuteTable[code]
	if !ok {
		return "", false
	}
	n, ok := entry.Name[lang]
	return n, ok
}

// StatuteCodes returns all canonical statute codes, sorted.
func StatuteCodes() []string {
	codes := make([]string, 0, len(statuteTable))
	for code := range statuteTable {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// abbrevLanguages returns every language whose column carries the given
// abbreviation. Many abbreviations are shared (CO covers French, Italian
// and English); callers disambiguate within the returned family.
func abbrevLanguages(abbrev string) []Language {
	var langs []Language
	for _, entry := range statuteTable {
		for _, lang := range Languages {
			if entry.Abbrev[lang] == abbrev {
				langs = append(langs, lang)
			}
		}
		if len(langs) > 0 {
			return langs
		}
	}
	return nil
}
