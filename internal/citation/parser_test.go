package citation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidCourtDecision(t *testing.T) {
	p := Parse("BGE 147 IV 73")

	assert.True(t, p.Valid)
	assert.Equal(t, KindCourtDecision, p.Kind)
	assert.Equal(t, German, p.Language)
	assert.Equal(t, "BGE 147 IV 73", p.Raw)
	assert.Equal(t, CourtDecision{Volume: 147, Chamber: ChamberIV, Page: 73}, p.Components)
	assert.Empty(t, p.Suggestions)
}

func TestParse_RawIsPreserved(t *testing.T) {
	raw := "  bge 147 iv 73  "
	p := Parse(raw)
	assert.Equal(t, raw, p.Raw)
}

func TestParse_InvalidProducesSuggestions(t *testing.T) {
	p := Parse("BGE 147 VII 73")

	require.False(t, p.Valid)
	require.GreaterOrEqual(t, len(p.Suggestions), 2)
	require.LessOrEqual(t, len(p.Suggestions), 4)
	assert.True(t, strings.HasPrefix(p.Suggestions[0], "expected format:"))
	assert.True(t, strings.HasPrefix(p.Suggestions[1], "example:"))
}

func TestParse_SuggestionsMatchLanguage(t *testing.T) {
	p := Parse("ATF 147 VII 73")

	require.False(t, p.Valid)
	assert.Contains(t, p.Suggestions[1], "ATF 147 IV 73")
}

// Lenient extraction recovers components from near-miss input even though
// validation fails.
func TestParse_LenientExtraction(t *testing.T) {
	p := Parse("BGE 147-IV-73")

	require.False(t, p.Valid)
	comp, ok := p.Components.(CourtDecision)
	require.True(t, ok)
	assert.Equal(t, 147, comp.Volume)
	assert.Equal(t, ChamberIV, comp.Chamber)
	assert.Equal(t, 73, comp.Page)
}

func TestParse_UnknownInput(t *testing.T) {
	p := Parse("completely unrelated text")

	assert.False(t, p.Valid)
	assert.Equal(t, KindUnknown, p.Kind)
	assert.Equal(t, Unknown{}, p.Components)
	assert.NotEmpty(t, p.Suggestions)
}

// Optional trailing components are represented as absent, never defaulted.
func TestParse_AbsentComponentsStayAbsent(t *testing.T) {
	p := Parse("Art. 97 OR")

	require.True(t, p.Valid)
	comp := p.Components.(Statute)
	assert.Nil(t, comp.Paragraph)
	assert.Empty(t, comp.Letter)
	assert.Nil(t, comp.Number)
}

func TestParseMultiple_OrderAndKinds(t *testing.T) {
	text := "Nach Art. 97 Abs. 1 OR haftet der Schuldner; vgl. BGE 147 IV 73 " +
		"sowie DTF 133 III 421 consid. 2.1."

	results := ParseMultiple(text)

	require.Len(t, results, 3)
	assert.Equal(t, KindStatute, results[0].Kind)
	assert.Equal(t, "Art. 97 Abs. 1 OR", results[0].Raw)
	assert.Equal(t, "BGE 147 IV 73", results[1].Raw)
	assert.Equal(t, "DTF 133 III 421 consid. 2.1", results[2].Raw)
}

func TestParseMultiple_DeduplicatesIdenticalMatches(t *testing.T) {
	text := "BGE 147 IV 73 bestätigt BGE 147 IV 73."

	results := ParseMultiple(text)

	require.Len(t, results, 1)
	assert.Equal(t, "BGE 147 IV 73", results[0].Raw)
}

func TestParseMultiple_NoOverlapDoubleCount(t *testing.T) {
	// The statute pattern claims the full span; the decision reference in
	// brackets is a separate, non-overlapping match.
	text := "art. 2 al. 2 CC (ATF 120 II 5)"

	results := ParseMultiple(text)

	require.Len(t, results, 2)
	assert.Equal(t, KindStatute, results[0].Kind)
	assert.Equal(t, KindCourtDecision, results[1].Kind)
}

// Dot-terminated codes (Cst., Cost.) must still be claimed in full from
// running text.
func TestParseMultiple_DotTerminatedStatuteCode(t *testing.T) {
	text := "Gemäss Art. 29 Abs. 2 BV und art. 5 Cst. gilt der Anspruch."

	results := ParseMultiple(text)

	require.Len(t, results, 2)
	assert.Equal(t, "Art. 29 Abs. 2 BV", results[0].Raw)
	assert.Equal(t, "art. 5 Cst.", results[1].Raw)
	assert.Equal(t, French, results[1].Language)
	assert.True(t, results[1].Valid)
}

func TestParseMultiple_Empty(t *testing.T) {
	assert.Empty(t, ParseMultiple("no citations here"))
}

func TestParseMultiple_MixedLanguages(t *testing.T) {
	text := "Voir art. 97 al. 1 CO et ATF 147 IV 73."

	results := ParseMultiple(text)

	require.Len(t, results, 2)
	assert.Equal(t, French, results[0].Language)
	assert.Equal(t, French, results[1].Language)
}
