package citation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CourtDecision(t *testing.T) {
	res := Validate("BGE 147 IV 73")

	require.True(t, res.Valid)
	assert.Equal(t, KindCourtDecision, res.Kind)
	assert.Equal(t, German, res.Language)
	assert.Equal(t, "BGE 147 IV 73", res.Normalized)
	assert.Equal(t, CourtDecision{Volume: 147, Chamber: ChamberIV, Page: 73}, res.Components)
	assert.Empty(t, res.Errors)
}

func TestValidate_CourtDecisionLowercaseChamber(t *testing.T) {
	res := Validate("BGE 147 iv 73")

	require.True(t, res.Valid)
	assert.Equal(t, "BGE 147 IV 73", res.Normalized)
	assert.NotEmpty(t, res.Warnings)
}

func TestValidate_CourtDecisionWithConsideration(t *testing.T) {
	res := Validate("BGE 147 IV 73 E. 2.3")

	require.True(t, res.Valid)
	assert.Equal(t, "BGE 147 IV 73 E. 2.3", res.Normalized)

	comp, ok := res.Components.(CourtDecision)
	require.True(t, ok)
	assert.Equal(t, "2.3", comp.Consideration)
}

func TestValidate_CourtDecisionHardFailures(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{"no separator", "BGE147IV73", "missing space"},
		{"dot separator", "BGE.147.IV.73", "separated by spaces"},
		{"invalid chamber", "BGE 147 VII 73", "Roman numeral"},
		{"arabic chamber", "BGE 147 4 73", "Roman numeral"},
		{"missing page", "BGE 147 IV", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.text)
			assert.False(t, res.Valid)
			require.NotEmpty(t, res.Errors)
			if tt.wantErr != "" {
				assert.Contains(t, strings.Join(res.Errors, "; "), tt.wantErr)
			}
		})
	}
}

func TestValidate_Statute(t *testing.T) {
	res := Validate("Art. 97 Abs. 1 OR")

	require.True(t, res.Valid)
	assert.Equal(t, KindStatute, res.Kind)
	assert.Equal(t, German, res.Language)
	assert.Equal(t, "Art. 97 Abs. 1 OR", res.Normalized)

	comp, ok := res.Components.(Statute)
	require.True(t, ok)
	assert.Equal(t, "OR", comp.Code)
	assert.Equal(t, 97, comp.Article)
	require.NotNil(t, comp.Paragraph)
	assert.Equal(t, 1, *comp.Paragraph)
	assert.Nil(t, comp.Number)
	assert.Empty(t, comp.Letter)
}

// A missing space after the article marker is a hard failure, not a
// normalised warning.
func TestValidate_StatuteMissingSpace(t *testing.T) {
	res := Validate("Art.97 OR")

	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, strings.Join(res.Errors, "; "), "missing space")
}

func TestValidate_StatuteFullComponentChain(t *testing.T) {
	res := Validate("Art. 336 Abs. 2 lit. a Ziff. 1 OR")

	require.True(t, res.Valid)
	assert.Equal(t, "Art. 336 Abs. 2 lit. a Ziff. 1 OR", res.Normalized)

	comp := res.Components.(Statute)
	assert.Equal(t, "a", comp.Letter)
	require.NotNil(t, comp.Number)
	assert.Equal(t, 1, *comp.Number)
}

func TestValidate_StatuteArticleSuffix(t *testing.T) {
	res := Validate("Art. 336a OR")

	require.True(t, res.Valid)
	comp := res.Components.(Statute)
	assert.Equal(t, 336, comp.Article)
	assert.Equal(t, "a", comp.ArticleSuffix)
}

// A French-language citation that carries the German abbreviation is
// accepted and normalised to the French abbreviation, with a warning.
func TestValidate_StatuteMixedAbbreviation(t *testing.T) {
	res := Validate("art. 12 al. 2 OR")

	require.True(t, res.Valid)
	assert.Equal(t, French, res.Language)
	assert.Equal(t, "art. 12 al. 2 CO", res.Normalized)
	assert.NotEmpty(t, res.Warnings)
}

func TestValidate_StatuteWrongMarkerCase(t *testing.T) {
	// French grammar requires the lowercase marker.
	res := Validate("Art. 12 al. 2 CO")

	assert.False(t, res.Valid)
	assert.Contains(t, strings.Join(res.Errors, "; "), `"art."`)
}

func TestValidate_UnknownStatuteCode(t *testing.T) {
	res := Validate("Art. 97 XYZ")

	assert.False(t, res.Valid)
	assert.Contains(t, strings.Join(res.Errors, "; "), "unknown statute abbreviation")
}

// Normalisation is idempotent: validating a normalised citation returns
// the same normalised string.
func TestValidate_NormalizationIdempotent(t *testing.T) {
	inputs := []string{
		"BGE 147 IV 73",
		"bge  147  iv  73",
		"Art. 97   Abs. 1 OR",
		"art. 97 cpv. 1 CO",
		"ATF 133 III 421 consid. 2.1",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first := Validate(in)
			require.True(t, first.Valid, "errors: %v", first.Errors)

			second := Validate(first.Normalized)
			require.True(t, second.Valid)
			assert.Equal(t, first.Normalized, second.Normalized)
		})
	}
}

// A statute citation that embeds a bracketed decision reference stays a
// statute when the statute marker comes first.
func TestValidate_StatuteBeforeBracketedDecision(t *testing.T) {
	res := Validate("art. 2 al. 2 CC (ATF 120 II 5)")

	require.True(t, res.Valid)
	assert.Equal(t, KindStatute, res.Kind)
	assert.Equal(t, "art. 2 al. 2 CC", res.Normalized)
}

// When the decision prefix comes first, the prefix wins.
func TestValidate_DecisionPrefixFirstWins(t *testing.T) {
	res := Validate("BGE 120 II 5")
	assert.Equal(t, KindCourtDecision, res.Kind)
}

func TestValidate_CantonalDecision(t *testing.T) {
	res := Validate("OGer ZH LB110023")

	require.True(t, res.Valid)
	assert.Equal(t, KindCantonalDecision, res.Kind)
	assert.Equal(t, "OGer ZH LB110023", res.Normalized)

	comp := res.Components.(CantonalDecision)
	assert.Equal(t, "OGer", comp.Court)
	assert.Equal(t, "ZH", comp.Canton)
	assert.Equal(t, "LB110023", comp.Docket)
}

func TestValidate_CantonalRejectsUnknownCanton(t *testing.T) {
	res := Validate("OGer XX LB110023")
	assert.False(t, res.Valid)
}

func TestValidate_Doctrine(t *testing.T) {
	res := Validate("Gauch/Schluep, Schweizerisches Obligationenrecht, 2020, S. 123")

	require.True(t, res.Valid)
	assert.Equal(t, KindDoctrine, res.Kind)

	comp := res.Components.(Doctrine)
	assert.Equal(t, "Gauch/Schluep", comp.Authors)
	assert.Equal(t, 2020, comp.Year)
	assert.Equal(t, 123, comp.Page)
}

func TestValidate_Empty(t *testing.T) {
	res := Validate("   ")
	assert.False(t, res.Valid)
	assert.Equal(t, KindUnknown, res.Kind)
}

func TestValidate_Unrecognised(t *testing.T) {
	res := Validate("lorem ipsum dolor")
	assert.False(t, res.Valid)
	assert.Equal(t, KindUnknown, res.Kind)
	assert.NotEmpty(t, res.Errors)
}
