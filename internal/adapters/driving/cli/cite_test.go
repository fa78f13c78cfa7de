package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCiteValidateCmd_ValidCitation(t *testing.T) {
	output, err := execute(t, "cite", "validate", "BGE 147 IV 73")

	require.NoError(t, err)
	assert.Contains(t, output, "valid court_decision (de)")
	assert.Contains(t, output, "normalized: BGE 147 IV 73")
}

func TestCiteValidateCmd_InvalidCitation(t *testing.T) {
	output, err := execute(t, "cite", "validate", "Art.97 OR")

	require.NoError(t, err)
	assert.Contains(t, output, "invalid")
	assert.Contains(t, output, "error:")
}

func TestCiteFormatCmd_TargetLanguage(t *testing.T) {
	output, err := execute(t, "cite", "format", "--lang", "it", "Art. 97 Abs. 1 OR")

	require.NoError(t, err)
	assert.Contains(t, output, "art. 97 cpv. 1 CO")
}

func TestCiteFormatCmd_UnsupportedLanguage(t *testing.T) {
	_, err := execute(t, "cite", "format", "--lang", "rm", "BGE 147 IV 73")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")
}

func TestCiteTranslateCmd(t *testing.T) {
	output, err := execute(t, "cite", "translate", "BGE 147 IV 73")

	require.NoError(t, err)
	assert.Contains(t, output, "fr: ATF 147 IV 73")
	assert.Contains(t, output, "it: DTF 147 IV 73")
}

func TestCiteParseCmd(t *testing.T) {
	output, err := execute(t, "cite", "parse", "Vgl. BGE 147 IV 73 und Art. 97 Abs. 1 OR.")

	require.NoError(t, err)
	assert.Contains(t, output, "court_decision")
	assert.Contains(t, output, "statute")
}

func TestCiteParseCmd_NoCitations(t *testing.T) {
	output, err := execute(t, "cite", "parse", "nothing legal here")

	require.NoError(t, err)
	assert.Contains(t, output, "No citations found.")
}

func TestCiteCmd_RequiresArg(t *testing.T) {
	_, err := execute(t, "cite", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}
