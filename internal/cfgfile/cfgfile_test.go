package cfgfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFragment = `# Printer sensor config
[temperature_sensor chamber]
sensor_type: HTU21D

[sgp30 chamber]
i2c_bus: i2c.1

; legacy comment style
[aht21]
`

func TestSections(t *testing.T) {
	sections, err := Sections(sampleFragment)
	require.NoError(t, err)
	assert.Equal(t, []string{"temperature_sensor chamber", "sgp30 chamber", "aht21"}, sections)
}

func TestSections_IgnoresCommentedHeaders(t *testing.T) {
	sections, err := Sections("# [aht21]\n; [sgp30 x]\nkey: value\n")
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestHasSection(t *testing.T) {
	assert.True(t, HasSection(sampleFragment, "aht21"))
	assert.True(t, HasSection(sampleFragment, "sgp30"), "prefix sections match by prefix word")
	assert.True(t, HasSection(sampleFragment, "sgp30 chamber"))
	assert.False(t, HasSection(sampleFragment, "ens160"))
	assert.False(t, HasSection("# [aht21] in a comment\n", "aht21"))
}

func TestContainsMarker(t *testing.T) {
	assert.True(t, ContainsMarker("# aht21 was here\n", "aht21"))
	assert.False(t, ContainsMarker("[sgp30]\n", "aht21"))
}

func TestAppendBlock_EmptyContent(t *testing.T) {
	got := AppendBlock("", "[aht21]")
	assert.Equal(t, "[aht21]\n", got)
}

func TestAppendBlock_PreservesExistingBytes(t *testing.T) {
	existing := "[sgp30 chamber]\ni2c_bus: i2c.1\n"
	got := AppendBlock(existing, "[aht21]\n")
	assert.True(t, strings.HasPrefix(got, existing), "existing content must be preserved byte for byte")
	assert.Equal(t, existing+"\n[aht21]\n", got)
}

func TestAppendBlock_NoTrailingNewlineInExisting(t *testing.T) {
	got := AppendBlock("[sgp30]", "[aht21]")
	assert.Equal(t, "[sgp30]\n\n[aht21]\n", got)
}

func TestRemoveBlock_RoundTrip(t *testing.T) {
	begin := "# >>> envsense managed >>>"
	end := "# <<< envsense managed <<<"
	block := begin + "\n[aht21]\n" + end
	original := "[sgp30 chamber]\ni2c_bus: i2c.1\n"

	appended := AppendBlock(original, block)
	stripped, found := RemoveBlock(appended, begin, end)
	require.True(t, found)
	assert.Equal(t, original, stripped)
}

func TestRemoveBlock_NotFound(t *testing.T) {
	got, found := RemoveBlock(sampleFragment, "# >>>", "# <<<")
	assert.False(t, found)
	assert.Equal(t, sampleFragment, got)
}

func TestRemoveBlock_UnterminatedLeavesContent(t *testing.T) {
	content := "# >>> envsense managed >>>\n[aht21]\n"
	got, found := RemoveBlock(content, "# >>> envsense managed >>>", "# <<< envsense managed <<<")
	assert.False(t, found)
	assert.Equal(t, content, got)
}
