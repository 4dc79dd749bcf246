package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTextStripsAnsiAndControls(t *testing.T) {
	input := "\x1b[31mred\x1b[0m\x00 text‮!"
	assert.Equal(t, "red text!", SanitizeText(input))
}

func TestSanitizeTextKeepsNewlinesAndTabs(t *testing.T) {
	assert.Equal(t, "a\n\tb", SanitizeText("a\n\tb"))
}

func TestSanitizeOneLineFlattens(t *testing.T) {
	input := "Album\nTitle\t  with   spaces"
	assert.Equal(t, "Album Title with spaces", SanitizeOneLine(input))
}

func TestSanitizeOneLineEmpty(t *testing.T) {
	assert.Equal(t, "", SanitizeOneLine(""))
}
