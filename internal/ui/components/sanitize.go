package components

import (
	"regexp"
	"strings"
	"unicode"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

var bidiControls = map[rune]struct{}{
	'‪': {},
	'‫': {},
	'‬': {},
	'‭': {},
	'‮': {},
	'⁦': {},
	'⁧': {},
	'⁨': {},
	'⁩': {},
	'‎': {},
	'‏': {},
}

// SanitizeText strips control characters and ANSI escape sequences from
// display strings. Scraped metadata goes straight to the terminal, so this
// runs on every externally sourced value before rendering.
func SanitizeText(input string) string {
	if input == "" {
		return input
	}
	cleaned := ansiPattern.ReplaceAllString(input, "")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if _, ok := bidiControls[r]; ok {
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, cleaned)
}

// SanitizeOneLine flattens to a single line on top of SanitizeText.
func SanitizeOneLine(input string) string {
	cleaned := SanitizeText(input)
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	return strings.Join(strings.Fields(cleaned), " ")
}
