package util

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var reSpaces = regexp.MustCompile(`\s+`)

// asciiRepl covers typography and math symbols that NFKD decomposition
// leaves untouched.
var asciiRepl = strings.NewReplacer(
	"≤", "<=",
	"≥", ">=",
	"≠", "!=",
	"±", "+-",
	"×", "x",
	"÷", "/",
	"−", "-",
	"–", "-",
	"—", "--",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"•", "*",
	" ", " ",
)

// NormalizeUnicode reduces text to plain ASCII: NFKD decomposition,
// replacement of known symbols, then a strip of anything still above
// U+007F. Replacements run before the strip so their ASCII forms
// survive it.
func NormalizeUnicode(text string) string {
	s := norm.NFKD.String(text)
	s = asciiRepl.Replace(s)

	out := strings.Builder{}
	out.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// CollapseWhitespace trims and collapses any whitespace run to one space.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(text, " "))
}

// CleanCell prepares a raw cell value for the canonical record.
func CleanCell(value string) string {
	return NormalizeUnicode(strings.TrimSpace(value))
}
