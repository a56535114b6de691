package recognize

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Lower applies full Unicode lower-casing (İ becomes i + combining dot,
// as in most scripting runtimes), unlike strings.ToLower's per-rune mapping.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// FoldASCII decomposes s (NFKD) and drops every rune outside ASCII, so
// "José Müller" becomes "Jose Muller".
func FoldASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
