package recognize

import (
	"strings"
	"unicode"
)

// nameThreshold is the composite score a value must exceed to look like a
// person's name.
const nameThreshold = 3.5

// IsLikelyName reports whether value looks like a person's name.
func IsLikelyName(value string) bool {
	return nameScore(strings.TrimSpace(value)) > nameThreshold
}

// nameScore returns the composite name score of s, or 0 when a hard check
// fails.
func nameScore(s string) float64 {
	if s == "" {
		return 0
	}

	words := strings.Fields(s)
	if len(words) < 1 || len(words) > 6 {
		return 0
	}

	chars := []rune(s)
	total := len(chars)
	if total < 2 {
		return 0
	}

	var letters, digits int
	for _, c := range chars {
		switch {
		case unicode.IsLetter(c) || unicode.IsSpace(c):
			letters++
		case unicode.IsDigit(c):
			digits++
		}
	}
	special := total - letters - digits

	ratio := float64(letters) / float64(total)
	if ratio < 0.7 {
		return 0
	}
	if digits > 0 {
		return 0
	}

	capitalized := true
	for _, w := range words {
		first := []rune(w)[0]
		if !unicode.IsUpper(first) {
			capitalized = false
			break
		}
	}

	score := ratio * 5
	if capitalized {
		score += 2
	}
	if len(words) >= 2 && len(words) <= 4 {
		score++
	}
	score -= float64(special) * 0.5
	return score
}
