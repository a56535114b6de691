package recognize

import (
	"math"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Phone numbers carry between minPhoneDigits and maxPhoneDigits digits
// (E.164 allows at most 15).
const (
	minPhoneDigits = 8
	maxPhoneDigits = 15
)

var (
	phoneSeparators = regexp.MustCompile(`[\s\-\.\(\)\[\]\{\}]`)

	phoneShapes = []*regexp.Regexp{
		regexp.MustCompile(`^\+?[\d\s\-\.\(\)\[\]\{\}]{8,}$`),  // generic, optional +
		regexp.MustCompile(`\d{3}[\s\-\.]?\d{3}[\s\-\.]?\d{4}`), // NANP 3-3-4
		regexp.MustCompile(`\+\d{1,3}[\s\-\.]?\d+`),             // international
		regexp.MustCompile(`\(\d{3}\)[\s\-\.]?\d{3}[\s\-\.]?\d{4}`),
	}
)

// IsLikelyPhone reports whether value looks like a phone number.
func IsLikelyPhone(value string) bool {
	cleaned := phoneSeparators.ReplaceAllString(value, "")
	n := CountDigits(cleaned)
	if n < minPhoneDigits || n > maxPhoneDigits {
		return false
	}
	for _, re := range phoneShapes {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// CountDigits counts the decimal digits in s.
func CountDigits(s string) int {
	n := 0
	for _, c := range s {
		if unicode.IsDigit(c) {
			n++
		}
	}
	return n
}

// ValidPhoneDigits reports whether n digits can form a phone number.
func ValidPhoneDigits(n int) bool {
	return n >= minPhoneDigits && n <= maxPhoneDigits
}

// uniformLength reports whether sample lengths are consistent (sample
// standard deviation below 2) and typical of phone numbers (mean in [8, 15]).
func uniformLength(samples []string) bool {
	if len(samples) < 2 {
		return false
	}
	lengths := make([]float64, len(samples))
	var sum float64
	for i, s := range samples {
		lengths[i] = float64(utf8.RuneCountInString(s))
		sum += lengths[i]
	}
	mean := sum / float64(len(lengths))

	var sq float64
	for _, l := range lengths {
		sq += (l - mean) * (l - mean)
	}
	std := math.Sqrt(sq / float64(len(lengths)-1))

	return std < 2 && mean >= minPhoneDigits && mean <= maxPhoneDigits
}
