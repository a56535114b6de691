// Package normalize canonicalizes raw cell values into contact fields.
//
// Every function is total: an absent or invalid input yields core.Absent.
package normalize

import (
	"strings"
	"unicode"

	"github.com/leapstack-labs/leadsunifier/internal/recognize"
	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// Phone keeps the digits of v and accepts them when there are 8 to 15. A
// leading "+" on the raw value is preserved.
func Phone(v core.Value) core.Value {
	s, ok := v.Get()
	if !ok {
		return core.Absent
	}

	var b strings.Builder
	if strings.HasPrefix(s, "+") {
		b.WriteByte('+')
	}
	n := 0
	for _, c := range s {
		if unicode.IsDigit(c) {
			b.WriteRune(c)
			n++
		}
	}
	if !recognize.ValidPhoneDigits(n) {
		return core.Absent
	}
	return core.Some(b.String())
}

// Email lower-cases and trims v, and accepts the result when it contains "@".
func Email(v core.Value) core.Value {
	s, ok := v.Get()
	if !ok {
		return core.Absent
	}
	s = strings.TrimSpace(recognize.Lower(s))
	if !strings.Contains(s, "@") {
		return core.Absent
	}
	return core.Some(s)
}

// Name trims v; an empty result is absent.
func Name(v core.Value) core.Value {
	s, ok := v.Get()
	if !ok {
		return core.Absent
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Absent
	}
	return core.Some(s)
}
