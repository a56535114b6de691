// Package recognize scores how likely a column holds a name, an email
// address or a phone number, from its label and from sampled values.
//
// A Recognizer is stateless after construction and safe for concurrent use.
package recognize

import (
	"strings"
	"unicode"

	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// ContentThreshold is the share of sampled values that must pass a content
// heuristic before a name or email column is scored by content.
const ContentThreshold = 0.7

// contentWeight scales the content ratio into a name/email column score.
const contentWeight = 3.0

// phoneContentWeight scales the phone-like ratio into a phone column score.
const phoneContentWeight = 4.0

// Options configures a Recognizer.
type Options struct {
	// Dictionary holds the label tables. Nil uses DefaultDictionary().
	Dictionary *Dictionary
	// FoldDiacritics measures names on their ASCII-folded form.
	FoldDiacritics bool
}

// Recognizer scores columns for each field type.
type Recognizer struct {
	dict           *Dictionary
	foldDiacritics bool
}

// New creates a Recognizer.
func New(opts Options) *Recognizer {
	dict := opts.Dictionary
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &Recognizer{dict: dict, foldDiacritics: opts.FoldDiacritics}
}

// Dictionary returns the label tables in use.
func (r *Recognizer) Dictionary() *Dictionary {
	return r.dict
}

// ScoreColumnName scores a column by its label.
//
// Name and email take the best dictionary hit: an exact match scores the
// label's weight, a substring match one less. Phone adds up every hit, so
// "mobile phone" outranks "phone".
func (r *Recognizer) ScoreColumnName(column string, ft core.FieldType) float64 {
	fd := r.dict.Field(ft)
	if fd == nil {
		return 0
	}
	if ft == core.FieldPhone {
		return float64(sumLabelScore(Lower(column), fd.Labels))
	}
	return float64(bestLabelScore(strings.TrimSpace(Lower(column)), fd.Labels))
}

func bestLabelScore(col string, labels map[string]int) int {
	if w, ok := labels[col]; ok {
		return w
	}
	best := 0
	for label, w := range labels {
		if strings.Contains(col, label) && w-1 > best {
			best = w - 1
		}
	}
	return best
}

func sumLabelScore(col string, labels map[string]int) int {
	score := 0
	for label, w := range labels {
		switch {
		case label == col:
			score += w
		case strings.Contains(col, label):
			score += w - 1
		}
	}
	return score
}

// ScoreColumnContent scores a column by a sample of its present values.
//
// Name and email score 3 × ratio when more than ContentThreshold of the
// sample passes; phone scores 4 × ratio plus one when the value lengths are
// uniform and phone-sized.
func (r *Recognizer) ScoreColumnContent(samples []string, ft core.FieldType) float64 {
	if len(samples) == 0 {
		return 0
	}
	ratio := r.ContentRatio(samples, ft)
	if ft == core.FieldPhone {
		score := ratio * phoneContentWeight
		if uniformLength(samples) {
			score++
		}
		return score
	}
	if ratio > ContentThreshold {
		return ratio * contentWeight
	}
	return 0
}

// ContentRatio returns the share of samples that pass the content heuristic
// for ft.
func (r *Recognizer) ContentRatio(samples []string, ft core.FieldType) float64 {
	var pass func(string) bool
	switch ft {
	case core.FieldName:
		pass = r.IsLikelyName
	case core.FieldEmail:
		pass = HasAt
	case core.FieldPhone:
		pass = IsLikelyPhone
	default:
		return 0
	}
	return Ratio(samples, pass)
}

// IsLikelyName applies the name heuristic, folding diacritics first when the
// Recognizer is configured to.
func (r *Recognizer) IsLikelyName(value string) bool {
	if r.foldDiacritics {
		value = FoldASCII(value)
	}
	return IsLikelyName(value)
}

// HasAt reports whether value contains "@".
func HasAt(value string) bool {
	return strings.Contains(value, "@")
}

// HasDigit reports whether value contains a decimal digit.
func HasDigit(value string) bool {
	return strings.IndexFunc(value, unicode.IsDigit) >= 0
}

// Ratio returns the share of samples for which pass is true.
func Ratio(samples []string, pass func(string) bool) float64 {
	if len(samples) == 0 {
		return 0
	}
	n := 0
	for _, s := range samples {
		if pass(s) {
			n++
		}
	}
	return float64(n) / float64(len(samples))
}

// IsExactLabel reports whether column is itself a dictionary label for ft.
func (r *Recognizer) IsExactLabel(column string, ft core.FieldType) bool {
	fd := r.dict.Field(ft)
	if fd == nil {
		return false
	}
	col := Lower(column)
	if ft != core.FieldPhone {
		col = strings.TrimSpace(col)
	}
	_, ok := fd.Labels[col]
	return ok
}
