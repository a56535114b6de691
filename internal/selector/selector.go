// Package selector picks, per table, the source columns for each contact
// field from recognizer scores.
package selector

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/leapstack-labs/leadsunifier/internal/recognize"
	"github.com/leapstack-labs/leadsunifier/internal/table"
	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// DefaultSampleSize is the number of present values sampled per column.
const DefaultSampleSize = 100

// Content fallbacks of the label selector.
const (
	emailFallbackRatio = 0.5
	phoneFallbackRatio = 0.7
)

// Source records which evidence produced a candidate's score.
type Source string

// Evidence kinds.
const (
	SourceLabelExact   Source = "label"
	SourceLabelPartial Source = "label-partial"
	SourceContent      Source = "content"
	SourceCombined     Source = "label+content"
)

// Candidate is a scored source column for one field.
type Candidate struct {
	Column string
	Index  int
	Score  float64
	Source Source
}

// Selection is the set of source columns chosen for one table.
type Selection struct {
	Name   *Candidate
	Email  *Candidate
	Phones []Candidate
}

// Missing returns the fields no column was found for.
func (s Selection) Missing() []core.FieldType {
	var missing []core.FieldType
	if s.Name == nil {
		missing = append(missing, core.FieldName)
	}
	if s.Email == nil {
		missing = append(missing, core.FieldEmail)
	}
	if len(s.Phones) == 0 {
		missing = append(missing, core.FieldPhone)
	}
	return missing
}

// Options configures a Selector.
type Options struct {
	// SampleSize caps the values sampled per column (default 100).
	SampleSize int
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Selector chooses source columns using a Recognizer.
type Selector struct {
	rec        *recognize.Recognizer
	sampleSize int
	logger     *slog.Logger
}

// New creates a Selector.
func New(rec *recognize.Recognizer, opts Options) *Selector {
	if rec == nil {
		rec = recognize.New(recognize.Options{})
	}
	sampleSize := opts.SampleSize
	if sampleSize < 1 {
		sampleSize = DefaultSampleSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Selector{rec: rec, sampleSize: sampleSize, logger: logger}
}

// Select makes the per-table selection used by the unification pipeline:
// the name column by score, the email column by label and every phone
// candidate by descending score.
func (s *Selector) Select(t *table.Table) Selection {
	return Selection{
		Name:   s.Best(t, core.FieldName),
		Email:  s.ByLabel(t, core.FieldEmail),
		Phones: s.Phones(t),
	}
}

// Score scores column col of t for ft.
//
// Name and email columns are scored by label, falling back to content when
// the label scores nothing. Phone columns add both.
func (s *Selector) Score(t *table.Table, col int, ft core.FieldType) Candidate {
	name := t.Column(col)
	c := Candidate{Column: name, Index: col}

	label := s.rec.ScoreColumnName(name, ft)
	if ft == core.FieldPhone {
		content := s.rec.ScoreColumnContent(t.Sample(col, s.sampleSize), ft)
		c.Score = label + content
		switch {
		case label > 0 && content > 0:
			c.Source = SourceCombined
		case label > 0:
			c.Source = s.labelSource(name, ft)
		case content > 0:
			c.Source = SourceContent
		}
		return c
	}

	if label > 0 {
		c.Score = label
		c.Source = s.labelSource(name, ft)
		return c
	}
	if content := s.rec.ScoreColumnContent(t.Sample(col, s.sampleSize), ft); content > 0 {
		c.Score = content
		c.Source = SourceContent
	}
	return c
}

func (s *Selector) labelSource(column string, ft core.FieldType) Source {
	if s.rec.IsExactLabel(column, ft) {
		return SourceLabelExact
	}
	return SourceLabelPartial
}

// Best returns the highest scoring column for ft, or nil when no column
// scores above zero. Ties go to the earliest column.
func (s *Selector) Best(t *table.Table, ft core.FieldType) *Candidate {
	var best *Candidate
	for i := range t.NumColumns() {
		c := s.Score(t, i, ft)
		if c.Score <= 0 {
			continue
		}
		if best == nil || c.Score > best.Score {
			best = &c
		}
	}
	if best == nil {
		s.logger.Warn("column not found", "file", t.Name, "field", ft)
		return nil
	}
	s.logger.Debug("column selected",
		"file", t.Name, "field", ft, "column", best.Column,
		"score", best.Score, "source", best.Source)
	return best
}

// Phones returns every column with a positive phone score, best first.
// Equal scores keep column order.
func (s *Selector) Phones(t *table.Table) []Candidate {
	var candidates []Candidate
	for i := range t.NumColumns() {
		if c := s.Score(t, i, core.FieldPhone); c.Score > 0 {
			candidates = append(candidates, c)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) == 0 {
		s.logger.Warn("column not found", "file", t.Name, "field", core.FieldPhone)
	}
	for _, c := range candidates {
		s.logger.Debug("phone candidate",
			"file", t.Name, "column", c.Column, "score", c.Score, "source", c.Source)
	}
	return candidates
}

// ByLabel picks a column for ft from the dictionary patterns alone: an exact
// (case-insensitive) header match in pattern order, then the first header
// containing a pattern, then a content fallback for email (more than half of
// the sample contains "@") and phone (more than 70% contains a digit).
func (s *Selector) ByLabel(t *table.Table, ft core.FieldType) *Candidate {
	c := s.byLabel(t, ft)
	if c == nil {
		s.logger.Warn("column not found", "file", t.Name, "field", ft)
		return nil
	}
	s.logger.Debug("column selected",
		"file", t.Name, "field", ft, "column", c.Column, "source", c.Source)
	return c
}

func (s *Selector) byLabel(t *table.Table, ft core.FieldType) *Candidate {
	columns := t.Columns()
	var patterns []string
	if fd := s.rec.Dictionary().Field(ft); fd != nil {
		patterns = fd.Patterns
	}

	lowered := make([]string, len(columns))
	byLower := make(map[string]int, len(columns))
	for i, col := range columns {
		lowered[i] = recognize.Lower(col)
		byLower[lowered[i]] = i
	}

	for _, p := range patterns {
		if i, ok := byLower[p]; ok {
			return s.labelCandidate(columns[i], i, ft, SourceLabelExact)
		}
	}
	for i, col := range lowered {
		for _, p := range patterns {
			if strings.Contains(col, p) {
				return s.labelCandidate(columns[i], i, ft, SourceLabelPartial)
			}
		}
	}

	var pass func(string) bool
	var threshold float64
	switch ft {
	case core.FieldEmail:
		pass, threshold = recognize.HasAt, emailFallbackRatio
	case core.FieldPhone:
		pass, threshold = recognize.HasDigit, phoneFallbackRatio
	default:
		return nil
	}
	for i, col := range columns {
		samples := t.Sample(i, s.sampleSize)
		if len(samples) == 0 {
			continue
		}
		if ratio := recognize.Ratio(samples, pass); ratio > threshold {
			return &Candidate{Column: col, Index: i, Score: ratio, Source: SourceContent}
		}
	}
	return nil
}

func (s *Selector) labelCandidate(column string, index int, ft core.FieldType, src Source) *Candidate {
	return &Candidate{
		Column: column,
		Index:  index,
		Score:  s.rec.ScoreColumnName(column, ft),
		Source: src,
	}
}

// ColumnReport holds every field score of one column.
type ColumnReport struct {
	Column string
	Index  int
	Scores map[core.FieldType]Candidate
}

// Explain scores every column of t for every field, in column order.
func (s *Selector) Explain(t *table.Table) []ColumnReport {
	reports := make([]ColumnReport, 0, t.NumColumns())
	for i := range t.NumColumns() {
		r := ColumnReport{
			Column: t.Column(i),
			Index:  i,
			Scores: make(map[core.FieldType]Candidate, len(core.FieldTypes)),
		}
		for _, ft := range core.FieldTypes {
			r.Scores[ft] = s.Score(t, i, ft)
		}
		reports = append(reports, r)
	}
	return reports
}
