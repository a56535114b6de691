package recognize

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

//go:embed dictionaries.yaml
var defaultDictionaries []byte

// FieldDictionary holds the column labels known for one field type.
type FieldDictionary struct {
	// Labels maps a lower-case label to its weight.
	Labels map[string]int `yaml:"labels"`
	// Patterns is the ordered label list used by label-only selection.
	Patterns []string `yaml:"patterns"`
}

// Dictionary holds label tables for every field type.
type Dictionary struct {
	Name  *FieldDictionary `yaml:"name"`
	Email *FieldDictionary `yaml:"email"`
	Phone *FieldDictionary `yaml:"phone"`
}

// DefaultDictionary returns the embedded dictionaries.
func DefaultDictionary() *Dictionary {
	d, err := ParseDictionary(defaultDictionaries)
	if err != nil {
		panic(fmt.Sprintf("embedded dictionaries.yaml is invalid: %v", err))
	}
	return d
}

// ParseDictionary parses a YAML dictionary document.
func ParseDictionary(data []byte) (*Dictionary, error) {
	var fields map[string]*FieldDictionary
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse dictionaries: %w", err)
	}

	var d Dictionary
	for key, fd := range fields {
		f, err := core.ParseFieldType(key)
		if err != nil {
			return nil, fmt.Errorf("dictionaries: %w", err)
		}
		if fd == nil {
			continue
		}
		for label, weight := range fd.Labels {
			if weight <= 0 {
				return nil, fmt.Errorf("dictionary %s: label %q must have a positive weight, got %d", f, label, weight)
			}
		}
		switch f {
		case core.FieldName:
			d.Name = fd
		case core.FieldEmail:
			d.Email = fd
		case core.FieldPhone:
			d.Phone = fd
		}
	}
	if d.Name != nil {
		d.Name = d.Name.lowered()
	}
	if d.Email != nil {
		d.Email = d.Email.lowered()
	}
	if d.Phone != nil {
		d.Phone = d.Phone.lowered()
	}
	return &d, nil
}

// LoadDictionary reads a YAML dictionary file and lays it over the embedded
// defaults: every field present in the file replaces the default table for
// that field.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionaries %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionaries %s: %w", path, err)
	}

	override, err := ParseDictionary(data)
	if err != nil {
		return nil, err
	}
	return DefaultDictionary().Merge(override), nil
}

// Merge returns a copy of d with the fields defined in override replaced.
func (d *Dictionary) Merge(override *Dictionary) *Dictionary {
	merged := *d
	if override == nil {
		return &merged
	}
	if override.Name != nil {
		merged.Name = override.Name
	}
	if override.Email != nil {
		merged.Email = override.Email
	}
	if override.Phone != nil {
		merged.Phone = override.Phone
	}
	return &merged
}

// Field returns the table for f, or nil.
func (d *Dictionary) Field(f core.FieldType) *FieldDictionary {
	switch f {
	case core.FieldName:
		return d.Name
	case core.FieldEmail:
		return d.Email
	case core.FieldPhone:
		return d.Phone
	default:
		return nil
	}
}

// lowered returns a copy with every label and pattern lower-cased.
func (fd *FieldDictionary) lowered() *FieldDictionary {
	out := &FieldDictionary{
		Labels:   make(map[string]int, len(fd.Labels)),
		Patterns: make([]string, 0, len(fd.Patterns)),
	}
	for label, weight := range fd.Labels {
		out.Labels[Lower(label)] = weight
	}
	for _, p := range fd.Patterns {
		out.Patterns = append(out.Patterns, Lower(p))
	}
	return out
}
