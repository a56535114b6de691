package recognize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

func TestScoreColumnName(t *testing.T) {
	r := New(Options{})

	tests := []struct {
		column string
		field  core.FieldType
		want   float64
	}{
		{"Nome", core.FieldName, 5},
		{"full name", core.FieldName, 5},
		{"  NAME ", core.FieldName, 5},
		{"Customer Name", core.FieldName, 4},
		{"Company Name", core.FieldName, 4},
		{"Prénom", core.FieldName, 4},
		{"Email", core.FieldName, 0},
		{"Age", core.FieldName, 0},
		{"E-mail", core.FieldEmail, 5},
		{"Email Address", core.FieldEmail, 5},
		{"Contact Mail", core.FieldEmail, 3},
		{"Telefone", core.FieldPhone, 16},
		{"mobile", core.FieldPhone, 5},
		{"Age", core.FieldPhone, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"/"+tt.column, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ScoreColumnName(tt.column, tt.field))
		})
	}
}

func TestScoreColumnContent(t *testing.T) {
	r := New(Options{})

	tests := []struct {
		name    string
		samples []string
		field   core.FieldType
		want    float64
	}{
		{"phones", []string{"911234567", "912345678", "913456789"}, core.FieldPhone, 5},
		{"ages", []string{"23", "45", "31"}, core.FieldPhone, 0},
		{"names", []string{"Maria Silva", "João Souza", "Ana"}, core.FieldName, 3},
		{"mostly names", []string{"x1", "Ana", "Bob", "Carl"}, core.FieldName, 2.25},
		{"half names", []string{"Ana", "x1"}, core.FieldName, 0},
		{"emails", []string{"a@b.com", "c@d.com"}, core.FieldEmail, 3},
		{"some emails", []string{"a@b.com", "c@d.com", "nope"}, core.FieldEmail, 0},
		{"empty sample", nil, core.FieldPhone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, r.ScoreColumnContent(tt.samples, tt.field), 1e-9)
		})
	}
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 0.5, Ratio([]string{"a@b", "c"}, HasAt), 1e-9)
	assert.Zero(t, Ratio(nil, HasAt))
	assert.InDelta(t, 1.0, Ratio([]string{"a1", "2"}, HasDigit), 1e-9)
}

func TestLower(t *testing.T) {
	assert.Equal(t, "émail", Lower("ÉMAIL"))
	assert.Equal(t, "i̇", Lower("İ"))
}

func TestFoldASCII(t *testing.T) {
	assert.Equal(t, "Jose Muller", FoldASCII("José Müller"))
	assert.Equal(t, "fi", FoldASCII("ﬁ"))
}

func TestIsExactLabel(t *testing.T) {
	r := New(Options{})

	assert.True(t, r.IsExactLabel(" Nome ", core.FieldName))
	assert.False(t, r.IsExactLabel("Customer Full Name", core.FieldName))
	assert.True(t, r.IsExactLabel("Telefone", core.FieldPhone))
	assert.False(t, r.IsExactLabel(" Telefone", core.FieldPhone))
	assert.False(t, r.IsExactLabel("x", core.FieldType("age")))
}
