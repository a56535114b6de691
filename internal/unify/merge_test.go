package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leadsunifier/internal/selector"
	"github.com/leapstack-labs/leadsunifier/internal/table"
	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

func TestMergePhones(t *testing.T) {
	candidates := []selector.Candidate{{Column: "mobile", Index: 1}, {Column: "phone", Index: 0}}

	tests := []struct {
		name string
		row  table.Row
		want core.Value
	}{
		{"first candidate wins", table.Row{core.Some("11111111"), core.Some("+55 22 2222-2222")}, core.Some("+552222222222")},
		{"falls through invalid", table.Row{core.Some("11111111"), core.Some("123")}, core.Some("11111111")},
		{"falls through absent", table.Row{core.Some("11111111"), core.Absent}, core.Some("11111111")},
		{"none valid", table.Row{core.Some("x"), core.Some("y")}, core.Absent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergePhones(tt.row, candidates))
		})
	}

	assert.Equal(t, core.Absent, MergePhones(table.Row{core.Some("11111111")}, nil))
}

func TestExtract(t *testing.T) {
	tbl := table.New("t.csv", []string{"Name", "Email", "Phone", "Notes"}, [][]string{
		{" Maria Silva ", "MARIA@Example.com", "(11) 91234-5678", "vip"},
		{"", "not an email", "123", "drop me"},
		{"", "", "+1 555 123 4567", ""},
	})
	sel := selector.Selection{
		Name:   &selector.Candidate{Column: "Name", Index: 0},
		Email:  &selector.Candidate{Column: "Email", Index: 1},
		Phones: []selector.Candidate{{Column: "Phone", Index: 2}},
	}

	contacts := Extract(tbl, sel)

	require.Len(t, contacts, 2)
	assert.Equal(t, contact("Maria Silva", "maria@example.com", "11912345678"), contacts[0])
	assert.Equal(t, contact("", "", "+15551234567"), contacts[1])
}

func TestExtract_NoColumnsSelected(t *testing.T) {
	tbl := table.New("t.csv", []string{"id"}, [][]string{{"1"}, {"2"}})
	assert.Empty(t, Extract(tbl, selector.Selection{}))
}
