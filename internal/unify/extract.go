package unify

import (
	"github.com/leapstack-labs/leadsunifier/internal/normalize"
	"github.com/leapstack-labs/leadsunifier/internal/selector"
	"github.com/leapstack-labs/leadsunifier/internal/table"
	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// Extract builds one contact per row of t from the selected columns and
// drops rows where every field is absent.
func Extract(t *table.Table, sel selector.Selection) []core.Contact {
	contacts := make([]core.Contact, 0, t.NumRows())
	for i := range t.NumRows() {
		row := t.Row(i)
		c := core.Contact{
			Name:  normalize.Name(column(row, sel.Name)),
			Email: normalize.Email(column(row, sel.Email)),
			Phone: MergePhones(row, sel.Phones),
		}
		if c.Valid() {
			contacts = append(contacts, c)
		}
	}
	return contacts
}

func column(row table.Row, c *selector.Candidate) core.Value {
	if c == nil {
		return core.Absent
	}
	return row.Get(c.Index)
}
