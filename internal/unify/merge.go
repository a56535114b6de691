package unify

import (
	"github.com/leapstack-labs/leadsunifier/internal/normalize"
	"github.com/leapstack-labs/leadsunifier/internal/selector"
	"github.com/leapstack-labs/leadsunifier/internal/table"
	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// MergePhones returns the first candidate value in row that normalizes to a
// phone number. Candidates are tried in selector order; later columns are
// not consulted once one succeeds.
func MergePhones(row table.Row, candidates []selector.Candidate) core.Value {
	for _, c := range candidates {
		if v := normalize.Phone(row.Get(c.Index)); v.IsPresent() {
			return v
		}
	}
	return core.Absent
}
