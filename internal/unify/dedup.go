package unify

import (
	"sort"

	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// DedupStats counts the records dropped by each pass.
type DedupStats struct {
	ByEmail int
	ByPhone int
}

// Removed returns the total number of records dropped.
func (s DedupStats) Removed() int {
	return s.ByEmail + s.ByPhone
}

// Deduplicate orders contacts by completeness (most complete first, stable)
// and then drops repeats: first by email, then, on what remains, by phone.
// The first record per key survives. Absent values never match.
//
// The input slice is not modified.
func Deduplicate(contacts []core.Contact) ([]core.Contact, DedupStats) {
	sorted := make([]core.Contact, len(contacts))
	copy(sorted, contacts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Completeness() > sorted[j].Completeness()
	})

	var stats DedupStats
	byEmail := dedupBy(sorted, core.FieldEmail)
	stats.ByEmail = len(sorted) - len(byEmail)

	byPhone := dedupBy(byEmail, core.FieldPhone)
	stats.ByPhone = len(byEmail) - len(byPhone)

	return byPhone, stats
}

func dedupBy(contacts []core.Contact, f core.FieldType) []core.Contact {
	seen := make(map[string]struct{}, len(contacts))
	out := make([]core.Contact, 0, len(contacts))
	for _, c := range contacts {
		key, ok := c.Field(f).Get()
		if !ok {
			out = append(out, c)
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
