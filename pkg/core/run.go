package core

import "time"

// RunSummary describes one unification run.
type RunSummary struct {
	ID                string       `json:"id"`
	StartedAt         time.Time    `json:"started_at"`
	CompletedAt       time.Time    `json:"completed_at"`
	FilesProcessed    int          `json:"files_processed"`
	FilesFailed       int          `json:"files_failed"`
	TotalContacts     int          `json:"total_contacts"`
	DuplicatesRemoved int          `json:"duplicates_removed"`
	UniqueContacts    int          `json:"unique_contacts"`
	Fields            []FieldStats `json:"fields"`
}

// FieldStats counts how many final contacts carry a field.
type FieldStats struct {
	Field   FieldType `json:"field"`
	Filled  int       `json:"filled"`
	Percent float64   `json:"percent"`
}

// ComputeFieldStats returns fill counts for every field type.
func ComputeFieldStats(contacts []Contact) []FieldStats {
	stats := make([]FieldStats, 0, len(FieldTypes))
	for _, f := range FieldTypes {
		s := FieldStats{Field: f}
		for _, c := range contacts {
			if c.Field(f).IsPresent() {
				s.Filled++
			}
		}
		if len(contacts) > 0 {
			s.Percent = float64(s.Filled) / float64(len(contacts)) * 100
		}
		stats = append(stats, s)
	}
	return stats
}
