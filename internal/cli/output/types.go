package output

import "github.com/leapstack-labs/leadsunifier/pkg/core"

// RunOutput is the JSON result of the run command.
type RunOutput struct {
	Summary core.RunSummary `json:"summary"`
	Output  string          `json:"output,omitempty"`
	Format  string          `json:"format,omitempty"`
	DryRun  bool            `json:"dry_run,omitempty"`
	Files   []FileOutput    `json:"files"`
	Preview []core.Contact  `json:"preview"`
}

// FileOutput describes one processed file.
type FileOutput struct {
	Path     string   `json:"path"`
	Rows     int      `json:"rows"`
	Contacts int      `json:"contacts"`
	Name     string   `json:"name_column,omitempty"`
	Email    string   `json:"email_column,omitempty"`
	Phones   []string `json:"phone_columns,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// InspectOutput is the JSON result of the inspect command.
type InspectOutput struct {
	Files []InspectFile `json:"files"`
}

// InspectFile holds the column scores of one file.
type InspectFile struct {
	Path    string          `json:"path"`
	Rows    int             `json:"rows"`
	Columns []InspectColumn `json:"columns"`
	Name    string          `json:"name_column,omitempty"`
	Email   string          `json:"email_column,omitempty"`
	Phones  []string        `json:"phone_columns,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// InspectColumn holds the field scores of one column.
type InspectColumn struct {
	Column string  `json:"column"`
	Name   float64 `json:"name"`
	Email  float64 `json:"email"`
	Phone  float64 `json:"phone"`
}
