package commands

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leadsunifier/internal/cli/output"
	"github.com/leapstack-labs/leadsunifier/internal/selector"
	"github.com/leapstack-labs/leadsunifier/internal/table"
	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [files...]",
		Short: "Show how each column of the input files is recognized",
		Long: `Score every column of each file as a name, email and phone column and
show the columns a run would select. Without arguments the files of the
input directory are inspected.`,
		Example: `  # Inspect every file of the input directory
  leadsunifier inspect

  # Inspect one file as JSON
  leadsunifier inspect leads.csv -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args)
		},
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)

	files := args
	if len(files) == 0 {
		var err error
		if files, err = cc.ResolveInputs(); err != nil {
			return err
		}
	}

	eng, err := cc.NewEngine(nil)
	if err != nil {
		return err
	}
	sel := eng.Selector()

	result := output.InspectOutput{Files: make([]output.InspectFile, 0, len(files))}
	for _, path := range files {
		result.Files = append(result.Files, inspectFile(cc, sel, path))
	}

	switch cc.Renderer.EffectiveMode() {
	case output.ModeJSON:
		return cc.Renderer.JSON(result)
	case output.ModeMarkdown:
		renderInspect(cc, result, true)
	default:
		renderInspect(cc, result, false)
	}
	return nil
}

func inspectFile(cc *CommandContext, sel *selector.Selector, path string) output.InspectFile {
	f := output.InspectFile{Path: path, Columns: []output.InspectColumn{}}

	t, err := table.ReadFile(path, cc.Logger)
	if err != nil {
		cc.Logger.Error("failed to read file", "file", path, "error", err)
		f.Error = err.Error()
		return f
	}
	f.Rows = t.NumRows()

	for _, report := range sel.Explain(t) {
		f.Columns = append(f.Columns, output.InspectColumn{
			Column: report.Column,
			Name:   report.Scores[core.FieldName].Score,
			Email:  report.Scores[core.FieldEmail].Score,
			Phone:  report.Scores[core.FieldPhone].Score,
		})
	}

	s := sel.Select(t)
	if s.Name != nil {
		f.Name = s.Name.Column
	}
	if s.Email != nil {
		f.Email = s.Email.Column
	}
	for _, p := range s.Phones {
		f.Phones = append(f.Phones, p.Column)
	}
	return f
}

// selectedFields lists the fields column was selected for.
func selectedFields(f output.InspectFile, column string) string {
	var fields []string
	if f.Name == column {
		fields = append(fields, core.FieldName.String())
	}
	if f.Email == column {
		fields = append(fields, core.FieldEmail.String())
	}
	for i, p := range f.Phones {
		if p == column {
			fields = append(fields, fmt.Sprintf("%s #%d", core.FieldPhone, i+1))
		}
	}
	return strings.Join(fields, ", ")
}

func formatScore(v float64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func renderInspect(cc *CommandContext, result output.InspectOutput, markdown bool) {
	r := cc.Renderer

	for i, f := range result.Files {
		if i > 0 {
			r.Println()
		}
		title := fmt.Sprintf("%s (%d rows)", filepath.Base(f.Path), f.Rows)
		if markdown {
			r.Println(output.FormatHeader(2, title))
			r.Println()
		} else {
			r.Header(2, title)
		}

		if f.Error != "" {
			r.Error(fmt.Sprintf("%s: %s", filepath.Base(f.Path), f.Error))
			continue
		}

		rows := make([][]string, 0, len(f.Columns))
		for _, c := range f.Columns {
			rows = append(rows, []string{
				c.Column,
				formatScore(c.Name),
				formatScore(c.Email),
				formatScore(c.Phone),
				selectedFields(f, c.Column),
			})
		}
		output.Table(r.Writer(), []string{"Column", "Name", "Email", "Phone", "Selected"}, rows, markdown)

		for _, ft := range missingFields(f) {
			if markdown {
				r.Printf("\n> no %s column found\n", ft)
			} else {
				r.Warning(fmt.Sprintf("no %s column found", ft))
			}
		}
	}
}

func missingFields(f output.InspectFile) []core.FieldType {
	var missing []core.FieldType
	if f.Name == "" {
		missing = append(missing, core.FieldName)
	}
	if f.Email == "" {
		missing = append(missing, core.FieldEmail)
	}
	if len(f.Phones) == 0 {
		missing = append(missing, core.FieldPhone)
	}
	return missing
}
