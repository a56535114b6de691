package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leadsunifier/internal/cli/config"
	"github.com/leapstack-labs/leadsunifier/internal/cli/output"
	"github.com/leapstack-labs/leadsunifier/internal/sink"
	"github.com/leapstack-labs/leadsunifier/internal/unify"
	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	DryRun bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Unify the input CSV files into one contact list",
		Long: `Read every CSV file in the input directory, find the name, email and
phone columns of each file, normalize the values and write one
deduplicated contact list.

Contacts sharing an email are merged first, then contacts sharing a phone
number. The most complete record of each group is kept.`,
		Example: `  # Unify input/*.csv into output/combined_contacts.csv
  leadsunifier run

  # Read another directory and write JSON
  leadsunifier run --input-dir leads --output-file out/contacts.json

  # Append the run to a SQLite database
  leadsunifier run --output-file contacts.db

  # Preview the result without writing anything
  leadsunifier run --dry-run --preview-rows 10`,
		Aliases: []string{"unify"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Process the files without writing the output")
	cmd.Flags().Int("preview-rows", config.DefaultPreviewRows, "Number of contacts to preview after the run")

	return cmd
}

func runRun(cmd *cobra.Command, opts *RunOptions) error {
	cc := NewCommandContext(cmd)
	result, format, err := unifyOnce(cmd.Context(), cc, opts.DryRun)
	if err != nil {
		return err
	}

	switch cc.Renderer.EffectiveMode() {
	case output.ModeJSON:
		return cc.Renderer.JSON(buildRunOutput(cc, result, format, opts.DryRun))
	case output.ModeMarkdown:
		renderRunMarkdown(cc, result, opts.DryRun)
	default:
		renderRunText(cc, result, opts.DryRun)
	}
	return nil
}

// unifyOnce runs the engine over the input directory and, unless dryRun is
// set, writes the result to the configured sink.
func unifyOnce(ctx context.Context, cc *CommandContext, dryRun bool) (*unify.Result, sink.Format, error) {
	format, err := cc.Cfg.SinkFormat()
	if err != nil {
		return nil, "", err
	}

	files, err := cc.ResolveInputs()
	if err != nil {
		return nil, "", err
	}

	eng, err := cc.NewEngine(unify.MultiReporter{
		unify.NewLogReporter(cc.Logger),
		output.NewConsoleReporter(cc.Renderer),
	})
	if err != nil {
		return nil, "", err
	}

	result, err := eng.Run(ctx, files)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, "", fmt.Errorf("run interrupted: %w", err)
		}
		return nil, "", fmt.Errorf("run failed: %w", err)
	}

	if dryRun {
		cc.Logger.Info("dry run, output not written", "run_id", result.Summary.ID)
		return result, format, nil
	}

	s, err := sink.New(format, cc.Cfg.OutputFile)
	if err != nil {
		return nil, "", err
	}
	if sq, ok := s.(*sink.SQLSink); ok {
		sq.Logger = cc.Logger
	}
	if err := s.Write(ctx, result.Summary, result.Contacts); err != nil {
		return nil, "", fmt.Errorf("failed to write output: %w", err)
	}
	cc.Logger.Info("output saved",
		"run_id", result.Summary.ID, "format", format, "contacts", len(result.Contacts))

	return result, format, nil
}

func buildRunOutput(cc *CommandContext, result *unify.Result, format sink.Format, dryRun bool) output.RunOutput {
	out := output.RunOutput{
		Summary: result.Summary,
		Format:  string(format),
		DryRun:  dryRun,
		Files:   make([]output.FileOutput, 0, len(result.Files)),
		Preview: preview(result.Contacts, cc.Cfg.PreviewRows),
	}
	if !dryRun {
		out.Output = cc.Cfg.OutputFile
	}
	for _, f := range result.Files {
		fo := output.FileOutput{Path: f.Path, Rows: f.Rows, Contacts: f.Contacts}
		if f.Err != nil {
			fo.Error = f.Err.Error()
		}
		if f.Selection.Name != nil {
			fo.Name = f.Selection.Name.Column
		}
		if f.Selection.Email != nil {
			fo.Email = f.Selection.Email.Column
		}
		for _, p := range f.Selection.Phones {
			fo.Phones = append(fo.Phones, p.Column)
		}
		out.Files = append(out.Files, fo)
	}
	return out
}

func preview(contacts []core.Contact, n int) []core.Contact {
	if n > len(contacts) {
		n = len(contacts)
	}
	if n <= 0 {
		return []core.Contact{}
	}
	return contacts[:n]
}

func summaryPairs(cc *CommandContext, s core.RunSummary, dryRun bool) [][2]string {
	saved := cc.Cfg.OutputFile
	if dryRun {
		saved = "(dry run, nothing written)"
	}
	return [][2]string{
		{"Total files processed", strconv.Itoa(s.FilesProcessed)},
		{"Files failed", strconv.Itoa(s.FilesFailed)},
		{"Total contacts found", strconv.Itoa(s.TotalContacts)},
		{"Duplicates removed", strconv.Itoa(s.DuplicatesRemoved)},
		{"Final unique contacts", strconv.Itoa(s.UniqueContacts)},
		{"Output saved to", saved},
	}
}

func contactRows(contacts []core.Contact) [][]string {
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{c.Name.String(), c.Email.String(), c.Phone.String()})
	}
	return rows
}

func fieldRows(stats []core.FieldStats) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, f := range stats {
		rows = append(rows, []string{f.Field.String(), strconv.Itoa(f.Filled), output.FormatPercent(f.Percent)})
	}
	return rows
}

func fieldHeaders() []string {
	headers := make([]string, len(core.FieldTypes))
	for i, f := range core.FieldTypes {
		headers[i] = f.String()
	}
	return headers
}

func renderRunText(cc *CommandContext, result *unify.Result, dryRun bool) {
	r := cc.Renderer
	s := result.Summary
	styles := r.Styles()

	r.Println()
	r.Header(1, "Processing Complete!")
	for _, kv := range summaryPairs(cc, s, dryRun) {
		r.Printf("%s %s\n", styles.Muted.Render(kv[0]+":"), styles.Value.Render(kv[1]))
	}

	if len(result.Contacts) == 0 {
		r.Warning("No contacts found")
		return
	}

	if sample := preview(result.Contacts, cc.Cfg.PreviewRows); len(sample) > 0 {
		r.Println()
		r.Header(2, "Sample of processed data:")
		output.Table(r.Writer(), fieldHeaders(), contactRows(sample), false)
	}

	r.Println()
	r.Header(2, "Field statistics:")
	output.Table(r.Writer(), []string{"Field", "Filled", "Percent"}, fieldRows(s.Fields), false)
}

func renderRunMarkdown(cc *CommandContext, result *unify.Result, dryRun bool) {
	r := cc.Renderer
	s := result.Summary

	r.Println()
	r.Println(output.FormatHeader(1, "Processing Complete"))
	r.Println()
	for _, kv := range summaryPairs(cc, s, dryRun) {
		r.Println(output.FormatKeyValue(kv[0], kv[1]))
	}

	if len(result.Contacts) == 0 {
		r.Println()
		r.Println("No contacts found.")
		return
	}

	if sample := preview(result.Contacts, cc.Cfg.PreviewRows); len(sample) > 0 {
		r.Println()
		r.Println(output.FormatHeader(2, "Sample"))
		r.Println()
		output.Table(r.Writer(), fieldHeaders(), contactRows(sample), true)
	}

	r.Println()
	r.Println(output.FormatHeader(2, "Field Statistics"))
	r.Println()
	output.Table(r.Writer(), []string{"Field", "Filled", "Percent"}, fieldRows(s.Fields), true)
}
