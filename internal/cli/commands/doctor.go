package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leadsunifier/internal/cli/output"
	"github.com/leapstack-labs/leadsunifier/internal/discover"
	"github.com/leapstack-labs/leadsunifier/internal/recognize"
	"github.com/leapstack-labs/leadsunifier/internal/sink"
	"github.com/leapstack-labs/leadsunifier/internal/table"
)

// Check statuses.
const (
	statusPass  = "pass"
	statusWarn  = "warn"
	statusError = "error"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the workspace before a run",
		Long: `Check the configuration, the input files and the output target.

The doctor command reports:
- Configuration: config file and column dictionaries
- Input: input directory, matching files, readable files, detected columns
- Output: output format and target
- Health score (0-100)

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  leadsunifier doctor

  # Output as JSON
  leadsunifier doctor -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	HealthChecks []HealthCheck `json:"health_checks"`
	Files        int           `json:"files"`
	Score        int           `json:"score"`
	IssueCount   int           `json:"issue_count"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func (h *HealthCheck) issue(status, detail string) {
	if h.Status != statusError {
		h.Status = status
	}
	h.IssueCount++
	h.Details = append(h.Details, detail)
}

func runDoctor(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	out := buildDoctorOutput(cc)

	switch cc.Renderer.EffectiveMode() {
	case output.ModeJSON:
		return cc.Renderer.JSON(out)
	case output.ModeMarkdown:
		renderDoctorMarkdown(cc.Renderer, out)
	default:
		renderDoctorText(cc.Renderer, out)
	}
	return nil
}

func buildDoctorOutput(cc *CommandContext) *DoctorOutput {
	checks := []HealthCheck{
		checkConfigFile(cc),
		checkDictionaries(cc),
	}

	inputDir := checkInputDir(cc)
	checks = append(checks, inputDir)

	var files []string
	if inputDir.Status != statusError {
		var filesCheck HealthCheck
		files, filesCheck = checkInputFiles(cc)
		checks = append(checks, filesCheck)
	}
	if len(files) > 0 {
		checks = append(checks, checkFileColumns(cc, files)...)
	}
	checks = append(checks, checkOutput(cc))

	out := &DoctorOutput{HealthChecks: checks, Files: len(files)}
	for _, c := range checks {
		out.IssueCount += c.IssueCount
	}
	out.Score = calculateHealthScore(checks, len(files))
	return out
}

func checkConfigFile(cc *CommandContext) HealthCheck {
	h := HealthCheck{RuleID: "CF01", Name: "Config file", Group: "configuration", Status: statusPass}
	if cc.Cfg.ConfigFile == "" {
		h.Details = []string{"no leadsunifier.yaml found, using defaults"}
		return h
	}
	h.Details = []string{cc.Cfg.ConfigFile}
	return h
}

func checkDictionaries(cc *CommandContext) HealthCheck {
	h := HealthCheck{RuleID: "CF02", Name: "Column dictionaries", Group: "configuration", Status: statusPass}
	if cc.Cfg.Dictionaries == "" {
		h.Details = []string{"built-in dictionaries"}
		return h
	}
	if _, err := recognize.LoadDictionary(cc.Cfg.Dictionaries); err != nil {
		h.issue(statusError, err.Error())
		return h
	}
	h.Details = []string{cc.Cfg.Dictionaries}
	return h
}

func checkInputDir(cc *CommandContext) HealthCheck {
	h := HealthCheck{RuleID: "IN01", Name: "Input directory", Group: "input", Status: statusPass}
	info, err := os.Stat(cc.Cfg.InputDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		h.issue(statusError, fmt.Sprintf("%s does not exist; 'leadsunifier run' creates it", cc.Cfg.InputDir))
	case err != nil:
		h.issue(statusError, err.Error())
	case !info.IsDir():
		h.issue(statusError, fmt.Sprintf("%s is not a directory", cc.Cfg.InputDir))
	}
	return h
}

func checkInputFiles(cc *CommandContext) ([]string, HealthCheck) {
	h := HealthCheck{RuleID: "IN02", Name: "Input files", Group: "input", Status: statusPass}
	files, err := discover.Files(cc.Cfg.InputDir, cc.Cfg.Pattern)
	if err != nil {
		h.issue(statusError, err.Error())
		return nil, h
	}
	files = excludeFiles(files, cc.Cfg.Exclude)
	if len(files) == 0 {
		h.issue(statusWarn, fmt.Sprintf("no files match %s", filepath.Join(cc.Cfg.InputDir, cc.Cfg.Pattern)))
		return nil, h
	}
	h.Details = []string{fmt.Sprintf("%d files match %s", len(files), cc.Cfg.Pattern)}
	return files, h
}

func checkFileColumns(cc *CommandContext, files []string) []HealthCheck {
	readable := HealthCheck{RuleID: "IN03", Name: "Readable files", Group: "input", Status: statusPass}
	columns := HealthCheck{RuleID: "IN04", Name: "Detected columns", Group: "input", Status: statusPass}

	eng, err := cc.NewEngine(nil)
	if err != nil {
		readable.issue(statusError, err.Error())
		return []HealthCheck{readable}
	}
	sel := eng.Selector()

	for _, path := range files {
		name := filepath.Base(path)
		t, err := table.ReadFile(path, cc.Logger)
		if err != nil {
			readable.issue(statusError, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		for _, ft := range sel.Select(t).Missing() {
			columns.issue(statusWarn, fmt.Sprintf("%s: no %s column", name, ft))
		}
	}
	return []HealthCheck{readable, columns}
}

func checkOutput(cc *CommandContext) HealthCheck {
	h := HealthCheck{RuleID: "OUT01", Name: "Output target", Group: "output", Status: statusPass}
	format, err := cc.Cfg.SinkFormat()
	if err != nil {
		h.issue(statusError, err.Error())
		return h
	}
	h.Details = []string{fmt.Sprintf("%s (%s)", cc.Cfg.OutputFile, format)}

	if format == sink.FormatPostgres {
		return h
	}
	if discover.Matches(cc.Cfg.InputDir, cc.Cfg.Pattern, cc.Cfg.OutputFile) &&
		!excluded(filepath.Base(cc.Cfg.OutputFile), cc.Cfg.Exclude) {
		h.issue(statusWarn, "the output file matches the input pattern and would be read by the next run")
	}
	return h
}

func calculateHealthScore(checks []HealthCheck, fileCount int) int {
	if len(checks) == 0 {
		return 100
	}

	score := 100.0

	// With more files, each individual issue has less impact
	basePenalty := 5.0
	if fileCount > 10 {
		basePenalty = 3.0
	}
	if fileCount > 50 {
		basePenalty = 2.0
	}

	for _, check := range checks {
		switch check.Status {
		case statusError:
			score -= float64(check.IssueCount) * basePenalty * 2 // Errors count double
		case statusWarn:
			score -= float64(check.IssueCount) * basePenalty
		}
	}

	// Clamp to 0-100
	if score < 0 {
		score = 0
	}
	return int(score)
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("leadsunifier Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("")
			r.Println(styles.File.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.Success.Render(output.SymbolSuccess)
		switch check.Status {
		case statusWarn:
			icon = styles.Warning.Render(output.SymbolWarning)
		case statusError:
			icon = styles.Error.Render(output.SymbolError)
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		// Show first 3 details
		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println("# leadsunifier Health Report")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("## " + titleCaser.String(currentGroup))
			r.Println("")
		}

		status := "PASS"
		switch check.Status {
		case statusWarn:
			status = "WARN"
		case statusError:
			status = "ERROR"
		}

		r.Printf("- **[%s]** %s: %s", status, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
		r.Println("")
	}

	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
}
