package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leadsunifier/internal/cli/output"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new leadsunifier workspace",
		Long: `Initialize a workspace with an input directory and a configuration file.

This creates:
  - input/ directory for the CSV exports to unify
  - leadsunifier.yaml configuration file with the default settings
  - .gitignore leaving output/ and logs/ out of version control

Use --example to also add two sample exports with overlapping contacts.`,
		Example: `  # Initialize in current directory
  leadsunifier init

  # Initialize with sample input files
  leadsunifier init --example

  # Initialize in a new directory
  leadsunifier init my-leads --example

  # Force overwrite existing config
  leadsunifier init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			r := NewCommandContext(cmd).Renderer
			template := "minimal"
			if example {
				template = "example"
			}
			return runInit(r, dir, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Add sample input files")

	return cmd
}

func runInit(r *output.Renderer, dir, template string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "leadsunifier.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("leadsunifier.yaml already exists. Use --force to overwrite")
	}

	files, err := templateFiles(template)
	if err != nil {
		return err
	}
	written, err := writeWorkspace(dir, files, force)
	if err != nil {
		return fmt.Errorf("failed to initialize workspace: %w", err)
	}
	wrote := make(map[string]bool, len(written))
	for _, f := range written {
		wrote[f.dest] = true
	}

	status := func(f workspaceFile) {
		if wrote[f.dest] {
			r.StatusLine(f.dest, "success", "")
			return
		}
		r.StatusLine(f.dest, "skipped", "kept existing file")
	}

	r.Header(2, "Configuration")
	for _, f := range files {
		if !f.isInput() {
			status(f)
		}
	}
	r.Println("")
	r.Header(2, "Input")
	r.StatusLine(inputDirName+"/", "success", "")
	for _, f := range files {
		if f.isInput() {
			status(f)
		}
	}

	r.Println("")
	r.Success("leadsunifier workspace initialized!")
	r.Println("")
	r.Println("Next steps:")
	if template == "minimal" {
		r.Println("  1. Copy your CSV exports into input/")
		r.Println("  2. Run 'leadsunifier inspect' to check the detected columns")
		r.Println("  3. Run 'leadsunifier run' to write output/combined_contacts.csv")
	} else {
		r.Println("  leadsunifier inspect   Show the columns detected in each sample file")
		r.Println("  leadsunifier run       Unify the samples into output/combined_contacts.csv")
		r.Println("  leadsunifier watch     Re-run whenever a file in input/ changes")
	}

	return nil
}
