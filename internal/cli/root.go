// Package cli provides the command-line interface for leadsunifier.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leadsunifier/internal/cli/commands"
	"github.com/leapstack-labs/leadsunifier/internal/cli/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// session holds the state of one invocation of the root command.
type session struct {
	cfgFile  string
	logPath  string
	closeLog func() error
}

// close releases the log file, if one was opened.
func (s *session) close() error {
	if s.closeLog == nil {
		return nil
	}
	err := s.closeLog()
	s.closeLog = nil
	return err
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{})
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leadsunifier",
		Short: "leadsunifier - CSV contact unifier",
		Long: `leadsunifier merges contact lists exported from different tools into a
single deduplicated CSV.

Each input file is inspected to find its name, email and phone columns, from
the header labels (English and Portuguese) and from the values themselves.
Contacts are normalized, phones of the same person are merged, and duplicates
are removed by email and then by phone.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(s.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logCfg := *cfg
			if cmd.Name() == "init" || cmd.Name() == "version" {
				logCfg.LogDir = ""
			}
			logger, logPath, closeLog, err := NewLogger(&logCfg, cmd.ErrOrStderr(), time.Now())
			if err != nil {
				return err
			}
			s.logPath = logPath
			s.closeLog = closeLog

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = config.WithConfig(ctx, cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			logger.Info("starting", "command", cmd.Name(), "version", Version,
				"config_file", cfg.ConfigFile, "input_dir", cfg.InputDir)

			if cfg.Verbose {
				if cfg.ConfigFile != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", cfg.ConfigFile)
				}
				if logPath != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Logging to: %s\n", logPath)
				}
			}

			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return s.close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&s.cfgFile, "config", "", "config file (default: ./leadsunifier.yaml)")
	flags.StringP("input-dir", "i", "", "Directory holding the input CSV files")
	flags.StringP("pattern", "p", "", "Glob selecting input files inside the input directory")
	flags.StringSlice("exclude", nil, "Glob of input file names to skip (repeatable)")
	flags.String("output-file", "", "Path of the unified output")
	flags.String("format", "", "Output file format (csv|json|sqlite|postgres), inferred from the path when empty")
	flags.StringP("output", "o", "", "Console output format (auto|text|markdown|json)")
	flags.Int("sample-size", 0, "Values sampled per column for content detection")
	flags.Bool("fold-diacritics", false, "Strip accents from header labels before matching")
	flags.String("dictionaries", "", "YAML file overriding the column dictionaries")
	flags.String("log-dir", "", "Directory for processing log files (empty to disable)")
	flags.String("log-level", "", "Log file level (debug|info|warn|error)")
	flags.BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"csv", "json", "sqlite", "postgres"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewDoctorCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	s := &session{}
	defer func() { _ = s.close() }()

	rootCmd := newRootCmd(s)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for leadsunifier.

To load completions:

Bash:
  $ source <(leadsunifier completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ leadsunifier completion bash > /etc/bash_completion.d/leadsunifier
  # macOS:
  $ leadsunifier completion bash > $(brew --prefix)/etc/bash_completion.d/leadsunifier

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ leadsunifier completion zsh > "${fpath[1]}/_leadsunifier"

Fish:
  $ leadsunifier completion fish | source

  # To load completions for each session, execute once:
  $ leadsunifier completion fish > ~/.config/fish/completions/leadsunifier.fish

PowerShell:
  PS> leadsunifier completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
