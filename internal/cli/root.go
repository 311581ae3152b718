// Package cli provides the command-line interface for sqlparity.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlparity/internal/cli/commands"
	"github.com/leapstack-labs/sqlparity/internal/cli/config"
	"github.com/leapstack-labs/sqlparity/internal/cli/output"
	"github.com/leapstack-labs/sqlparity/pkg/strategy"

	// Engine registration.
	_ "github.com/leapstack-labs/sqlparity/pkg/engines/duckdb"
	_ "github.com/leapstack-labs/sqlparity/pkg/engines/postgres"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// rendererKey is used to store renderer in context.
type rendererKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlparity",
		Short: "sqlparity - cross-strategy SQL consistency checker",
		Long: `sqlparity deploys the same typed test data into a database under
different evaluation strategies, so the same query can be run against
each encoding and the results compared. Mismatches point at
inconsistencies between the engine's evaluation paths, or between two
engines when an other target is configured.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			// Store config in context
			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)

			// Store the logger so every command logs at the same level
			logger := newLogger(cfg.Verbose)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)

			// Create and store renderer based on output mode
			mode := output.OutputMode(cfg.OutputFormat)
			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
			ctx = context.WithValue(ctx, rendererKey{}, renderer)
			cmd.SetContext(ctx)

			// Print config file used (if verbose)
			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Cross-strategy SQL consistency checker
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sqlparity.yaml)")
	rootCmd.PersistentFlags().String("fixture", "", "Path to the fixture file")
	rootCmd.PersistentFlags().String("journal", "", "Path to the session journal database")
	rootCmd.PersistentFlags().String("isolation", "", "Transaction isolation level")
	rootCmd.PersistentFlags().StringSlice("strategies", nil, "Evaluation strategies to use")
	rootCmd.PersistentFlags().StringSlice("layouts", nil, "Storage layouts to use (horizontal, vertical)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Register completion for strategies flag
	_ = rootCmd.RegisterFlagCompletionFunc("strategies", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return strategy.Families, cobra.ShellCompDirectiveNoFileComp
	})

	// Register completion for layouts flag
	_ = rootCmd.RegisterFlagCompletionFunc("layouts", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"horizontal", "vertical"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewDeployCommand())
	rootCmd.AddCommand(commands.NewCompareCommand())
	rootCmd.AddCommand(commands.NewShellCommand())
	rootCmd.AddCommand(commands.NewJournalCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// newLogger builds the process logger. Verbose mode lowers the level to
// debug; otherwise only warnings and errors surface.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{
		FixturePath:    config.DefaultFixtureFile,
		JournalPath:    config.DefaultJournalFile,
		IsolationLevel: config.DefaultIsolation,
		OutputFormat:   config.DefaultOutput,
		Strategies:     strategy.Families,
	}
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	// Return default renderer if none in context
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sqlparity.

To load completions:

Bash:
  $ source <(sqlparity completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ sqlparity completion bash > /etc/bash_completion.d/sqlparity
  # macOS:
  $ sqlparity completion bash > $(brew --prefix)/etc/bash_completion.d/sqlparity

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ sqlparity completion zsh > "${fpath[1]}/_sqlparity"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ sqlparity completion fish | source

  # To load completions for each session, execute once:
  $ sqlparity completion fish > ~/.config/fish/completions/sqlparity.fish

PowerShell:
  PS> sqlparity completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> sqlparity completion powershell > sqlparity.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
