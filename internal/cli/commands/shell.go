package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlparity/internal/cli/config"
	"github.com/leapstack-labs/sqlparity/internal/loader"
	"github.com/leapstack-labs/sqlparity/pkg/fixture"
	"github.com/leapstack-labs/sqlparity/pkg/strategy"
)

// ShellOptions holds options for the shell command.
type ShellOptions struct {
	Format string
	Other  bool
}

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	opts := &ShellOptions{}

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Open an interactive SQL shell against a target",
		Long: `Open an interactive SQL shell against the primary target, or the
other target with --other. Deployed fixture objects and fixture columns
are offered as tab completions.

Statements end with a semicolon and may span multiple lines.`,
		Example: `  # Shell against the primary target
  sqlparity shell

  # Shell against the other target, rendering results as JSON
  sqlparity shell --other --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")
	cmd.Flags().BoolVar(&opts.Other, "other", false, "Connect to the other target instead of the primary one")

	return cmd
}

func runShell(cmd *cobra.Command, opts *ShellOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	name := "primary"
	target := cfg.Target
	if opts.Other {
		if cfg.OtherTarget == nil {
			return fmt.Errorf("no other_target configured\nHint: Add an other_target section to sqlparity.yaml")
		}
		name = "other"
		target = cfg.OtherTarget
	}

	ensurePassword(name, target)

	ctx := cmd.Context()
	sess, err := openSession(ctx, name, target, cmdCtx.Logger, cmdCtx.Renderer)
	if err != nil {
		return err
	}
	defer sess.Close()

	// History lives next to the journal so it stays project-local.
	historyFile := filepath.Join(filepath.Dir(cfg.JournalPath), "shell_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sqlparity> ",
		HistoryFile:     historyFile,
		AutoComplete:    newShellCompleter(cfg),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	version, err := sess.Exec.QueryVersion(ctx)
	if err != nil {
		version = sess.EngineName
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sqlparity shell (%s: %s)\n", name, version)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt("sqlparity> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if handled := handleShellCommand(ctx, cmd, sess, line); handled {
				if line == ".quit" || line == ".exit" {
					break
				}
				continue
			}
		}

		// Accumulate multi-line SQL until semicolon
		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString(" ")
			rl.SetPrompt("    ...> ")
			continue
		}
		rl.SetPrompt("sqlparity> ")

		query := strings.TrimSuffix(multiLineBuffer.String(), ";")
		multiLineBuffer.Reset()

		result, err := sess.Exec.Query(ctx, query)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		} else if err := renderResult(cmd.OutOrStdout(), result, opts.Format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

func handleShellCommand(ctx context.Context, cmd *cobra.Command, sess *session, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printShellHelp(cmd.OutOrStdout())
		return true

	case ".version":
		version, err := sess.Exec.QueryVersion(ctx)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return true
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
		return true

	case ".clear":
		fmt.Print("\033[H\033[2J")
		return true

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
		return true
	}
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .version        Show the connected engine version
  .clear          Clear the screen
  .quit / .exit   Exit the shell

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for fixture objects and columns
`
	_, _ = fmt.Fprintln(w, help)
}

// newShellCompleter builds completions from the configured strategies,
// layouts, and fixture columns. Completion is best effort; config or
// fixture problems just shrink the list.
func newShellCompleter(cfg *config.Config) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface

	if _, adj, err := targetAdjuster(cfg.Target); err == nil {
		for _, family := range cfg.Strategies {
			strat, err := strategy.New(family, adj)
			if err != nil {
				continue
			}
			for _, layout := range cfg.Layouts {
				if name, err := strat.ObjectName(layout, ""); err == nil && name != "" {
					items = append(items, readline.PcItem(name))
				}
			}
		}
	}

	if set, err := loader.LoadValueSet(cfg.FixturePath); err == nil {
		items = append(items, readline.PcItem(fixture.RowIndexColumn))
		for _, t := range set.Types {
			items = append(items, readline.PcItem(t.ColumnName))
			for _, v := range t.Values {
				items = append(items, readline.PcItem(v.ColumnName))
			}
		}
	}

	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".version"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)

	return readline.NewPrefixCompleter(items...)
}
