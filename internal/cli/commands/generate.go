package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlparity/internal/cli/output"
	"github.com/leapstack-labs/sqlparity/internal/loader"
	"github.com/leapstack-labs/sqlparity/pkg/fixture"
	"github.com/leapstack-labs/sqlparity/pkg/strategy"
)

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	Rows       []int
	Columns    []string
	ObjectName string
	Watch      bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate fixture DDL for each configured strategy",
		Long: `Generate the SQL fixture sources for every configured evaluation
strategy and storage layout without touching a database.

The statements are rendered in the primary target's dialect. Row and
column selections narrow the fixture to a slice of the value set, which
is useful when minimizing a reproduction.`,
		Example: `  # Generate all configured strategies and layouts
  sqlparity generate

  # Only the vertical table fixture, two specific rows
  sqlparity generate --layouts vertical --rows 0,2

  # Regenerate whenever the fixture file changes
  sqlparity generate --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().IntSliceVar(&opts.Rows, "rows", nil, "Row indexes to include (default: all)")
	cmd.Flags().StringSliceVar(&opts.Columns, "columns", nil, "Value columns to include (default: all)")
	cmd.Flags().StringVar(&opts.ObjectName, "object-name", "", "Override the derived database object name")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Regenerate when the fixture file changes")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	cmdCtx := NewCommandContext(cmd)

	if err := generateOnce(cmdCtx, opts); err != nil {
		if !opts.Watch {
			return err
		}
		// In watch mode a broken fixture is reported and watched for a fix.
		cmdCtx.Renderer.Error(fmt.Sprintf("Error: %v", err))
	}

	if !opts.Watch {
		return nil
	}
	return watchFixture(cmd, cmdCtx, opts)
}

func generateOnce(cmdCtx *CommandContext, opts *GenerateOptions) error {
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	set, err := loader.LoadValueSet(cfg.FixturePath)
	if err != nil {
		return err
	}

	_, adj, err := targetAdjuster(cfg.Target)
	if err != nil {
		return err
	}

	rows := fixture.AllRows()
	if len(opts.Rows) > 0 {
		rows = fixture.Rows(opts.Rows...)
	}
	cols := fixture.AllColumns()
	if len(opts.Columns) > 0 {
		cols = fixture.Columns(opts.Columns...)
	}

	var jsonOut []output.GenerateOutput
	for _, family := range cfg.Strategies {
		strat, err := strategy.New(family, adj)
		if err != nil {
			return err
		}

		var statements []string
		for _, layout := range cfg.Layouts {
			stmts, err := strat.GenerateForLayout(set, layout, rows, cols, opts.ObjectName)
			if err != nil {
				return fmt.Errorf("failed to generate %s sources: %w", strat.Name(), err)
			}
			statements = append(statements, stmts...)
		}

		switch r.Mode() {
		case output.ModeJSON:
			jsonOut = append(jsonOut, output.GenerateOutput{
				Strategy:   strat.Name(),
				Statements: statements,
			})
		case output.ModeMarkdown:
			r.Println(output.FormatHeader(2, strat.Name()))
			r.Println("")
			for _, stmt := range statements {
				r.Println(output.FormatCodeBlock("sql", stmt))
			}
			r.Println("")
		default:
			r.Header(strat.Name())
			for _, stmt := range statements {
				r.PrintSQL(stmt)
			}
			r.Println("")
		}
	}

	if r.Mode() == output.ModeJSON {
		return r.JSON(jsonOut)
	}
	return nil
}

// watchFixture blocks regenerating the fixture sources every time the
// fixture file changes. Editors often replace files on save, so the
// parent directory is watched rather than the file itself.
func watchFixture(cmd *cobra.Command, cmdCtx *CommandContext, opts *GenerateOptions) error {
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(cfg.FixturePath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	r.Println(fmt.Sprintf("Watching %s (Ctrl+C to stop)", cfg.FixturePath))

	target := filepath.Base(cfg.FixturePath)
	var debounce *time.Timer

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Base(event.Name) != target {
				continue
			}

			// Debounce bursts of events from a single save
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				r.Println(fmt.Sprintf("Change detected: %s", target))
				if err := generateOnce(cmdCtx, opts); err != nil {
					r.Error(fmt.Sprintf("Error: %v", err))
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watch error", "error", err)
		}
	}
}
