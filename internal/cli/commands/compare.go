package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlparity/internal/cli/output"
	"github.com/leapstack-labs/sqlparity/internal/runner"
)

// CompareOptions holds options for the compare command.
type CompareOptions struct {
	Input string
}

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	opts := &CompareOptions{}

	cmd := &cobra.Command{
		Use:   "compare [SQL]",
		Short: "Run a query against both targets and diff the results",
		Long: `Run one query against the primary target and the other target and
compare the result sets row by row. Rows are compared by their textual
form, so drivers that scan the same SQL value into different Go types
still compare equal.

Requires an other_target in the configuration. Deploy the fixtures to
both targets first so the queried objects exist on each side.`,
		Example: `  # Compare a query across both targets
  sqlparity compare "SELECT c_int_1 + c_int_2 FROM t_dfr_horiz"

  # Read the query from a file
  sqlparity compare --input query.sql

  # Pipe the query in
  echo "SELECT * FROM v_ctf_vert" | sqlparity compare`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string, opts *CompareOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	if cfg.OtherTarget == nil {
		return fmt.Errorf("no other_target configured\nHint: Add an other_target section to sqlparity.yaml to compare against a second database")
	}

	query, err := resolveQuery(args, opts.Input)
	if err != nil {
		return err
	}

	ensurePassword("primary", cfg.Target)
	ensurePassword("other", cfg.OtherTarget)

	ctx := cmd.Context()
	primary, err := openSession(ctx, "primary", cfg.Target, cmdCtx.Logger, r)
	if err != nil {
		return err
	}
	defer primary.Close()

	other, err := openSession(ctx, "other", cfg.OtherTarget, cmdCtx.Logger, r)
	if err != nil {
		return err
	}
	defer other.Close()

	run := runner.New(cmdCtx.Logger, nil)
	comparison, err := run.Compare(ctx, primary.Exec, other.Exec, query)
	if err != nil {
		return err
	}

	return renderComparison(r, comparison)
}

// resolveQuery picks the SQL source: arguments, --input file, or piped stdin.
func resolveQuery(args []string, input string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case input != "":
		content, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(content), nil
	case !isTerminal(os.Stdin):
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil
	default:
		return "", fmt.Errorf("no query given\nHint: Pass SQL as an argument, use --input, or pipe it in")
	}
}

func renderComparison(r *output.Renderer, c *runner.Comparison) error {
	if r.Mode() == output.ModeJSON {
		out := output.CompareOutput{
			Query:         c.Query,
			Primary:       c.PrimaryName,
			Other:         c.OtherName,
			Equal:         c.Equal(),
			ColumnsDiffer: c.ColumnsDiffer,
		}
		for _, m := range c.Mismatches {
			out.Mismatches = append(out.Mismatches, output.CompareMismatch{
				Row:     m.Row,
				Primary: m.Primary,
				Other:   m.Other,
			})
		}
		if err := r.JSON(out); err != nil {
			return err
		}
		if !c.Equal() {
			return fmt.Errorf("results differ")
		}
		return nil
	}

	if c.Equal() {
		r.Success(fmt.Sprintf("Results match (%d rows, %d columns)", len(c.Primary.Rows), len(c.Primary.Columns)))
		return nil
	}

	if c.ColumnsDiffer {
		r.Error(fmt.Sprintf("Result shapes differ: %s returned columns %v, %s returned columns %v",
			c.PrimaryName, c.Primary.Columns, c.OtherName, c.Other.Columns))
		return fmt.Errorf("results differ")
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Row", c.PrimaryName, c.OtherName})
	for _, m := range c.Mismatches {
		t.AppendRow(table.Row{m.Row, m.Primary, m.Other})
	}
	if r.Mode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}

	return fmt.Errorf("results differ in %d row(s)", len(c.Mismatches))
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
