package runner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlparity/pkg/executor"
)

// Mismatch is one row-level difference between two result sets.
type Mismatch struct {
	// Row is the zero-based row position in the result order.
	Row int

	// Primary and Other are the formatted rows, or "(no row)" when one
	// side has fewer rows.
	Primary string
	Other   string
}

// Comparison is the outcome of running one query against two sessions.
type Comparison struct {
	Query       string
	PrimaryName string
	OtherName   string
	Primary     *executor.Result
	Other       *executor.Result

	// ColumnsDiffer is set when the result shapes disagree; rows are not
	// compared in that case.
	ColumnsDiffer bool

	Mismatches []Mismatch
}

// Equal reports whether both sides returned the same result.
func (c *Comparison) Equal() bool {
	return !c.ColumnsDiffer && len(c.Mismatches) == 0
}

// Compare runs the query on both executors concurrently and diffs the
// results row by row in result order.
func (r *Runner) Compare(ctx context.Context, primary, other executor.Executor, query string) (*Comparison, error) {
	var primaryResult, otherResult *executor.Result

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := primary.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("%s: %w", primary.Name(), err)
		}
		primaryResult = result
		return nil
	})
	g.Go(func() error {
		result, err := other.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("%s: %w", other.Name(), err)
		}
		otherResult = result
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	comparison := &Comparison{
		Query:       query,
		PrimaryName: primary.Name(),
		OtherName:   other.Name(),
		Primary:     primaryResult,
		Other:       otherResult,
	}
	diffResults(comparison)

	r.logger.Info("compared query",
		"query", query,
		"primary", primary.Name(),
		"other", other.Name(),
		"equal", comparison.Equal())
	return comparison, nil
}

func diffResults(c *Comparison) {
	if len(c.Primary.Columns) != len(c.Other.Columns) {
		c.ColumnsDiffer = true
		return
	}

	rows := len(c.Primary.Rows)
	if len(c.Other.Rows) > rows {
		rows = len(c.Other.Rows)
	}
	for i := 0; i < rows; i++ {
		primaryRow := "(no row)"
		otherRow := "(no row)"
		if i < len(c.Primary.Rows) {
			primaryRow = executor.FormatRow(c.Primary.Rows[i])
		}
		if i < len(c.Other.Rows) {
			otherRow = executor.FormatRow(c.Other.Rows[i])
		}
		if primaryRow != otherRow {
			c.Mismatches = append(c.Mismatches, Mismatch{Row: i, Primary: primaryRow, Other: otherRow})
		}
	}
}
