package executor

import (
	"context"
	"fmt"
	"os"
)

// DryRunVersion is the version string reported without contacting a
// database.
const DryRunVersion = "(dry-run)"

// DryRun records the SQL it would have executed and never fails. Queries
// return empty results.
type DryRun struct {
	name    string
	printer Printer
}

// NewDryRun returns a dry-run session writing through printer.
func NewDryRun(name string, printer Printer) *DryRun {
	if printer == nil {
		printer = &WriterPrinter{Out: os.Stdout, Err: os.Stderr}
	}
	return &DryRun{name: name, printer: printer}
}

func (e *DryRun) Name() string {
	return e.name
}

func (e *DryRun) consume(sqlText string) {
	e.printer.PrintSQL(sqlText)
}

func (e *DryRun) DDL(_ context.Context, sqlText string) error {
	e.consume(sqlText)
	return nil
}

func (e *DryRun) Query(_ context.Context, sqlText string) (*Result, error) {
	e.consume(sqlText)
	return &Result{}, nil
}

func (e *DryRun) QueryVersion(_ context.Context) (string, error) {
	return DryRunVersion, nil
}

func (e *DryRun) BeginTx(_ context.Context, isolationLevel string) error {
	e.consume(fmt.Sprintf("BEGIN ISOLATION LEVEL %s;", isolationLevel))
	return nil
}

func (e *DryRun) Commit(_ context.Context) error {
	e.consume("COMMIT;")
	return nil
}

func (e *DryRun) Rollback(_ context.Context) error {
	e.consume("ROLLBACK;")
	return nil
}

var _ Executor = (*DryRun)(nil)
