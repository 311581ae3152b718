package executor

import (
	"fmt"
	"io"
)

// Printer is the sink for SQL recorded by the dry-run executor and for the
// diagnostics the live executor emits on unclassified and fatal errors.
type Printer interface {
	PrintSQL(sql string)
	PrintError(msg string)
}

// WriterPrinter writes SQL to Out and diagnostics to Err, one line each.
type WriterPrinter struct {
	Out io.Writer
	Err io.Writer
}

func (p *WriterPrinter) PrintSQL(sql string) {
	fmt.Fprintln(p.Out, sql)
}

func (p *WriterPrinter) PrintError(msg string) {
	fmt.Fprintln(p.Err, msg)
}

var _ Printer = (*WriterPrinter)(nil)
