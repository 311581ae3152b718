package executor

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leapstack-labs/sqlparity/pkg/dialect"
)

// Live executes statements against one pinned database session.
type Live struct {
	name     string
	conn     *sql.Conn
	adjuster dialect.Adjuster
	printer  Printer
	logger   *slog.Logger
	history  statementHistory
}

// NewLive pins a dedicated session from db and wraps it in an executor.
// The caller keeps ownership of db; Close releases only the pinned session.
func NewLive(ctx context.Context, name string, db *sql.DB, adj dialect.Adjuster, printer Printer, logger *slog.Logger) (*Live, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if printer == nil {
		printer = &WriterPrinter{Out: os.Stdout, Err: os.Stderr}
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to pin database session: %w", err)
	}
	return &Live{
		name:     name,
		conn:     conn,
		adjuster: adj,
		printer:  printer,
		logger:   logger,
	}, nil
}

func (e *Live) Name() string {
	return e.name
}

// Close returns the pinned session to the pool.
func (e *Live) Close() error {
	return e.conn.Close()
}

func (e *Live) DDL(ctx context.Context, sqlText string) error {
	return e.execute(ctx, sqlText)
}

func (e *Live) BeginTx(ctx context.Context, isolationLevel string) error {
	return e.execute(ctx, e.adjuster.BeginTransaction(isolationLevel))
}

func (e *Live) Commit(ctx context.Context) error {
	return e.execute(ctx, "COMMIT;")
}

func (e *Live) Rollback(ctx context.Context) error {
	return e.execute(ctx, "ROLLBACK;")
}

func (e *Live) Query(ctx context.Context, sqlText string) (*Result, error) {
	e.record(sqlText)
	rows, err := e.conn.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, e.classify(sqlText, err)
	}
	defer rows.Close()

	result, err := collectRows(rows)
	if err != nil {
		return nil, e.classify(sqlText, err)
	}
	return result, nil
}

func (e *Live) QueryVersion(ctx context.Context) (string, error) {
	result, err := e.Query(ctx, e.adjuster.VersionQuery())
	if err != nil {
		return "", err
	}
	if len(result.Rows) == 0 || len(result.Rows[0]) == 0 {
		return "", &ExecutionError{Message: "version query returned no rows"}
	}
	return fmt.Sprintf("%v", result.Rows[0][0]), nil
}

func (e *Live) execute(ctx context.Context, sqlText string) error {
	e.record(sqlText)
	if _, err := e.conn.ExecContext(ctx, sqlText); err != nil {
		return e.classify(sqlText, err)
	}
	return nil
}

// record appends the statement to the history before execution, so a
// connection lost mid-statement still shows the statement that broke it.
func (e *Live) record(sqlText string) {
	e.history.Append(sqlText)
	e.logger.Debug("executing statement", "executor", e.name, "sql", sqlText)
}

// classify maps a driver error onto the executor's error taxonomy.
func (e *Live) classify(sqlText string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &ExecutionError{Message: formatServerError(pgErr)}
	}

	var parseErr *time.ParseError
	if errors.As(err, &parseErr) {
		return &ExecutionError{Message: parseErr.Error()}
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		e.printer.PrintError(fmt.Sprintf("Query with value error is: %s", sqlText))
		return err
	}

	if isConnectionLoss(err) {
		return e.fatal(err)
	}

	e.printer.PrintError(fmt.Sprintf("Query with unexpected error is: %s", sqlText))
	return err
}

// fatal dumps the statement history and wraps the cause. One of the dumped
// statements may be what actually took the server down.
func (e *Live) fatal(cause error) error {
	e.printer.PrintError("A network error occurred! Aborting!")

	history := e.history.Descending()
	lines := make([]string, len(history))
	for i, statement := range history {
		lines[i] = "  " + statement
	}
	e.printer.PrintError(fmt.Sprintf("Last %d queries in descending order:\n%s",
		len(history), strings.Join(lines, "\n")))

	return &FatalError{Cause: cause, History: history}
}

// formatServerError renders a structured server error as "message (hint)".
func formatServerError(pgErr *pgconn.PgError) string {
	if pgErr.Hint == "" {
		return pgErr.Message
	}
	return fmt.Sprintf("%s (%s)", pgErr.Message, pgErr.Hint)
}

func isConnectionLoss(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func collectRows(rows *sql.Rows) (*Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	result := &Result{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

var _ Executor = (*Live)(nil)
