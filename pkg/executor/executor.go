// Package executor provides the uniform SQL execution abstraction used to
// deploy fixtures and run probe queries.
//
// An Executor is one named database session. All statements of a session run
// on the same pinned connection, so session state like open transactions
// behaves the way a single client would see it. The live implementation
// classifies driver failures into a small error taxonomy; the dry-run
// implementation records the SQL it would have executed and never fails.
package executor

import "context"

// Isolation levels accepted by BeginTx.
const (
	IsolationSerializable   = "SERIALIZABLE"
	IsolationRepeatableRead = "REPEATABLE READ"
	IsolationReadCommitted  = "READ COMMITTED"
)

// Result holds the outcome of a query.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Executor is one named database session.
type Executor interface {
	// Name identifies the session in logs and error output.
	Name() string

	// DDL executes a statement that returns no rows.
	DDL(ctx context.Context, sql string) error

	// Query executes a statement and collects all returned rows.
	Query(ctx context.Context, sql string) (*Result, error)

	// QueryVersion probes the engine version using the dialect's version
	// query.
	QueryVersion(ctx context.Context) (string, error)

	// BeginTx opens a transaction with the given isolation level.
	BeginTx(ctx context.Context, isolationLevel string) error

	// Commit commits the open transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the open transaction.
	Rollback(ctx context.Context) error
}
