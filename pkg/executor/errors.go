package executor

import "fmt"

// ExecutionError is the uniform error for a statement the engine rejected or
// a result value that failed to parse. Callers treat it as "this statement
// failed" without caring which engine produced it.
type ExecutionError struct {
	Message string
}

func (e *ExecutionError) Error() string {
	return e.Message
}

// FatalError reports a lost database connection. The session is unusable;
// by the time callers see this error the statement history has already been
// dumped to the error sink, newest first. The top-level driver is expected
// to terminate with a non-zero exit.
type FatalError struct {
	Cause error

	// History holds the most recently executed statements, newest first.
	History []string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("connection lost: %v", e.Cause)
}

func (e *FatalError) Unwrap() error {
	return e.Cause
}
