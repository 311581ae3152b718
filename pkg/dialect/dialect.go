// Package dialect provides the SQL dialect adjustment contract.
//
// This package contains the public contract every SQL-text-producing
// component depends on: an Adjuster rewrites canonical type names and value
// literals into a target engine's spelling and supplies the engine-specific
// statements the execution layer needs. Concrete adjusters are provided by
// pkg/engines/*/ packages.
package dialect

// Adjuster rewrites canonical SQL spellings for one target engine.
//
// Implementations must be immutable values; an adjuster is handed to a
// strategy or executor at construction time and may be shared freely across
// goroutines.
type Adjuster interface {
	// Name identifies the dialect, e.g. "postgres" or "duckdb".
	Name() string

	// AdjustType maps a canonical type name to the dialect's spelling.
	// Unknown types are returned unchanged.
	AdjustType(typeName string) string

	// AdjustValue maps a canonical value literal to the dialect's spelling.
	// The value's canonical type name is passed for context.
	AdjustValue(literal, typeName string) string

	// VersionQuery returns the statement used to probe the engine version.
	VersionQuery() string

	// BeginTransaction returns the statement that opens a transaction with
	// the given isolation level. Dialects without isolation-level support
	// ignore the argument.
	BeginTransaction(isolationLevel string) string
}
