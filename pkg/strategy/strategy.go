// Package strategy implements the evaluation strategies that encode a value
// set as SQL DDL for a target engine.
//
// Every strategy renders the same fixture data through a different engine
// code path, so that identical queries against the generated objects surface
// evaluation inconsistencies. Strategies come in pairs for cross-engine
// comparison: the native instance targets the primary engine and its twin
// targets the comparison database, differing only in key and dialect
// adjuster.
package strategy

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlparity/pkg/dialect"
	"github.com/leapstack-labs/sqlparity/pkg/fixture"
)

// Key identifies an evaluation strategy instance.
type Key int

const (
	// KeyDummy is the placeholder strategy that generates nothing.
	KeyDummy Key = iota + 1
	// KeyDataflowRendering evaluates through materialized dataflow state.
	KeyDataflowRendering
	// KeyConstantFolding evaluates through constant folding over views.
	KeyConstantFolding
	// KeyPostgres evaluates on a plain PostgreSQL reference server.
	KeyPostgres
	// KeyDataflowRenderingOtherDB is the dataflow strategy's twin on the
	// comparison database.
	KeyDataflowRenderingOtherDB
	// KeyConstantFoldingOtherDB is the constant-folding strategy's twin on
	// the comparison database.
	KeyConstantFoldingOtherDB
)

func (k Key) String() string {
	switch k {
	case KeyDummy:
		return "dummy"
	case KeyDataflowRendering:
		return "dataflow_rendering"
	case KeyConstantFolding:
		return "constant_folding"
	case KeyPostgres:
		return "postgres"
	case KeyDataflowRenderingOtherDB:
		return "dataflow_rendering_other_db"
	case KeyConstantFoldingOtherDB:
		return "constant_folding_other_db"
	default:
		return fmt.Sprintf("Key(%d)", int(k))
	}
}

// IsOtherDB reports whether the key identifies a strategy twin running
// against the comparison database.
func (k Key) IsOtherDB() bool {
	return k == KeyDataflowRenderingOtherDB || k == KeyConstantFoldingOtherDB
}

// Strategy family names accepted by New and NewPair.
const (
	FamilyDataflowRendering = "dataflow_rendering"
	FamilyConstantFolding   = "constant_folding"
)

// Families lists the known strategy family names in stable order.
var Families = []string{FamilyDataflowRendering, FamilyConstantFolding}

// Strategy generates the SQL fixture sources for one evaluation strategy.
type Strategy interface {
	// Key returns the strategy's identity.
	Key() Key

	// Name returns the human-readable strategy name.
	Name() string

	// ObjectNameBase returns the stem that database object names derive
	// from.
	ObjectNameBase() string

	// Adjuster returns the dialect adjuster threaded through every piece of
	// generated SQL.
	Adjuster() dialect.Adjuster

	// ObjectName derives the database object name for a layout. A non-empty
	// override wins over the derived name. An unresolved layout is an
	// error even when an override is given.
	ObjectName(layout fixture.StorageLayout, override string) (string, error)

	// GenerateSources produces the complete fixture for the value set: the
	// horizontal source followed by the vertical source, with all rows and
	// columns selected.
	GenerateSources(set *fixture.ValueSet) ([]string, error)

	// GenerateForLayout produces the source statements for a single layout,
	// honoring the row and column selections and the object name override.
	GenerateForLayout(set *fixture.ValueSet, layout fixture.StorageLayout, rows fixture.RowSelection, cols fixture.ColumnSelection, overrideName string) ([]string, error)

	// SetupInfo returns the optional free-text note describing additional
	// setup the strategy relies on, or "".
	SetupInfo() string

	// SetSetupInfo attaches the setup note.
	SetSetupInfo(info string)
}

// UnknownFamilyError is returned when a strategy family name is not
// recognized.
type UnknownFamilyError struct {
	Family string
}

func (e *UnknownFamilyError) Error() string {
	return fmt.Sprintf("unexpected evaluation strategy family: %q (known: %s)",
		e.Family, strings.Join(Families, ", "))
}
