// Package duckdb provides the DuckDB target engine.
//
// This file registers the engine with the engine registry.
// Import this package with a blank identifier to register the engine:
//
//	import _ "github.com/leapstack-labs/sqlparity/pkg/engines/duckdb"
package duckdb

import (
	"github.com/leapstack-labs/sqlparity/pkg/engine"
)

func init() {
	engine.Register("duckdb", func() engine.Engine { return New() })
}
