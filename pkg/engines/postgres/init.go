// Package postgres provides the PostgreSQL target engine.
//
// This file registers the engine with the engine registry.
// Import this package with a blank identifier to register the engine:
//
//	import _ "github.com/leapstack-labs/sqlparity/pkg/engines/postgres"
package postgres

import (
	"github.com/leapstack-labs/sqlparity/pkg/engine"
)

func init() {
	engine.Register("postgres", func() engine.Engine { return New() })
}
