// Package duckdb provides the DuckDB target engine.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb" // duckdb database/sql driver

	"github.com/leapstack-labs/sqlparity/pkg/dialect"
	"github.com/leapstack-labs/sqlparity/pkg/engine"
)

// Engine implements the engine.Engine interface for DuckDB.
type Engine struct{}

// New creates a new DuckDB engine instance.
func New() *Engine {
	return &Engine{}
}

func (e *Engine) Name() string {
	return "duckdb"
}

func (e *Engine) Adjuster() dialect.Adjuster {
	return NewAdjuster()
}

// Open opens a DuckDB database and verifies it with a ping. An empty path
// opens an in-memory database.
func (e *Engine) Open(ctx context.Context, cfg engine.TargetConfig) (*sql.DB, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	return db, nil
}

// Ensure Engine implements engine.Engine interface
var _ engine.Engine = (*Engine)(nil)
