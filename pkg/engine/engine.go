// Package engine provides the target database engine contract.
//
// This package contains the public contract all target engines implement:
// opening a connection pool from a TargetConfig and exposing the engine's
// dialect adjuster. Concrete engine implementations are in pkg/engines/
// subdirectories and register themselves at init time.
package engine

import (
	"context"
	"database/sql"

	"github.com/leapstack-labs/sqlparity/pkg/dialect"
)

// TargetConfig describes one target database.
type TargetConfig struct {
	// Type selects the engine, e.g. "postgres" or "duckdb".
	Type string `koanf:"type"`

	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`

	// SearchPath is the schema search path for engines that support one.
	SearchPath string `koanf:"search_path"`

	// SSLMode maps to the postgres sslmode parameter.
	SSLMode string `koanf:"sslmode"`

	// Path is the database file for embedded engines; empty means
	// in-memory.
	Path string `koanf:"path"`

	// Options holds extra engine-specific connection parameters passed
	// through to the driver verbatim.
	Options map[string]string `koanf:"options"`
}

// Engine is one target database kind.
type Engine interface {
	// Name identifies the engine, matching its registry key.
	Name() string

	// Adjuster returns the engine's dialect adjuster.
	Adjuster() dialect.Adjuster

	// Open opens a connection pool for the target and verifies it with a
	// ping. The caller owns the returned pool.
	Open(ctx context.Context, cfg TargetConfig) (*sql.DB, error)
}
