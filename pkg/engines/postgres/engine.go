// Package postgres provides the PostgreSQL target engine.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/leapstack-labs/sqlparity/pkg/dialect"
	"github.com/leapstack-labs/sqlparity/pkg/engine"
)

// Engine implements the engine.Engine interface for PostgreSQL.
type Engine struct{}

// New creates a new PostgreSQL engine instance.
func New() *Engine {
	return &Engine{}
}

func (e *Engine) Name() string {
	return "postgres"
}

func (e *Engine) Adjuster() dialect.Adjuster {
	return NewAdjuster()
}

// Open opens a connection pool to PostgreSQL and verifies it with a ping.
func (e *Engine) Open(ctx context.Context, cfg engine.TargetConfig) (*sql.DB, error) {
	dsn := buildDSN(cfg)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// buildDSN constructs a PostgreSQL connection string.
func buildDSN(cfg engine.TargetConfig) string {
	// Build key=value format: host=localhost port=5432 dbname=postgres ...
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.User != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.User)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}
	if cfg.SearchPath != "" {
		// pgx passes unknown key=value pairs to the server as runtime
		// parameters.
		dsn += fmt.Sprintf(" search_path=%s", cfg.SearchPath)
	}
	for _, key := range slices.Sorted(maps.Keys(cfg.Options)) {
		dsn += fmt.Sprintf(" %s=%s", key, cfg.Options[key])
	}

	return dsn
}

// Ensure Engine implements engine.Engine interface
var _ engine.Engine = (*Engine)(nil)
