// Package journal records deployment sessions and the statements they
// executed in a local SQLite database.
//
// The journal is a local audit trail: every deploy or compare run opens one
// session per executor, records each statement with its outcome and timing,
// and closes the session with a final status. The CLI reads it back for
// the journal command.
package journal

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // sqlite database/sql driver
)

// SessionStatus is the lifecycle state of a recorded session.
type SessionStatus string

const (
	SessionRunning   SessionStatus = "running"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
)

// StatementKind classifies a recorded statement.
type StatementKind string

const (
	StatementDDL   StatementKind = "ddl"
	StatementQuery StatementKind = "query"
	StatementTx    StatementKind = "tx"
)

// StatementStatus is the outcome of a recorded statement.
type StatementStatus string

const (
	StatementOK     StatementStatus = "ok"
	StatementFailed StatementStatus = "error"
)

// Session is one executor's recorded deployment run.
type Session struct {
	ID          string
	Name        string
	Engine      string
	Strategy    string
	SetupInfo   string
	Status      SessionStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
}

// Statement is one recorded SQL statement within a session.
type Statement struct {
	ID         string
	SessionID  string
	Seq        int
	SQL        string
	Kind       StatementKind
	Status     StatementStatus
	Error      string
	DurationMS int64
	ExecutedAt time.Time
}

// Store is the SQLite-backed journal.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens (or creates) the journal database at path and migrates it to
// the current schema. If logger is nil, a discard logger is used.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// An in-memory database exists per connection; a single connection
	// also keeps file databases clear of sqlite write-lock contention.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping journal database: %w", err)
	}

	store := &Store{db: db, path: path, logger: logger}
	if err := store.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the journal database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the journal database location.
func (s *Store) Path() string {
	return s.path
}

// generateID returns a new unique identifier.
func generateID() string {
	return uuid.New().String()
}
