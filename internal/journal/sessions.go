package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// --- Session operations ---

// CreateSession records the start of one executor's run.
func (s *Store) CreateSession(name, engineName, strategyName, setupInfo string) (*Session, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	session := &Session{
		ID:        generateID(),
		Name:      name,
		Engine:    engineName,
		Strategy:  strategyName,
		SetupInfo: setupInfo,
		Status:    SessionRunning,
		StartedAt: time.Now().UTC(),
	}

	s.logger.Debug("creating journal session",
		slog.String("id", session.ID),
		slog.String("name", name),
		slog.String("engine", engineName))

	_, err := s.db.Exec(`
		INSERT INTO sessions (id, name, engine, strategy, setup_info, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.Name, session.Engine, session.Strategy,
		session.SetupInfo, string(session.Status), session.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// CompleteSession marks a session finished with the given status.
func (s *Store) CompleteSession(id string, status SessionStatus, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	now := time.Now().UTC()
	var errorValue any
	if errMsg != "" {
		errorValue = errMsg
	}

	result, err := s.db.Exec(`
		UPDATE sessions SET status = ?, completed_at = ?, error = ?
		WHERE id = ?`,
		string(status), now, errorValue, id)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(id string) (*Session, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRow(`
		SELECT id, name, engine, strategy, setup_info, status, started_at, completed_at, error
		FROM sessions WHERE id = ?`, id)

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// ListSessions retrieves the most recent sessions up to the given limit.
// A limit of zero or less returns all sessions.
func (s *Store) ListSessions(limit int) ([]*Session, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(`
		SELECT id, name, engine, strategy, setup_info, status, started_at, completed_at, error
		FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}
	return sessions, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var session Session
	var status string
	var completedAt sql.NullTime
	var errMsg sql.NullString

	err := row.Scan(&session.ID, &session.Name, &session.Engine, &session.Strategy,
		&session.SetupInfo, &status, &session.StartedAt, &completedAt, &errMsg)
	if err != nil {
		return nil, err
	}

	session.Status = SessionStatus(status)
	if completedAt.Valid {
		session.CompletedAt = &completedAt.Time
	}
	if errMsg.Valid {
		session.Error = errMsg.String
	}
	return &session, nil
}
