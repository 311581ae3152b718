package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// --- Statement operations ---

// RecordStatement appends one executed statement to a session.
func (s *Store) RecordStatement(sessionID string, seq int, sqlText string, kind StatementKind, status StatementStatus, errMsg string, duration time.Duration) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	var errorValue any
	if errMsg != "" {
		errorValue = errMsg
	}

	_, err := s.db.Exec(`
		INSERT INTO statements (id, session_id, seq, sql_text, kind, status, error, duration_ms, executed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		generateID(), sessionID, seq, sqlText, string(kind), string(status),
		errorValue, duration.Milliseconds(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record statement: %w", err)
	}
	return nil
}

// SessionStatements retrieves a session's statements in execution order.
func (s *Store) SessionStatements(sessionID string) ([]*Statement, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(`
		SELECT id, session_id, seq, sql_text, kind, status, error, duration_ms, executed_at
		FROM statements WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var statements []*Statement
	for rows.Next() {
		var statement Statement
		var kind, status string
		var errMsg sql.NullString

		err := rows.Scan(&statement.ID, &statement.SessionID, &statement.Seq,
			&statement.SQL, &kind, &status, &errMsg,
			&statement.DurationMS, &statement.ExecutedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}

		statement.Kind = StatementKind(kind)
		statement.Status = StatementStatus(status)
		if errMsg.Valid {
			statement.Error = errMsg.String
		}
		statements = append(statements, &statement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statements: %w", err)
	}
	return statements, nil
}
