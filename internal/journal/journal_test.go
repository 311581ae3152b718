package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlparity/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:", testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_MigratesSchema(t *testing.T) {
	store := newTestStore(t)

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, int64(1))
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")

	store, err := Open(path, nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Equal(t, path, store.Path())
	assert.FileExists(t, path)
}

func TestCreateAndGetSession(t *testing.T) {
	store := newTestStore(t)

	created, err := store.CreateSession("primary", "postgres", "Dataflow rendering", "uses the default cluster")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, SessionRunning, created.Status)

	got, err := store.GetSession(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "primary", got.Name)
	assert.Equal(t, "postgres", got.Engine)
	assert.Equal(t, "Dataflow rendering", got.Strategy)
	assert.Equal(t, "uses the default cluster", got.SetupInfo)
	assert.Nil(t, got.CompletedAt)
	assert.Empty(t, got.Error)
}

func TestGetSession_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetSession("no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestCompleteSession(t *testing.T) {
	store := newTestStore(t)

	created, err := store.CreateSession("primary", "duckdb", "Constant folding", "")
	require.NoError(t, err)

	require.NoError(t, store.CompleteSession(created.ID, SessionFailed, "relation does not exist"))

	got, err := store.GetSession(created.ID)
	require.NoError(t, err)
	assert.Equal(t, SessionFailed, got.Status)
	assert.Equal(t, "relation does not exist", got.Error)
	require.NotNil(t, got.CompletedAt)
	assert.False(t, got.CompletedAt.IsZero())
}

func TestCompleteSession_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.CompleteSession("no-such-id", SessionCompleted, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestListSessions(t *testing.T) {
	store := newTestStore(t)

	first, err := store.CreateSession("first", "postgres", "", "")
	require.NoError(t, err)
	// Force distinct started_at values for a stable order.
	time.Sleep(10 * time.Millisecond)
	second, err := store.CreateSession("second", "postgres", "", "")
	require.NoError(t, err)

	sessions, err := store.ListSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, second.ID, sessions[0].ID, "most recent first")
	assert.Equal(t, first.ID, sessions[1].ID)

	limited, err := store.ListSessions(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRecordAndListStatements(t *testing.T) {
	store := newTestStore(t)

	session, err := store.CreateSession("primary", "postgres", "Dataflow rendering", "")
	require.NoError(t, err)

	require.NoError(t, store.RecordStatement(session.ID, 1, "DROP TABLE IF EXISTS t_dfr_horiz;", StatementDDL, StatementOK, "", 3*time.Millisecond))
	require.NoError(t, store.RecordStatement(session.ID, 2, "CREATE TABLE t_dfr_horiz (row_index INT);", StatementDDL, StatementOK, "", 5*time.Millisecond))
	require.NoError(t, store.RecordStatement(session.ID, 3, "INSERT INTO t_dfr_horiz VALUES (0);", StatementDDL, StatementFailed, "table is read-only", time.Millisecond))

	statements, err := store.SessionStatements(session.ID)
	require.NoError(t, err)
	require.Len(t, statements, 3)

	assert.Equal(t, 1, statements[0].Seq)
	assert.Equal(t, "DROP TABLE IF EXISTS t_dfr_horiz;", statements[0].SQL)
	assert.Equal(t, StatementDDL, statements[0].Kind)
	assert.Equal(t, StatementOK, statements[0].Status)
	assert.EqualValues(t, 3, statements[0].DurationMS)

	assert.Equal(t, StatementFailed, statements[2].Status)
	assert.Equal(t, "table is read-only", statements[2].Error)
}

func TestStore_NotOpened(t *testing.T) {
	store := &Store{}

	_, err := store.CreateSession("x", "postgres", "", "")
	assert.ErrorContains(t, err, "database not opened")

	_, err = store.ListSessions(5)
	assert.ErrorContains(t, err, "database not opened")

	err = store.RecordStatement("x", 1, "SELECT 1;", StatementQuery, StatementOK, "", 0)
	assert.ErrorContains(t, err, "database not opened")
}
