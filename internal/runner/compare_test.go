package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlparity/internal/testutil"
	"github.com/leapstack-labs/sqlparity/pkg/executor"
)

func TestCompare_Equal(t *testing.T) {
	r := New(testutil.NewTestLogger(t), nil)
	primary := &fakeExecutor{name: "primary", queryResult: &executor.Result{
		Columns: []string{"row_index", "t_int"},
		Rows:    [][]any{{int64(0), int64(1)}, {int64(1), int64(2)}},
	}}
	other := &fakeExecutor{name: "other", queryResult: &executor.Result{
		Columns: []string{"row_index", "t_int"},
		Rows:    [][]any{{int64(0), int64(1)}, {int64(1), int64(2)}},
	}}

	comparison, err := r.Compare(context.Background(), primary, other, "SELECT row_index, t_int FROM t_dfr_vert;")

	require.NoError(t, err)
	assert.True(t, comparison.Equal())
	assert.Equal(t, "primary", comparison.PrimaryName)
	assert.Equal(t, "other", comparison.OtherName)
	assert.Empty(t, comparison.Mismatches)
}

func TestCompare_EqualAcrossDriverTypes(t *testing.T) {
	// Drivers disagree on Go scan types for the same SQL value; the
	// comparison is textual.
	r := New(testutil.NewTestLogger(t), nil)
	primary := &fakeExecutor{name: "primary", queryResult: &executor.Result{
		Columns: []string{"t_int"},
		Rows:    [][]any{{int64(1)}},
	}}
	other := &fakeExecutor{name: "other", queryResult: &executor.Result{
		Columns: []string{"t_int"},
		Rows:    [][]any{{int32(1)}},
	}}

	comparison, err := r.Compare(context.Background(), primary, other, "SELECT t_int FROM v_ctf_horiz;")

	require.NoError(t, err)
	assert.True(t, comparison.Equal())
}

func TestCompare_RowMismatch(t *testing.T) {
	r := New(testutil.NewTestLogger(t), nil)
	primary := &fakeExecutor{name: "primary", queryResult: &executor.Result{
		Columns: []string{"t_int"},
		Rows:    [][]any{{int64(1)}, {int64(2)}},
	}}
	other := &fakeExecutor{name: "other", queryResult: &executor.Result{
		Columns: []string{"t_int"},
		Rows:    [][]any{{int64(1)}, {int64(3)}},
	}}

	comparison, err := r.Compare(context.Background(), primary, other, "SELECT t_int FROM t_dfr_vert;")

	require.NoError(t, err)
	assert.False(t, comparison.Equal())
	require.Len(t, comparison.Mismatches, 1)
	assert.Equal(t, 1, comparison.Mismatches[0].Row)
	assert.Equal(t, "2", comparison.Mismatches[0].Primary)
	assert.Equal(t, "3", comparison.Mismatches[0].Other)
}

func TestCompare_MissingRow(t *testing.T) {
	r := New(testutil.NewTestLogger(t), nil)
	primary := &fakeExecutor{name: "primary", queryResult: &executor.Result{
		Columns: []string{"t_int"},
		Rows:    [][]any{{int64(1)}, {int64(2)}},
	}}
	other := &fakeExecutor{name: "other", queryResult: &executor.Result{
		Columns: []string{"t_int"},
		Rows:    [][]any{{int64(1)}},
	}}

	comparison, err := r.Compare(context.Background(), primary, other, "SELECT t_int FROM t_dfr_vert;")

	require.NoError(t, err)
	require.Len(t, comparison.Mismatches, 1)
	assert.Equal(t, "2", comparison.Mismatches[0].Primary)
	assert.Equal(t, "(no row)", comparison.Mismatches[0].Other)
}

func TestCompare_ColumnsDiffer(t *testing.T) {
	r := New(testutil.NewTestLogger(t), nil)
	primary := &fakeExecutor{name: "primary", queryResult: &executor.Result{
		Columns: []string{"a", "b"},
		Rows:    [][]any{{int64(1), int64(2)}},
	}}
	other := &fakeExecutor{name: "other", queryResult: &executor.Result{
		Columns: []string{"a"},
		Rows:    [][]any{{int64(1)}},
	}}

	comparison, err := r.Compare(context.Background(), primary, other, "SELECT * FROM t_dfr_horiz;")

	require.NoError(t, err)
	assert.True(t, comparison.ColumnsDiffer)
	assert.False(t, comparison.Equal())
	assert.Empty(t, comparison.Mismatches, "rows are not compared when shapes disagree")
}

func TestCompare_QueryError(t *testing.T) {
	r := New(testutil.NewTestLogger(t), nil)
	primary := &fakeExecutor{name: "primary", queryResult: &executor.Result{Columns: []string{"a"}}}
	other := &fakeExecutor{name: "other", queryErr: errors.New("relation does not exist")}

	comparison, err := r.Compare(context.Background(), primary, other, "SELECT * FROM missing;")

	require.Error(t, err)
	assert.Nil(t, comparison)
	assert.Contains(t, err.Error(), "other:")
	assert.Contains(t, err.Error(), "relation does not exist")
}

func TestCompare_LogsOutcome(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	r := New(logger, nil)
	result := &executor.Result{Columns: []string{"a"}, Rows: [][]any{{int64(1)}}}
	primary := &fakeExecutor{name: "primary", queryResult: result}
	other := &fakeExecutor{name: "other", queryResult: result}

	_, err := r.Compare(context.Background(), primary, other, "SELECT a FROM t_dfr_horiz;")

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "compared query")
	assert.Contains(t, logs.String(), "equal=true")
}
