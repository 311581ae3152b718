package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlparity/pkg/fixture"
)

// fakeAdjuster passes spellings through unchanged and carries a name so
// tests can tell two instances apart.
type fakeAdjuster struct {
	name string
}

func (a fakeAdjuster) Name() string                      { return a.name }
func (a fakeAdjuster) AdjustType(typeName string) string { return typeName }
func (a fakeAdjuster) AdjustValue(literal, _ string) string {
	return literal
}
func (a fakeAdjuster) VersionQuery() string { return "SELECT version();" }
func (a fakeAdjuster) BeginTransaction(level string) string {
	return "BEGIN ISOLATION LEVEL " + level + ";"
}

func sampleValueSet() *fixture.ValueSet {
	return &fixture.ValueSet{
		Types: []fixture.TypeValues{
			{
				TypeName:   "INT",
				ColumnName: "t_int",
				Values: []fixture.Value{
					{ColumnName: "c_int_1", Literal: "1"},
					{ColumnName: "c_int_2", Literal: "2"},
				},
			},
			{
				TypeName:   "TEXT",
				ColumnName: "t_text",
				Values: []fixture.Value{
					{ColumnName: "c_text_1", Literal: "'a'"},
				},
			},
		},
	}
}

func TestKeyValues(t *testing.T) {
	// The numeric identities are part of the public contract; result stores
	// index by them.
	assert.EqualValues(t, 1, KeyDummy)
	assert.EqualValues(t, 2, KeyDataflowRendering)
	assert.EqualValues(t, 3, KeyConstantFolding)
	assert.EqualValues(t, 4, KeyPostgres)
	assert.EqualValues(t, 5, KeyDataflowRenderingOtherDB)
	assert.EqualValues(t, 6, KeyConstantFoldingOtherDB)
}

func TestKeyIsOtherDB(t *testing.T) {
	assert.False(t, KeyDummy.IsOtherDB())
	assert.False(t, KeyDataflowRendering.IsOtherDB())
	assert.False(t, KeyConstantFolding.IsOtherDB())
	assert.False(t, KeyPostgres.IsOtherDB())
	assert.True(t, KeyDataflowRenderingOtherDB.IsOtherDB())
	assert.True(t, KeyConstantFoldingOtherDB.IsOtherDB())
}

func TestObjectName(t *testing.T) {
	s := NewDataflowRendering(fakeAdjuster{name: "primary"})

	tests := []struct {
		name     string
		layout   fixture.StorageLayout
		override string
		expected string
		wantErr  bool
	}{
		{name: "horizontal derived", layout: fixture.LayoutHorizontal, expected: "t_dfr_horiz"},
		{name: "vertical derived", layout: fixture.LayoutVertical, expected: "t_dfr_vert"},
		{name: "override wins", layout: fixture.LayoutHorizontal, override: "my_table", expected: "my_table"},
		{name: "unresolved layout", layout: fixture.LayoutUnresolved, wantErr: true},
		{name: "unresolved layout with override", layout: fixture.LayoutUnresolved, override: "my_table", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := s.ObjectName(tt.layout, tt.override)
			if tt.wantErr {
				require.Error(t, err)
				var unresolved *fixture.UnresolvedLayoutError
				assert.ErrorAs(t, err, &unresolved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestDataflowRendering_GenerateSources(t *testing.T) {
	s := NewDataflowRendering(fakeAdjuster{name: "primary"})

	statements, err := s.GenerateSources(sampleValueSet())
	require.NoError(t, err)

	expected := []string{
		"DROP TABLE IF EXISTS t_dfr_horiz;",
		"CREATE TABLE t_dfr_horiz (row_index INT, c_int_1 INT, c_int_2 INT, c_text_1 TEXT);",
		"INSERT INTO t_dfr_horiz VALUES (0, 1, 2, 'a');",
		"DROP TABLE IF EXISTS t_dfr_vert;",
		"CREATE TABLE t_dfr_vert (row_index INT, t_int INT, t_text TEXT);",
		"INSERT INTO t_dfr_vert VALUES (0, 1, 'a');",
		"INSERT INTO t_dfr_vert VALUES (1, 2, 'a');",
	}
	assert.Equal(t, expected, statements)
}

func TestDataflowRendering_HorizontalStatementCount(t *testing.T) {
	s := NewDataflowRendering(fakeAdjuster{name: "primary"})

	statements, err := s.GenerateForLayout(sampleValueSet(), fixture.LayoutHorizontal, fixture.AllRows(), fixture.AllColumns(), "")
	require.NoError(t, err)

	// One DROP, one CREATE, exactly one INSERT: the horizontal layout packs
	// everything into a single row.
	require.Len(t, statements, 3)
	assert.Contains(t, statements[0], "DROP TABLE IF EXISTS")
	assert.Contains(t, statements[1], "CREATE TABLE")
	assert.Contains(t, statements[2], "INSERT INTO")
}

func TestDataflowRendering_Selections(t *testing.T) {
	s := NewDataflowRendering(fakeAdjuster{name: "primary"})

	statements, err := s.GenerateForLayout(sampleValueSet(), fixture.LayoutVertical, fixture.Rows(1), fixture.Columns("t_int"), "")
	require.NoError(t, err)

	expected := []string{
		"DROP TABLE IF EXISTS t_dfr_vert;",
		"CREATE TABLE t_dfr_vert (row_index INT, t_int INT);",
		"INSERT INTO t_dfr_vert VALUES (1, 2);",
	}
	assert.Equal(t, expected, statements, "row 1 keeps its index after row 0 is dropped")
}

func TestDataflowRendering_OverrideName(t *testing.T) {
	s := NewDataflowRendering(fakeAdjuster{name: "primary"})

	statements, err := s.GenerateForLayout(sampleValueSet(), fixture.LayoutHorizontal, fixture.AllRows(), fixture.AllColumns(), "scratch")
	require.NoError(t, err)

	assert.Equal(t, "DROP TABLE IF EXISTS scratch;", statements[0])
}

func TestConstantFolding_GenerateSources(t *testing.T) {
	s := NewConstantFolding(fakeAdjuster{name: "primary"})

	statements, err := s.GenerateSources(sampleValueSet())
	require.NoError(t, err)

	expected := []string{
		"CREATE OR REPLACE VIEW v_ctf_horiz (row_index, c_int_1, c_int_2, c_text_1)\n AS SELECT 0, 1, 2, 'a';",
		"CREATE OR REPLACE VIEW v_ctf_vert (row_index, t_int, t_text)\n AS SELECT 0, 1, 'a'\n    UNION SELECT 1, 2, 'a';",
	}
	assert.Equal(t, expected, statements)
}

func TestConstantFolding_SingleStatementPerLayout(t *testing.T) {
	s := NewConstantFolding(fakeAdjuster{name: "primary"})

	statements, err := s.GenerateForLayout(sampleValueSet(), fixture.LayoutVertical, fixture.AllRows(), fixture.AllColumns(), "")
	require.NoError(t, err)

	require.Len(t, statements, 1)
	assert.Contains(t, statements[0], "UNION SELECT", "multi-row vertical views join rows with UNION")
	assert.NotContains(t, statements[0], "INT", "view column lists are untyped")
}

func TestDummy_GeneratesNothing(t *testing.T) {
	s := NewDummy(fakeAdjuster{name: "primary"})

	statements, err := s.GenerateSources(sampleValueSet())
	require.NoError(t, err)
	assert.Empty(t, statements)

	assert.Equal(t, KeyDummy, s.Key())
	assert.Equal(t, "Dummy", s.Name())
}

func TestNew(t *testing.T) {
	s, err := New(FamilyConstantFolding, fakeAdjuster{name: "primary"})
	require.NoError(t, err)
	assert.Equal(t, KeyConstantFolding, s.Key())

	_, err = New("speculative_execution", fakeAdjuster{name: "primary"})
	require.Error(t, err)

	var unknown *UnknownFamilyError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, err.Error(), "speculative_execution")
	assert.Contains(t, err.Error(), FamilyDataflowRendering, "error lists the known families")
}

func TestNewPair_DataflowRendering(t *testing.T) {
	primary := fakeAdjuster{name: "primary"}
	other := fakeAdjuster{name: "other"}

	native, twin, err := NewPair(FamilyDataflowRendering, primary, other)
	require.NoError(t, err)

	assert.Equal(t, KeyDataflowRendering, native.Key())
	assert.Equal(t, KeyDataflowRenderingOtherDB, twin.Key())
	assert.False(t, native.Key().IsOtherDB())
	assert.True(t, twin.Key().IsOtherDB())

	// Identity differs, everything else matches.
	assert.Equal(t, native.Name(), twin.Name())
	assert.Equal(t, native.ObjectNameBase(), twin.ObjectNameBase())
	assert.Equal(t, "primary", native.Adjuster().Name())
	assert.Equal(t, "other", twin.Adjuster().Name())
}

func TestNewPair_ConstantFolding(t *testing.T) {
	native, twin, err := NewPair(FamilyConstantFolding, fakeAdjuster{name: "primary"}, fakeAdjuster{name: "other"})
	require.NoError(t, err)

	assert.Equal(t, KeyConstantFolding, native.Key())
	assert.Equal(t, KeyConstantFoldingOtherDB, twin.Key())
}

func TestNewPair_UnknownFamily(t *testing.T) {
	_, _, err := NewPair("warp_drive", fakeAdjuster{name: "primary"}, fakeAdjuster{name: "other"})

	var unknown *UnknownFamilyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "warp_drive", unknown.Family)
}

func TestSetupInfo(t *testing.T) {
	s := NewDataflowRendering(fakeAdjuster{name: "primary"})
	assert.Empty(t, s.SetupInfo())

	s.SetSetupInfo("requires the cluster replica size to be 1")
	assert.Equal(t, "requires the cluster replica size to be 1", s.SetupInfo())
}
