package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testAdjuster passes canonical spellings through unchanged.
type testAdjuster struct{}

func (testAdjuster) Name() string                         { return "test" }
func (testAdjuster) AdjustType(typeName string) string    { return typeName }
func (testAdjuster) AdjustValue(literal, _ string) string { return literal }
func (testAdjuster) VersionQuery() string                 { return "SELECT version();" }
func (testAdjuster) BeginTransaction(level string) string {
	return "BEGIN ISOLATION LEVEL " + level + ";"
}

// taggingAdjuster marks everything it touches so tests can verify the
// adjuster is threaded through generation.
type taggingAdjuster struct{}

func (taggingAdjuster) Name() string                      { return "tagging" }
func (taggingAdjuster) AdjustType(typeName string) string { return "T:" + typeName }
func (taggingAdjuster) AdjustValue(literal, typeName string) string {
	return literal + "/" + typeName
}
func (taggingAdjuster) VersionQuery() string                 { return "SELECT version();" }
func (taggingAdjuster) BeginTransaction(level string) string { return "BEGIN;" }

// sampleValueSet has two INT values and one TEXT value, so the vertical
// layout produces two rows and the text value repeats.
func sampleValueSet() *ValueSet {
	return &ValueSet{
		Types: []TypeValues{
			{
				TypeName:   "INT",
				ColumnName: "t_int",
				Values: []Value{
					{ColumnName: "c_int_1", Literal: "1"},
					{ColumnName: "c_int_2", Literal: "2"},
				},
			},
			{
				TypeName:   "TEXT",
				ColumnName: "t_text",
				Values: []Value{
					{ColumnName: "c_text_1", Literal: "'a'"},
				},
			},
		},
	}
}

func TestValueSetCounts(t *testing.T) {
	set := sampleValueSet()

	assert.Equal(t, 2, set.MaxValueCount(), "largest type has two values")
	assert.Equal(t, 3, set.ValueCount())
}

func TestTypeValuesValueAt_CyclicRepetition(t *testing.T) {
	text := sampleValueSet().Types[1]

	assert.Equal(t, "'a'", text.ValueAt(0).Literal)
	assert.Equal(t, "'a'", text.ValueAt(1).Literal, "single value repeats on every row")
	assert.Equal(t, "'a'", text.ValueAt(5).Literal)
}

func TestStorageLayoutSuffix(t *testing.T) {
	tests := []struct {
		layout    StorageLayout
		suffix    string
		expectErr bool
	}{
		{layout: LayoutHorizontal, suffix: "horiz"},
		{layout: LayoutVertical, suffix: "vert"},
		{layout: LayoutUnresolved, expectErr: true},
		{layout: StorageLayout(42), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.layout.String(), func(t *testing.T) {
			suffix, err := tt.layout.Suffix()
			if tt.expectErr {
				require.Error(t, err)
				var layoutErr *UnsupportedLayoutError
				assert.ErrorAs(t, err, &layoutErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.suffix, suffix)
		})
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		name      string
		layout    StorageLayout
		expectErr bool
	}{
		{name: "horizontal", layout: LayoutHorizontal},
		{name: "vertical", layout: LayoutVertical},
		{name: "unresolved", expectErr: true},
		{name: "diagonal", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := ParseLayout(tt.name)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.layout, layout)
		})
	}
}

func TestRowSelection(t *testing.T) {
	all := AllRows()
	assert.True(t, all.Includes(0))
	assert.True(t, all.Includes(99))

	some := Rows(0, 2)
	assert.True(t, some.Includes(0))
	assert.False(t, some.Includes(1))
	assert.True(t, some.Includes(2))

	// The zero value behaves like AllRows.
	var zero RowSelection
	assert.True(t, zero.Includes(7))
}

func TestColumnSelection(t *testing.T) {
	all := AllColumns()
	assert.True(t, all.Includes("anything"))

	some := Columns("c_int_1")
	assert.True(t, some.Includes("c_int_1"))
	assert.False(t, some.Includes("c_int_2"))

	var zero ColumnSelection
	assert.True(t, zero.Includes("c_text_1"))
}

func TestColumnSpecString(t *testing.T) {
	assert.Equal(t, "c_int_1 INT", ColumnSpec{Name: "c_int_1", TypeName: "INT"}.String())
	assert.Equal(t, "c_int_1", ColumnSpec{Name: "c_int_1"}.String())
}

func TestColumnSpecs_Horizontal(t *testing.T) {
	specs, err := ColumnSpecs(sampleValueSet(), LayoutHorizontal, true, AllColumns(), testAdjuster{})
	require.NoError(t, err)

	require.Len(t, specs, 4)
	assert.Equal(t, ColumnSpec{Name: "row_index", TypeName: "INT"}, specs[0], "row index column comes first")
	assert.Equal(t, ColumnSpec{Name: "c_int_1", TypeName: "INT"}, specs[1])
	assert.Equal(t, ColumnSpec{Name: "c_int_2", TypeName: "INT"}, specs[2])
	assert.Equal(t, ColumnSpec{Name: "c_text_1", TypeName: "TEXT"}, specs[3])
}

func TestColumnSpecs_Vertical(t *testing.T) {
	specs, err := ColumnSpecs(sampleValueSet(), LayoutVertical, true, AllColumns(), testAdjuster{})
	require.NoError(t, err)

	require.Len(t, specs, 3)
	assert.Equal(t, ColumnSpec{Name: "row_index", TypeName: "INT"}, specs[0])
	assert.Equal(t, ColumnSpec{Name: "t_int", TypeName: "INT"}, specs[1])
	assert.Equal(t, ColumnSpec{Name: "t_text", TypeName: "TEXT"}, specs[2])
}

func TestColumnSpecs_WithoutTypes(t *testing.T) {
	specs, err := ColumnSpecs(sampleValueSet(), LayoutVertical, false, AllColumns(), testAdjuster{})
	require.NoError(t, err)

	for _, spec := range specs {
		assert.Empty(t, spec.TypeName, "untyped specs carry no type name")
	}
}

func TestColumnSpecs_ColumnSelection(t *testing.T) {
	specs, err := ColumnSpecs(sampleValueSet(), LayoutHorizontal, false, Columns("c_int_2"), testAdjuster{})
	require.NoError(t, err)

	require.Len(t, specs, 2)
	assert.Equal(t, "row_index", specs[0].Name, "row index is never filtered")
	assert.Equal(t, "c_int_2", specs[1].Name)
}

func TestColumnSpecs_AdjusterApplied(t *testing.T) {
	specs, err := ColumnSpecs(sampleValueSet(), LayoutVertical, true, AllColumns(), taggingAdjuster{})
	require.NoError(t, err)

	assert.Equal(t, "T:INT", specs[0].TypeName, "row index type goes through the adjuster")
	assert.Equal(t, "T:INT", specs[1].TypeName)
	assert.Equal(t, "T:TEXT", specs[2].TypeName)
}

func TestColumnSpecs_UnsupportedLayout(t *testing.T) {
	_, err := ColumnSpecs(sampleValueSet(), LayoutUnresolved, true, AllColumns(), testAdjuster{})
	require.Error(t, err)

	var layoutErr *UnsupportedLayoutError
	require.ErrorAs(t, err, &layoutErr)
	assert.Equal(t, LayoutUnresolved, layoutErr.Layout)
}

func TestValueRows_Horizontal(t *testing.T) {
	rows, err := ValueRows(sampleValueSet(), LayoutHorizontal, AllRows(), AllColumns(), testAdjuster{})
	require.NoError(t, err)

	require.Len(t, rows, 1, "horizontal layout always yields exactly one row")
	assert.Equal(t, []string{"0", "1", "2", "'a'"}, rows[0])
}

func TestValueRows_Vertical(t *testing.T) {
	rows, err := ValueRows(sampleValueSet(), LayoutVertical, AllRows(), AllColumns(), testAdjuster{})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"0", "1", "'a'"}, rows[0])
	assert.Equal(t, []string{"1", "2", "'a'"}, rows[1], "short types repeat cyclically")
}

func TestValueRows_Vertical_RowSelectionKeepsNumbering(t *testing.T) {
	rows, err := ValueRows(sampleValueSet(), LayoutVertical, Rows(1), AllColumns(), testAdjuster{})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0][0], "dropping earlier rows must not renumber later ones")
}

func TestValueRows_Vertical_ColumnSelection(t *testing.T) {
	rows, err := ValueRows(sampleValueSet(), LayoutVertical, AllRows(), Columns("t_int"), testAdjuster{})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"0", "1"}, rows[0])
	assert.Equal(t, []string{"1", "2"}, rows[1])
}

func TestValueRows_AdjusterApplied(t *testing.T) {
	rows, err := ValueRows(sampleValueSet(), LayoutHorizontal, AllRows(), AllColumns(), taggingAdjuster{})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"0", "1/INT", "2/INT", "'a'/TEXT"}, rows[0])
}

func TestValueRows_UnsupportedLayout(t *testing.T) {
	_, err := ValueRows(sampleValueSet(), LayoutUnresolved, AllRows(), AllColumns(), testAdjuster{})

	var layoutErr *UnsupportedLayoutError
	require.ErrorAs(t, err, &layoutErr)
}
