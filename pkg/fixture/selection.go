package fixture

// RowSelection decides which data rows a generation pass keeps. The zero
// value selects every row.
//
// Filtering happens after a row is fully built, so a selection never changes
// the row numbering: row 3 carries row index 3 whether or not rows 0 to 2
// were kept.
type RowSelection struct {
	keys map[int]struct{}
}

// AllRows returns a selection that keeps every row.
func AllRows() RowSelection {
	return RowSelection{}
}

// Rows returns a selection that keeps only the given row indexes.
func Rows(indexes ...int) RowSelection {
	keys := make(map[int]struct{}, len(indexes))
	for _, i := range indexes {
		keys[i] = struct{}{}
	}
	return RowSelection{keys: keys}
}

// Includes reports whether the row at the given index is kept.
func (s RowSelection) Includes(index int) bool {
	if s.keys == nil {
		return true
	}
	_, ok := s.keys[index]
	return ok
}

// ColumnSelection decides which generated columns a generation pass keeps,
// by column name. The zero value selects every column.
type ColumnSelection struct {
	keys map[string]struct{}
}

// AllColumns returns a selection that keeps every column.
func AllColumns() ColumnSelection {
	return ColumnSelection{}
}

// Columns returns a selection that keeps only the given column names.
func Columns(names ...string) ColumnSelection {
	keys := make(map[string]struct{}, len(names))
	for _, n := range names {
		keys[n] = struct{}{}
	}
	return ColumnSelection{keys: keys}
}

// Includes reports whether the named column is kept.
func (s ColumnSelection) Includes(name string) bool {
	if s.keys == nil {
		return true
	}
	_, ok := s.keys[name]
	return ok
}
