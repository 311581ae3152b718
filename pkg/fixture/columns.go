package fixture

import (
	"strconv"

	"github.com/leapstack-labs/sqlparity/pkg/dialect"
)

// ColumnSpec is one column of a generated database object.
type ColumnSpec struct {
	Name string

	// TypeName is the dialect-adjusted type. It is empty when the target
	// object infers column types from the literals, as views do.
	TypeName string
}

// String renders the spec as it appears in a column definition list.
func (c ColumnSpec) String() string {
	if c.TypeName == "" {
		return c.Name
	}
	return c.Name + " " + c.TypeName
}

// ColumnSpecs produces the column list for a value set under the given
// layout. The row-index column always comes first and is never subject to
// the column selection. When includeTypes is set, every column carries its
// dialect-adjusted type.
func ColumnSpecs(set *ValueSet, layout StorageLayout, includeTypes bool, cols ColumnSelection, adj dialect.Adjuster) ([]ColumnSpec, error) {
	if layout != LayoutHorizontal && layout != LayoutVertical {
		return nil, &UnsupportedLayoutError{Layout: layout}
	}

	specs := make([]ColumnSpec, 0, set.ValueCount()+1)
	rowIndexType := ""
	if includeTypes {
		rowIndexType = adj.AdjustType(RowIndexType)
	}
	specs = append(specs, ColumnSpec{Name: RowIndexColumn, TypeName: rowIndexType})

	for _, t := range set.Types {
		typeName := ""
		if includeTypes {
			typeName = adj.AdjustType(t.TypeName)
		}
		switch layout {
		case LayoutHorizontal:
			for _, v := range t.Values {
				if !cols.Includes(v.ColumnName) {
					continue
				}
				specs = append(specs, ColumnSpec{Name: v.ColumnName, TypeName: typeName})
			}
		case LayoutVertical:
			if cols.Includes(t.ColumnName) {
				specs = append(specs, ColumnSpec{Name: t.ColumnName, TypeName: typeName})
			}
		}
	}
	return specs, nil
}

// ValueRows produces the data rows for a value set under the given layout.
// Every row starts with its row index rendered as a literal. The horizontal
// layout always yields exactly one row; the vertical layout yields
// MaxValueCount rows, then drops the ones the row selection excludes.
func ValueRows(set *ValueSet, layout StorageLayout, rows RowSelection, cols ColumnSelection, adj dialect.Adjuster) ([][]string, error) {
	switch layout {
	case LayoutHorizontal:
		return [][]string{horizontalValueRow(set, cols, adj)}, nil
	case LayoutVertical:
		return verticalValueRows(set, rows, cols, adj), nil
	default:
		return nil, &UnsupportedLayoutError{Layout: layout}
	}
}

func horizontalValueRow(set *ValueSet, cols ColumnSelection, adj dialect.Adjuster) []string {
	row := make([]string, 0, set.ValueCount()+1)
	row = append(row, "0")
	for _, t := range set.Types {
		for _, v := range t.Values {
			if !cols.Includes(v.ColumnName) {
				continue
			}
			row = append(row, adj.AdjustValue(v.Literal, t.TypeName))
		}
	}
	return row
}

func verticalValueRows(set *ValueSet, rows RowSelection, cols ColumnSelection, adj dialect.Adjuster) [][]string {
	out := make([][]string, 0, set.MaxValueCount())
	for rowIndex := 0; rowIndex < set.MaxValueCount(); rowIndex++ {
		row := make([]string, 0, len(set.Types)+1)
		row = append(row, strconv.Itoa(rowIndex))
		for _, t := range set.Types {
			if !cols.Includes(t.ColumnName) {
				continue
			}
			row = append(row, adj.AdjustValue(t.ValueAt(rowIndex).Literal, t.TypeName))
		}
		if rows.Includes(rowIndex) {
			out = append(out, row)
		}
	}
	return out
}
