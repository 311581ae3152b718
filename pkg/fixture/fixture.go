// Package fixture models the typed test data deployed into comparison
// databases.
//
// A ValueSet is an ordered collection of data types, each carrying an ordered
// list of values rendered as canonical SQL literals. The same value set is
// encoded under different storage layouts by the strategy package; this
// package owns the layout-independent pieces: the data model, the storage
// layouts, row and column selections, and the shared column and row
// generation rules.
package fixture

// Value is a single typed test value, already rendered as a canonical SQL
// literal by the upstream provider.
type Value struct {
	// ColumnName is the value's column name under the horizontal layout,
	// unique across the whole value set.
	ColumnName string

	// Literal is the canonical SQL literal of the value, e.g. "1" or
	// "'2024-01-01'::DATE".
	Literal string
}

// TypeValues groups the values of one data type.
type TypeValues struct {
	// TypeName is the canonical type name embedded in typed column
	// definitions, e.g. "INT" or "TEXT".
	TypeName string

	// ColumnName is the shared column name of the type under the vertical
	// layout.
	ColumnName string

	// Values holds the type's values in fixture order.
	Values []Value
}

// ValueAt returns the value for the given row index. Types with fewer values
// than the vertical row count repeat their values cyclically so every row is
// complete.
func (t TypeValues) ValueAt(rowIndex int) Value {
	return t.Values[rowIndex%len(t.Values)]
}

// ValueSet is the ordered collection of typed values shared by all
// strategies of a comparison run.
type ValueSet struct {
	Types []TypeValues
}

// MaxValueCount returns the largest value count across all types. It is the
// number of data rows the vertical layout produces.
func (s *ValueSet) MaxValueCount() int {
	max := 0
	for _, t := range s.Types {
		if len(t.Values) > max {
			max = len(t.Values)
		}
	}
	return max
}

// ValueCount returns the total number of values across all types.
func (s *ValueSet) ValueCount() int {
	count := 0
	for _, t := range s.Types {
		count += len(t.Values)
	}
	return count
}
