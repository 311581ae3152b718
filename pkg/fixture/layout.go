package fixture

import "fmt"

// StorageLayout is the physical shape used to encode a value set in a
// database object.
type StorageLayout int

const (
	// LayoutUnresolved is a placeholder used while the layout choice is
	// still open. It must be resolved to a concrete layout before any name
	// or source generation.
	LayoutUnresolved StorageLayout = iota

	// LayoutHorizontal stores the whole value set in a single row with one
	// column per value.
	LayoutHorizontal

	// LayoutVertical stores one column per type and as many rows as the
	// largest type has values; shorter types repeat cyclically.
	LayoutVertical
)

// RowIndexColumn is the name of the synthetic first column present under
// every layout.
const RowIndexColumn = "row_index"

// RowIndexType is the canonical type of the row-index column.
const RowIndexType = "INT"

func (l StorageLayout) String() string {
	switch l {
	case LayoutUnresolved:
		return "unresolved"
	case LayoutHorizontal:
		return "horizontal"
	case LayoutVertical:
		return "vertical"
	default:
		return fmt.Sprintf("StorageLayout(%d)", int(l))
	}
}

// Suffix returns the database object name suffix of the layout.
func (l StorageLayout) Suffix() (string, error) {
	switch l {
	case LayoutHorizontal:
		return "horiz", nil
	case LayoutVertical:
		return "vert", nil
	default:
		return "", &UnsupportedLayoutError{Layout: l}
	}
}

// ParseLayout maps a layout name to its StorageLayout value. It accepts the
// names produced by String except "unresolved", which is not a valid
// configuration value.
func ParseLayout(name string) (StorageLayout, error) {
	switch name {
	case "horizontal":
		return LayoutHorizontal, nil
	case "vertical":
		return LayoutVertical, nil
	default:
		return LayoutUnresolved, fmt.Errorf("unknown storage layout %q (known: horizontal, vertical)", name)
	}
}

// UnresolvedLayoutError reports use of the layout placeholder where a
// concrete layout is required.
type UnresolvedLayoutError struct {
	Layout StorageLayout
}

func (e *UnresolvedLayoutError) Error() string {
	return fmt.Sprintf("storage layout %s has not been resolved to a real one", e.Layout)
}

// UnsupportedLayoutError reports a layout no generation rule exists for.
type UnsupportedLayoutError struct {
	Layout StorageLayout
}

func (e *UnsupportedLayoutError) Error() string {
	return fmt.Sprintf("unsupported storage layout: %s", e.Layout)
}
