package executor

import (
	"fmt"
	"strings"
)

// FormatValue renders a result cell the way it is displayed and compared
// across engines. Drivers disagree on Go types for the same SQL value, so
// comparisons always go through this textual form.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// FormatRow renders a full result row.
func FormatRow(row []any) string {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = FormatValue(v)
	}
	return strings.Join(cells, ", ")
}
