package strategy

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlparity/pkg/dialect"
	"github.com/leapstack-labs/sqlparity/pkg/fixture"
)

// DataflowRendering materializes the fixture as physical tables, so queries
// against it are evaluated through the engine's rendered dataflow path.
type DataflowRendering struct {
	Base
}

// NewDataflowRendering returns the family's native instance for the primary
// engine.
func NewDataflowRendering(adj dialect.Adjuster) *DataflowRendering {
	return newDataflowRendering(KeyDataflowRendering, adj)
}

func newDataflowRendering(key Key, adj dialect.Adjuster) *DataflowRendering {
	return &DataflowRendering{
		Base: Base{
			key:            key,
			name:           "Dataflow rendering",
			objectNameBase: "t_dfr",
			adjuster:       adj,
		},
	}
}

func (s *DataflowRendering) GenerateSources(set *fixture.ValueSet) ([]string, error) {
	return generateBothLayouts(s, set)
}

// GenerateForLayout emits a DROP, a typed CREATE TABLE, and one INSERT per
// data row.
func (s *DataflowRendering) GenerateForLayout(set *fixture.ValueSet, layout fixture.StorageLayout, rows fixture.RowSelection, cols fixture.ColumnSelection, overrideName string) ([]string, error) {
	name, err := s.ObjectName(layout, overrideName)
	if err != nil {
		return nil, err
	}
	specs, err := s.columnSpecs(set, layout, true, cols)
	if err != nil {
		return nil, err
	}

	statements := []string{
		fmt.Sprintf("DROP TABLE IF EXISTS %s;", name),
		fmt.Sprintf("CREATE TABLE %s (%s);", name, joinSpecs(specs)),
	}

	valueRows, err := s.valueRows(set, layout, rows, cols)
	if err != nil {
		return nil, err
	}
	for _, row := range valueRows {
		statements = append(statements, fmt.Sprintf("INSERT INTO %s VALUES (%s);", name, strings.Join(row, ", ")))
	}
	return statements, nil
}

var _ Strategy = (*DataflowRendering)(nil)
