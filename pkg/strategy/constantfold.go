package strategy

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlparity/pkg/dialect"
	"github.com/leapstack-labs/sqlparity/pkg/fixture"
)

// ConstantFolding encodes the fixture as views over constant rows, so
// queries against it are evaluated through the engine's constant-folding
// optimizer path.
type ConstantFolding struct {
	Base
}

// NewConstantFolding returns the family's native instance for the primary
// engine.
func NewConstantFolding(adj dialect.Adjuster) *ConstantFolding {
	return newConstantFolding(KeyConstantFolding, adj)
}

func newConstantFolding(key Key, adj dialect.Adjuster) *ConstantFolding {
	return &ConstantFolding{
		Base: Base{
			key:            key,
			name:           "Constant folding",
			objectNameBase: "v_ctf",
			adjuster:       adj,
		},
	}
}

func (s *ConstantFolding) GenerateSources(set *fixture.ValueSet) ([]string, error) {
	return generateBothLayouts(s, set)
}

// GenerateForLayout emits a single CREATE OR REPLACE VIEW whose body selects
// the data rows joined by UNION. The column list is untyped; the view infers
// column types from the literals.
func (s *ConstantFolding) GenerateForLayout(set *fixture.ValueSet, layout fixture.StorageLayout, rows fixture.RowSelection, cols fixture.ColumnSelection, overrideName string) ([]string, error) {
	name, err := s.ObjectName(layout, overrideName)
	if err != nil {
		return nil, err
	}
	specs, err := s.columnSpecs(set, layout, false, cols)
	if err != nil {
		return nil, err
	}
	valueRows, err := s.valueRows(set, layout, rows, cols)
	if err != nil {
		return nil, err
	}

	rowSpecs := make([]string, len(valueRows))
	for i, row := range valueRows {
		rowSpecs[i] = strings.Join(row, ", ")
	}
	body := strings.Join(rowSpecs, "\n    UNION SELECT ")

	statement := fmt.Sprintf("CREATE OR REPLACE VIEW %s (%s)\n AS SELECT %s;", name, joinSpecs(specs), body)
	return []string{statement}, nil
}

var _ Strategy = (*ConstantFolding)(nil)
