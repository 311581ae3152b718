package strategy

import (
	"github.com/leapstack-labs/sqlparity/pkg/dialect"
	"github.com/leapstack-labs/sqlparity/pkg/fixture"
)

// Dummy is the placeholder strategy used where a strategy value is required
// but no database objects should be generated, e.g. when a query is checked
// against a constant expected result instead of a second engine.
type Dummy struct {
	Base
}

// NewDummy returns the placeholder strategy.
func NewDummy(adj dialect.Adjuster) *Dummy {
	return &Dummy{
		Base: Base{
			key:            KeyDummy,
			name:           "Dummy",
			objectNameBase: "<source>",
			adjuster:       adj,
		},
	}
}

func (s *Dummy) GenerateSources(_ *fixture.ValueSet) ([]string, error) {
	return nil, nil
}

func (s *Dummy) GenerateForLayout(_ *fixture.ValueSet, _ fixture.StorageLayout, _ fixture.RowSelection, _ fixture.ColumnSelection, _ string) ([]string, error) {
	return nil, nil
}

var _ Strategy = (*Dummy)(nil)
