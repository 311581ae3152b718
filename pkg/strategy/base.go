package strategy

import (
	"strings"

	"github.com/leapstack-labs/sqlparity/pkg/dialect"
	"github.com/leapstack-labs/sqlparity/pkg/fixture"
)

// Base carries the identity and shared generation helpers of a strategy.
// Concrete strategies embed it and implement the generation methods.
type Base struct {
	key            Key
	name           string
	objectNameBase string
	adjuster       dialect.Adjuster
	setupInfo      string
}

func (b *Base) Key() Key                   { return b.key }
func (b *Base) Name() string               { return b.name }
func (b *Base) ObjectNameBase() string     { return b.objectNameBase }
func (b *Base) Adjuster() dialect.Adjuster { return b.adjuster }
func (b *Base) SetupInfo() string          { return b.setupInfo }
func (b *Base) SetSetupInfo(info string)   { b.setupInfo = info }

// ObjectName derives the database object name for the layout. The override
// wins when non-empty; an unresolved layout is rejected before the override
// is considered.
func (b *Base) ObjectName(layout fixture.StorageLayout, override string) (string, error) {
	if layout == fixture.LayoutUnresolved {
		return "", &fixture.UnresolvedLayoutError{Layout: layout}
	}
	if override != "" {
		return override, nil
	}
	suffix, err := layout.Suffix()
	if err != nil {
		return "", err
	}
	return b.objectNameBase + "_" + suffix, nil
}

func (b *Base) columnSpecs(set *fixture.ValueSet, layout fixture.StorageLayout, includeTypes bool, cols fixture.ColumnSelection) ([]fixture.ColumnSpec, error) {
	return fixture.ColumnSpecs(set, layout, includeTypes, cols, b.adjuster)
}

func (b *Base) valueRows(set *fixture.ValueSet, layout fixture.StorageLayout, rows fixture.RowSelection, cols fixture.ColumnSelection) ([][]string, error) {
	return fixture.ValueRows(set, layout, rows, cols, b.adjuster)
}

// joinSpecs renders a column definition list.
func joinSpecs(specs []fixture.ColumnSpec) string {
	parts := make([]string, len(specs))
	for i, spec := range specs {
		parts[i] = spec.String()
	}
	return strings.Join(parts, ", ")
}

// generateBothLayouts is the shared GenerateSources body: the horizontal
// source first, then the vertical one, with everything selected.
func generateBothLayouts(s Strategy, set *fixture.ValueSet) ([]string, error) {
	statements := make([]string, 0, 4)
	for _, layout := range []fixture.StorageLayout{fixture.LayoutHorizontal, fixture.LayoutVertical} {
		generated, err := s.GenerateForLayout(set, layout, fixture.AllRows(), fixture.AllColumns(), "")
		if err != nil {
			return nil, err
		}
		statements = append(statements, generated...)
	}
	return statements, nil
}
