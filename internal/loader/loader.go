// Package loader reads fixture definition files into value sets.
//
// A fixture file is YAML listing data types and their values as canonical
// SQL literals. Unknown top-level fields cause parse errors, so a typo like
// "typos:" surfaces immediately instead of silently producing an empty set.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sqlparity/pkg/fixture"
)

// fixtureFileYAML is an internal type for YAML unmarshaling.
type fixtureFileYAML struct {
	Types []fixtureTypeYAML `yaml:"types"`
}

type fixtureTypeYAML struct {
	Name   string             `yaml:"name"`
	Column string             `yaml:"column"`
	Values []fixtureValueYAML `yaml:"values"`
}

type fixtureValueYAML struct {
	Column  string `yaml:"column"`
	Literal string `yaml:"literal"`
}

// ParseError reports a fixture file that is not valid YAML or uses unknown
// fields.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// ValidationError reports a structurally valid fixture file with
// inconsistent content.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// LoadValueSet reads and validates the fixture definition at path.
func LoadValueSet(path string) (*fixture.ValueSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	set, err := ParseValueSet(data)
	if err != nil {
		return nil, fmt.Errorf("fixture file %s: %w", path, err)
	}
	return set, nil
}

// ParseValueSet parses and validates a fixture definition.
func ParseValueSet(data []byte) (*fixture.ValueSet, error) {
	// Decode into a map first to reject unknown top-level fields.
	var rawMap map[string]any
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	for field := range rawMap {
		if field != "types" {
			return nil, &ParseError{Message: fmt.Sprintf("unknown field %q (known: types)", field)}
		}
	}

	var file fixtureFileYAML
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("failed to parse fixture definition: %v", err)}
	}

	set, err := buildValueSet(file)
	if err != nil {
		return nil, err
	}
	return set, nil
}

func buildValueSet(file fixtureFileYAML) (*fixture.ValueSet, error) {
	if len(file.Types) == 0 {
		return nil, &ValidationError{Message: "fixture defines no types"}
	}

	seenTypeColumns := make(map[string]bool)
	seenValueColumns := make(map[string]bool)

	set := &fixture.ValueSet{Types: make([]fixture.TypeValues, 0, len(file.Types))}
	for i, t := range file.Types {
		if t.Name == "" {
			return nil, &ValidationError{Message: fmt.Sprintf("type %d has no name", i)}
		}
		if t.Column == "" {
			return nil, &ValidationError{Message: fmt.Sprintf("type %s has no column name", t.Name)}
		}
		if seenTypeColumns[t.Column] {
			return nil, &ValidationError{Message: fmt.Sprintf("duplicate type column name %q", t.Column)}
		}
		seenTypeColumns[t.Column] = true
		if len(t.Values) == 0 {
			return nil, &ValidationError{Message: fmt.Sprintf("type %s has no values", t.Name)}
		}

		values := make([]fixture.Value, 0, len(t.Values))
		for j, v := range t.Values {
			if v.Column == "" {
				return nil, &ValidationError{Message: fmt.Sprintf("value %d of type %s has no column name", j, t.Name)}
			}
			if seenValueColumns[v.Column] {
				return nil, &ValidationError{Message: fmt.Sprintf("duplicate value column name %q", v.Column)}
			}
			seenValueColumns[v.Column] = true
			if v.Literal == "" {
				return nil, &ValidationError{Message: fmt.Sprintf("value %s of type %s has no literal", v.Column, t.Name)}
			}
			values = append(values, fixture.Value{ColumnName: v.Column, Literal: v.Literal})
		}

		set.Types = append(set.Types, fixture.TypeValues{
			TypeName:   t.Name,
			ColumnName: t.Column,
			Values:     values,
		})
	}
	return set, nil
}
