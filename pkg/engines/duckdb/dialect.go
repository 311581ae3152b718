package duckdb

import (
	"strings"

	"github.com/leapstack-labs/sqlparity/pkg/dialect"
)

// typeRewrites maps canonical type names to their DuckDB spellings. Types
// not listed here pass through unchanged.
var typeRewrites = map[string]string{
	"INT":              "INTEGER",
	"TEXT":             "VARCHAR",
	"DOUBLE PRECISION": "DOUBLE",
	"REAL":             "FLOAT",
	"TIMESTAMPTZ":      "TIMESTAMP WITH TIME ZONE",
}

// adjuster is the DuckDB dialect adjuster.
type adjuster struct{}

// NewAdjuster returns the DuckDB dialect adjuster.
func NewAdjuster() dialect.Adjuster {
	return adjuster{}
}

func (adjuster) Name() string {
	return "duckdb"
}

func (a adjuster) AdjustType(typeName string) string {
	if rewritten, ok := typeRewrites[typeName]; ok {
		return rewritten
	}
	return typeName
}

// AdjustValue rewrites the type of a trailing cast, so "'1'::INT" becomes
// "'1'::INTEGER". Literals without a cast pass through unchanged.
func (a adjuster) AdjustValue(literal, _ string) string {
	idx := strings.LastIndex(literal, "::")
	if idx < 0 {
		return literal
	}
	return literal[:idx] + "::" + a.AdjustType(literal[idx+2:])
}

func (adjuster) VersionQuery() string {
	return "PRAGMA version;"
}

// BeginTransaction ignores the isolation level; DuckDB transactions have a
// single isolation behavior.
func (adjuster) BeginTransaction(_ string) string {
	return "BEGIN TRANSACTION;"
}

var _ dialect.Adjuster = adjuster{}
