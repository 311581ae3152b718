package postgres

import (
	"fmt"

	"github.com/leapstack-labs/sqlparity/pkg/dialect"
)

// adjuster is the PostgreSQL dialect adjuster. Canonical spellings are the
// postgres ones, so types and values pass through unchanged.
type adjuster struct{}

// NewAdjuster returns the PostgreSQL dialect adjuster.
func NewAdjuster() dialect.Adjuster {
	return adjuster{}
}

func (adjuster) Name() string {
	return "postgres"
}

func (adjuster) AdjustType(typeName string) string {
	return typeName
}

func (adjuster) AdjustValue(literal, _ string) string {
	return literal
}

func (adjuster) VersionQuery() string {
	return "SELECT version();"
}

func (adjuster) BeginTransaction(isolationLevel string) string {
	return fmt.Sprintf("BEGIN ISOLATION LEVEL %s;", isolationLevel)
}

var _ dialect.Adjuster = adjuster{}
