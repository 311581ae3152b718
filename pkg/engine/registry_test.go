package engine

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlparity/pkg/dialect"
)

type stubEngine struct{}

func (stubEngine) Name() string               { return "stub" }
func (stubEngine) Adjuster() dialect.Adjuster { return nil }
func (stubEngine) Open(context.Context, TargetConfig) (*sql.DB, error) {
	return nil, nil
}

func TestUnknownEngineError_Error(t *testing.T) {
	err := &UnknownEngineError{
		Type:      "fake_db",
		Available: []string{"duckdb", "postgres"},
	}

	msg := err.Error()

	assert.Contains(t, msg, "fake_db", "error should mention the unknown type")
	assert.Contains(t, msg, "sqlparity.yaml", "error should mention the config file")
}

func TestRegister(t *testing.T) {
	Register("test_engine_internal", func() Engine { return stubEngine{} })

	assert.True(t, IsRegistered("test_engine_internal"))

	factory, ok := Get("test_engine_internal")
	assert.True(t, ok)
	assert.NotNil(t, factory)
}

func TestNew_EmptyType(t *testing.T) {
	_, err := New(TargetConfig{Type: ""})

	require.Error(t, err)
	assert.Equal(t, "engine type not specified", err.Error())
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(TargetConfig{Type: "no_such_engine"})

	var unknown *UnknownEngineError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "no_such_engine", unknown.Type)
}

func TestListEngines_Sorted(t *testing.T) {
	Register("zz_test_engine", func() Engine { return stubEngine{} })
	Register("aa_test_engine", func() Engine { return stubEngine{} })

	names := ListEngines()

	assert.Contains(t, names, "aa_test_engine")
	assert.Contains(t, names, "zz_test_engine")
	assert.IsIncreasing(t, names)
}
