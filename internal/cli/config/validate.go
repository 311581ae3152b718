package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlparity/pkg/executor"
	"github.com/leapstack-labs/sqlparity/pkg/strategy"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.IsolationLevel {
	case executor.IsolationSerializable, executor.IsolationRepeatableRead, executor.IsolationReadCommitted:
	default:
		return fmt.Errorf("unknown isolation level %q\nHint: Use SERIALIZABLE, REPEATABLE READ or READ COMMITTED", c.IsolationLevel)
	}

	if len(c.Strategies) == 0 {
		return fmt.Errorf("no strategies configured\nHint: Set strategies to a subset of [%s]", strings.Join(strategy.Families, ", "))
	}
	for _, family := range c.Strategies {
		if !slices.Contains(strategy.Families, family) {
			return &strategy.UnknownFamilyError{Family: family}
		}
	}

	if len(c.Layouts) == 0 {
		return fmt.Errorf("no storage layouts configured\nHint: Set layouts to a subset of [horizontal, vertical]")
	}

	return nil
}
