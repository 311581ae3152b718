// Package config provides configuration management for the sqlparity CLI.
//
// Configuration is layered: built-in defaults, then sqlparity.yaml, then
// SQLPARITY_* environment variables, then command-line flags.
package config

import (
	"github.com/leapstack-labs/sqlparity/pkg/engine"
	"github.com/leapstack-labs/sqlparity/pkg/fixture"
)

// TargetConfig is an alias for the engine target configuration. This
// allows CLI code to use config.TargetConfig without importing pkg/engine.
type TargetConfig = engine.TargetConfig

// Config holds all CLI configuration options.
type Config struct {
	FixturePath    string                  `koanf:"fixture_path"`
	JournalPath    string                  `koanf:"journal_path"`
	Verbose        bool                    `koanf:"verbose"`
	OutputFormat   string                  `koanf:"output"`
	IsolationLevel string                  `koanf:"isolation_level"`
	Transactional  bool                    `koanf:"transactional"`
	Strategies     []string                `koanf:"strategies"`
	Layouts        []fixture.StorageLayout `koanf:"layouts"`

	// Target is the primary session's database. OtherTarget, when set,
	// is the counterpart session for cross-database runs; fields it
	// leaves empty are inherited from Target.
	Target      *TargetConfig `koanf:"target"`
	OtherTarget *TargetConfig `koanf:"other_target"`
}

// Default configuration values.
const (
	DefaultFixtureFile = "fixture.yaml"
	DefaultJournalFile = ".sqlparity/journal.db"
	DefaultIsolation   = "SERIALIZABLE"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
