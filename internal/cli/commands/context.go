// Package commands implements the sqlparity subcommands.
package commands

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/sqlparity/internal/cli/config"
	"github.com/leapstack-labs/sqlparity/internal/cli/output"
	"github.com/leapstack-labs/sqlparity/internal/journal"
	"github.com/leapstack-labs/sqlparity/pkg/dialect"
	"github.com/leapstack-labs/sqlparity/pkg/engine"
	"github.com/leapstack-labs/sqlparity/pkg/executor"
	"github.com/leapstack-labs/sqlparity/pkg/fixture"
	"github.com/leapstack-labs/sqlparity/pkg/strategy"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the config, logger and renderer for a
// command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.OutputMode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		FixturePath:    getEnvOrDefault("SQLPARITY_FIXTURE_PATH", config.DefaultFixtureFile),
		JournalPath:    getEnvOrDefault("SQLPARITY_JOURNAL_PATH", config.DefaultJournalFile),
		IsolationLevel: getEnvOrDefault("SQLPARITY_ISOLATION_LEVEL", config.DefaultIsolation),
		OutputFormat:   os.Getenv("SQLPARITY_OUTPUT"),
		Verbose:        os.Getenv("SQLPARITY_VERBOSE") == "true",
		Strategies:     strategy.Families,
		Layouts:        []fixture.StorageLayout{fixture.LayoutHorizontal, fixture.LayoutVertical},
		Target:         &config.TargetConfig{Type: "duckdb"},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// session bundles one live executor with the pool it runs on.
type session struct {
	Exec       *executor.Live
	EngineName string
	db         *sql.DB
}

// openSession creates the engine for the target, opens its pool and pins
// a named executor session on it.
func openSession(ctx context.Context, name string, target *config.TargetConfig, logger *slog.Logger, printer executor.Printer) (*session, error) {
	eng, err := engine.New(*target)
	if err != nil {
		return nil, err
	}

	db, err := eng.Open(ctx, *target)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s target: %w", eng.Name(), err)
	}

	exec, err := executor.NewLive(ctx, name, db, eng.Adjuster(), printer, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &session{Exec: exec, EngineName: eng.Name(), db: db}, nil
}

func (s *session) Close() {
	_ = s.Exec.Close()
	_ = s.db.Close()
}

// ensurePassword fills in the target password, prompting on the terminal
// without echo when the target points at a network host and carries no
// credential. Non-interactive runs proceed with the empty password, which
// engines with trust auth accept.
func ensurePassword(name string, target *config.TargetConfig) {
	if target == nil || target.Host == "" || target.Password != "" {
		return
	}
	if !isTerminal(os.Stdin) {
		return
	}
	fmt.Fprintf(os.Stderr, "Password for %s target: ", name)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err == nil {
		target.Password = string(b)
	}
}

// targetAdjuster resolves the dialect adjuster of a target without
// opening a connection.
func targetAdjuster(target *config.TargetConfig) (string, dialect.Adjuster, error) {
	eng, err := engine.New(*target)
	if err != nil {
		return "", nil, err
	}
	return eng.Name(), eng.Adjuster(), nil
}

// openJournal opens the session journal. Journal writes are best effort,
// so an unavailable journal degrades to a warning.
func openJournal(cfg *config.Config, logger *slog.Logger) *journal.Store {
	store, err := journal.Open(cfg.JournalPath, logger)
	if err != nil {
		logger.Warn("journal unavailable", "path", cfg.JournalPath, "error", err)
		return nil
	}
	return store
}
