// Package runner orchestrates fixture deployment and cross-engine
// comparison over executor sessions.
//
// Sessions run concurrently relative to each other; within one session
// statements run strictly in order. The optional journal records every
// statement with its outcome.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlparity/internal/journal"
	"github.com/leapstack-labs/sqlparity/pkg/executor"
	"github.com/leapstack-labs/sqlparity/pkg/fixture"
	"github.com/leapstack-labs/sqlparity/pkg/strategy"
)

// Runner drives deployments and comparisons.
type Runner struct {
	logger  *slog.Logger
	journal *journal.Store
}

// New creates a runner. The journal store may be nil to disable recording;
// a nil logger discards output.
func New(logger *slog.Logger, store *journal.Store) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{logger: logger, journal: store}
}

// Deployment pairs a strategy with the executor that materializes its
// fixture sources.
type Deployment struct {
	Strategy   strategy.Strategy
	Executor   executor.Executor
	EngineName string
}

// DeployOptions configures a deployment run.
type DeployOptions struct {
	Set *fixture.ValueSet

	// Transactional wraps each session's statements in one transaction.
	Transactional bool

	// IsolationLevel is used when Transactional is set.
	IsolationLevel string
}

// DeploymentResult summarizes one session's outcome.
type DeploymentResult struct {
	Strategy   string
	Executor   string
	Engine     string
	Statements int
	SessionID  string
	Err        error
}

// Deploy generates and executes the fixture sources of every deployment,
// one concurrent session each. The returned slice has one entry per
// deployment in input order; the returned error is the first session
// failure.
func (r *Runner) Deploy(ctx context.Context, deployments []Deployment, opts DeployOptions) ([]DeploymentResult, error) {
	results := make([]DeploymentResult, len(deployments))

	g, ctx := errgroup.WithContext(ctx)
	for i, d := range deployments {
		g.Go(func() error {
			results[i] = r.deployOne(ctx, d, opts)
			return results[i].Err
		})
	}
	err := g.Wait()
	return results, err
}

func (r *Runner) deployOne(ctx context.Context, d Deployment, opts DeployOptions) DeploymentResult {
	result := DeploymentResult{
		Strategy: d.Strategy.Name(),
		Executor: d.Executor.Name(),
		Engine:   d.EngineName,
	}

	statements, err := d.Strategy.GenerateSources(opts.Set)
	if err != nil {
		result.Err = fmt.Errorf("failed to generate sources for %s: %w", d.Strategy.Name(), err)
		return result
	}

	sessionID := r.beginSession(d)
	result.SessionID = sessionID
	seq := 0

	fail := func(err error) DeploymentResult {
		r.finishSession(sessionID, journal.SessionFailed, err)
		result.Err = err
		return result
	}

	if opts.Transactional {
		seq++
		start := time.Now()
		err := d.Executor.BeginTx(ctx, opts.IsolationLevel)
		r.recordStatement(sessionID, seq, fmt.Sprintf("BEGIN (%s)", opts.IsolationLevel), journal.StatementTx, err, time.Since(start))
		if err != nil {
			return fail(fmt.Errorf("%s: failed to begin transaction: %w", d.Executor.Name(), err))
		}
	}

	for _, stmt := range statements {
		seq++
		start := time.Now()
		err := d.Executor.DDL(ctx, stmt)
		r.recordStatement(sessionID, seq, stmt, journal.StatementDDL, err, time.Since(start))
		if err != nil {
			if opts.Transactional {
				if rbErr := d.Executor.Rollback(ctx); rbErr != nil {
					r.logger.Warn("rollback failed", "executor", d.Executor.Name(), "error", rbErr)
				}
			}
			return fail(fmt.Errorf("%s: %w", d.Executor.Name(), err))
		}
		result.Statements++
	}

	if opts.Transactional {
		seq++
		start := time.Now()
		err := d.Executor.Commit(ctx)
		r.recordStatement(sessionID, seq, "COMMIT;", journal.StatementTx, err, time.Since(start))
		if err != nil {
			return fail(fmt.Errorf("%s: failed to commit: %w", d.Executor.Name(), err))
		}
	}

	r.finishSession(sessionID, journal.SessionCompleted, nil)
	r.logger.Info("deployed fixture",
		"strategy", d.Strategy.Name(),
		"executor", d.Executor.Name(),
		"statements", result.Statements)
	return result
}

// Journal writes are best effort; a broken journal must not fail a
// deployment.

func (r *Runner) beginSession(d Deployment) string {
	if r.journal == nil {
		return ""
	}
	session, err := r.journal.CreateSession(d.Executor.Name(), d.EngineName, d.Strategy.Name(), d.Strategy.SetupInfo())
	if err != nil {
		r.logger.Warn("failed to create journal session", "error", err)
		return ""
	}
	return session.ID
}

func (r *Runner) recordStatement(sessionID string, seq int, sqlText string, kind journal.StatementKind, execErr error, duration time.Duration) {
	if r.journal == nil || sessionID == "" {
		return
	}
	status := journal.StatementOK
	errMsg := ""
	if execErr != nil {
		status = journal.StatementFailed
		errMsg = execErr.Error()
	}
	if err := r.journal.RecordStatement(sessionID, seq, sqlText, kind, status, errMsg, duration); err != nil {
		r.logger.Warn("failed to record statement", "error", err)
	}
}

func (r *Runner) finishSession(sessionID string, status journal.SessionStatus, execErr error) {
	if r.journal == nil || sessionID == "" {
		return
	}
	errMsg := ""
	if execErr != nil {
		errMsg = execErr.Error()
	}
	if err := r.journal.CompleteSession(sessionID, status, errMsg); err != nil {
		r.logger.Warn("failed to complete journal session", "error", err)
	}
}
