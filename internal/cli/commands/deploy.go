package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlparity/internal/cli/config"
	"github.com/leapstack-labs/sqlparity/internal/cli/output"
	"github.com/leapstack-labs/sqlparity/internal/loader"
	"github.com/leapstack-labs/sqlparity/internal/runner"
	"github.com/leapstack-labs/sqlparity/pkg/executor"
	"github.com/leapstack-labs/sqlparity/pkg/strategy"
)

// DeployOptions holds options for the deploy command.
type DeployOptions struct {
	DryRun        bool
	Transactional bool
}

// NewDeployCommand creates the deploy command.
func NewDeployCommand() *cobra.Command {
	opts := &DeployOptions{}

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy fixture objects to the configured targets",
		Long: `Deploy the fixture sources of every configured evaluation strategy
into the target database, one session per strategy. With an other_target
configured, each strategy's counterpart fixture is deployed there as
well, so the same query can later be compared across databases.

Executed statements are recorded in the session journal.`,
		Example: `  # Deploy all configured strategies
  sqlparity deploy

  # Show the statements without executing them
  sqlparity deploy --dry-run

  # Deploy each fixture in a single transaction
  sqlparity deploy --transactional`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeploy(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print statements instead of executing them")
	cmd.Flags().BoolVar(&opts.Transactional, "transactional", false, "Wrap each deployment in a transaction")

	return cmd
}

func runDeploy(cmd *cobra.Command, opts *DeployOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	set, err := loader.LoadValueSet(cfg.FixturePath)
	if err != nil {
		return err
	}

	deployments, cleanup, err := buildDeployments(cmd, cmdCtx, opts.DryRun)
	if err != nil {
		return err
	}
	defer cleanup()

	run := runner.New(cmdCtx.Logger, nil)
	if !opts.DryRun {
		if s := openJournal(cfg, cmdCtx.Logger); s != nil {
			defer func() { _ = s.Close() }()
			run = runner.New(cmdCtx.Logger, s)
		}
	}

	results, deployErr := run.Deploy(cmd.Context(), deployments, runner.DeployOptions{
		Set:            set,
		Transactional:  opts.Transactional,
		IsolationLevel: cfg.IsolationLevel,
	})

	if err := renderDeployResults(r, results); err != nil {
		return err
	}
	return deployErr
}

// buildDeployments opens one executor session per strategy and target.
// Sessions are not shared between deployments so transactional runs stay
// isolated.
func buildDeployments(cmd *cobra.Command, cmdCtx *CommandContext, dryRun bool) ([]runner.Deployment, func(), error) {
	cfg := cmdCtx.Cfg
	ctx := cmd.Context()

	primaryEngine, primaryAdj, err := targetAdjuster(cfg.Target)
	if err != nil {
		return nil, nil, err
	}

	otherEngine := ""
	otherAdj := primaryAdj
	dual := cfg.OtherTarget != nil
	if dual {
		otherEngine, otherAdj, err = targetAdjuster(cfg.OtherTarget)
		if err != nil {
			return nil, nil, err
		}
	}

	if !dryRun {
		ensurePassword("primary", cfg.Target)
		if dual {
			ensurePassword("other", cfg.OtherTarget)
		}
	}

	var (
		deployments []runner.Deployment
		closers     []func()
	)
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	open := func(name, engineName string, target *config.TargetConfig) (executor.Executor, error) {
		if dryRun {
			return executor.NewDryRun(name, cmdCtx.Renderer), nil
		}
		sess, err := openSession(ctx, name, target, cmdCtx.Logger, cmdCtx.Renderer)
		if err != nil {
			return nil, err
		}
		closers = append(closers, sess.Close)
		if cfg.Verbose {
			if version, err := sess.Exec.QueryVersion(ctx); err == nil {
				cmdCtx.Renderer.Println(fmt.Sprintf("%s: %s %s", name, engineName, version))
			}
		}
		return sess.Exec, nil
	}

	for _, family := range cfg.Strategies {
		if dual {
			native, twin, err := strategy.NewPair(family, primaryAdj, otherAdj)
			if err != nil {
				cleanup()
				return nil, nil, err
			}

			primaryExec, err := open("primary", primaryEngine, cfg.Target)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			otherExec, err := open("other", otherEngine, cfg.OtherTarget)
			if err != nil {
				cleanup()
				return nil, nil, err
			}

			deployments = append(deployments,
				runner.Deployment{Strategy: native, Executor: primaryExec, EngineName: primaryEngine},
				runner.Deployment{Strategy: twin, Executor: otherExec, EngineName: otherEngine},
			)
			continue
		}

		strat, err := strategy.New(family, primaryAdj)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		primaryExec, err := open("primary", primaryEngine, cfg.Target)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		deployments = append(deployments, runner.Deployment{
			Strategy:   strat,
			Executor:   primaryExec,
			EngineName: primaryEngine,
		})
	}

	return deployments, cleanup, nil
}

func renderDeployResults(r *output.Renderer, results []runner.DeploymentResult) error {
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}

	if r.Mode() == output.ModeJSON {
		out := output.DeployOutput{Failed: failed}
		for _, res := range results {
			d := output.DeploymentOutput{
				Strategy:   res.Strategy,
				Executor:   res.Executor,
				Engine:     res.Engine,
				Statements: res.Statements,
				SessionID:  res.SessionID,
			}
			if res.Err != nil {
				d.Error = res.Err.Error()
			}
			out.Deployments = append(out.Deployments, d)
		}
		return r.JSON(out)
	}

	styles := r.Styles()
	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Strategy", "Executor", "Engine", "Statements", "Status"})
	for _, res := range results {
		status := styles.StatusSuccess.String()
		if res.Err != nil {
			status = styles.StatusFailed.String()
		}
		t.AppendRow(table.Row{res.Strategy, res.Executor, res.Engine, res.Statements, status})
	}
	if r.Mode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}

	if failed == 0 {
		r.Success(fmt.Sprintf("Deployed %d fixture(s)", len(results)))
	}
	return nil
}
