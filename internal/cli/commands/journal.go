package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlparity/internal/cli/output"
	"github.com/leapstack-labs/sqlparity/internal/journal"
)

// NewJournalCommand creates the journal command group.
func NewJournalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect recorded deployment sessions",
		Long: `Inspect the session journal. Every deploy records one session per
strategy and executor, with each executed statement, its outcome, and
its duration.`,
	}

	cmd.AddCommand(newJournalListCommand())
	cmd.AddCommand(newJournalShowCommand())

	return cmd
}

func newJournalListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		Example: `  # Show the most recent sessions
  sqlparity journal list

  # Show more history
  sqlparity journal list --limit 50`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJournalList(cmd, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of sessions to show")

	return cmd
}

func newJournalShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the statements of one session",
		Args:  cobra.ExactArgs(1),
		Example: `  # Show a session by ID (prefixes work)
  sqlparity journal show 3f2a9c1e`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalShow(cmd, args[0])
		},
	}

	return cmd
}

func openJournalStore(cmd *cobra.Command) (*journal.Store, *CommandContext, error) {
	cmdCtx := NewCommandContext(cmd)
	path := cmdCtx.Cfg.JournalPath

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("no journal found at %s (run 'sqlparity deploy' first)", path)
	}

	store, err := journal.Open(path, cmdCtx.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return store, cmdCtx, nil
}

func runJournalList(cmd *cobra.Command, limit int) error {
	store, cmdCtx, err := openJournalStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sessions, err := store.ListSessions(limit)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.Mode() == output.ModeJSON {
		out := make([]output.SessionOutput, 0, len(sessions))
		for _, s := range sessions {
			out = append(out, sessionOutput(s))
		}
		return r.JSON(out)
	}

	if len(sessions) == 0 {
		r.Println("No sessions recorded yet")
		return nil
	}

	styles := r.Styles()
	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Engine", "Strategy", "Status", "Started", "Error"})
	for _, s := range sessions {
		status := string(s.Status)
		switch s.Status {
		case journal.SessionCompleted:
			status = styles.Success.Render(status)
		case journal.SessionFailed:
			status = styles.Error.Render(status)
		}
		t.AppendRow(table.Row{
			shortID(s.ID),
			s.Name,
			s.Engine,
			s.Strategy,
			status,
			s.StartedAt.Format("2006-01-02 15:04:05"),
			truncate(s.Error, 40),
		})
	}
	if r.Mode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}

	return nil
}

func runJournalShow(cmd *cobra.Command, id string) error {
	store, cmdCtx, err := openJournalStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	session, err := resolveSession(store, id)
	if err != nil {
		return err
	}

	statements, err := store.SessionStatements(session.ID)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.Mode() == output.ModeJSON {
		out := struct {
			Session    output.SessionOutput     `json:"session"`
			Statements []output.StatementOutput `json:"statements"`
		}{Session: sessionOutput(session)}
		for _, st := range statements {
			so := output.StatementOutput{
				Seq:        st.Seq,
				SQL:        st.SQL,
				Kind:       string(st.Kind),
				Status:     string(st.Status),
				DurationMS: st.DurationMS,
				Error:      st.Error,
			}
			out.Statements = append(out.Statements, so)
		}
		return r.JSON(out)
	}

	r.Header(fmt.Sprintf("Session %s", shortID(session.ID)))
	r.Println(fmt.Sprintf("Name:     %s", session.Name))
	r.Println(fmt.Sprintf("Engine:   %s", session.Engine))
	r.Println(fmt.Sprintf("Strategy: %s", session.Strategy))
	r.Println(fmt.Sprintf("Status:   %s", session.Status))
	if session.SetupInfo != "" {
		r.Println(fmt.Sprintf("Setup:    %s", session.SetupInfo))
	}
	if session.Error != "" {
		r.Println(fmt.Sprintf("Error:    %s", session.Error))
	}
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Seq", "Kind", "Status", "Duration", "SQL"})
	for _, st := range statements {
		status := string(st.Status)
		if st.Status == journal.StatementFailed {
			status = r.Styles().Error.Render(status)
		}
		t.AppendRow(table.Row{
			st.Seq,
			string(st.Kind),
			status,
			fmt.Sprintf("%dms", st.DurationMS),
			truncate(st.SQL, 70),
		})
	}
	if r.Mode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}

	return nil
}

// resolveSession finds a session by full ID or unique prefix.
func resolveSession(store *journal.Store, id string) (*journal.Session, error) {
	if session, err := store.GetSession(id); err == nil {
		return session, nil
	}

	sessions, err := store.ListSessions(0)
	if err != nil {
		return nil, err
	}
	var match *journal.Session
	for _, s := range sessions {
		if strings.HasPrefix(s.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("session ID %q is ambiguous", id)
			}
			match = s
		}
	}
	if match == nil {
		return nil, fmt.Errorf("session %q not found", id)
	}
	return match, nil
}

func sessionOutput(s *journal.Session) output.SessionOutput {
	out := output.SessionOutput{
		ID:        s.ID,
		Name:      s.Name,
		Engine:    s.Engine,
		Strategy:  s.Strategy,
		Status:    string(s.Status),
		StartedAt: s.StartedAt.Format("2006-01-02 15:04:05"),
		Error:     s.Error,
	}
	if s.CompletedAt != nil {
		out.CompletedAt = s.CompletedAt.Format("2006-01-02 15:04:05")
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
