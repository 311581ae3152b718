package output

// JSON payloads emitted by commands in ModeJSON.

// GenerateOutput is one strategy's generated fixture sources.
type GenerateOutput struct {
	Strategy   string   `json:"strategy"`
	Statements []string `json:"statements"`
}

// DeploymentOutput is one session's deployment outcome.
type DeploymentOutput struct {
	Strategy   string `json:"strategy"`
	Executor   string `json:"executor"`
	Engine     string `json:"engine"`
	Statements int    `json:"statements"`
	SessionID  string `json:"session_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// DeployOutput summarizes a deploy invocation.
type DeployOutput struct {
	Deployments []DeploymentOutput `json:"deployments"`
	Failed      int                `json:"failed"`
}

// CompareMismatch is one differing row in a comparison.
type CompareMismatch struct {
	Row     int    `json:"row"`
	Primary string `json:"primary"`
	Other   string `json:"other"`
}

// CompareOutput is the outcome of comparing one query across sessions.
type CompareOutput struct {
	Query         string            `json:"query"`
	Primary       string            `json:"primary"`
	Other         string            `json:"other"`
	Equal         bool              `json:"equal"`
	ColumnsDiffer bool              `json:"columns_differ,omitempty"`
	Mismatches    []CompareMismatch `json:"mismatches,omitempty"`
}

// SessionOutput is one journal session row.
type SessionOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Engine      string `json:"engine"`
	Strategy    string `json:"strategy"`
	Status      string `json:"status"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	Error       string `json:"error,omitempty"`
}

// StatementOutput is one journal statement row.
type StatementOutput struct {
	Seq        int    `json:"seq"`
	SQL        string `json:"sql"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}
