package harness

// TraceEvent is one executed step.
type TraceEvent struct {
	Seq    int64          `json:"seq"`
	RunID  string         `json:"run_id"`
	Op     string         `json:"op"`
	Args   map[string]any `json:"args,omitempty"`
	Result any            `json:"result"`
	// Summary is the one-line digest written to golden files.
	Summary string `json:"summary"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion matched.
	Pass   bool         `json:"pass"`
	Trace  []TraceEvent `json:"trace"`
	Errors []string     `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an executed step.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
