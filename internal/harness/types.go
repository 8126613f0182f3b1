package harness

import "github.com/roach88/ntm/internal/search"

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses match.
	Pass bool `json:"pass"`

	Machine  string `json:"machine"`
	Strategy string `json:"strategy"`

	Cases []CaseResult `json:"cases"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// CaseResult is the observed result of one case.
type CaseResult struct {
	Input    string `json:"input"`
	Accepted bool   `json:"accepted"`
	Steps    int    `json:"steps"`
	Explored int    `json:"explored"`
	Tape     string `json:"tape,omitempty"`
	Error    string `json:"error,omitempty"`

	Trace []search.TraceEvent `json:"trace"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
