package search

import "strconv"

// Result summarizes a finished search.
type Result struct {
	Accepted bool     `json:"accepted"`
	Steps    int      `json:"steps"`
	Explored int      `json:"explored"`
	Strategy Strategy `json:"strategy"`

	// Tape is the decoded tape of the accepting witness, or of the final
	// configuration of a deterministic run. HasTape is false otherwise.
	Tape    string `json:"tape,omitempty"`
	HasTape bool   `json:"-"`
}

// String renders the classic report: verdict, step count and, when known,
// the tape, each on its own line.
func (r *Result) String() string {
	s := "not accepted"
	if r.Accepted {
		s = "accepted"
	}
	s += "\n" + strconv.Itoa(r.Steps)
	if r.HasTape {
		s += "\n" + r.Tape
	}
	return s
}
