package engine

import "github.com/roach88/ntm/internal/machine"

// Outcome is the result of applying one batch. It is either Accepted or
// Branched.
type Outcome interface {
	outcome()
}

// Accepted means a transition in the batch reached the accepting state.
// Acceptance is global: the caller should stop the whole search.
type Accepted struct {
	// Witness is the configuration produced by the accepting transition.
	Witness *machine.Configuration
}

// Branched means the batch was enumerated without reaching acceptance.
type Branched struct {
	// Yielded counts the successors handed to the consumer.
	Yielded int

	// Stopped is true when the consumer ended enumeration early.
	Stopped bool
}

func (Accepted) outcome() {}
func (Branched) outcome() {}

// IsAccepted reports whether o is an Accepted outcome and returns it.
func IsAccepted(o Outcome) (Accepted, bool) {
	a, ok := o.(Accepted)
	return a, ok
}
