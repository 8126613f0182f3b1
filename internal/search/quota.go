package search

import (
	"errors"
	"fmt"
)

// DefaultMaxSteps bounds the search depth when no limit is configured.
const DefaultMaxSteps = 10000

// QuotaEnforcer enforces the maximum search depth.
//
// Check is called each time the driver reaches a depth it has not expanded
// before. A maxSteps of 0 disables the limit.
type QuotaEnforcer struct {
	maxSteps int
	deepest  int
}

// NewQuotaEnforcer creates an enforcer with the given limit.
func NewQuotaEnforcer(maxSteps int) *QuotaEnforcer {
	return &QuotaEnforcer{maxSteps: maxSteps, deepest: -1}
}

// Check records that depth is being expanded and validates it against the
// limit. Returns StepsExceededError once depth exceeds the limit.
func (q *QuotaEnforcer) Check(machine string, depth int) error {
	if depth > q.deepest {
		q.deepest = depth
	}
	if q.maxSteps > 0 && depth > q.maxSteps {
		return &StepsExceededError{
			Machine: machine,
			Steps:   depth,
			Limit:   q.maxSteps,
		}
	}
	return nil
}

// Deepest returns the greatest depth checked so far, or -1.
func (q *QuotaEnforcer) Deepest() int {
	return q.deepest
}

// MaxSteps returns the configured limit.
func (q *QuotaEnforcer) MaxSteps() int {
	return q.maxSteps
}

// StepsExceededError is returned when a search goes deeper than allowed.
// It terminates the whole search.
type StepsExceededError struct {
	Machine string // The machine being simulated
	Steps   int    // Depth that was reached
	Limit   int    // Maximum allowed depth
}

func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("machine %s exceeded max steps quota: %d steps > %d limit",
		e.Machine, e.Steps, e.Limit)
}

// IsStepsExceededError returns true if err wraps a StepsExceededError.
func IsStepsExceededError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}
