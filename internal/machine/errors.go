package machine

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned by Encode for characters outside the alphabet.
var ErrInvalidInput = errors.New("input contains invalid characters")

// ValidationError describes one structural problem in a Description.
type ValidationError struct {
	// Field names the offending part (e.g. "accept", "transitions[3].to").
	Field string

	// Message is a human-readable description.
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors unpacks an error returned by Validate.
func ValidationErrors(err error) []*ValidationError {
	if err == nil {
		return nil
	}
	var out []*ValidationError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, ValidationErrors(e)...)
		}
		return out
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		out = append(out, ve)
	}
	return out
}
