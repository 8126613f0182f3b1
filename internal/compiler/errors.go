package compiler

import (
	"errors"
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError represents a compilation error with source location.
type CompileError struct {
	// Machine is the name of the machine being compiled, if known.
	Machine string

	// Field is the path of the offending field (e.g. "transitions[2].to").
	Field string

	Message string

	// Pos is the CUE source position. It is not set for YAML sources.
	Pos token.Pos
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Field, e.Message)
	if e.Machine != "" {
		msg = fmt.Sprintf("machine %s: %s", e.Machine, msg)
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), msg)
	}
	return msg
}

// CompileErrors unpacks every *CompileError in err, following joined
// errors.
func CompileErrors(err error) []*CompileError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*CompileError
		for _, e := range joined.Unwrap() {
			out = append(out, CompileErrors(e)...)
		}
		return out
	}
	var ce *CompileError
	if errors.As(err, &ce) {
		return []*CompileError{ce}
	}
	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
