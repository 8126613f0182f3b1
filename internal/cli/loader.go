package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/ntm/internal/compiler"
	"github.com/roach88/ntm/internal/machine"
)

// LoadError represents an error that occurred while loading a machine file.
type LoadError struct {
	Code    string
	Machine string
	Field   string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Machine != "" {
		msg = fmt.Sprintf("machine %s: %s", e.Machine, msg)
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Line returns the source line of the error, or 0 when unknown.
func (e *LoadError) Line() int {
	if e.Pos.IsValid() {
		return e.Pos.Line()
	}
	return 0
}

// commandLevel reports whether the error concerns the path rather than the
// machine definitions in it.
func (e *LoadError) commandLevel() bool {
	switch e.Code {
	case ErrCodeNotFound, ErrCodeUnsupported, ErrCodeSelect:
		return true
	}
	return false
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeNoMachines   = "E002" // No machines defined
	ErrCodeParseFailed  = "E003" // YAML or CUE syntax error
	ErrCodeUnsupported  = "E004" // Unsupported file type
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeSelect       = "E006" // Machine selection failed
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeInvalidInput = "E008" // Input outside the alphabet
	ErrCodeStepLimit    = "E009" // Step limit exceeded
	ErrCodeDatabase     = "E010" // History database error
	ErrCodeTestFailed   = "E011" // One or more scenarios failed
)

// Definition error codes (E1xx).
const (
	ErrCodeName        = "E101" // Machine name missing
	ErrCodeStates      = "E102" // Invalid state list or start state
	ErrCodeAlphabet    = "E103" // Invalid alphabet
	ErrCodeHalting     = "E104" // Invalid accept/reject state
	ErrCodeTransitions = "E105" // Invalid transition
)

// MapFieldToErrorCode maps a definition field path such as
// "transitions[2].to" to an error code.
func MapFieldToErrorCode(field string) string {
	base := field
	if i := strings.IndexAny(base, "[."); i >= 0 {
		base = base[:i]
	}
	switch base {
	case "name":
		return ErrCodeName
	case "states":
		return ErrCodeStates
	case "alphabet":
		return ErrCodeAlphabet
	case "accept", "reject":
		return ErrCodeHalting
	case "transitions":
		return ErrCodeTransitions
	case "yaml", "cue":
		return ErrCodeParseFailed
	default:
		return ErrCodeGeneric
	}
}

// loadMachines loads every machine defined at path.
func loadMachines(path string) ([]*machine.Description, []*LoadError) {
	descs, err := compiler.LoadFile(path)
	if err != nil {
		return nil, convertLoadError(err)
	}
	return descs, nil
}

// loadMachine loads the machine called name from path. The error, if any, is
// the first *LoadError.
func loadMachine(path, name string) (*machine.Description, error) {
	desc, err := compiler.LoadOne(path, name)
	if err != nil {
		return nil, convertLoadError(err)[0]
	}
	return desc, nil
}

// convertLoadError converts a compiler error to LoadErrors with codes and
// position info. The result is never empty.
func convertLoadError(err error) []*LoadError {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return []*LoadError{{Code: ErrCodeNotFound, Message: err.Error()}}
	case errors.Is(err, compiler.ErrUnsupportedFile):
		return []*LoadError{{Code: ErrCodeUnsupported, Message: err.Error()}}
	case errors.Is(err, compiler.ErrNoMachines):
		return []*LoadError{{Code: ErrCodeNoMachines, Message: err.Error()}}
	case errors.Is(err, compiler.ErrMachineNotFound), errors.Is(err, compiler.ErrAmbiguousMachine):
		return []*LoadError{{Code: ErrCodeSelect, Message: err.Error()}}
	}

	compileErrs := compiler.CompileErrors(err)
	if len(compileErrs) == 0 {
		return []*LoadError{{Code: ErrCodeGeneric, Message: err.Error()}}
	}
	out := make([]*LoadError, len(compileErrs))
	for i, ce := range compileErrs {
		out[i] = &LoadError{
			Code:    MapFieldToErrorCode(ce.Field),
			Machine: ce.Machine,
			Field:   ce.Field,
			Message: ce.Message,
			Pos:     ce.Pos,
		}
	}
	return out
}
