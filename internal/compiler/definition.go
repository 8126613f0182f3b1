package compiler

import (
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/ntm/internal/machine"
)

// Definition is the source form of a machine. States and symbols are
// referenced by name.
type Definition struct {
	Name        string          `yaml:"name"`
	States      []string        `yaml:"states"`
	Alphabet    []string        `yaml:"alphabet"`
	Accept      string          `yaml:"accept"`
	Reject      string          `yaml:"reject"`
	Transitions []TransitionDef `yaml:"transitions"`

	Pos token.Pos `yaml:"-"`
}

// TransitionDef is one transition of a Definition. Move is R or right for
// a right move; L, left, S and stay all leave the head in place or move it
// left, which the engine treats alike.
type TransitionDef struct {
	From  string `yaml:"from"`
	Read  string `yaml:"read"`
	To    string `yaml:"to"`
	Write string `yaml:"write"`
	Move  string `yaml:"move"`

	Pos token.Pos `yaml:"-"`
}

// Compile resolves def into a validated Description. Every problem found is
// reported as a *CompileError, joined with errors.Join.
func Compile(def *Definition) (*machine.Description, error) {
	if def.Name == "" {
		return nil, &CompileError{Field: "name", Message: "name is required", Pos: def.Pos}
	}

	var errs []error
	fail := func(field string, pos token.Pos, format string, args ...any) {
		errs = append(errs, &CompileError{
			Machine: def.Name,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
			Pos:     pos,
		})
	}

	// Name lookups only; halting states are filled in below.
	names := machine.NewDescription(def.Name, def.States, def.Alphabet, 0, 0)

	state := func(field string, pos token.Pos, name string) machine.State {
		s, ok := names.StateByName(name)
		if !ok {
			fail(field, pos, "unknown state %q", name)
		}
		return s
	}
	symbol := func(field string, pos token.Pos, name string) machine.Symbol {
		s, ok := names.SymbolByName(name)
		if !ok {
			fail(field, pos, "unknown symbol %q", name)
		}
		return s
	}

	accept := state("accept", def.Pos, def.Accept)
	reject := state("reject", def.Pos, def.Reject)
	desc := machine.NewDescription(def.Name, def.States, def.Alphabet, accept, reject)

	for i, td := range def.Transitions {
		field := fmt.Sprintf("transitions[%d]", i)
		from := state(field+".from", td.Pos, td.From)
		read := symbol(field+".read", td.Pos, td.Read)
		to := state(field+".to", td.Pos, td.To)
		write := symbol(field+".write", td.Pos, td.Write)
		right, err := parseMove(td.Move)
		if err != nil {
			fail(field+".move", td.Pos, "%v", err)
		}
		desc.AddTransition(from, read, machine.Transition{To: to, Write: write, Right: right})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := desc.Validate(); err != nil {
		for _, ve := range machine.ValidationErrors(err) {
			fail(ve.Field, positionOf(def, ve.Field), "%s", ve.Message)
		}
		return nil, errors.Join(errs...)
	}
	return desc, nil
}

func parseMove(move string) (bool, error) {
	switch strings.ToLower(move) {
	case "r", "right":
		return true, nil
	case "l", "left", "s", "stay":
		return false, nil
	case "":
		return false, fmt.Errorf("move is required")
	default:
		return false, fmt.Errorf("unknown move %q (want R, L or S)", move)
	}
}

// positionOf maps a validation field back to the transition it came from.
func positionOf(def *Definition, field string) token.Pos {
	var i int
	if _, err := fmt.Sscanf(field, "transitions[%d]", &i); err == nil && i < len(def.Transitions) {
		return def.Transitions[i].Pos
	}
	return def.Pos
}
