package compiler

import (
	"fmt"
	"strconv"

	"cuelang.org/go/cue"

	"github.com/roach88/ntm/internal/machine"
)

// CompileCUE compiles a machine struct. The machine is named after the
// struct label unless the struct has a name field.
//
//	v := cuecontext.New().CompileString(src)
//	desc, err := CompileCUE(v.LookupPath(cue.ParsePath(`machine."even-ones"`)))
func CompileCUE(v cue.Value) (*machine.Description, error) {
	def, err := DefinitionFromCUE(v)
	if err != nil {
		return nil, err
	}
	return Compile(def)
}

// DefinitionFromCUE decodes v into a Definition, keeping source positions.
func DefinitionFromCUE(v cue.Value) (*Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &Definition{Pos: v.Pos()}
	if sels := v.Path().Selectors(); len(sels) > 0 {
		def.Name = sels[len(sels)-1].String()
		if unquoted, err := strconv.Unquote(def.Name); err == nil {
			def.Name = unquoted
		}
	}
	if nv := v.LookupPath(cue.ParsePath("name")); nv.Exists() {
		name, err := nv.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		def.Name = name
	}

	var err error
	if def.States, err = stringList(v, "states"); err != nil {
		return nil, err
	}
	if def.Alphabet, err = stringList(v, "alphabet"); err != nil {
		return nil, err
	}
	if def.Accept, err = stringField(v, "accept"); err != nil {
		return nil, err
	}
	if def.Reject, err = stringField(v, "reject"); err != nil {
		return nil, err
	}

	tv := v.LookupPath(cue.ParsePath("transitions"))
	if !tv.Exists() {
		return def, nil
	}
	iter, err := tv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		td, err := parseTransition(iter.Value())
		if err != nil {
			return nil, err
		}
		def.Transitions = append(def.Transitions, td)
	}
	return def, nil
}

func parseTransition(v cue.Value) (TransitionDef, error) {
	td := TransitionDef{Pos: v.Pos()}
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"from", &td.From},
		{"read", &td.Read},
		{"to", &td.To},
		{"write", &td.Write},
		{"move", &td.Move},
	} {
		s, err := stringField(v, f.name)
		if err != nil {
			return td, err
		}
		*f.dst = s
	}
	return td, nil
}

func stringField(v cue.Value, name string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return "", &CompileError{
			Field:   name,
			Message: name + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func stringList(v cue.Value, name string) ([]string, error) {
	lv := v.LookupPath(cue.ParsePath(name))
	if !lv.Exists() {
		return nil, &CompileError{
			Field:   name,
			Message: name + " is required",
			Pos:     v.Pos(),
		}
	}
	iter, err := lv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for i := 0; iter.Next(); i++ {
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("%s[%d]", name, i),
				Message: "must be a string",
				Pos:     iter.Value().Pos(),
			}
		}
		out = append(out, s)
	}
	return out, nil
}
