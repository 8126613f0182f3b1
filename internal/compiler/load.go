package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/ntm/internal/machine"
)

var (
	// ErrNoMachines is returned when a source defines no machine.
	ErrNoMachines = errors.New("no machines defined")

	// ErrUnsupportedFile is returned for paths that are neither YAML, CUE
	// nor a directory.
	ErrUnsupportedFile = errors.New("unsupported machine file")

	// ErrMachineNotFound is returned by LoadOne for an unknown name.
	ErrMachineNotFound = errors.New("machine not found")

	// ErrAmbiguousMachine is returned by LoadOne when no name is given and
	// the source defines several machines.
	ErrAmbiguousMachine = errors.New("ambiguous machine")
)

// LoadFile loads every machine defined at path: a .yaml/.yml file, a .cue
// file, or a directory holding one CUE package.
func LoadFile(path string) ([]*machine.Description, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return loadCUE(path, []string{"."})
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".cue":
		return loadCUE(filepath.Dir(path), []string{filepath.Base(path)})
	default:
		return nil, fmt.Errorf("%w %s: want .yaml, .yml or .cue", ErrUnsupportedFile, path)
	}
}

// LoadOne loads path and returns the machine called name. An empty name
// selects the only machine defined.
func LoadOne(path, name string) (*machine.Description, error) {
	descs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if name == "" {
		if len(descs) != 1 {
			return nil, fmt.Errorf("%w: %s defines %d machines; select one by name", ErrAmbiguousMachine, path, len(descs))
		}
		return descs[0], nil
	}
	for _, d := range descs {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrMachineNotFound, name, path)
}

func loadYAML(path string) ([]*machine.Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	defs, err := ParseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoMachines)
	}

	var (
		descs []*machine.Description
		errs  []error
	)
	for _, def := range defs {
		desc, err := Compile(def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		descs = append(descs, desc)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return descs, nil
}

func loadCUE(dir string, args []string) ([]*machine.Description, error) {
	instances := load.Instances(args, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, formatCUEError(inst.Err)
	}

	value := cuecontext.New().BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	machines := value.LookupPath(cue.ParsePath("machine"))
	if !machines.Exists() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoMachines)
	}
	iter, err := machines.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var (
		descs []*machine.Description
		errs  []error
	)
	for iter.Next() {
		desc, err := CompileCUE(iter.Value())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		descs = append(descs, desc)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(descs) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoMachines)
	}
	return descs, nil
}
