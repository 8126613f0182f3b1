package compiler

import (
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes every document in r as a Definition. Unknown fields are
// rejected.
func ParseYAML(r io.Reader) ([]*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var defs []*Definition
	for {
		var def Definition
		if err := dec.Decode(&def); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &CompileError{
				Field:   "yaml",
				Message: strings.TrimPrefix(err.Error(), "yaml: "),
			}
		}
		defs = append(defs, &def)
	}
	return defs, nil
}
