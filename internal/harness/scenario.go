package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Machine is the path of the machine file, relative to the scenario
	// file location.
	Machine string `yaml:"machine"`

	// Select picks one machine from a file that defines several.
	Select string `yaml:"select,omitempty"`

	// Strategy is a search strategy name. Empty selects bfs.
	Strategy string `yaml:"strategy,omitempty"`

	// MaxSteps overrides the default depth limit. Zero disables it.
	MaxSteps *int `yaml:"max_steps,omitempty"`

	Cases []Case `yaml:"cases"`
}

// Case is one input and its expected result.
type Case struct {
	Input  string `yaml:"input"`
	Expect Expect `yaml:"expect"`
}

// Expect specifies the expected result of a case. Steps and Tape are only
// checked when set.
type Expect struct {
	Accepted bool    `yaml:"accepted"`
	Steps    *int    `yaml:"steps,omitempty"`
	Tape     *string `yaml:"tape,omitempty"`

	// Error is a substring of the expected error. When set, the case must
	// fail with a matching error instead of producing a verdict.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file, resolving the machine
// path relative to the file. Returns an error if the file doesn't exist, is
// malformed, contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "case:" vs "cases:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Machine != "" && !filepath.IsAbs(scenario.Machine) {
		scenario.Machine = filepath.Join(filepath.Dir(path), scenario.Machine)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Machine == "" {
		return fmt.Errorf("machine is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	if s.MaxSteps != nil && *s.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative")
	}

	for i, c := range s.Cases {
		if c.Expect.Error != "" && (c.Expect.Accepted || c.Expect.Steps != nil || c.Expect.Tape != nil) {
			return fmt.Errorf("cases[%d]: expect.error excludes accepted, steps and tape", i)
		}
	}

	return nil
}
