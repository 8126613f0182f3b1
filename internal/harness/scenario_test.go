package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadScenario_ResolvesMachinePath tests relative machine paths.
func TestLoadScenario_ResolvesMachinePath(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "even_ones_trace.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "even_ones_trace", s.Name)
	assert.Equal(t, filepath.Join("testdata", "machines", "even-ones.yaml"), s.Machine)
	assert.Equal(t, "bfs", s.Strategy)
	require.Len(t, s.Cases, 2)
	assert.Equal(t, "11", s.Cases[0].Input)
	assert.True(t, s.Cases[0].Expect.Accepted)
	require.NotNil(t, s.Cases[0].Expect.Steps)
	assert.Equal(t, 2, *s.Cases[0].Expect.Steps)
	assert.Nil(t, s.Cases[1].Expect.Tape)
}

// TestLoadScenario_MaxSteps tests the optional depth limit.
func TestLoadScenario_MaxSteps(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "flip_limit.yaml"))
	require.NoError(t, err)
	require.NotNil(t, s.MaxSteps)
	assert.Equal(t, 3, *s.MaxSteps)
	assert.Equal(t, "flip", s.Select)
}

// TestLoadScenario_UnknownField tests strict decoding.
func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: misspelled field
machine: m.yaml
case:
  - input: "1"
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

// TestLoadScenario_Validation tests required fields.
func TestLoadScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing name", "description: d\nmachine: m.yaml\ncases: [{input: a}]\n", "name is required"},
		{"missing description", "name: n\nmachine: m.yaml\ncases: [{input: a}]\n", "description is required"},
		{"missing machine", "name: n\ndescription: d\ncases: [{input: a}]\n", "machine is required"},
		{"missing cases", "name: n\ndescription: d\nmachine: m.yaml\n", "cases list is required"},
		{"negative limit", "name: n\ndescription: d\nmachine: m.yaml\nmax_steps: -1\ncases: [{input: a}]\n", "max_steps"},
		{"error with verdict", "name: n\ndescription: d\nmachine: m.yaml\ncases: [{input: a, expect: {accepted: true, error: x}}]\n", "cases[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// TestLoadScenario_MissingFile tests unreadable paths.
func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}
