package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_YAML(t *testing.T) {
	out, _, err := execute(t, "validate", evenOnesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "1 machine(s) valid")
	assert.Contains(t, out, "even-ones: 4 states, 3 symbols, 6 transitions")
}

func TestValidate_CUE(t *testing.T) {
	out, _, err := execute(t, "validate", machinesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 machine(s) valid")
	assert.Contains(t, out, "contains-11")
	assert.Contains(t, out, "flip: 3 states, 3 symbols, 3 transitions")
}

func TestValidate_Directory(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(machinesPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "machines.cue"), data, 0644))

	out, _, err := execute(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 machine(s) valid")
}

func TestValidate_JSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "validate", evenOnesPath)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	require.Len(t, resp.Data.Machines, 1)
	assert.Equal(t, "even-ones", resp.Data.Machines[0].Name)
	assert.Len(t, resp.Data.Machines[0].Hash, 64)
}

func TestValidate_DefinitionErrors(t *testing.T) {
	out, _, err := execute(t, "validate", brokenPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Validation failed")
	assert.Contains(t, out, "E104: broken.accept")
	assert.Contains(t, out, "E105: broken.transitions[0].to")
}

func TestValidate_DefinitionErrorsJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "validate", brokenPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Errors, 2)
	assert.Equal(t, ErrCodeHalting, resp.Data.Errors[0].Code)
	assert.Equal(t, "broken", resp.Data.Errors[0].Machine)
	assert.Equal(t, ErrCodeTransitions, resp.Data.Errors[1].Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeHalting, resp.Error.Code)
}

func TestValidate_CUELineNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cue")
	src := `package bad

machine: lonely: {
	states: ["a", "b"]
	alphabet: ["_"]
	accept: "b"
	reject: "c"
	transitions: []
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	out, _, err := execute(t, "--format", "json", "validate", path)
	require.Error(t, err)

	var resp struct {
		Data ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.Data.Errors)
	assert.Equal(t, ErrCodeHalting, resp.Data.Errors[0].Code)
	assert.Equal(t, "reject", resp.Data.Errors[0].Field)
	assert.Positive(t, resp.Data.Errors[0].Line)
}

func TestValidate_NotFound(t *testing.T) {
	out, _, err := execute(t, "validate", filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E005")
	assert.Contains(t, out, "Error [E005]")
}

func TestValidate_UnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "machine.txt")
	require.NoError(t, os.WriteFile(path, []byte("states: []"), 0644))

	_, _, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E004")
}
