package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ntm/internal/machine"
)

func TestCompile_Text(t *testing.T) {
	out, _, err := execute(t, "compile", machinesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Compiled 2 machine(s)")
	assert.Contains(t, out, "contains-11: 4 transition(s)")
	assert.Contains(t, out, "flip: 3 transition(s)")
}

func TestCompile_JSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "compile", evenOnesPath)
	require.NoError(t, err)

	var resp struct {
		Status string            `json:"status"`
		Data   CompilationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Machines, 1)

	m := resp.Data.Machines[0]
	assert.Equal(t, "even-ones", m.Name)
	assert.Equal(t, []string{"even", "odd", "accept", "reject"}, m.States)
	assert.Equal(t, []string{"_", "0", "1"}, m.Alphabet)
	assert.Equal(t, machine.State(2), m.Accept)
	assert.Equal(t, machine.State(3), m.Reject)
	require.Len(t, m.Transitions, 6)
	assert.Equal(t, CompiledRule{From: 0, Read: 2, To: 1, Write: 2, Right: true}, m.Transitions[1])
	assert.Equal(t, CompiledRule{From: 1, Read: 0, To: 3, Write: 0, Right: false}, m.Transitions[5])
}

func TestCompile_OutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "compiled.json")

	out, _, err := execute(t, "compile", evenOnesPath, "-o", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote compiled machines to "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var result CompilationResult
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result.Machines, 1)
	assert.Equal(t, "even-ones", result.Machines[0].Name)
}

func TestCompile_OutputFileUnwritable(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "missing", "compiled.json")

	out, _, err := execute(t, "compile", evenOnesPath, "-o", outPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E007]")
}

func TestCompile_Errors(t *testing.T) {
	out, _, err := execute(t, "compile", brokenPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "compilation failed with 2 error(s)")
	assert.Contains(t, out, "Error [E104]")
	assert.Contains(t, out, "Error [E105]")
}
