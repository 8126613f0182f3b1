package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ntm/internal/machine"
)

const (
	accept machine.State = 9
	reject machine.State = 8
)

func root() *machine.Configuration {
	return machine.Build([]machine.Symbol{1, 0, 0}, accept, reject)
}

// TestApply_SingleRightMove covers the basic end-to-end step.
func TestApply_SingleRightMove(t *testing.T) {
	cfg := root()
	batch := []machine.Transition{{To: 1, Write: 1, Right: true}}

	out, o := Collect(cfg, batch)
	require.Len(t, out, 1)
	assert.Equal(t, Branched{Yielded: 1}, o)

	next := out[0]
	assert.Equal(t, 1, next.Position())
	assert.Equal(t, machine.State(1), next.State())
	assert.Equal(t, []machine.Symbol{1, 0, 0}, next.Tape())
}

// TestApply_DirectAccept covers a batch whose only entry accepts.
func TestApply_DirectAccept(t *testing.T) {
	cfg := root()
	batch := []machine.Transition{{To: accept, Write: 0}}

	out, o := Collect(cfg, batch)
	assert.Empty(t, out)

	acc, ok := IsAccepted(o)
	require.True(t, ok)
	require.NotNil(t, acc.Witness)
	assert.Equal(t, accept, acc.Witness.State())
	assert.Equal(t, []machine.Symbol{0, 0, 0}, acc.Witness.Tape())
	assert.Equal(t, 0, acc.Witness.Position())
}

// TestApply_TapePreservation checks every successor differs from the parent
// tape only in the cell under the head.
func TestApply_TapePreservation(t *testing.T) {
	parent := machine.Build([]machine.Symbol{3, 1, 4, 1, 5}, accept, reject)
	parent.MoveRight()
	parent.MoveRight()
	original := parent.Tape()
	head := parent.Position()

	batch := []machine.Transition{
		{To: 1, Write: 7, Right: true},
		{To: reject, Write: 6},
		{To: 2, Write: 2},
		{To: 3, Write: 0, Right: true},
	}
	out, o := Collect(parent, batch)
	require.Len(t, out, 3)
	assert.Equal(t, Branched{Yielded: 3}, o)

	writes := []machine.Symbol{7, 2, 0}
	for i, next := range out {
		tape := next.Tape()
		for j := range original {
			if j == head {
				assert.Equal(t, writes[i], tape[j], "successor %d head cell", i)
				continue
			}
			assert.Equal(t, original[j], tape[j], "successor %d cell %d", i, j)
		}
	}
}

// TestApply_RejectFiltering checks an all-rejecting batch yields nothing and
// leaves the parent untouched.
func TestApply_RejectFiltering(t *testing.T) {
	cfg := root()
	before := cfg.Clone()
	batch := []machine.Transition{
		{To: reject, Write: 5, Right: true},
		{To: reject, Write: 6},
	}

	out, o := Collect(cfg, batch)
	assert.Empty(t, out)
	assert.Equal(t, Branched{}, o)
	assert.Equal(t, before.Tape(), cfg.Tape())
	assert.Equal(t, before.Position(), cfg.Position())
	assert.Equal(t, before.State(), cfg.State())
}

// TestApply_AcceptShortCircuit checks entries after the accepting one are
// never evaluated.
func TestApply_AcceptShortCircuit(t *testing.T) {
	cfg := machine.Build([]machine.Symbol{1}, accept, reject)
	batch := []machine.Transition{
		{To: reject, Write: 5},
		{To: accept, Write: 2},
		// Would grow the buffer and move the head if it ran.
		{To: 1, Write: 3, Right: true},
	}

	calls := 0
	o := Apply(cfg, batch, func(*machine.Configuration) bool {
		calls++
		return true
	})
	assert.Zero(t, calls)

	acc, ok := IsAccepted(o)
	require.True(t, ok)
	assert.Equal(t, 0, acc.Witness.Position())
	assert.Equal(t, machine.TapeOffset+1, acc.Witness.Cap())
	assert.Equal(t, []machine.Symbol{2}, acc.Witness.Tape())
}

// TestApply_AcceptAfterBranches checks successors before the accepting entry
// are still yielded and the witness derives from the original parent.
func TestApply_AcceptAfterBranches(t *testing.T) {
	cfg := root()
	batch := []machine.Transition{
		{To: 1, Write: 4, Right: true},
		{To: 2, Write: 5, Right: true},
		{To: accept, Write: 7},
	}

	out, o := Collect(cfg, batch)
	require.Len(t, out, 2)
	assert.False(t, out[0].Same(out[1]))
	assert.Equal(t, []machine.Symbol{4, 0, 0}, out[0].Tape())
	assert.Equal(t, []machine.Symbol{5, 0, 0}, out[1].Tape())

	acc, ok := IsAccepted(o)
	require.True(t, ok)
	assert.Equal(t, []machine.Symbol{7, 0, 0}, acc.Witness.Tape())
	assert.Equal(t, 0, acc.Witness.Position())
	assert.Equal(t, accept, acc.Witness.State())
	// The in-place successor keeps its own state.
	assert.Equal(t, machine.State(2), out[1].State())
	assert.Equal(t, 1, out[1].Position())
}

// TestApply_LeftBoundaryClamp checks a left move at position 0 stays put.
func TestApply_LeftBoundaryClamp(t *testing.T) {
	out, _ := Collect(root(), []machine.Transition{{To: 1, Write: 1}})
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Position())

	moved := root()
	moved.MoveRight()
	out, _ = Collect(moved, []machine.Transition{{To: 1, Write: 1}})
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Position())
}

// TestApply_TapeGrowth checks a right move from the last cell doubles the
// buffer and keeps prior cells at their indices.
func TestApply_TapeGrowth(t *testing.T) {
	cfg := root()
	cfg.MoveRight()
	cfg.MoveRight()
	require.Equal(t, cfg.Position()+5, cfg.Cap())
	capBefore := cfg.Cap()

	out, _ := Collect(cfg, []machine.Transition{{To: 1, Write: 2, Right: true}})
	require.Len(t, out, 1)
	next := out[0]
	assert.Equal(t, 2*capBefore, next.Cap())
	assert.Equal(t, 3, next.Position())
	assert.Equal(t, []machine.Symbol{1, 0, 2, 0, 0, 0, 0, 0, 0, 0}, next.Tape())
	assert.Equal(t, accept, next.Accepting())
	assert.Equal(t, reject, next.Rejecting())
}

// TestApply_CopyIsolation checks only the last successor reuses the parent.
func TestApply_CopyIsolation(t *testing.T) {
	parent := root()
	batch := []machine.Transition{
		{To: 1, Write: 2, Right: true},
		{To: 2, Write: 3},
		{To: 3, Write: 4, Right: true},
	}

	out, _ := Collect(parent, batch)
	require.Len(t, out, 3)

	assert.False(t, out[0].Same(parent))
	assert.False(t, out[1].Same(parent))
	assert.False(t, out[0].Same(out[1]))
	assert.True(t, out[2].Same(parent))

	// Mutating one copy must not leak into the others.
	out[0].Write(6)
	assert.Equal(t, machine.Symbol(3), out[1].Tape()[0])
	assert.Equal(t, machine.Symbol(4), out[2].Tape()[0])
	out[1].SetState(7)
	assert.Equal(t, machine.State(1), out[0].State())
	assert.Equal(t, machine.State(3), out[2].State())
}

// TestApply_LastProducibleSkipsTrailingRejects checks the in-place branch is
// the last producing entry, not the last entry.
func TestApply_LastProducibleSkipsTrailingRejects(t *testing.T) {
	parent := root()
	batch := []machine.Transition{
		{To: 1, Write: 1},
		{To: 2, Write: 1},
		{To: reject, Write: 0},
	}
	out, _ := Collect(parent, batch)
	require.Len(t, out, 2)
	assert.False(t, out[0].Same(parent))
	assert.True(t, out[1].Same(parent))
}

// TestApply_EarlyStop checks unconsumed entries are never evaluated.
func TestApply_EarlyStop(t *testing.T) {
	parent := root()
	batch := []machine.Transition{
		{To: 1, Write: 2, Right: true},
		{To: 2, Write: 3, Right: true},
	}

	var got []*machine.Configuration
	o := Apply(parent, batch, func(c *machine.Configuration) bool {
		got = append(got, c)
		return false
	})
	require.Len(t, got, 1)
	assert.Equal(t, Branched{Yielded: 1, Stopped: true}, o)

	// The in-place branch never ran, so the parent is intact.
	assert.Equal(t, []machine.Symbol{1, 0, 0}, parent.Tape())
	assert.Equal(t, machine.StartState, parent.State())
}

func TestSuccessors_RangeOverFunc(t *testing.T) {
	batch := []machine.Transition{
		{To: 1, Write: 1, Right: true},
		{To: 2, Write: 0, Right: true},
	}
	seq, outcome := Successors(root(), batch)

	var states []machine.State
	for next := range seq {
		states = append(states, next.State())
	}
	assert.Equal(t, []machine.State{1, 2}, states)
	assert.Equal(t, Branched{Yielded: 2}, outcome())
}

func TestSuccessors_BreakStops(t *testing.T) {
	batch := []machine.Transition{
		{To: 1, Write: 1, Right: true},
		{To: 2, Write: 0, Right: true},
	}
	seq, outcome := Successors(root(), batch)
	for range seq {
		break
	}
	assert.Equal(t, Branched{Yielded: 1, Stopped: true}, outcome())
}

func TestSuccessors_Accept(t *testing.T) {
	seq, outcome := Successors(root(), []machine.Transition{{To: accept}})
	n := 0
	for range seq {
		n++
	}
	assert.Zero(t, n)
	_, ok := IsAccepted(outcome())
	assert.True(t, ok)
}

func TestApply_EmptyBatch(t *testing.T) {
	out, o := Collect(root(), nil)
	assert.Empty(t, out)
	assert.Equal(t, Branched{}, o)
}

func TestSuccessors_SingleUse(t *testing.T) {
	batch := []machine.Transition{
		{To: 1, Write: 1, Right: true},
		{To: 2, Write: 0, Right: true},
	}
	seq, outcome := Successors(root(), batch)
	assert.Nil(t, outcome(), "no outcome before ranging")

	n := 0
	for range seq {
		n++
	}
	assert.Equal(t, 2, n)

	for range seq {
		n++
	}
	assert.Equal(t, 2, n, "second range yields nothing")
	assert.Equal(t, Branched{Yielded: 2}, outcome())
}
