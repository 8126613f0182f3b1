package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Layout(t *testing.T) {
	c := Build([]Symbol{1, 0, 0}, 9, 8)

	assert.Equal(t, 0, c.Position())
	assert.Equal(t, StartState, c.State())
	assert.Equal(t, State(9), c.Accepting())
	assert.Equal(t, State(8), c.Rejecting())
	assert.Equal(t, []Symbol{1, 0, 0}, c.Tape())
	// No slack beyond the given tape.
	assert.Equal(t, TapeOffset+3, c.Cap())
}

func TestBuild_EmptyTapePanics(t *testing.T) {
	assert.Panics(t, func() { Build(nil, 1, 2) })
}

func TestRead(t *testing.T) {
	c := Build([]Symbol{2, 1}, 3, 4)
	state, sym := c.Read()
	assert.Equal(t, StartState, state)
	assert.Equal(t, Symbol(2), sym)

	c.MoveRight()
	c.SetState(7)
	state, sym = c.Read()
	assert.Equal(t, State(7), state)
	assert.Equal(t, Symbol(1), sym)
}

func TestMoveLeft_ClampsAtZero(t *testing.T) {
	c := Build([]Symbol{1}, 1, 2)
	c.MoveLeft()
	assert.Equal(t, 0, c.Position())

	c.MoveRight()
	c.MoveLeft()
	assert.Equal(t, 0, c.Position())
}

func TestMoveRight_DoublesAtLastCell(t *testing.T) {
	c := Build([]Symbol{5}, 1, 2)
	require.Equal(t, c.Position()+5, c.Cap())

	c.MoveRight()
	assert.Equal(t, 1, c.Position())
	assert.Equal(t, 10, c.Cap())
	assert.Equal(t, []Symbol{5, 0, 0, 0, 0, 0}, c.Tape())
	assert.Equal(t, State(1), c.Accepting())
	assert.Equal(t, State(2), c.Rejecting())
}

func TestMoveRight_NoGrowthWithSlack(t *testing.T) {
	c := Build([]Symbol{1, 2, 3}, 1, 2)
	c.MoveRight()
	assert.Equal(t, 7, c.Cap())
	c.MoveRight()
	assert.Equal(t, 7, c.Cap())
	// Head now sits on the last cell; the next move grows.
	c.MoveRight()
	assert.Equal(t, 14, c.Cap())
	assert.Equal(t, 3, c.Position())
	assert.Equal(t, []Symbol{1, 2, 3}, c.Tape()[:3])
}

func TestClone_Independent(t *testing.T) {
	c := Build([]Symbol{1, 2}, 3, 4)
	d := c.Clone()
	require.False(t, c.Same(d))

	d.Write(9)
	d.SetState(5)
	d.MoveRight()

	assert.Equal(t, []Symbol{1, 2}, c.Tape())
	assert.Equal(t, StartState, c.State())
	assert.Equal(t, 0, c.Position())
	assert.Equal(t, []Symbol{9, 2}, d.Tape())
}

func TestSame(t *testing.T) {
	c := Build([]Symbol{1}, 3, 4)
	assert.True(t, c.Same(c))
	assert.False(t, c.Same(c.Clone()))
}
