package machine

import (
	"fmt"
	"slices"
)

// State identifies a control state. StartState is always 0.
type State uint32

// Symbol identifies a tape symbol. Symbol 0 is the blank.
type Symbol uint32

const (
	// StartState is the state every root configuration begins in.
	StartState State = 0

	// Blank is the symbol grown tape cells hold.
	Blank Symbol = 0
)

// Buffer layout indices.
const (
	PositionIndex  = 0
	StateIndex     = 1
	AcceptingIndex = 2
	RejectingIndex = 3
	TapeOffset     = 4
)

// Transition is a rule (target state, symbol to write, direction).
// Right == false covers both "left" and "stay".
type Transition struct {
	To    State
	Write Symbol
	Right bool
}

// Configuration is one snapshot of a running machine.
type Configuration struct {
	cells []uint32
}

// Build creates the root configuration: head at 0, StartState, the given
// distinguished states and the tape verbatim with no slack.
//
// tape must be non-empty.
func Build(tape []Symbol, accepting, rejecting State) *Configuration {
	if len(tape) == 0 {
		panic("machine: Build called with empty tape")
	}
	cells := make([]uint32, TapeOffset+len(tape))
	cells[PositionIndex] = 0
	cells[StateIndex] = uint32(StartState)
	cells[AcceptingIndex] = uint32(accepting)
	cells[RejectingIndex] = uint32(rejecting)
	for i, s := range tape {
		cells[TapeOffset+i] = uint32(s)
	}
	return &Configuration{cells: cells}
}

// Read returns the current state and the symbol under the head.
func (c *Configuration) Read() (State, Symbol) {
	return State(c.cells[StateIndex]), Symbol(c.cells[c.head()])
}

// Position returns the head offset into the tape region.
func (c *Configuration) Position() int { return int(c.cells[PositionIndex]) }

// State returns the current control state.
func (c *Configuration) State() State { return State(c.cells[StateIndex]) }

// Accepting returns the accepting state id of the configuration tree.
func (c *Configuration) Accepting() State { return State(c.cells[AcceptingIndex]) }

// Rejecting returns the rejecting state id of the configuration tree.
func (c *Configuration) Rejecting() State { return State(c.cells[RejectingIndex]) }

// Cap returns the buffer length, metadata included.
func (c *Configuration) Cap() int { return len(c.cells) }

// Tape returns a copy of the tape region, slack included.
func (c *Configuration) Tape() []Symbol {
	tape := make([]Symbol, len(c.cells)-TapeOffset)
	for i, v := range c.cells[TapeOffset:] {
		tape[i] = Symbol(v)
	}
	return tape
}

// Clone returns a deep copy of the whole buffer.
func (c *Configuration) Clone() *Configuration {
	return &Configuration{cells: slices.Clone(c.cells)}
}

// Write stores s in the cell under the head.
func (c *Configuration) Write(s Symbol) { c.cells[c.head()] = uint32(s) }

// SetState changes the current control state.
func (c *Configuration) SetState(s State) { c.cells[StateIndex] = uint32(s) }

// MoveRight advances the head. When the old head sat on the last cell the
// buffer doubles; existing cells keep their indices and new ones are blank.
func (c *Configuration) MoveRight() {
	if len(c.cells) == c.head()+1 {
		c.cells = append(c.cells, make([]uint32, len(c.cells))...)
	}
	c.cells[PositionIndex]++
}

// MoveLeft moves the head one cell left. At position 0 it stays put.
func (c *Configuration) MoveLeft() {
	if c.cells[PositionIndex] > 0 {
		c.cells[PositionIndex]--
	}
}

// Same reports whether c and other share one buffer.
func (c *Configuration) Same(other *Configuration) bool {
	if len(c.cells) == 0 || len(other.cells) == 0 {
		return false
	}
	return &c.cells[0] == &other.cells[0]
}

func (c *Configuration) String() string {
	return fmt.Sprintf("pos=%d state=%d tape=%v", c.Position(), c.State(), c.cells[TapeOffset:])
}

func (c *Configuration) head() int { return TapeOffset + int(c.cells[PositionIndex]) }
