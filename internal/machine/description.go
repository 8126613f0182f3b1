package machine

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Rule is one entry of a transition table in declaration order.
type Rule struct {
	From State
	Read Symbol
	Transition
}

// Description is a complete machine: named states and symbols, the two
// halting states and the transition table indexed by (state, symbol).
//
// States[0] is the start state and Alphabet[0] is the blank.
type Description struct {
	Name     string
	States   []string
	Alphabet []string
	Accept   State
	Reject   State

	rules   []Rule
	table   map[tableKey][]Transition
	symbols map[string]Symbol
	states  map[string]State
}

type tableKey struct {
	state  State
	symbol Symbol
}

// NewDescription creates a Description with an empty transition table.
func NewDescription(name string, states, alphabet []string, accept, reject State) *Description {
	d := &Description{
		Name:     name,
		States:   states,
		Alphabet: alphabet,
		Accept:   accept,
		Reject:   reject,
		table:    make(map[tableKey][]Transition),
		symbols:  make(map[string]Symbol, len(alphabet)),
		states:   make(map[string]State, len(states)),
	}
	for i, s := range alphabet {
		key := norm.NFC.String(s)
		if _, dup := d.symbols[key]; !dup {
			d.symbols[key] = Symbol(i)
		}
	}
	for i, s := range states {
		if _, dup := d.states[s]; !dup {
			d.states[s] = State(i)
		}
	}
	return d
}

// AddTransition appends t to the batch for (from, read). Batches keep
// declaration order.
func (d *Description) AddTransition(from State, read Symbol, t Transition) {
	k := tableKey{state: from, symbol: read}
	d.table[k] = append(d.table[k], t)
	d.rules = append(d.rules, Rule{From: from, Read: read, Transition: t})
}

// Lookup returns the transition batch for (state, symbol), or nil.
func (d *Description) Lookup(state State, symbol Symbol) []Transition {
	return d.table[tableKey{state: state, symbol: symbol}]
}

// Rules returns every transition in declaration order.
func (d *Description) Rules() []Rule {
	return d.rules
}

// StateByName resolves a state name.
func (d *Description) StateByName(name string) (State, bool) {
	s, ok := d.states[name]
	return s, ok
}

// SymbolByName resolves a symbol name. The name is NFC-normalized first.
func (d *Description) SymbolByName(name string) (Symbol, bool) {
	s, ok := d.symbols[norm.NFC.String(name)]
	return s, ok
}

// StateName returns the name of s, or its number when unknown.
func (d *Description) StateName(s State) string {
	if int(s) < len(d.States) {
		return d.States[s]
	}
	return fmt.Sprintf("#%d", s)
}

// SymbolName returns the name of s, or "?" when unknown.
func (d *Description) SymbolName(s Symbol) string {
	if int(s) < len(d.Alphabet) {
		return d.Alphabet[s]
	}
	return "?"
}

// Validate checks the structural invariants the engine relies on.
// All problems are reported, joined with errors.Join.
func (d *Description) Validate() error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if len(d.States) < 2 {
		add("states", "at least two states are required")
	}
	if len(d.Alphabet) == 0 {
		add("alphabet", "at least one symbol is required")
	}

	seenStates := make(map[string]bool, len(d.States))
	for i, s := range d.States {
		if s == "" {
			add(fmt.Sprintf("states[%d]", i), "state name must not be empty")
			continue
		}
		if seenStates[s] {
			add(fmt.Sprintf("states[%d]", i), "duplicate state %q", s)
		}
		seenStates[s] = true
	}

	seenSymbols := make(map[string]bool, len(d.Alphabet))
	for i, s := range d.Alphabet {
		n := norm.NFC.String(s)
		if utf8.RuneCountInString(n) != 1 {
			add(fmt.Sprintf("alphabet[%d]", i), "symbol %q must be a single character", s)
			continue
		}
		if seenSymbols[n] {
			add(fmt.Sprintf("alphabet[%d]", i), "duplicate symbol %q", s)
		}
		seenSymbols[n] = true
	}

	if !d.validState(d.Accept) {
		add("accept", "unknown state %d", d.Accept)
	}
	if !d.validState(d.Reject) {
		add("reject", "unknown state %d", d.Reject)
	}
	if d.Accept == d.Reject {
		add("reject", "accepting and rejecting states must differ")
	}
	if d.Accept == StartState || d.Reject == StartState {
		add("states[0]", "start state %q must not be a halting state", d.StateName(StartState))
	}

	for i, r := range d.rules {
		field := fmt.Sprintf("transitions[%d]", i)
		if !d.validState(r.From) {
			add(field+".from", "unknown state %d", r.From)
		}
		if !d.validSymbol(r.Read) {
			add(field+".read", "unknown symbol %d", r.Read)
		}
		if !d.validState(r.To) {
			add(field+".to", "unknown state %d", r.To)
		}
		if !d.validSymbol(r.Write) {
			add(field+".write", "unknown symbol %d", r.Write)
		}
	}

	return errors.Join(errs...)
}

// Encode maps input characters to symbols. Empty input becomes one blank.
func (d *Description) Encode(input string) ([]Symbol, error) {
	input = norm.NFC.String(input)
	if input == "" {
		return []Symbol{Blank}, nil
	}
	tape := make([]Symbol, 0, utf8.RuneCountInString(input))
	for _, r := range input {
		s, ok := d.symbols[string(r)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidInput, r)
		}
		tape = append(tape, s)
	}
	return tape, nil
}

// Decode maps symbols back to characters and trims trailing blanks.
// An all-blank tape decodes to a single blank.
func (d *Description) Decode(tape []Symbol) string {
	end := len(tape)
	for end > 0 && tape[end-1] == Blank {
		end--
	}
	if end == 0 {
		return d.SymbolName(Blank)
	}
	var b strings.Builder
	for _, s := range tape[:end] {
		b.WriteString(d.SymbolName(s))
	}
	return b.String()
}

func (d *Description) validState(s State) bool   { return int(s) < len(d.States) }
func (d *Description) validSymbol(s Symbol) bool { return int(s) < len(d.Alphabet) }
