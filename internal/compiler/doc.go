// Package compiler turns machine definitions written in YAML or CUE into
// validated machine.Description values.
//
// Both front ends decode into a Definition, which names states and symbols
// by string. Compile resolves the names, builds the transition table in
// declaration order and runs machine.Description.Validate.
//
// YAML files hold one machine per document:
//
//	name: even-ones
//	states: [even, odd, accept, reject]
//	alphabet: ["_", "0", "1"]
//	accept: accept
//	reject: reject
//	transitions:
//	  - {from: even, read: "1", to: odd, write: "1", move: R}
//
// CUE files define machines as structs under the machine field; the struct
// label is the machine name:
//
//	machine: "even-ones": {
//		states: ["even", "odd", "accept", "reject"]
//		...
//	}
//
// The first state is the start state and the first symbol is the blank.
package compiler
