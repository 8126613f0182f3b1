// Package harness runs conformance scenarios against machine definitions.
//
// A scenario names a machine file and lists inputs with their expected
// verdicts:
//
//	name: even_ones
//	description: Accepts strings with an even number of ones
//	machine: ../machines/even-ones.yaml
//	strategy: bfs
//	cases:
//	  - input: "11"
//	    expect: {accepted: true, steps: 2, tape: "11"}
//	  - input: "1"
//	    expect: {accepted: false}
//
// Run executes every case and reports mismatches. RunWithGolden also
// compares the event trace of every case against a golden file, so a change
// in exploration order shows up as a diff.
package harness
