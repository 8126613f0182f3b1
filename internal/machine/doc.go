// Package machine defines the data model of a nondeterministic single-tape
// Turing machine: configurations, transitions and machine descriptions.
//
// # Configuration Layout
//
// A Configuration is one growable []uint32 buffer:
//
//	index 0   head position (offset into the tape region)
//	index 1   current control state
//	index 2   accepting state id
//	index 3   rejecting state id
//	index 4.. tape cells, followed by zeroed slack
//
// The buffer always holds at least one cell at and beyond the head
// (Cap() >= Position()+5). Slack cells read as symbol 0, which every
// Description reserves for the blank symbol.
//
// # Ownership
//
// A Configuration is owned by exactly one holder at a time. The transition
// engine may hand the parent's own buffer back as one of its successors, so a
// caller must not use a parent again after passing it to the engine.
package machine
