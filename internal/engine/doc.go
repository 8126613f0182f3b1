// Package engine implements the transition engine of the simulator.
//
// Given one configuration and the batch of transitions that apply to its
// (state, symbol) pair, the engine produces the successor configurations
// reachable in one step, or reports that the configuration tree accepts.
//
// EVALUATION ORDER:
//
// Entries are evaluated strictly in batch order:
//   - a transition into the rejecting state is a dead branch and is skipped
//   - a transition into the accepting state ends the batch with Accepted;
//     nothing after it is evaluated and the search driver must stop
//   - any other transition produces one successor, handed to the consumer
//     before the next entry is looked at
//
// MEMORY:
//
// Every producing entry except the last one clones the parent. The last one
// writes into the parent's own buffer and yields it. N branches therefore
// cost N-1 copies, and the parent must be treated as consumed once it has
// been passed to Apply.
//
// The engine holds no state between calls, performs no I/O and never
// validates its inputs; lookups, traversal policy and frontier ownership
// belong to the caller (see internal/search).
package engine
