// Package search drives the transition engine over a whole configuration
// tree.
//
// A driver owns the frontier. It reads (state, symbol) from a configuration,
// looks up the batch in the machine description and hands both to
// engine.Apply, which either yields successors or reports acceptance.
//
// Strategies:
//   - StrategyBFS explores level by level with a FIFO frontier
//   - StrategyDFS explores the first transition first with a LIFO frontier
//   - StrategyDeterministic follows only the first transition of each batch
//     and mutates a single configuration in place
//
// Steps are counted by depth: Result.Steps is the depth of the
// configuration whose batch accepted, or the deepest level expanded when
// the tree rejects. A run whose depth exceeds the configured maximum fails
// with StepsExceededError.
package search
