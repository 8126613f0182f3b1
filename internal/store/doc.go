// Package store provides SQLite-backed history of simulation runs.
//
// Each run records the machine (by name and content hash), the input, the
// search strategy and the result summary. Configurations are never stored.
//
// # Ordering
//
//   - Runs are ordered by seq, a logical counter assigned on insert, NEVER
//     by wall-clock time
//   - All queries include: ORDER BY seq ASC, id ASC COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// The schema version lives in PRAGMA user_version. Databases stamped with a
// newer version are refused with ErrSchemaTooNew.
package store
