// Package convergence records successive π estimates so the approach to π
// can be inspected over time.
//
// The log is append-only and has two states:
//
//	ABSENT  --Append-->  PRESENT
//	PRESENT --Append-->  PRESENT
//	PRESENT --Reset-->   ABSENT
//	ABSENT  --Reset-->   ABSENT   (no-op)
//
// ReadAll on an ABSENT log returns an empty slice. Records are returned in
// the order they were appended.
//
// # Implementations
//
//   - CSVLog: a text file with header "num_points,pi_estimate", one record per line
//   - MemoryLog: process memory, for tests and throwaway sessions
//   - store.Store: SQLite (see internal/store)
//
// Logs are single-writer. In-process implementations serialise their own
// calls; concurrent writers in separate processes are not supported.
package convergence
