// Package store provides a SQLite-backed convergence log.
//
// The store keeps one table, pi_estimates, holding (num_points, pi_estimate)
// rows in append order:
//
//   - All ordering uses seq INTEGER (AUTOINCREMENT), never timestamps
//   - Reads always ORDER BY seq ASC
//   - Reset drops the table; the next Append recreates it from schema.sql
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Store satisfies convergence.Log.
package store
