package store

import (
	"context"
	"fmt"

	"github.com/achimpruben/monte-carlo-sims/internal/convergence"
)

// Append inserts a record at the end of the log, creating the table if
// the log is ABSENT.
func (s *Store) Append(ctx context.Context, rec convergence.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append: begin tx: %w: %w", convergence.ErrStorageUnavailable, err)
	}
	defer tx.Rollback() // No-op if committed

	if err := ensureSchema(ctx, tx); err != nil {
		return fmt.Errorf("append: %w: %w", convergence.ErrStorageUnavailable, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pi_estimates (num_points, pi_estimate)
		VALUES (?, ?)
	`, rec.NumPoints, rec.PiEstimate)
	if err != nil {
		return fmt.Errorf("append: insert: %w: %w", convergence.ErrStorageUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append: commit: %w: %w", convergence.ErrStorageUnavailable, err)
	}
	return nil
}

// Reset drops the log table. Resetting an ABSENT log is a no-op.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS pi_estimates"); err != nil {
		return fmt.Errorf("reset: %w: %w", convergence.ErrStorageUnavailable, err)
	}
	return nil
}
