package store

import (
	"context"
	"fmt"

	"github.com/achimpruben/monte-carlo-sims/internal/convergence"
)

// ReadAll returns all records ordered by seq ASC.
//
// Returns an empty slice (not nil) if the log is ABSENT or empty.
func (s *Store) ReadAll(ctx context.Context) ([]convergence.Record, error) {
	exists, err := s.tableExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("read all: %w: %w", convergence.ErrStorageUnavailable, err)
	}
	if !exists {
		return []convergence.Record{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT num_points, pi_estimate
		FROM pi_estimates
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w: %w", convergence.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	records := []convergence.Record{}
	for rows.Next() {
		var rec convergence.Record
		if err := rows.Scan(&rec.NumPoints, &rec.PiEstimate); err != nil {
			return nil, fmt.Errorf("scan record: %w: %w", convergence.ErrMalformedLog, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w: %w", convergence.ErrStorageUnavailable, err)
	}

	return records, nil
}

// count returns the number of records, or 0 if the log is ABSENT.
func (s *Store) count(ctx context.Context) (int, error) {
	exists, err := s.tableExists(ctx)
	if err != nil || !exists {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pi_estimates").Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
