package convergence

import (
	"context"
	"errors"
)

var (
	// ErrStorageUnavailable is wrapped by failures to read or write the backing storage.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMalformedLog is wrapped when existing storage does not match the log schema.
	ErrMalformedLog = errors.New("malformed convergence log")
)

// Record is one π estimate and the sample count that produced it.
type Record struct {
	NumPoints  int     `json:"num_points"`
	PiEstimate float64 `json:"pi_estimate"`
}

// Log is an append-only sequence of Records.
type Log interface {
	// Append adds rec at the end, creating the storage on first use.
	Append(ctx context.Context, rec Record) error

	// ReadAll returns every record in append order. It never returns nil
	// on success; an absent log yields an empty slice.
	ReadAll(ctx context.Context) ([]Record, error)

	// Reset drops all records. Resetting an absent log is a no-op.
	Reset(ctx context.Context) error
}
