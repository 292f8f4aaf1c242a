// Package convergencetest checks that a convergence.Log implementation
// honours the log contract.
package convergencetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achimpruben/monte-carlo-sims/internal/convergence"
)

// Factory returns a fresh, ABSENT log for each call.
type Factory func(t *testing.T) convergence.Log

// Run exercises append/read/reset semantics against logs built by newLog.
func Run(t *testing.T, newLog Factory) {
	t.Helper()

	t.Run("ReadAbsent", func(t *testing.T) {
		log := newLog(t)
		records, err := log.ReadAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		ctx := context.Background()
		log := newLog(t)

		require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 100, PiEstimate: 3.1}))
		require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 200, PiEstimate: 3.14}))

		records, err := log.ReadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []convergence.Record{
			{NumPoints: 100, PiEstimate: 3.1},
			{NumPoints: 200, PiEstimate: 3.14},
		}, records)
	})

	t.Run("ReadObservesLaterAppend", func(t *testing.T) {
		ctx := context.Background()
		log := newLog(t)

		require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 10, PiEstimate: 2.8}))
		first, err := log.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, first, 1)

		require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 20, PiEstimate: 3.2}))
		second, err := log.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, second, 2)
		assert.Equal(t, convergence.Record{NumPoints: 20, PiEstimate: 3.2}, second[1])
		assert.Len(t, first, 1, "earlier result must not change")
	})

	t.Run("FullPrecision", func(t *testing.T) {
		ctx := context.Background()
		log := newLog(t)

		rec := convergence.Record{NumPoints: 1_000_000, PiEstimate: 3.141592653589793}
		require.NoError(t, log.Append(ctx, rec))

		records, err := log.ReadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []convergence.Record{rec}, records)
	})

	t.Run("ResetEmpties", func(t *testing.T) {
		ctx := context.Background()
		log := newLog(t)

		for i := 1; i <= 5; i++ {
			require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: i * 100, PiEstimate: 3}))
		}
		require.NoError(t, log.Reset(ctx))

		records, err := log.ReadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("ResetAbsentIsNoop", func(t *testing.T) {
		ctx := context.Background()
		log := newLog(t)

		require.NoError(t, log.Reset(ctx))
		require.NoError(t, log.Reset(ctx))
	})

	t.Run("AppendAfterReset", func(t *testing.T) {
		ctx := context.Background()
		log := newLog(t)

		require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 1, PiEstimate: 4}))
		require.NoError(t, log.Reset(ctx))
		require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 2, PiEstimate: 3}))

		records, err := log.ReadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []convergence.Record{{NumPoints: 2, PiEstimate: 3}}, records)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		log := newLog(t)

		assert.Error(t, log.Append(ctx, convergence.Record{NumPoints: 1, PiEstimate: 3}))
	})
}
