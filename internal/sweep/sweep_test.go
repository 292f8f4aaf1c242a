package sweep

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achimpruben/monte-carlo-sims/internal/convergence"
	"github.com/achimpruben/monte-carlo-sims/internal/mc"
)

func newService(log convergence.Log, ids ...string) *mc.Service {
	return mc.New(log,
		mc.WithSamplers(mc.SeededSamplers(3)),
		mc.WithRunIDs(mc.NewFixedGenerator(ids...)),
		mc.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	content := `
name: pi-convergence
description: grow the sample
radius: 1.0
points: [100, 1000]
reset: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	plan, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, &Plan{
		Name:        "pi-convergence",
		Description: "grow the sample",
		Radius:      1.0,
		Points:      []int{100, 1000},
		Reset:       true,
	}, plan)
}

func TestLoadPlan_MissingFile(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read plan file")
}

func TestParsePlan_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{"unknown field", "name: x\nradius: 1\npoints: [1]\nrests: true\n", "failed to parse YAML"},
		{"missing name", "radius: 1\npoints: [1]\n", "name is required"},
		{"zero radius", "name: x\nradius: 0\npoints: [1]\n", "radius must be positive"},
		{"no points", "name: x\nradius: 1\n", "points list is required"},
		{"bad count", "name: x\nradius: 1\npoints: [10, 0]\n", "points[1] must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlan([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRun_AppendsEveryStep(t *testing.T) {
	ctx := context.Background()
	log := convergence.NewMemoryLog()
	require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 1, PiEstimate: 4}))

	plan := &Plan{Name: "p", Radius: 1, Points: []int{100, 1000, 10000}, Reset: true}
	report, err := Run(ctx, newService(log, "a", "b", "c"), plan)
	require.NoError(t, err)

	require.Len(t, report.Steps, 3)
	assert.Equal(t, "p", report.Name)
	assert.Equal(t, []string{"a", "b", "c"}, []string{report.Steps[0].RunID, report.Steps[1].RunID, report.Steps[2].RunID})

	records, err := log.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3, "reset should drop the pre-existing record")
	for i, step := range report.Steps {
		assert.Equal(t, plan.Points[i], records[i].NumPoints)
		assert.Equal(t, step.PiEstimate, records[i].PiEstimate)
		assert.InDelta(t, math.Abs(step.PiEstimate-math.Pi), step.PiError, 1e-12)
	}
}

func TestRun_KeepsLogWithoutReset(t *testing.T) {
	ctx := context.Background()
	log := convergence.NewMemoryLog()
	require.NoError(t, log.Append(ctx, convergence.Record{NumPoints: 1, PiEstimate: 4}))

	_, err := Run(ctx, newService(log, "a"), &Plan{Name: "p", Radius: 2, Points: []int{50}})
	require.NoError(t, err)

	records, err := log.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRun_StopsOnError(t *testing.T) {
	ctx := context.Background()
	log := convergence.NewMemoryLog()

	// Plans are validated on load; a hand-built plan can still carry a bad count.
	plan := &Plan{Name: "p", Radius: 1, Points: []int{100, -1, 100}}
	report, err := Run(ctx, newService(log, "a", "b"), plan)

	assert.ErrorIs(t, err, mc.ErrInvalidInput)
	assert.Len(t, report.Steps, 1)
	records, rerr := log.ReadAll(ctx)
	require.NoError(t, rerr)
	assert.Len(t, records, 1)
}

func TestRun_OnStep(t *testing.T) {
	ctx := context.Background()
	var seen []int

	plan := &Plan{Name: "p", Radius: 1, Points: []int{10, 20}}
	report, err := Run(ctx, newService(convergence.NewMemoryLog(), "a", "b"), plan,
		OnStep(func(s Step) { seen = append(seen, s.NumPoints) }),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, seen)
	assert.Len(t, report.Steps, 2)
}

func TestLoadPlan_Testdata(t *testing.T) {
	plan, err := LoadPlan(filepath.Join("testdata", "pi-convergence.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "pi-convergence", plan.Name)
	assert.Equal(t, []int{100, 1000, 10000, 100000}, plan.Points)
	assert.True(t, plan.Reset)
}
