// Package mc runs Monte Carlo estimations end to end: it validates inputs,
// samples, estimates and, for circles, appends the π estimate to the
// convergence log.
package mc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/achimpruben/monte-carlo-sims/internal/convergence"
	"github.com/achimpruben/monte-carlo-sims/internal/estimator"
	"github.com/achimpruben/monte-carlo-sims/internal/geom"
	"github.com/achimpruben/monte-carlo-sims/internal/sampler"
)

// Error taxonomy re-exported for callers that only import mc.
var (
	ErrInvalidInput       = geom.ErrInvalidInput
	ErrStorageUnavailable = convergence.ErrStorageUnavailable
)

// Estimation is the outcome of one run.
type Estimation struct {
	RunID  string
	Result estimator.Result

	// Pi is set for circle runs only.
	Pi *float64

	// Points are the classified samples the result was computed from.
	Points []geom.Point
}

// SamplerFactory returns a fresh Sampler for a run.
type SamplerFactory func() *sampler.Sampler

// SeededSamplers returns a factory that gives every run the same seed,
// so repeated runs with equal inputs produce equal results.
func SeededSamplers(seed uint64) SamplerFactory {
	return func() *sampler.Sampler { return sampler.New(seed) }
}

// Service wires the sampler, estimator and convergence log together.
type Service struct {
	log      convergence.Log
	samplers SamplerFactory
	runIDs   RunIDGenerator
	logger   *slog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithSamplers overrides the sampler factory (default: sampler.NewRandom).
func WithSamplers(f SamplerFactory) Option {
	return func(s *Service) { s.samplers = f }
}

// WithRunIDs overrides the run ID generator (default: UUIDv7Generator).
func WithRunIDs(g RunIDGenerator) Option {
	return func(s *Service) { s.runIDs = g }
}

// WithLogger sets the structured logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service that records circle runs in log.
func New(log convergence.Log, opts ...Option) *Service {
	s := &Service{
		log:      log,
		samplers: sampler.NewRandom,
		runIDs:   UUIDv7Generator{},
		logger:   slog.Default(),
	}
	for _, o := range opts {
		if o != nil {
			o(s)
		}
	}
	return s
}

// Circle estimates the area of a circle and derives π from it. The π
// estimate is appended to the convergence log; if that fails the whole
// run fails and no result is returned.
func (s *Service) Circle(ctx context.Context, radius float64, numPoints int) (Estimation, error) {
	if err := ctx.Err(); err != nil {
		return Estimation{}, err
	}
	shape := geom.Circle{R: radius}
	est, err := s.run(shape, numPoints)
	if err != nil {
		return Estimation{}, err
	}

	pi, err := estimator.PiFromArea(est.Result.Estimated, radius)
	if err != nil {
		return Estimation{}, fmt.Errorf("circle: %w", err)
	}
	est.Pi = &pi

	rec := convergence.Record{NumPoints: numPoints, PiEstimate: pi}
	if err := s.log.Append(ctx, rec); err != nil {
		s.logger.Error("convergence log append failed", "run_id", est.RunID, "error", err)
		if !errors.Is(err, convergence.ErrStorageUnavailable) {
			err = fmt.Errorf("%w: %w", convergence.ErrStorageUnavailable, err)
		}
		return Estimation{}, fmt.Errorf("circle: %w", err)
	}
	s.logger.Debug("pi estimate logged", "run_id", est.RunID, "num_points", numPoints, "pi", pi)

	return est, nil
}

// Ellipse estimates the area of an ellipse with semi-axes a and b.
func (s *Service) Ellipse(ctx context.Context, a, b float64, numPoints int) (Estimation, error) {
	if err := ctx.Err(); err != nil {
		return Estimation{}, err
	}
	return s.run(geom.Ellipse{A: a, B: b}, numPoints)
}

// Sphere estimates the volume of a sphere.
func (s *Service) Sphere(ctx context.Context, radius float64, numPoints int) (Estimation, error) {
	if err := ctx.Err(); err != nil {
		return Estimation{}, err
	}
	return s.run(geom.Sphere{R: radius}, numPoints)
}

// Convergence returns every logged π estimate in append order.
func (s *Service) Convergence(ctx context.Context) ([]convergence.Record, error) {
	records, err := s.log.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("convergence: %w", err)
	}
	return records, nil
}

// ResetLog clears the convergence log.
func (s *Service) ResetLog(ctx context.Context) error {
	if err := s.log.Reset(ctx); err != nil {
		return fmt.Errorf("reset log: %w", err)
	}
	s.logger.Info("convergence log reset")
	return nil
}

// run validates inputs, samples and estimates. Validation happens here so
// bad input never reaches the sampler.
func (s *Service) run(shape geom.Shape, numPoints int) (Estimation, error) {
	if err := errors.Join(geom.CheckPoints(numPoints), shape.Validate()); err != nil {
		s.logger.Warn("rejected estimation input", "shape", shape.Name(), "num_points", numPoints, "error", err)
		return Estimation{}, fmt.Errorf("%s: %w", shape.Name(), err)
	}

	runID := s.runIDs.Generate()
	s.logger.Debug("sampling", "run_id", runID, "shape", shape.Name(), "num_points", numPoints)

	points, err := s.samplers().Sample(shape, numPoints)
	if err != nil {
		return Estimation{}, fmt.Errorf("%s: %w", shape.Name(), err)
	}
	res, err := estimator.Estimate(points, shape)
	if err != nil {
		return Estimation{}, fmt.Errorf("%s: %w", shape.Name(), err)
	}

	s.logger.Info("estimation complete",
		"run_id", runID,
		"shape", res.Shape,
		"num_points", res.SampleCount,
		"estimate", res.Estimated,
		"actual", res.Actual,
	)

	return Estimation{RunID: runID, Result: res, Points: points}, nil
}
