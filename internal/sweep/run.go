package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/achimpruben/monte-carlo-sims/internal/mc"
)

// Estimator is the part of mc.Service a sweep needs.
type Estimator interface {
	Circle(ctx context.Context, radius float64, numPoints int) (mc.Estimation, error)
	ResetLog(ctx context.Context) error
}

// Step is the outcome of one sweep run.
type Step struct {
	RunID      string  `json:"run_id"`
	NumPoints  int     `json:"num_points"`
	Area       float64 `json:"area"`
	PiEstimate float64 `json:"pi_estimate"`
	PiError    float64 `json:"pi_error"`
}

// Report is the outcome of a whole sweep.
type Report struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	onStep func(Step)
}

// OnStep registers fn to be called after each completed step.
func OnStep(fn func(Step)) RunOption {
	return func(c *runConfig) { c.onStep = fn }
}

// Run executes plan against est. It stops at the first failing step and
// returns the steps completed so far together with the error.
func Run(ctx context.Context, est Estimator, plan *Plan, opts ...RunOption) (Report, error) {
	var cfg runConfig
	for _, o := range opts {
		o(&cfg)
	}
	report := Report{Name: plan.Name, Steps: make([]Step, 0, len(plan.Points))}

	if plan.Reset {
		if err := est.ResetLog(ctx); err != nil {
			return report, fmt.Errorf("sweep %s: %w", plan.Name, err)
		}
	}

	for i, n := range plan.Points {
		res, err := est.Circle(ctx, plan.Radius, n)
		if err != nil {
			return report, fmt.Errorf("sweep %s: step %d (%d points): %w", plan.Name, i, n, err)
		}
		pi := *res.Pi
		step := Step{
			RunID:      res.RunID,
			NumPoints:  n,
			Area:       res.Result.Estimated,
			PiEstimate: pi,
			PiError:    math.Abs(pi - math.Pi),
		}
		report.Steps = append(report.Steps, step)
		if cfg.onStep != nil {
			cfg.onStep(step)
		}
	}

	return report, nil
}
