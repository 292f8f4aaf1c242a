// Package estimator reduces classified samples to an area or volume estimate.
package estimator

import (
	"fmt"
	"math"

	"github.com/achimpruben/monte-carlo-sims/internal/geom"
	"github.com/achimpruben/monte-carlo-sims/internal/sampler"
)

// Result is the outcome of a single estimation.
type Result struct {
	Shape       string  `json:"shape"`
	Estimated   float64 `json:"estimated"`
	Actual      float64 `json:"actual"`
	SampleCount int     `json:"num_points"`
	InsideCount int     `json:"inside"`
}

// AbsError returns |Estimated - Actual|.
func (r Result) AbsError() float64 {
	return math.Abs(r.Estimated - r.Actual)
}

// RelError returns AbsError relative to Actual.
func (r Result) RelError() float64 {
	if r.Actual == 0 {
		return math.Inf(1)
	}
	return r.AbsError() / r.Actual
}

// Estimate computes inside/total scaled by the bounding box measure of shape.
//
// points must be non-empty; the shape must be the one the points were drawn for.
func Estimate(points []geom.Point, shape geom.Shape) (Result, error) {
	if len(points) == 0 {
		return Result{}, fmt.Errorf("estimate %s: no samples: %w", shape.Name(), geom.ErrInvalidInput)
	}
	if err := shape.Validate(); err != nil {
		return Result{}, fmt.Errorf("estimate %s: %w", shape.Name(), err)
	}

	inside := sampler.CountInside(points)
	ratio := float64(inside) / float64(len(points))
	estimated := ratio * shape.BoundingMeasure()
	if !isFinite(estimated) {
		return Result{}, fmt.Errorf("estimate %s: estimate %v is not finite: %w", shape.Name(), estimated, geom.ErrInvalidInput)
	}

	return Result{
		Shape:       shape.Name(),
		Estimated:   estimated,
		Actual:      shape.Actual(),
		SampleCount: len(points),
		InsideCount: inside,
	}, nil
}

// PiFromArea derives π from a circle area estimate: area / radius².
// The result is always finite.
func PiFromArea(area, radius float64) (float64, error) {
	if err := geom.CheckPositive("radius", radius); err != nil {
		return 0, fmt.Errorf("pi from area: %w", err)
	}
	sq := radius * radius
	if !isFinite(sq) || sq == 0 {
		return 0, fmt.Errorf("pi from area: %w", &geom.ParamError{Field: "radius", Value: radius, Reason: "squared is out of range"})
	}
	pi := area / sq
	if !isFinite(pi) {
		return 0, fmt.Errorf("pi from area: area %v over radius %v gives %v: %w", area, radius, pi, geom.ErrInvalidInput)
	}
	return pi, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
