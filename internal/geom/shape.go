package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is wrapped by every parameter validation failure.
var ErrInvalidInput = errors.New("invalid input")

// Point is a single classified sample. Z is zero for 2-D shapes.
type Point struct {
	X, Y, Z float64
	Inside  bool
}

// Shape is a region with a bounding box and a closed-form measure.
type Shape interface {
	// Name returns the shape kind ("circle", "ellipse", "sphere").
	Name() string

	// HalfExtents returns the bounding box half-width per axis.
	// len(HalfExtents()) is the dimensionality of the shape.
	HalfExtents() []float64

	// Contains reports whether p satisfies the shape's inequality.
	Contains(p Point) bool

	// BoundingMeasure is the area/volume of the bounding box.
	BoundingMeasure() float64

	// Actual is the closed-form area/volume of the shape.
	Actual() float64

	// Validate returns an error wrapping ErrInvalidInput if any parameter is unusable.
	Validate() error
}

// MaxPoints bounds the number of samples in one estimation.
// Every sample is held in memory until the estimate is computed.
const MaxPoints = 10_000_000

// ParamError describes a rejected shape or sampling parameter.
type ParamError struct {
	Field string
	Value float64

	// Reason overrides the default "must be a positive finite number".
	Reason string
}

func (e *ParamError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be a positive finite number"
	}
	return fmt.Sprintf("%s %s, got %v", e.Field, reason, e.Value)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold for every ParamError.
func (e *ParamError) Unwrap() error {
	return ErrInvalidInput
}

// CheckPositive returns a *ParamError unless v is finite and > 0.
func CheckPositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &ParamError{Field: field, Value: v}
	}
	return nil
}

// CheckPoints validates a sample count: 0 < n <= MaxPoints.
func CheckPoints(n int) error {
	if n <= 0 {
		return &ParamError{Field: "num_points", Value: float64(n)}
	}
	if n > MaxPoints {
		return &ParamError{Field: "num_points", Value: float64(n), Reason: fmt.Sprintf("must not exceed %d", MaxPoints)}
	}
	return nil
}

// checkMeasures rejects parameters whose bounding or closed-form measure
// underflows to zero or overflows to infinity.
func checkMeasures(field string, value float64, s Shape) error {
	for _, m := range []float64{s.BoundingMeasure(), s.Actual()} {
		if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
			return &ParamError{Field: field, Value: value, Reason: "is out of range for " + s.Name() + " measures"}
		}
	}
	return nil
}

// Circle is a disc of radius R centred at the origin.
type Circle struct {
	R float64
}

func (c Circle) Name() string { return "circle" }

func (c Circle) HalfExtents() []float64 { return []float64{c.R, c.R} }

func (c Circle) Contains(p Point) bool {
	return p.X*p.X+p.Y*p.Y <= c.R*c.R
}

func (c Circle) BoundingMeasure() float64 {
	side := 2 * c.R
	return side * side
}

func (c Circle) Actual() float64 { return math.Pi * c.R * c.R }

func (c Circle) Validate() error {
	if err := CheckPositive("radius", c.R); err != nil {
		return err
	}
	return checkMeasures("radius", c.R, c)
}

// Ellipse is centred at the origin with semi-axes A (x) and B (y).
type Ellipse struct {
	A, B float64
}

func (e Ellipse) Name() string { return "ellipse" }

func (e Ellipse) HalfExtents() []float64 { return []float64{e.A, e.B} }

func (e Ellipse) Contains(p Point) bool {
	x, y := p.X/e.A, p.Y/e.B
	return x*x+y*y <= 1
}

func (e Ellipse) BoundingMeasure() float64 { return (2 * e.A) * (2 * e.B) }

func (e Ellipse) Actual() float64 { return math.Pi * e.A * e.B }

func (e Ellipse) Validate() error {
	if err := errors.Join(CheckPositive("a", e.A), CheckPositive("b", e.B)); err != nil {
		return err
	}
	return checkMeasures("a*b", e.A*e.B, e)
}

// Sphere is a ball of radius R centred at the origin.
type Sphere struct {
	R float64
}

func (s Sphere) Name() string { return "sphere" }

func (s Sphere) HalfExtents() []float64 { return []float64{s.R, s.R, s.R} }

func (s Sphere) Contains(p Point) bool {
	return p.X*p.X+p.Y*p.Y+p.Z*p.Z <= s.R*s.R
}

func (s Sphere) BoundingMeasure() float64 {
	side := 2 * s.R
	return side * side * side
}

func (s Sphere) Actual() float64 { return 4.0 / 3.0 * math.Pi * s.R * s.R * s.R }

func (s Sphere) Validate() error {
	if err := CheckPositive("radius", s.R); err != nil {
		return err
	}
	return checkMeasures("radius", s.R, s)
}
