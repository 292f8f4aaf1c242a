// Package sampler draws uniform points from a shape's bounding box and
// classifies each one against the shape's inequality.
package sampler

import (
	"fmt"
	"math/rand/v2"

	"github.com/achimpruben/monte-carlo-sims/internal/geom"
)

// Sampler owns a random stream. A Sampler is not safe for concurrent use;
// create one per estimation.
type Sampler struct {
	rng *rand.Rand
}

// New creates a Sampler with a deterministic stream derived from seed.
// Two Samplers built from the same seed produce identical points.
func New(seed uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandom creates a Sampler seeded from the runtime's random source.
func NewRandom() *Sampler {
	return New(rand.Uint64())
}

// Sample draws numPoints independent points uniformly from the bounding box
// of shape and marks each as inside or outside.
//
// Returns an error wrapping geom.ErrInvalidInput (and no points) if the
// shape or numPoints is invalid.
func (s *Sampler) Sample(shape geom.Shape, numPoints int) ([]geom.Point, error) {
	if err := geom.CheckPoints(numPoints); err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("sample %s: %w", shape.Name(), err)
	}

	half := shape.HalfExtents()
	points := make([]geom.Point, numPoints)
	for i := range points {
		var coords [3]float64
		for axis, h := range half {
			coords[axis] = s.uniform(h)
		}
		p := geom.Point{X: coords[0], Y: coords[1], Z: coords[2]}
		p.Inside = shape.Contains(p)
		points[i] = p
	}

	return points, nil
}

// uniform returns a value in [-h, h).
func (s *Sampler) uniform(h float64) float64 {
	return h * (2*s.rng.Float64() - 1)
}

// CountInside returns the number of points marked inside.
func CountInside(points []geom.Point) int {
	n := 0
	for _, p := range points {
		if p.Inside {
			n++
		}
	}
	return n
}
