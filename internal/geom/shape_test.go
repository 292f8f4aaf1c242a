package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircle_Contains(t *testing.T) {
	c := Circle{R: 2}

	assert.True(t, c.Contains(Point{X: 0, Y: 0}))
	assert.True(t, c.Contains(Point{X: 2, Y: 0}), "boundary is inside")
	assert.False(t, c.Contains(Point{X: 1.5, Y: 1.5}))
}

func TestEllipse_Contains(t *testing.T) {
	e := Ellipse{A: 2, B: 1}

	assert.True(t, e.Contains(Point{X: 2, Y: 0}))
	assert.True(t, e.Contains(Point{X: 0, Y: 1}))
	assert.False(t, e.Contains(Point{X: 0, Y: 1.01}))
	assert.False(t, e.Contains(Point{X: 1.9, Y: 0.9}))
}

func TestSphere_Contains(t *testing.T) {
	s := Sphere{R: 1}

	assert.True(t, s.Contains(Point{X: 0.5, Y: 0.5, Z: 0.5}))
	assert.False(t, s.Contains(Point{X: 0.6, Y: 0.6, Z: 0.6}))
}

func TestMeasures(t *testing.T) {
	tests := []struct {
		name     string
		shape    Shape
		bounding float64
		actual   float64
		dims     int
	}{
		{"circle", Circle{R: 1.5}, 9, math.Pi * 2.25, 2},
		{"ellipse", Ellipse{A: 2, B: 1}, 8, 2 * math.Pi, 2},
		{"sphere", Sphere{R: 1}, 8, 4.0 / 3.0 * math.Pi, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.shape.Name())
			assert.InDelta(t, tt.bounding, tt.shape.BoundingMeasure(), 1e-12)
			assert.InDelta(t, tt.actual, tt.shape.Actual(), 1e-12)
			assert.Len(t, tt.shape.HalfExtents(), tt.dims)
		})
	}
}

func TestValidate_RejectsBadParameters(t *testing.T) {
	bad := []Shape{
		Circle{R: 0},
		Circle{R: -1},
		Circle{R: math.NaN()},
		Ellipse{A: 2, B: 0},
		Ellipse{A: math.Inf(1), B: 1},
		Sphere{R: -0.5},
		Circle{R: 1e-170},
		Circle{R: 1e200},
		Ellipse{A: 1e-200, B: 1e-200},
		Ellipse{A: 1e200, B: 1e200},
		Sphere{R: 1e-110},
		Sphere{R: 1e120},
	}

	for _, s := range bad {
		err := s.Validate()
		require.Error(t, err, "%#v", s)
		assert.True(t, errors.Is(err, ErrInvalidInput), "%#v: %v", s, err)
	}
}

func TestValidate_AcceptsGoodParameters(t *testing.T) {
	assert.NoError(t, Circle{R: 1}.Validate())
	assert.NoError(t, Ellipse{A: 2, B: 1}.Validate())
	assert.NoError(t, Sphere{R: 0.1}.Validate())
	assert.NoError(t, Circle{R: 1e-100}.Validate())
	assert.NoError(t, Ellipse{A: 1e200, B: 1e-200}.Validate())
}

func TestCheckPoints(t *testing.T) {
	assert.NoError(t, CheckPoints(1))
	assert.NoError(t, CheckPoints(MaxPoints))

	for _, n := range []int{0, -10, MaxPoints + 1} {
		err := CheckPoints(n)
		var pe *ParamError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "num_points", pe.Field)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestParamError_Message(t *testing.T) {
	err := Circle{R: 1e200}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "radius is out of range for circle measures")

	err = CheckPoints(MaxPoints + 1)
	assert.Contains(t, err.Error(), "must not exceed 10000000")
}
