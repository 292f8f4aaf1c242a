// Package geom defines the shapes whose measure is estimated by sampling.
//
// Each shape knows three things:
//   - its axis-aligned bounding box, given as half-extents per axis
//   - the implicit inequality that decides whether a point is inside
//   - the closed-form measure (area or volume) used as the reference value
//
// Shapes are validated with Validate before any sampling happens. Invalid
// parameters (non-positive, NaN, infinite) are reported as errors wrapping
// ErrInvalidInput.
package geom
