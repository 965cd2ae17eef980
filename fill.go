package tess

import (
	"errors"
	"fmt"

	"github.com/gogpu/tess/internal/sweep"
)

// WithFillRule returns a copy of the options with the given fill rule.
func (o FillOptions) WithFillRule(rule FillRule) FillOptions {
	o.FillRule = rule
	return o
}

// WithTolerance returns a copy of the options with the given tolerance.
func (o FillOptions) WithTolerance(tolerance float64) FillOptions {
	o.Tolerance = tolerance
	return o
}

// WithConstants returns a copy of the options with the given vertex constants.
func (o FillOptions) WithConstants(c VertexConstants) FillOptions {
	o.Constants = c
	return o
}

// FillTessellator triangulates the inside of paths. It keeps scratch
// buffers between calls and is not safe for concurrent use; distinct
// tessellators may run in parallel.
type FillTessellator struct {
	sweep *sweep.Tessellator
	flat  flattener
}

// NewFillTessellator creates a fill tessellator.
func NewFillTessellator() *FillTessellator {
	return &FillTessellator{sweep: sweep.New()}
}

// Tessellate fills path into out. Every subpath is treated as closed.
//
// On failure out is left as it was before the call. A vertex count beyond
// the index type returns ErrTooManyVertices; other failures wrap
// ErrTessellation.
func (t *FillTessellator) Tessellate(path *Path, opts FillOptions, out Output) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrTessellation, err)
	}
	contours := t.flat.flatten(path, opts.Tolerance)

	rule := sweep.EvenOdd
	if opts.FillRule == FillRuleNonZero {
		rule = sweep.NonZero
	}
	sink := out.begin(path.attrCount, PrimitiveFill, opts.Constants)
	err := t.sweep.Tessellate(contours, path.attrCount, sweep.Options{
		FillRule:   rule,
		Horizontal: opts.Orientation == OrientationHorizontal,
	}, sink)
	if err != nil {
		out.rollback()
		return failure("fill", err)
	}
	return nil
}

// TessellateFill fills path into a new Geometry.
func TessellateFill[I Index](path *Path, opts FillOptions) (*Geometry[I], error) {
	g := NewGeometry[I]()
	if err := NewFillTessellator().Tessellate(path, opts, g); err != nil {
		return nil, err
	}
	return g, nil
}

// failure classifies a tessellator error.
func failure(op string, err error) error {
	if errors.Is(err, ErrTooManyVertices) {
		Logger().Debug("tess: index range exhausted", "op", op)
		return err
	}
	Logger().Warn("tess: tessellation failed", "op", op, "err", err)
	return fmt.Errorf("%w: %s: %w", ErrTessellation, op, err)
}
