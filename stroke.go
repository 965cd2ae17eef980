package tess

import (
	"fmt"

	"github.com/gogpu/tess/internal/stroke"
)

// WithLineWidth returns a copy of the options with the given line width.
func (o StrokeOptions) WithLineWidth(w float64) StrokeOptions {
	o.LineWidth = w
	return o
}

// WithCaps returns a copy of the options with both caps set to lineCap.
func (o StrokeOptions) WithCaps(lineCap LineCap) StrokeOptions {
	o.StartCap = lineCap
	o.EndCap = lineCap
	return o
}

// WithLineJoin returns a copy of the options with the given line join.
func (o StrokeOptions) WithLineJoin(join LineJoin) StrokeOptions {
	o.LineJoin = join
	return o
}

// WithMiterLimit returns a copy of the options with the given miter limit.
func (o StrokeOptions) WithMiterLimit(limit float64) StrokeOptions {
	o.MiterLimit = limit
	return o
}

// WithTolerance returns a copy of the options with the given tolerance.
func (o StrokeOptions) WithTolerance(tolerance float64) StrokeOptions {
	o.Tolerance = tolerance
	return o
}

// WithConstants returns a copy of the options with the given vertex constants.
func (o StrokeOptions) WithConstants(c VertexConstants) StrokeOptions {
	o.Constants = c
	return o
}

// StrokeTessellator triangulates the outline of paths. It keeps scratch
// buffers between calls and is not safe for concurrent use.
type StrokeTessellator struct {
	expander *stroke.StrokeExpander
	flat     flattener
}

// NewStrokeTessellator creates a stroke tessellator.
func NewStrokeTessellator() *StrokeTessellator {
	return &StrokeTessellator{expander: stroke.NewStrokeExpander()}
}

// Tessellate strokes path into out. A zero line width produces no
// triangles.
//
// On failure out is left as it was before the call. A vertex count beyond
// the index type returns ErrTooManyVertices; other failures wrap
// ErrTessellation.
func (t *StrokeTessellator) Tessellate(path *Path, opts StrokeOptions, out Output) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrTessellation, err)
	}
	contours := t.flat.flatten(path, opts.Tolerance)

	sink := out.begin(path.attrCount, PrimitiveStroke, opts.Constants)
	if err := t.expander.Expand(contours, opts.style(), sink); err != nil {
		out.rollback()
		return failure("stroke", err)
	}
	return nil
}

// TessellateStroke strokes path into a new Geometry.
func TessellateStroke[I Index](path *Path, opts StrokeOptions) (*Geometry[I], error) {
	g := NewGeometry[I]()
	if err := NewStrokeTessellator().Tessellate(path, opts, g); err != nil {
		return nil, err
	}
	return g, nil
}
