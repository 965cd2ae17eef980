// Package tess builds 2D vector paths and tessellates them into triangle
// meshes for GPU rasterization.
//
// # Overview
//
// A [Builder] records drawing commands (lines, quadratic and cubic Béziers,
// elliptical arcs, SVG-style smooth and relative commands) into an immutable
// [Path]. Every endpoint carries a fixed number of custom float32 attributes
// that are interpolated along curves and across tessellated triangles.
//
// A Path is turned into triangles by a [FillTessellator] or a
// [StrokeTessellator]. Output goes to a [Geometry] whose index type, uint16
// or uint32, is fixed by its type parameter. A tessellation that would need
// more vertices than the index type can address fails with
// [ErrTooManyVertices]; the caller may retry with wider indices.
//
// # Quick Start
//
//	b := tess.NewBuilder(0)
//	b.AddCircle(tess.Pt(100, 100), 50, nil)
//	path := b.Build()
//
//	geom, err := tess.TessellateFill[uint16](path, tess.DefaultFillOptions())
//	if errors.Is(err, tess.ErrTooManyVertices) {
//	    // retry with uint32 indices
//	}
//
// # Coordinate System
//
// Coordinates are float64 in an arbitrary unit. Angles are in radians,
// measured from the positive x axis towards the positive y axis.
//
// # Contract Violations
//
// Using a Builder after Build, adding to a subpath that was never begun, or
// passing attribute slices of the wrong length are programming errors and
// panic with a "tess:" message.
package tess
