package tess

import (
	"fmt"
	"math"

	"github.com/gogpu/tess/internal/stroke"
)

// DefaultTolerance is the default maximum distance between a curve and its
// flattened approximation.
const DefaultTolerance = 0.1

// DefaultMiterLimit is the default ratio between miter length and line width.
const DefaultMiterLimit = 4.0

// BuilderOption configures a Builder during creation.
//
// Example:
//
//	// Curves are stored as curve verbs
//	b := tess.NewBuilder(2)
//
//	// Curves are flattened into line verbs as they are added
//	b := tess.NewBuilder(2, tess.WithFlattening(0.05))
type BuilderOption func(*builderOptions)

type builderOptions struct {
	flattenTolerance float64
	endpoints        int
	ctrlPoints       int
}

// WithFlattening makes the Builder approximate every curve and arc with line
// segments within tolerance as soon as it is added. The built Path then only
// holds line verbs. A non-positive tolerance selects DefaultTolerance.
func WithFlattening(tolerance float64) BuilderOption {
	return func(o *builderOptions) {
		if !(tolerance > 0) {
			tolerance = DefaultTolerance
		}
		o.flattenTolerance = tolerance
	}
}

// WithCapacity preallocates storage, like [Builder.Reserve].
func WithCapacity(endpoints, ctrlPoints int) BuilderOption {
	return func(o *builderOptions) {
		o.endpoints = endpoints
		o.ctrlPoints = ctrlPoints
	}
}

// FillRule decides which regions of a self-overlapping path are inside.
type FillRule uint8

const (
	// FillRuleEvenOdd fills regions with an odd winding number.
	FillRuleEvenOdd FillRule = iota
	// FillRuleNonZero fills regions with a non-zero winding number.
	FillRuleNonZero
)

// String returns the fill rule name.
func (r FillRule) String() string {
	switch r {
	case FillRuleEvenOdd:
		return "EvenOdd"
	case FillRuleNonZero:
		return "NonZero"
	default:
		return fmt.Sprintf("FillRule(%d)", uint8(r))
	}
}

// Orientation selects the sweep axis of the fill tessellator. It affects
// vertex order and triangle shapes but never the covered area.
type Orientation uint8

const (
	// OrientationVertical sweeps top to bottom.
	OrientationVertical Orientation = iota
	// OrientationHorizontal sweeps left to right.
	OrientationHorizontal
)

// LineCap specifies the shape of open subpath endpoints.
type LineCap = stroke.LineCap

const (
	LineCapButt   = stroke.LineCapButt
	LineCapRound  = stroke.LineCapRound
	LineCapSquare = stroke.LineCapSquare
)

// LineJoin specifies the shape of stroke corners.
type LineJoin = stroke.LineJoin

const (
	LineJoinMiter     = stroke.LineJoinMiter
	LineJoinMiterClip = stroke.LineJoinMiterClip
	LineJoinRound     = stroke.LineJoinRound
	LineJoinBevel     = stroke.LineJoinBevel
)

// VertexConstants are copied verbatim into every vertex of a tessellation.
type VertexConstants struct {
	// Color is a packed RRGGBBAA color.
	Color      uint32
	FillIndex  int32
	ShapeIndex int32
}

// FillOptions configures a fill tessellation.
type FillOptions struct {
	Tolerance   float64
	FillRule    FillRule
	Orientation Orientation
	Constants   VertexConstants
}

// DefaultFillOptions returns even-odd filling at DefaultTolerance.
func DefaultFillOptions() FillOptions {
	return FillOptions{
		Tolerance: DefaultTolerance,
		FillRule:  FillRuleEvenOdd,
	}
}

// Validate reports whether the options are usable.
func (o FillOptions) Validate() error {
	if !isPositive(o.Tolerance) {
		return fmt.Errorf("%w: tolerance %v must be positive", ErrInvalidOptions, o.Tolerance)
	}
	if o.FillRule > FillRuleNonZero {
		return fmt.Errorf("%w: unknown fill rule %d", ErrInvalidOptions, o.FillRule)
	}
	if o.Orientation > OrientationHorizontal {
		return fmt.Errorf("%w: unknown orientation %d", ErrInvalidOptions, o.Orientation)
	}
	return nil
}

// StrokeOptions configures a stroke tessellation.
type StrokeOptions struct {
	StartCap   LineCap
	EndCap     LineCap
	LineJoin   LineJoin
	LineWidth  float64
	MiterLimit float64
	Tolerance  float64

	// ApplyLineWidth offsets vertex positions by half the line width. When
	// false positions stay on the path and the width can be applied later
	// from OriginalPosition and Normal.
	ApplyLineWidth bool

	Constants VertexConstants
}

// DefaultStrokeOptions returns a 1-wide stroke with butt caps and miter joins.
func DefaultStrokeOptions() StrokeOptions {
	return StrokeOptions{
		LineWidth:      1,
		MiterLimit:     DefaultMiterLimit,
		Tolerance:      DefaultTolerance,
		ApplyLineWidth: true,
	}
}

// Validate reports whether the options are usable.
func (o StrokeOptions) Validate() error {
	if !isPositive(o.Tolerance) {
		return fmt.Errorf("%w: tolerance %v must be positive", ErrInvalidOptions, o.Tolerance)
	}
	if o.LineWidth < 0 || math.IsNaN(o.LineWidth) || math.IsInf(o.LineWidth, 0) {
		return fmt.Errorf("%w: line width %v must be finite and non-negative", ErrInvalidOptions, o.LineWidth)
	}
	if !(o.MiterLimit >= 1) || math.IsInf(o.MiterLimit, 0) {
		return fmt.Errorf("%w: miter limit %v must be at least 1", ErrInvalidOptions, o.MiterLimit)
	}
	if o.StartCap > LineCapSquare || o.EndCap > LineCapSquare {
		return fmt.Errorf("%w: unknown line cap", ErrInvalidOptions)
	}
	if o.LineJoin > LineJoinBevel {
		return fmt.Errorf("%w: unknown line join %d", ErrInvalidOptions, o.LineJoin)
	}
	return nil
}

func (o StrokeOptions) style() stroke.Style {
	return stroke.Style{
		Width:      o.LineWidth,
		StartCap:   o.StartCap,
		EndCap:     o.EndCap,
		Join:       o.LineJoin,
		MiterLimit: o.MiterLimit,
		Tolerance:  o.Tolerance,
		ApplyWidth: o.ApplyLineWidth,
	}
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
