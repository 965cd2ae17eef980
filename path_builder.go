package tess

import (
	"fmt"
	"slices"

	"github.com/gogpu/tess/internal/geom"
	"github.com/gogpu/tess/internal/mesh"
)

// Builder accumulates drawing commands into a Path.
//
// Every subpath starts with Begin and ends with Close or End. Each endpoint
// takes exactly AttributeCount attributes; nil is accepted when the count is
// zero. Build consumes the Builder: any later call panics.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	path      Path
	tolerance float64

	open  bool
	built bool

	current     Point
	start       Point
	currentAttr int
	startAttr   int

	// lastCtrl is the last control point of the previous verb, valid when
	// prevCurve is set. Smooth commands reflect it through current.
	lastCtrl  Point
	prevCurve bool

	from []float32
	lerp []float32
}

// NewBuilder creates a Builder for endpoints with attrCount custom
// attributes.
//
// Example:
//
//	b := tess.NewBuilder(1)
//	b.Begin(tess.Pt(0, 0), []float32{0})
//	b.LineTo(tess.Pt(100, 0), []float32{1})
//	b.LineTo(tess.Pt(100, 100), []float32{1})
//	b.Close()
//	path := b.Build()
func NewBuilder(attrCount int, opts ...BuilderOption) *Builder {
	if attrCount < 0 {
		panic(fmt.Sprintf("tess: negative attribute count %d", attrCount))
	}
	var o builderOptions
	for _, opt := range opts {
		opt(&o)
	}
	b := &Builder{
		path:      Path{attrCount: attrCount},
		tolerance: o.flattenTolerance,
		from:      make([]float32, attrCount),
		lerp:      make([]float32, attrCount),
	}
	b.Reserve(o.endpoints, o.ctrlPoints)
	return b
}

// NewFlatteningBuilder creates a Builder that stores curves and arcs as
// line segments within tolerance of the true curve.
func NewFlatteningBuilder(attrCount int, tolerance float64, opts ...BuilderOption) *Builder {
	return NewBuilder(attrCount, append(opts, WithFlattening(tolerance))...)
}

// AttributeCount returns the number of custom attributes per endpoint.
func (b *Builder) AttributeCount() int {
	return b.path.attrCount
}

// InSubpath reports whether a subpath is open.
func (b *Builder) InSubpath() bool {
	b.checkBuilt()
	return b.open
}

// CurrentPosition returns the endpoint of the last command. After Close it is
// the start of the closed subpath.
func (b *Builder) CurrentPosition() Point {
	b.checkBuilt()
	return b.current
}

// Reserve preallocates room for endpoints and control points. It has no
// other effect.
func (b *Builder) Reserve(endpoints, ctrlPoints int) {
	b.checkBuilt()
	if endpoints < 0 || ctrlPoints < 0 {
		return
	}
	b.path.verbs = slices.Grow(b.path.verbs, endpoints)
	b.path.points = slices.Grow(b.path.points, endpoints+ctrlPoints)
	b.path.attrs = slices.Grow(b.path.attrs, endpoints*b.path.attrCount)
}

// Begin opens a subpath at p. It panics if a subpath is already open.
func (b *Builder) Begin(p Point, attrs []float32) {
	b.checkBuilt()
	if b.open {
		panic("tess: Begin while a subpath is open")
	}
	b.checkAttrs(attrs)
	b.open = true
	b.push(VerbBegin, attrs, p)
	b.start = p
	b.startAttr = b.currentAttr
	b.prevCurve = false
}

// LineTo adds a straight line to p.
func (b *Builder) LineTo(p Point, attrs []float32) {
	b.checkOpen("LineTo")
	b.checkAttrs(attrs)
	b.lineTo(p, attrs)
}

// HorizontalLineTo adds a line to (x, current y).
func (b *Builder) HorizontalLineTo(x float64, attrs []float32) {
	b.LineTo(Pt(x, b.current.Y), attrs)
}

// VerticalLineTo adds a line to (current x, y).
func (b *Builder) VerticalLineTo(y float64, attrs []float32) {
	b.LineTo(Pt(b.current.X, y), attrs)
}

// QuadraticTo adds a quadratic Bézier through ctrl to p.
func (b *Builder) QuadraticTo(ctrl, p Point, attrs []float32) {
	b.checkOpen("QuadraticTo")
	b.checkAttrs(attrs)
	b.quadTo(ctrl, p, attrs)
}

// CubicTo adds a cubic Bézier through ctrl1 and ctrl2 to p.
func (b *Builder) CubicTo(ctrl1, ctrl2, p Point, attrs []float32) {
	b.checkOpen("CubicTo")
	b.checkAttrs(attrs)
	b.cubicTo(ctrl1, ctrl2, p, attrs)
}

// SmoothQuadraticTo adds a quadratic Bézier whose control point reflects the
// previous curve's last control point through the current position. After a
// non-curve command it adds a straight line.
func (b *Builder) SmoothQuadraticTo(p Point, attrs []float32) {
	b.checkOpen("SmoothQuadraticTo")
	b.checkAttrs(attrs)
	if !b.prevCurve {
		b.lineTo(p, attrs)
		return
	}
	b.quadTo(b.reflectedCtrl(), p, attrs)
}

// SmoothCubicTo adds a cubic Bézier whose first control point reflects the
// previous curve's last control point through the current position. After a
// non-curve command it adds a straight line.
func (b *Builder) SmoothCubicTo(ctrl2, p Point, attrs []float32) {
	b.checkOpen("SmoothCubicTo")
	b.checkAttrs(attrs)
	if !b.prevCurve {
		b.lineTo(p, attrs)
		return
	}
	b.cubicTo(b.reflectedCtrl(), ctrl2, p, attrs)
}

// Arc adds an elliptical arc around center, starting at the angle of the
// current position and sweeping sweepAngle radians. It is stored as cubic
// Béziers spanning at most 90 degrees each.
func (b *Builder) Arc(center Point, radii Vector, sweepAngle, xRotation float64, attrs []float32) {
	b.checkOpen("Arc")
	b.checkAttrs(attrs)
	if sweepAngle == 0 {
		return
	}
	a := geom.Arc{
		Center:     center,
		Radii:      radii,
		StartAngle: geom.AngleOf(b.current, center, radii, xRotation),
		SweepAngle: sweepAngle,
		XRotation:  xRotation,
	}
	b.arc(a, a.To(), attrs)
}

// ArcTo adds an SVG endpoint arc to p. Radii too small to reach p are scaled
// up. A zero radius draws a line and p equal to the current position draws
// nothing.
func (b *Builder) ArcTo(p Point, radii Vector, xRotation float64, largeArc, sweep bool, attrs []float32) {
	b.checkOpen("ArcTo")
	b.checkAttrs(attrs)
	a, ok := geom.ArcFromSVG(b.current, p, radii, xRotation, largeArc, sweep)
	if !ok {
		if p != b.current {
			b.lineTo(p, attrs)
		}
		return
	}
	b.arc(a, p, attrs)
}

// Close ends the subpath with a line back to its start.
func (b *Builder) Close() {
	b.checkOpen("Close")
	b.path.verbs = append(b.path.verbs, VerbClose)
	b.current = b.start
	b.currentAttr = b.startAttr
	b.open = false
	b.prevCurve = false
}

// End ends the subpath, closing it if close is set.
func (b *Builder) End(close bool) {
	if close {
		b.Close()
		return
	}
	b.checkOpen("End")
	b.path.verbs = append(b.path.verbs, VerbEnd)
	b.open = false
	b.prevCurve = false
}

// Build returns the Path and consumes the Builder. An open subpath is ended
// without closing it.
func (b *Builder) Build() *Path {
	b.checkBuilt()
	if b.open {
		b.End(false)
	}
	b.built = true
	p := &Path{
		verbs:     b.path.verbs,
		points:    b.path.points,
		attrs:     b.path.attrs,
		attrCount: b.path.attrCount,
	}
	b.path = Path{attrCount: p.attrCount}
	return p
}

// Relative commands add their offsets to the current position.

// RelativeBegin opens a subpath at the current position plus v.
func (b *Builder) RelativeBegin(v Vector, attrs []float32) {
	b.Begin(b.current.Add(v), attrs)
}

// RelativeLineTo adds a line to the current position plus v.
func (b *Builder) RelativeLineTo(v Vector, attrs []float32) {
	b.LineTo(b.current.Add(v), attrs)
}

// RelativeHorizontalLineTo adds a line dx along the x axis.
func (b *Builder) RelativeHorizontalLineTo(dx float64, attrs []float32) {
	b.LineTo(b.current.Add(Vec(dx, 0)), attrs)
}

// RelativeVerticalLineTo adds a line dy along the y axis.
func (b *Builder) RelativeVerticalLineTo(dy float64, attrs []float32) {
	b.LineTo(b.current.Add(Vec(0, dy)), attrs)
}

// RelativeQuadraticTo is QuadraticTo with offsets.
func (b *Builder) RelativeQuadraticTo(ctrl, to Vector, attrs []float32) {
	b.QuadraticTo(b.current.Add(ctrl), b.current.Add(to), attrs)
}

// RelativeCubicTo is CubicTo with offsets.
func (b *Builder) RelativeCubicTo(ctrl1, ctrl2, to Vector, attrs []float32) {
	b.CubicTo(b.current.Add(ctrl1), b.current.Add(ctrl2), b.current.Add(to), attrs)
}

// RelativeSmoothQuadraticTo is SmoothQuadraticTo with an offset.
func (b *Builder) RelativeSmoothQuadraticTo(to Vector, attrs []float32) {
	b.SmoothQuadraticTo(b.current.Add(to), attrs)
}

// RelativeSmoothCubicTo is SmoothCubicTo with offsets.
func (b *Builder) RelativeSmoothCubicTo(ctrl2, to Vector, attrs []float32) {
	b.SmoothCubicTo(b.current.Add(ctrl2), b.current.Add(to), attrs)
}

// RelativeArcTo is ArcTo with an offset endpoint.
func (b *Builder) RelativeArcTo(to Vector, radii Vector, xRotation float64, largeArc, sweep bool, attrs []float32) {
	b.ArcTo(b.current.Add(to), radii, xRotation, largeArc, sweep, attrs)
}

func (b *Builder) checkBuilt() {
	if b.built {
		panic("tess: builder used after Build")
	}
}

func (b *Builder) checkOpen(op string) {
	b.checkBuilt()
	if !b.open {
		panic("tess: " + op + " without an open subpath")
	}
}

func (b *Builder) checkAttrs(attrs []float32) {
	if len(attrs) != b.path.attrCount {
		panic(fmt.Sprintf("tess: got %d attributes, want %d", len(attrs), b.path.attrCount))
	}
}

// push appends a verb with its control points and endpoint, the endpoint
// last, and makes the endpoint current.
func (b *Builder) push(v Verb, attrs []float32, pts ...Point) {
	b.path.verbs = append(b.path.verbs, v)
	b.path.points = append(b.path.points, pts...)
	b.currentAttr = len(b.path.attrs)
	b.path.attrs = append(b.path.attrs, attrs...)
	b.current = pts[len(pts)-1]
}

func (b *Builder) currentAttrs() []float32 {
	n := b.path.attrCount
	return b.path.attrs[b.currentAttr : b.currentAttr+n]
}

func (b *Builder) reflectedCtrl() Point {
	return b.current.Add(b.current.Sub(b.lastCtrl))
}

func (b *Builder) lineTo(p Point, attrs []float32) {
	b.push(VerbLineTo, attrs, p)
	b.prevCurve = false
}

func (b *Builder) quadTo(ctrl, p Point, attrs []float32) {
	if b.tolerance > 0 {
		q := geom.QuadBez{P0: b.current, P1: ctrl, P2: p}
		b.flattenCurve(p, attrs, func(emit func(Point, float64)) {
			geom.FlattenQuad(q, b.tolerance, emit)
		})
	} else {
		b.push(VerbQuadraticTo, attrs, ctrl, p)
	}
	b.lastCtrl = ctrl
	b.prevCurve = true
}

func (b *Builder) cubicTo(ctrl1, ctrl2, p Point, attrs []float32) {
	if b.tolerance > 0 {
		c := geom.CubicBez{P0: b.current, P1: ctrl1, P2: ctrl2, P3: p}
		b.flattenCurve(p, attrs, func(emit func(Point, float64)) {
			geom.FlattenCubic(c, b.tolerance, emit)
		})
	} else {
		b.push(VerbCubicTo, attrs, ctrl1, ctrl2, p)
	}
	b.lastCtrl = ctrl2
	b.prevCurve = true
}

// arc appends the arc as cubics, or as lines when flattening. The final
// endpoint is set to end exactly.
func (b *Builder) arc(a geom.Arc, end Point, attrs []float32) {
	if b.tolerance > 0 {
		b.flattenCurve(end, attrs, func(emit func(Point, float64)) {
			a.Flatten(b.tolerance, emit)
		})
		b.lastCtrl = b.current
		b.prevCurve = true
		return
	}

	copy(b.from, b.currentAttrs())
	a.ForEachCubic(func(c geom.CubicBez, t float64) {
		to, at := c.P3, b.lerp
		if t >= 1 {
			to, at = end, attrs
		} else {
			mesh.Lerp(b.lerp, b.from, attrs, t)
		}
		b.push(VerbCubicTo, at, c.P1, c.P2, to)
		b.lastCtrl = c.P2
	})
	b.prevCurve = true
}

// flattenCurve stores the points produced by flatten as lines, with
// attributes interpolated by curve parameter.
func (b *Builder) flattenCurve(end Point, attrs []float32, flatten func(emit func(Point, float64))) {
	copy(b.from, b.currentAttrs())
	flatten(func(p Point, t float64) {
		if t >= 1 {
			b.push(VerbLineTo, attrs, end)
			return
		}
		mesh.Lerp(b.lerp, b.from, attrs, t)
		b.push(VerbLineTo, b.lerp, p)
	})
}
