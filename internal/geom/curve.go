package geom

import (
	"math"
	"sort"
)

// Curve types for 2D geometry operations.
// Based on kurbo patterns, adapted for Go idioms.

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval evaluates the line at parameter t (0 to 1).
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Length returns the length of the line segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// DistanceTo returns the distance from p to the closest point of the segment.
func (l Line) DistanceTo(p Point) float64 {
	ab := l.P1.Sub(l.P0)
	lenSq := ab.LengthSq()
	if lenSq < 1e-20 {
		return p.Distance(l.P0)
	}
	t := p.Sub(l.P0).Dot(ab) / lenSq
	switch {
	case t <= 0:
		return p.Distance(l.P0)
	case t >= 1:
		return p.Distance(l.P1)
	}
	return p.Distance(l.P0.Add(ab.Mul(t)))
}

// -------------------------------------------------------------------
// QuadBez - Quadratic Bezier Curve
// -------------------------------------------------------------------

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	// (1-t)^2 * P0 + 2(1-t)t * P1 + t^2 * P2
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Split splits the curve at t using de Casteljau.
func (q QuadBez) Split(t float64) (QuadBez, QuadBez) {
	a := q.P0.Lerp(q.P1, t)
	b := q.P1.Lerp(q.P2, t)
	mid := a.Lerp(b, t)
	return QuadBez{P0: q.P0, P1: a, P2: mid}, QuadBez{P0: mid, P1: b, P2: q.P2}
}

// Extrema returns parameter values in (0, 1) where the derivative of one
// coordinate is zero.
func (q QuadBez) Extrema() []float64 {
	var result []float64

	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)

	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			result = append(result, t)
		}
	}

	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadBez) BoundingBox() Box {
	bbox := NewBox(q.P0, q.P2)
	for _, t := range q.Extrema() {
		bbox = bbox.Extend(q.Eval(t))
	}
	return bbox
}

// Raise elevates the quadratic to an equivalent cubic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// -------------------------------------------------------------------
// CubicBez - Cubic Bezier Curve
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	// (1-t)^3 * P0 + 3(1-t)^2*t * P1 + 3(1-t)*t^2 * P2 + t^3 * P3
	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Split splits the curve at t using de Casteljau.
func (c CubicBez) Split(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	mid := p012.Lerp(p123, t)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Extrema returns parameter values in (0, 1) where the derivative of one
// coordinate is zero. A cubic has at most four.
func (c CubicBez) Extrema() []float64 {
	result := make([]float64, 0, 4)

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	result = append(result, solveQuadraticInUnitInterval(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)...)
	result = append(result, solveQuadraticInUnitInterval(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)

	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Box {
	bbox := NewBox(c.P0, c.P3)
	for _, t := range c.Extrema() {
		bbox = bbox.Extend(c.Eval(t))
	}
	return bbox
}

// Tangent returns the derivative at parameter t.
func (c CubicBez) Tangent(t float64) Vector {
	mt := 1 - t
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	return d0.Mul(3 * mt * mt).Add(d1.Mul(6 * mt * t)).Add(d2.Mul(3 * t * t))
}

// solveQuadraticInUnitInterval returns the roots of a*t^2 + b*t + c = 0
// strictly inside (0, 1).
func solveQuadraticInUnitInterval(a, b, c float64) []float64 {
	var roots []float64
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) < 1e-12 {
			return nil
		}
		roots = []float64{-c / b}
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return nil
		}
		// Numerically stable form, see kurbo's solve_quadratic.
		q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
		roots = append(roots, q/a)
		if q != 0 {
			roots = append(roots, c/q)
		}
	}

	out := roots[:0]
	for _, t := range roots {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}
