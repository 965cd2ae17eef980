package geom

import "math"

// Arc is an elliptical arc in center parametrization.
//
// The point at angle a is
//
//	Center + Rotate((Radii.X*cos(a), Radii.Y*sin(a)), XRotation)
//
// and the arc spans the angles StartAngle to StartAngle+SweepAngle.
type Arc struct {
	Center     Point
	Radii      Vector
	StartAngle float64
	SweepAngle float64
	XRotation  float64
}

// Sample returns the point of the arc at parameter t in [0, 1].
func (a Arc) Sample(t float64) Point {
	return a.pointAt(a.StartAngle + t*a.SweepAngle)
}

// From returns the start point of the arc.
func (a Arc) From() Point { return a.Sample(0) }

// To returns the end point of the arc.
func (a Arc) To() Point { return a.Sample(1) }

func (a Arc) pointAt(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return a.Center.Add(Vec(a.Radii.X*cos, a.Radii.Y*sin).Rotate(a.XRotation))
}

// unitToArc maps a point of the unit circle into the arc's ellipse.
func (a Arc) unitToArc(p Point) Point {
	return a.Center.Add(Vec(a.Radii.X*p.X, a.Radii.Y*p.Y).Rotate(a.XRotation))
}

// ForEachCubic decomposes the arc into the minimal number of cubic Béziers
// spanning at most 90 degrees each, and calls fn with each curve and the arc
// parameter at its end.
func (a Arc) ForEachCubic(fn func(c CubicBez, t float64)) {
	n := int(math.Ceil(math.Abs(a.SweepAngle)/(math.Pi/2) - 1e-9))
	if n < 1 {
		n = 1
	}
	delta := a.SweepAngle / float64(n)
	k := 4.0 / 3.0 * math.Tan(delta/4)

	for i := 0; i < n; i++ {
		a0 := a.StartAngle + float64(i)*delta
		a1 := a0 + delta
		s0, c0 := math.Sincos(a0)
		s1, c1 := math.Sincos(a1)

		c := CubicBez{
			P0: a.unitToArc(Pt(c0, s0)),
			P1: a.unitToArc(Pt(c0-k*s0, s0+k*c0)),
			P2: a.unitToArc(Pt(c1+k*s1, s1-k*c1)),
			P3: a.unitToArc(Pt(c1, s1)),
		}
		fn(c, float64(i+1)/float64(n))
	}
}

// Flatten approximates the arc with a polyline whose chords deviate at most
// tolerance from the arc, and calls emit for every vertex after the start
// point with its arc parameter.
func (a Arc) Flatten(tolerance float64, emit func(p Point, t float64)) {
	n := a.FlattenSegments(tolerance)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		emit(a.Sample(t), t)
	}
}

// FlattenSegments returns the number of equal-angle chords needed to stay
// within tolerance of the arc. The sagitta of a chord spanning angle θ on a
// circle of radius r is r*(1-cos(θ/2)); the largest radius bounds the ellipse.
func (a Arc) FlattenSegments(tolerance float64) int {
	if tolerance < MinTolerance {
		tolerance = MinTolerance
	}
	r := math.Max(math.Abs(a.Radii.X), math.Abs(a.Radii.Y))
	sweep := math.Abs(a.SweepAngle)
	if r == 0 || sweep == 0 {
		return 1
	}

	step := math.Pi
	if tolerance < r {
		step = 2 * math.Acos(1-tolerance/r)
	}
	n := int(math.Ceil(sweep / step))
	if n < 1 {
		n = 1
	}
	return n
}

// ArcFromSVG converts an SVG endpoint arc into center parametrization.
//
// Radii are taken as absolute values and scaled up uniformly when they are
// too small to span the endpoints. ok is false when the arc degenerates:
// coincident endpoints (nothing to draw) or a zero radius (a straight line).
func ArcFromSVG(from, to Point, radii Vector, xRotation float64, largeArc, sweep bool) (arc Arc, ok bool) {
	if from == to {
		return Arc{}, false
	}
	rx, ry := math.Abs(radii.X), math.Abs(radii.Y)
	if rx == 0 || ry == 0 {
		return Arc{}, false
	}

	// Move the origin to the chord midpoint and undo the ellipse rotation.
	half := from.Sub(to).Mul(0.5).Rotate(-xRotation)
	x1, y1 := half.X, half.Y

	lambda := (x1*x1)/(rx*rx) + (y1*y1)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if num > 0 && den > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cx := coef * rx * y1 / ry
	cy := -coef * ry * x1 / rx

	mid := from.Lerp(to, 0.5)
	center := mid.Add(Vec(cx, cy).Rotate(xRotation))

	start := Vec((x1-cx)/rx, (y1-cy)/ry)
	end := Vec((-x1-cx)/rx, (-y1-cy)/ry)
	theta := start.Angle()
	delta := math.Atan2(start.Cross(end), start.Dot(end))
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	return Arc{
		Center:     center,
		Radii:      Vec(rx, ry),
		StartAngle: theta,
		SweepAngle: delta,
		XRotation:  xRotation,
	}, true
}

// AngleOf returns the parametric angle of p on an ellipse with the given
// center, radii and rotation.
func AngleOf(p, center Point, radii Vector, xRotation float64) float64 {
	v := p.Sub(center).Rotate(-xRotation)
	rx, ry := radii.X, radii.Y
	if rx == 0 || ry == 0 {
		return v.Angle()
	}
	return math.Atan2(v.Y/ry, v.X/rx)
}
