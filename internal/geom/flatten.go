package geom

// MinTolerance is the smallest tolerance the flatteners accept; smaller
// values are raised to it.
const MinTolerance = 1e-6

// maxFlattenDepth bounds the subdivision depth (at most 2^16 segments per curve).
const maxFlattenDepth = 16

// FlattenQuad approximates q with line segments and calls emit for every
// polyline vertex after q.P0, in order, with its curve parameter. The last
// call always reports q.P2 at t=1. Every point of the curve lies within
// tolerance of the polyline.
func FlattenQuad(q QuadBez, tolerance float64, emit func(p Point, t float64)) {
	if tolerance < MinTolerance {
		tolerance = MinTolerance
	}
	flattenQuadRec(q, 0, 1, tolerance, 0, emit)
}

func flattenQuadRec(q QuadBez, t0, t1, tolerance float64, depth int, emit func(Point, float64)) {
	// The curve lies in the hull of its control points, so a control point
	// within tolerance of the chord bounds the deviation of the whole span.
	chord := Line{P0: q.P0, P1: q.P2}
	if depth >= maxFlattenDepth || chord.DistanceTo(q.P1) <= tolerance {
		emit(q.P2, t1)
		return
	}

	left, right := q.Split(0.5)
	tm := 0.5 * (t0 + t1)
	flattenQuadRec(left, t0, tm, tolerance, depth+1, emit)
	flattenQuadRec(right, tm, t1, tolerance, depth+1, emit)
}

// FlattenCubic approximates c with line segments and calls emit for every
// polyline vertex after c.P0, in order, with its curve parameter. The last
// call always reports c.P3 at t=1.
func FlattenCubic(c CubicBez, tolerance float64, emit func(p Point, t float64)) {
	if tolerance < MinTolerance {
		tolerance = MinTolerance
	}
	flattenCubicRec(c, 0, 1, tolerance, 0, emit)
}

func flattenCubicRec(c CubicBez, t0, t1, tolerance float64, depth int, emit func(Point, float64)) {
	chord := Line{P0: c.P0, P1: c.P3}
	if depth >= maxFlattenDepth ||
		(chord.DistanceTo(c.P1) <= tolerance && chord.DistanceTo(c.P2) <= tolerance) {
		emit(c.P3, t1)
		return
	}

	left, right := c.Split(0.5)
	tm := 0.5 * (t0 + t1)
	flattenCubicRec(left, t0, tm, tolerance, depth+1, emit)
	flattenCubicRec(right, tm, t1, tolerance, depth+1, emit)
}
