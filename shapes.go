package tess

import "math"

// circleFactor is the control point offset, relative to the radius, of a
// quarter circle approximated by one cubic Bézier.
const circleFactor = 0.55191505

// BorderRadii holds the corner radii of a rounded rectangle. The top edge is
// the one at the minimum y.
type BorderRadii struct {
	TopLeft     float64
	TopRight    float64
	BottomLeft  float64
	BottomRight float64
}

// UniformRadii returns radii with the same value at every corner.
func UniformRadii(r float64) BorderRadii {
	return BorderRadii{TopLeft: r, TopRight: r, BottomLeft: r, BottomRight: r}
}

// AddPolygon adds a subpath through points, closed if closed is set. Every
// point gets the same attributes. An empty slice adds nothing.
func (b *Builder) AddPolygon(points []Point, closed bool, attrs []float32) {
	b.checkBuilt()
	if len(points) == 0 {
		return
	}
	b.Begin(points[0], attrs)
	for _, p := range points[1:] {
		b.LineTo(p, attrs)
	}
	b.End(closed)
}

// AddRegularPolygon adds a closed polygon with n sides inscribed in the
// circle of radius r around center, its first vertex at angle rotation.
func (b *Builder) AddRegularPolygon(n int, center Point, r, rotation float64, attrs []float32) {
	b.checkBuilt()
	if n < 3 {
		return
	}
	angle := 2.0 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		a := rotation + angle*float64(i)
		p := Pt(center.X+r*math.Cos(a), center.Y+r*math.Sin(a))
		if i == 0 {
			b.Begin(p, attrs)
		} else {
			b.LineTo(p, attrs)
		}
	}
	b.Close()
}

// AddRectangle adds the closed rectangle
// (min.x,min.y) → (max.x,min.y) → (max.x,max.y) → (min.x,max.y).
func (b *Builder) AddRectangle(r Box, attrs []float32) {
	b.AddPolygon([]Point{
		r.Min,
		Pt(r.Max.X, r.Min.Y),
		r.Max,
		Pt(r.Min.X, r.Max.Y),
	}, true, attrs)
}

// AddCircle adds a closed circle made of four cubic Béziers, starting at the
// leftmost point.
func (b *Builder) AddCircle(center Point, radius float64, attrs []float32) {
	r := math.Abs(radius)
	b.AddEllipse(center, Vec(r, r), 0, attrs)
}

// AddEllipse adds a closed ellipse made of four cubic Béziers. xRotation
// rotates the ellipse around its center.
func (b *Builder) AddEllipse(center Point, radii Vector, xRotation float64, attrs []float32) {
	rx, ry := math.Abs(radii.X), math.Abs(radii.Y)
	dx, dy := rx*circleFactor, ry*circleFactor
	at := func(x, y float64) Point {
		if xRotation == 0 {
			return center.Add(Vec(x, y))
		}
		return center.Add(Vec(x, y).Rotate(xRotation))
	}

	b.Begin(at(-rx, 0), attrs)
	b.CubicTo(at(-rx, -dy), at(-dx, -ry), at(0, -ry), attrs)
	b.CubicTo(at(dx, -ry), at(rx, -dy), at(rx, 0), attrs)
	b.CubicTo(at(rx, dy), at(dx, ry), at(0, ry), attrs)
	b.CubicTo(at(-dx, ry), at(-rx, dy), at(-rx, 0), attrs)
	b.Close()
}

// AddRoundedRectangle adds a closed rectangle with one cubic Bézier per
// rounded corner.
//
// Each radius is limited to the smaller side of the rectangle. Then, for the
// top, bottom, right and left edges in that order, two radii that do not fit
// the edge together are both reduced by half the excess. Non-positive radii
// give sharp corners.
func (b *Builder) AddRoundedRectangle(r Box, radii BorderRadii, attrs []float32) {
	b.checkBuilt()
	r = NewBox(r.Min, r.Max)
	w, h := r.Width(), r.Height()
	tl, tr, bl, br := ClampRadii(w, h, radii)

	xMin, yMin := r.Min.X, r.Min.Y
	xMax, yMax := r.Max.X, r.Max.Y
	tlD, trD := tl*circleFactor, tr*circleFactor
	blD, brD := bl*circleFactor, br*circleFactor

	b.Begin(Pt(xMin, yMin+tl), attrs)
	if tl > 0 {
		b.CubicTo(Pt(xMin, yMin+tl-tlD), Pt(xMin+tl-tlD, yMin), Pt(xMin+tl, yMin), attrs)
	}
	b.LineTo(Pt(xMax-tr, yMin), attrs)
	if tr > 0 {
		b.CubicTo(Pt(xMax-tr+trD, yMin), Pt(xMax, yMin+tr-trD), Pt(xMax, yMin+tr), attrs)
	}
	b.LineTo(Pt(xMax, yMax-br), attrs)
	if br > 0 {
		b.CubicTo(Pt(xMax, yMax-br+brD), Pt(xMax-br+brD, yMax), Pt(xMax-br, yMax), attrs)
	}
	b.LineTo(Pt(xMin+bl, yMax), attrs)
	if bl > 0 {
		b.CubicTo(Pt(xMin+bl-blD, yMax), Pt(xMin, yMax-bl+blD), Pt(xMin, yMax-bl), attrs)
	}
	b.Close()
}

// ClampRadii returns the corner radii AddRoundedRectangle uses for a w by h
// rectangle.
func ClampRadii(w, h float64, radii BorderRadii) (tl, tr, bl, br float64) {
	limit := math.Min(w, h)
	clamp := func(r float64) float64 {
		if !(r > 0) {
			return 0
		}
		return math.Min(r, limit)
	}
	tl, tr = clamp(radii.TopLeft), clamp(radii.TopRight)
	bl, br = clamp(radii.BottomLeft), clamp(radii.BottomRight)

	if tl+tr > w {
		x := (tl + tr - w) * 0.5
		tl -= x
		tr -= x
	}
	if bl+br > w {
		x := (bl + br - w) * 0.5
		bl -= x
		br -= x
	}
	if tr+br > h {
		x := (tr + br - h) * 0.5
		tr -= x
		br -= x
	}
	if tl+bl > h {
		x := (tl + bl - h) * 0.5
		tl -= x
		bl -= x
	}
	return tl, tr, bl, br
}
