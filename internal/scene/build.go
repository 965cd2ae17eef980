package scene

import (
	"fmt"
	"math"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/handle"
	"github.com/gogpu/tess/internal/parallel"
	"github.com/gogpu/tess/svgpath"
)

func fillRule(s string) (tess.FillRule, error) {
	switch s {
	case "", "evenodd", "even-odd":
		return tess.FillRuleEvenOdd, nil
	case "nonzero", "non-zero":
		return tess.FillRuleNonZero, nil
	}
	return 0, fmt.Errorf("unknown fill rule %q", s)
}

func orientation(s string) (tess.Orientation, error) {
	switch s {
	case "", "vertical":
		return tess.OrientationVertical, nil
	case "horizontal":
		return tess.OrientationHorizontal, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

func lineCap(s string) (tess.LineCap, error) {
	switch s {
	case "", "butt":
		return tess.LineCapButt, nil
	case "round":
		return tess.LineCapRound, nil
	case "square":
		return tess.LineCapSquare, nil
	}
	return 0, fmt.Errorf("unknown line cap %q", s)
}

func lineJoin(s string) (tess.LineJoin, error) {
	switch s {
	case "", "miter":
		return tess.LineJoinMiter, nil
	case "miterclip", "miter-clip":
		return tess.LineJoinMiterClip, nil
	case "round":
		return tess.LineJoinRound, nil
	case "bevel":
		return tess.LineJoinBevel, nil
	}
	return 0, fmt.Errorf("unknown line join %q", s)
}

func pt(p [2]float64) tess.Point { return tess.Pt(p[0], p[1]) }

func degrees(d float64) float64 { return d * math.Pi / 180 }

// Path builds the shape's geometry, transformed if the shape has a
// transform.
func (sh *Shape) Path() (*tess.Path, error) {
	b := tess.NewBuilder(0)
	switch {
	case sh.SVG != "":
		if err := svgpath.Parse(sh.SVG, b, nil); err != nil {
			return nil, err
		}
	case sh.Rect != nil:
		b.AddRectangle(tess.NewBox(pt(sh.Rect.Min), pt(sh.Rect.Max)), nil)
	case sh.RoundedRect != nil:
		r := sh.RoundedRect
		b.AddRoundedRectangle(tess.NewBox(pt(r.Min), pt(r.Max)), tess.BorderRadii{
			TopLeft:     r.Radii[0],
			TopRight:    r.Radii[1],
			BottomLeft:  r.Radii[2],
			BottomRight: r.Radii[3],
		}, nil)
	case sh.Circle != nil:
		b.AddCircle(pt(sh.Circle.Center), sh.Circle.Radius, nil)
	case sh.Ellipse != nil:
		e := sh.Ellipse
		b.AddEllipse(pt(e.Center), tess.Vec(e.Radii[0], e.Radii[1]), degrees(e.Rotation), nil)
	case sh.Polygon != nil:
		pts := make([]tess.Point, len(sh.Polygon.Points))
		for i, p := range sh.Polygon.Points {
			pts[i] = pt(p)
		}
		b.AddPolygon(pts, sh.Polygon.Closed, nil)
	default:
		return nil, fmt.Errorf("%w: shape %q has no geometry", ErrInvalid, sh.Name)
	}
	p := b.Build()
	if t := sh.Transform; t != nil {
		p = p.Transform(t.matrix())
	}
	return p, nil
}

func (t *Transform) matrix() tess.Transform {
	sx, sy := t.Scale[0], t.Scale[1]
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return tess.Scale(sx, sy).
		Then(tess.Rotate(degrees(t.Rotate))).
		Then(tess.Translate(t.Translate[0], t.Translate[1]))
}

func pick(vals ...float64) float64 {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return tess.DefaultTolerance
}

// FillOptions returns the fill options of shape index i, or nil when the
// shape is not filled.
func (s *Scene) FillOptions(i int) *tess.FillOptions {
	f := s.Shapes[i].Fill
	if f == nil {
		return nil
	}
	rule, _ := fillRule(f.Rule)
	orient, _ := orientation(f.Orientation)
	o := tess.DefaultFillOptions().
		WithFillRule(rule).
		WithTolerance(pick(f.Tolerance, s.Tolerance)).
		WithConstants(tess.VertexConstants{
			Color:      handle.PackColor(f.Color),
			ShapeIndex: int32(i),
		})
	o.Orientation = orient
	return &o
}

// StrokeOptions returns the stroke options of shape index i, or nil when
// the shape is not stroked.
func (s *Scene) StrokeOptions(i int) *tess.StrokeOptions {
	st := s.Shapes[i].Stroke
	if st == nil {
		return nil
	}
	join, _ := lineJoin(st.Join)
	o := tess.DefaultStrokeOptions().
		WithLineWidth(st.Width).
		WithLineJoin(join).
		WithTolerance(pick(st.Tolerance, s.Tolerance)).
		WithConstants(tess.VertexConstants{
			Color:      handle.PackColor(st.Color),
			FillIndex:  1,
			ShapeIndex: int32(i),
		})
	o.StartCap, _ = lineCap(st.Cap)
	o.EndCap = o.StartCap
	if st.StartCap != "" {
		o.StartCap, _ = lineCap(st.StartCap)
	}
	if st.EndCap != "" {
		o.EndCap, _ = lineCap(st.EndCap)
	}
	if st.MiterLimit > 0 {
		o = o.WithMiterLimit(st.MiterLimit)
	}
	return &o
}

// Tasks builds the paths of all shapes, in scene order.
func (s *Scene) Tasks() ([]parallel.Task, error) {
	tasks := make([]parallel.Task, len(s.Shapes))
	for i := range s.Shapes {
		p, err := s.Shapes[i].Path()
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, s.Shapes[i].Name, err)
		}
		tasks[i] = parallel.Task{Path: p, Fill: s.FillOptions(i), Stroke: s.StrokeOptions(i)}
	}
	return tasks, nil
}

// Bounds returns the union of the bounding boxes of tasks' paths, grown by
// half of the widest stroke.
func Bounds(tasks []parallel.Task) tess.Box {
	box := tess.NewBuilder(0).Build().BoundingBox()
	for _, t := range tasks {
		b := t.Path.BoundingBox()
		if b.IsEmpty() {
			continue
		}
		if t.Stroke != nil {
			w := t.Stroke.LineWidth / 2
			b = tess.NewBox(b.Min.Add(tess.Vec(-w, -w)), b.Max.Add(tess.Vec(w, w)))
		}
		box = box.Union(b)
	}
	return box
}
