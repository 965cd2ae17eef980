package tess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents(p *Path) []Event {
	var out []Event
	p.Events(func(e Event) bool {
		out = append(out, e)
		return true
	})
	return out
}

func verbsOf(p *Path) []Verb {
	var out []Verb
	for _, e := range collectEvents(p) {
		out = append(out, e.Verb)
	}
	return out
}

func assertPointNear(t *testing.T, want, got Point, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, delta, "y of %v", got)
}

func TestBuilder_Basic(t *testing.T) {
	b := NewBuilder(0)
	b.Begin(Pt(0, 0), nil)
	b.LineTo(Pt(100, 0), nil)
	b.LineTo(Pt(100, 100), nil)
	b.Close()
	path := b.Build()

	assert.Equal(t, []Verb{VerbBegin, VerbLineTo, VerbLineTo, VerbClose}, verbsOf(path))
	assert.Equal(t, 4, path.Verbs())
	assert.False(t, path.IsEmpty())
}

func TestBuilder_CurrentPosition(t *testing.T) {
	b := NewBuilder(0)
	assert.Equal(t, Pt(0, 0), b.CurrentPosition())

	b.Begin(Pt(1, 2), nil)
	assert.Equal(t, Pt(1, 2), b.CurrentPosition())
	b.LineTo(Pt(5, 2), nil)
	b.HorizontalLineTo(9, nil)
	assert.Equal(t, Pt(9, 2), b.CurrentPosition())
	b.VerticalLineTo(-3, nil)
	assert.Equal(t, Pt(9, -3), b.CurrentPosition())

	b.Close()
	assert.Equal(t, Pt(1, 2), b.CurrentPosition(), "Close returns to the subpath start")
	assert.False(t, b.InSubpath())
}

func TestBuilder_RelativeCommands(t *testing.T) {
	b := NewBuilder(0)
	b.Begin(Pt(10, 10), nil)
	b.End(false)

	b.RelativeBegin(Vec(5, 5), nil)
	assert.Equal(t, Pt(15, 15), b.CurrentPosition())
	b.RelativeLineTo(Vec(10, 0), nil)
	assert.Equal(t, Pt(25, 15), b.CurrentPosition())
	b.RelativeHorizontalLineTo(5, nil)
	b.RelativeVerticalLineTo(-5, nil)
	assert.Equal(t, Pt(30, 10), b.CurrentPosition())
	b.RelativeQuadraticTo(Vec(5, 5), Vec(10, 0), nil)
	assert.Equal(t, Pt(40, 10), b.CurrentPosition())
	b.RelativeCubicTo(Vec(0, 5), Vec(10, 5), Vec(10, 0), nil)
	assert.Equal(t, Pt(50, 10), b.CurrentPosition())
	b.RelativeSmoothCubicTo(Vec(10, -5), Vec(10, 0), nil)
	b.RelativeSmoothQuadraticTo(Vec(10, 0), nil)
	assert.Equal(t, Pt(70, 10), b.CurrentPosition())
	b.RelativeArcTo(Vec(20, 0), Vec(10, 10), 0, false, true, nil)
	assertPointNear(t, Pt(90, 10), b.CurrentPosition(), 0)

	path := b.Build()
	events := collectEvents(path)
	quad := events[6]
	require.Equal(t, VerbQuadraticTo, quad.Verb)
	assert.Equal(t, Pt(35, 15), quad.Ctrl1)

	cubic := events[7]
	require.Equal(t, VerbCubicTo, cubic.Verb)
	assert.Equal(t, Pt(40, 15), cubic.Ctrl1)
	assert.Equal(t, Pt(50, 15), cubic.Ctrl2)
}

func TestBuilder_SmoothQuadratic(t *testing.T) {
	b := NewBuilder(0)
	b.Begin(Pt(0, 0), nil)
	b.QuadraticTo(Pt(10, 10), Pt(20, 0), nil)
	b.SmoothQuadraticTo(Pt(40, 0), nil)
	b.SmoothQuadraticTo(Pt(60, 0), nil)
	events := collectEvents(b.Build())

	require.Len(t, events, 5)
	assert.Equal(t, VerbQuadraticTo, events[2].Verb)
	assert.Equal(t, Pt(30, -10), events[2].Ctrl1)
	assert.Equal(t, Pt(50, 10), events[3].Ctrl1)
}

func TestBuilder_SmoothCubic(t *testing.T) {
	b := NewBuilder(0)
	b.Begin(Pt(0, 0), nil)
	b.CubicTo(Pt(0, 10), Pt(10, 10), Pt(10, 0), nil)
	b.SmoothCubicTo(Pt(20, -10), Pt(20, 0), nil)
	events := collectEvents(b.Build())

	require.Equal(t, VerbCubicTo, events[2].Verb)
	assert.Equal(t, Pt(10, -10), events[2].Ctrl1)
	assert.Equal(t, Pt(20, -10), events[2].Ctrl2)
}

func TestBuilder_SmoothMixesCurveKinds(t *testing.T) {
	b := NewBuilder(0)
	b.Begin(Pt(0, 0), nil)
	b.CubicTo(Pt(0, 10), Pt(10, 10), Pt(10, 0), nil)
	b.SmoothQuadraticTo(Pt(20, 0), nil)
	events := collectEvents(b.Build())

	require.Equal(t, VerbQuadraticTo, events[2].Verb)
	assert.Equal(t, Pt(10, -10), events[2].Ctrl1)
}

func TestBuilder_SmoothAfterLineDegrades(t *testing.T) {
	b := NewBuilder(0)
	b.Begin(Pt(0, 0), nil)
	b.LineTo(Pt(10, 0), nil)
	b.SmoothCubicTo(Pt(15, 5), Pt(20, 0), nil)
	b.SmoothQuadraticTo(Pt(30, 0), nil)
	b.End(false)
	b.Begin(Pt(0, 50), nil)
	b.SmoothQuadraticTo(Pt(10, 50), nil)

	assert.Equal(t, []Verb{
		VerbBegin, VerbLineTo, VerbLineTo, VerbLineTo, VerbEnd,
		VerbBegin, VerbLineTo, VerbEnd,
	}, verbsOf(b.Build()))
}

func TestBuilder_Arc(t *testing.T) {
	tests := []struct {
		name   string
		sweep  float64
		cubics int
		end    Point
	}{
		{"quarter", math.Pi / 2, 1, Pt(0, 10)},
		{"half", math.Pi, 2, Pt(-10, 0)},
		{"negative quarter", -math.Pi / 2, 1, Pt(0, -10)},
		{"full", 2 * math.Pi, 4, Pt(10, 0)},
		{"just over three quarters", 1.5*math.Pi + 0.1, 4, Pt(10*math.Cos(1.5*math.Pi+0.1), 10*math.Sin(1.5*math.Pi+0.1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(0)
			b.Begin(Pt(10, 0), nil)
			b.Arc(Pt(0, 0), Vec(10, 10), tt.sweep, 0, nil)
			events := collectEvents(b.Build())

			cubics := 0
			for _, e := range events {
				if e.Verb == VerbCubicTo {
					cubics++
					assert.InDelta(t, 10, e.To.Distance(Pt(0, 0)), 1e-9)
				}
			}
			assert.Equal(t, tt.cubics, cubics)
			assertPointNear(t, tt.end, events[len(events)-2].To, 1e-9)
		})
	}
}

func TestBuilder_ArcStartsAtCurrentAngle(t *testing.T) {
	b := NewBuilder(0)
	b.Begin(Pt(0, 20), nil)
	b.Arc(Pt(0, 0), Vec(20, 20), math.Pi/2, 0, nil)
	events := collectEvents(b.Build())
	assertPointNear(t, Pt(-20, 0), events[1].To, 1e-9)
}

func TestBuilder_ArcTo(t *testing.T) {
	b := NewBuilder(1)
	b.Begin(Pt(0, 0), []float32{0})
	b.ArcTo(Pt(20, 0), Vec(10, 10), 0, false, true, []float32{1})
	path := b.Build()
	events := collectEvents(path)

	require.Equal(t, []Verb{VerbBegin, VerbCubicTo, VerbCubicTo, VerbEnd}, verbsOf(path))
	assert.Equal(t, Pt(20, 0), events[2].To, "the last endpoint is exact")
	assert.InDelta(t, 10, events[1].To.Distance(Pt(10, 0)), 1e-9)
	assert.InDelta(t, 0.5, events[1].ToAttrs[0], 1e-6)
	assert.Equal(t, float32(1), events[2].ToAttrs[0])
}

func TestBuilder_ArcToScalesRadii(t *testing.T) {
	b := NewBuilder(0)
	b.Begin(Pt(0, 0), nil)
	b.ArcTo(Pt(20, 0), Vec(1, 1), 0, false, true, nil)
	events := collectEvents(b.Build())

	require.Equal(t, VerbCubicTo, events[1].Verb)
	assert.InDelta(t, 10, events[1].To.Distance(Pt(10, 0)), 1e-9)
}

func TestBuilder_ArcToDegenerate(t *testing.T) {
	b := NewBuilder(0)
	b.Begin(Pt(0, 0), nil)
	b.ArcTo(Pt(0, 0), Vec(10, 10), 0, false, true, nil)
	b.ArcTo(Pt(10, 0), Vec(0, 10), 0, false, true, nil)
	assert.Equal(t, []Verb{VerbBegin, VerbLineTo, VerbEnd}, verbsOf(b.Build()))
}

func TestBuilder_Attributes(t *testing.T) {
	b := NewBuilder(2)
	assert.Equal(t, 2, b.AttributeCount())
	b.Begin(Pt(0, 0), []float32{1, 2})
	b.LineTo(Pt(1, 0), []float32{3, 4})
	b.Close()
	path := b.Build()
	events := collectEvents(path)

	assert.Equal(t, 2, path.AttributeCount())
	assert.Equal(t, []float32{1, 2}, events[1].FromAttrs)
	assert.Equal(t, []float32{3, 4}, events[1].ToAttrs)
	assert.Equal(t, []float32{1, 2}, events[2].ToAttrs, "Close connects back to the first attributes")
}

func TestBuilder_ContractViolations(t *testing.T) {
	tests := []struct {
		name string
		fn   func(b *Builder)
	}{
		{"LineTo without Begin", func(b *Builder) { b.LineTo(Pt(1, 1), nil) }},
		{"Close without Begin", func(b *Builder) { b.Close() }},
		{"End without Begin", func(b *Builder) { b.End(false) }},
		{"Arc without Begin", func(b *Builder) { b.Arc(Pt(0, 0), Vec(1, 1), 1, 0, nil) }},
		{"Begin twice", func(b *Builder) {
			b.Begin(Pt(0, 0), nil)
			b.Begin(Pt(1, 1), nil)
		}},
		{"LineTo after Close", func(b *Builder) {
			b.Begin(Pt(0, 0), nil)
			b.Close()
			b.LineTo(Pt(1, 1), nil)
		}},
		{"wrong attribute count", func(b *Builder) { b.Begin(Pt(0, 0), []float32{1}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { tt.fn(NewBuilder(0)) })
		})
	}

	assert.Panics(t, func() { NewBuilder(-1) })
}

func TestBuilder_UseAfterBuild(t *testing.T) {
	b := NewBuilder(0)
	b.AddRectangle(NewBox(Pt(0, 0), Pt(10, 10)), nil)
	path := b.Build()
	verbs := verbsOf(path)
	box := path.BoundingBox()

	ops := map[string]func(){
		"Begin":        func() { b.Begin(Pt(50, 50), nil) },
		"LineTo":       func() { b.LineTo(Pt(50, 50), nil) },
		"AddCircle":    func() { b.AddCircle(Pt(50, 50), 5, nil) },
		"AddPolygon":   func() { b.AddPolygon([]Point{{X: 1, Y: 1}}, true, nil) },
		"Reserve":      func() { b.Reserve(10, 10) },
		"Build":        func() { b.Build() },
		"Current":      func() { b.CurrentPosition() },
		"RoundedRect":  func() { b.AddRoundedRectangle(NewBox(Pt(0, 0), Pt(5, 5)), UniformRadii(1), nil) },
		"RelativeLine": func() { b.RelativeLineTo(Vec(1, 1), nil) },
	}
	for name, op := range ops {
		assert.Panics(t, op, name)
	}

	assert.Equal(t, verbs, verbsOf(path), "the built path must not change")
	assert.Equal(t, box, path.BoundingBox())
}

func TestBuilder_BuildEndsOpenSubpath(t *testing.T) {
	b := NewBuilder(0)
	b.Begin(Pt(0, 0), nil)
	b.LineTo(Pt(10, 0), nil)
	path := b.Build()

	assert.Equal(t, []Verb{VerbBegin, VerbLineTo, VerbEnd}, verbsOf(path))
	subs := path.Subpaths()
	require.Len(t, subs, 1)
	assert.False(t, subs[0].Closed())
}

func TestBuilder_Reserve(t *testing.T) {
	b := NewBuilder(1, WithCapacity(64, 32))
	b.Reserve(128, 0)
	b.Reserve(-1, -1)
	assert.True(t, b.Build().IsEmpty())
}

func TestFlatteningBuilder_Circle(t *testing.T) {
	const r, tol = 100.0, 0.1
	b := NewFlatteningBuilder(0, tol)
	b.AddCircle(Pt(0, 0), r, nil)
	path := b.Build()

	lines := 0
	for _, e := range collectEvents(path) {
		switch e.Verb {
		case VerbQuadraticTo, VerbCubicTo:
			t.Fatalf("flattening builder stored %v", e.Verb)
		case VerbLineTo:
			lines++
			// The cubic circle approximation itself is off by about 2e-4*r.
			assert.InDelta(t, r, e.To.Distance(Pt(0, 0)), tol+0.03)
		}
	}
	assert.Greater(t, lines, 16)
}

func TestFlatteningBuilder_ToleranceControlsSegments(t *testing.T) {
	count := func(tol float64) int {
		b := NewBuilder(0, WithFlattening(tol))
		b.AddCircle(Pt(0, 0), 100, nil)
		return len(collectEvents(b.Build()))
	}
	assert.Greater(t, count(0.01), count(1))
}

func TestFlatteningBuilder_Attributes(t *testing.T) {
	b := NewFlatteningBuilder(1, 0.01)
	b.Begin(Pt(0, 0), []float32{0})
	b.QuadraticTo(Pt(50, 100), Pt(100, 0), []float32{1})
	b.ArcTo(Pt(140, 0), Vec(20, 20), 0, false, false, []float32{2})
	events := collectEvents(b.Build())

	prev := float32(-1)
	for _, e := range events[1 : len(events)-1] {
		require.Equal(t, VerbLineTo, e.Verb)
		assert.GreaterOrEqual(t, e.ToAttrs[0], prev)
		prev = e.ToAttrs[0]
	}
	last := events[len(events)-2]
	assert.Equal(t, Pt(140, 0), last.To)
	assert.Equal(t, float32(2), last.ToAttrs[0])
}
