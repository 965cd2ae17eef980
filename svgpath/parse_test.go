package svgpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/tess"
)

func events(t *testing.T, d string) []tess.Event {
	t.Helper()
	p, err := ParsePath(d)
	require.NoError(t, err)
	var out []tess.Event
	p.Events(func(e tess.Event) bool {
		out = append(out, e)
		return true
	})
	return out
}

func verbs(evs []tess.Event) []tess.Verb {
	out := make([]tess.Verb, len(evs))
	for i, e := range evs {
		out[i] = e.Verb
	}
	return out
}

func TestParse_Lines(t *testing.T) {
	evs := events(t, "M10,20 L30 20 h-5 v10 H0 V0 z")
	require.Equal(t, []tess.Verb{
		tess.VerbBegin, tess.VerbLineTo, tess.VerbLineTo, tess.VerbLineTo,
		tess.VerbLineTo, tess.VerbLineTo, tess.VerbClose,
	}, verbs(evs))

	want := []tess.Point{
		tess.Pt(10, 20), tess.Pt(30, 20), tess.Pt(25, 20), tess.Pt(25, 30),
		tess.Pt(0, 30), tess.Pt(0, 0), tess.Pt(10, 20),
	}
	for i, e := range evs {
		assert.Equal(t, want[i], e.To, "event %d", i)
	}
}

func TestParse_ImplicitCommands(t *testing.T) {
	// Pairs after a moveto are linetos; relative ones stay relative.
	evs := events(t, "m1 1 2 0 0 2")
	require.Equal(t, []tess.Verb{tess.VerbBegin, tess.VerbLineTo, tess.VerbLineTo, tess.VerbEnd}, verbs(evs))
	assert.Equal(t, tess.Pt(1, 1), evs[0].To)
	assert.Equal(t, tess.Pt(3, 1), evs[1].To)
	assert.Equal(t, tess.Pt(3, 3), evs[2].To)

	evs = events(t, "M0 0 L1 0 2 0 3 0")
	assert.Len(t, evs, 5)
	assert.Equal(t, tess.Pt(3, 0), evs[3].To)
}

func TestParse_CompactNumbers(t *testing.T) {
	evs := events(t, "M1.5.5L-1-1e1 .25,2E-1")
	require.Equal(t, []tess.Verb{tess.VerbBegin, tess.VerbLineTo, tess.VerbLineTo, tess.VerbEnd}, verbs(evs))
	assert.Equal(t, tess.Pt(1.5, 0.5), evs[0].To)
	assert.Equal(t, tess.Pt(-1, -10), evs[1].To)
	assert.InDelta(t, 0.25, evs[2].To.X, 1e-12)
	assert.InDelta(t, 0.2, evs[2].To.Y, 1e-12)
}

func TestParse_Curves(t *testing.T) {
	evs := events(t, "M0 0 Q10 10 20 0 c5 -5 10 -5 15 0")
	require.Equal(t, []tess.Verb{tess.VerbBegin, tess.VerbQuadraticTo, tess.VerbCubicTo, tess.VerbEnd}, verbs(evs))
	assert.Equal(t, tess.Pt(10, 10), evs[1].Ctrl1)
	assert.Equal(t, tess.Pt(20, 0), evs[1].To)
	assert.Equal(t, tess.Pt(25, -5), evs[2].Ctrl1)
	assert.Equal(t, tess.Pt(30, -5), evs[2].Ctrl2)
	assert.Equal(t, tess.Pt(35, 0), evs[2].To)
}

func TestParse_SmoothCurves(t *testing.T) {
	tests := []struct {
		name  string
		d     string
		ctrl1 tess.Point
	}{
		{"S after C reflects", "M0 0 C0 10 10 10 10 0 S20 -10 20 0", tess.Pt(10, -10)},
		{"S after L uses current point", "M0 0 L10 0 S20 -10 20 0", tess.Pt(10, 0)},
		{"S after Q uses current point", "M0 0 Q5 10 10 0 S20 -10 20 0", tess.Pt(10, 0)},
		{"T after Q reflects", "M0 0 Q5 10 10 0 T20 0", tess.Pt(15, -10)},
		{"T after T reflects", "M0 0 Q5 10 10 0 T20 0 T30 0", tess.Pt(25, 10)},
		{"T after C uses current point", "M0 0 C0 10 10 10 10 0 T20 0", tess.Pt(10, 0)},
		{"relative t", "M0 0 q5 10 10 0 t10 0", tess.Pt(15, -10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evs := events(t, tt.d)
			last := evs[len(evs)-2]
			assert.Contains(t, []tess.Verb{tess.VerbQuadraticTo, tess.VerbCubicTo}, last.Verb)
			assert.Equal(t, tt.ctrl1, last.Ctrl1)
		})
	}
}

func TestParse_Arc(t *testing.T) {
	evs := events(t, "M0 0 A10 10 0 0 1 20 0")
	require.Equal(t, tess.VerbBegin, evs[0].Verb)
	arcs := evs[1 : len(evs)-1]
	assert.Len(t, arcs, 2, "a half circle is two cubics")
	for _, e := range arcs {
		assert.Equal(t, tess.VerbCubicTo, e.Verb)
	}
	assert.Equal(t, tess.Pt(20, 0), arcs[len(arcs)-1].To)

	// Flags may be written without separators.
	evs = events(t, "M0 0a10 10 0 1120 0")
	assert.Equal(t, tess.Pt(20, 0), evs[len(evs)-2].To)

	// A zero radius is a line.
	evs = events(t, "M0 0 A0 5 0 0 0 10 0")
	assert.Equal(t, []tess.Verb{tess.VerbBegin, tess.VerbLineTo, tess.VerbEnd}, verbs(evs))
}

func TestParse_Subpaths(t *testing.T) {
	p := MustParsePath("M0 0 L10 0 M20 0 L30 0 Z l0 5")
	subs := p.Subpaths()
	require.Len(t, subs, 3)
	assert.False(t, subs[0].Closed())
	assert.True(t, subs[1].Closed())
	assert.False(t, subs[2].Closed())

	// Drawing after a closepath restarts at the closed subpath's start.
	var last tess.Event
	p.Events(func(e tess.Event) bool {
		if e.Verb == tess.VerbBegin {
			last = e
		}
		return true
	})
	assert.Equal(t, tess.Pt(20, 0), last.To)
}

func TestParse_Attributes(t *testing.T) {
	b := tess.NewBuilder(1)
	require.NoError(t, Parse("M0 0 L1 0 L1 1 Z", b, []float32{0.5}))
	p := b.Build()
	p.Events(func(e tess.Event) bool {
		assert.Equal(t, []float32{0.5}, e.ToAttrs)
		return true
	})
}

func TestParse_EndsOpenSubpath(t *testing.T) {
	b := tess.NewBuilder(0)
	b.Begin(tess.Pt(0, 0), nil)
	b.LineTo(tess.Pt(5, 5), nil)
	require.NoError(t, Parse("m1 1 l1 0", b, nil))
	p := b.Build()

	subs := p.Subpaths()
	require.Len(t, subs, 2)
	// A leading relative moveto is measured from the builder's position.
	var begins []tess.Point
	p.Events(func(e tess.Event) bool {
		if e.Verb == tess.VerbBegin {
			begins = append(begins, e.To)
		}
		return true
	})
	assert.Equal(t, []tess.Point{tess.Pt(0, 0), tess.Pt(6, 6)}, begins)
}

func TestParse_Empty(t *testing.T) {
	for _, d := range []string{"", "  ", "\n\t,"} {
		p, err := ParsePath(d)
		require.NoError(t, err, "%q", d)
		assert.True(t, p.IsEmpty())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		d   string
		pos string
	}{
		{"L0 0", "position 1"},
		{"M0", "position 3"},
		{"M0 0 L", "position 7"},
		{"M0 0 X1 1", "position 6"},
		{"M0 0 A1 1 0 2 0 1 1", "position 13"},
		{"M0 0 Z 1 1", "position 8"},
		{"M0 0 C1 1 2 2", "position 14"},
	}
	for _, tt := range tests {
		t.Run(tt.d, func(t *testing.T) {
			_, err := ParsePath(tt.d)
			require.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), tt.pos)
		})
	}
}

func TestParse_ErrorLeavesBuilderUnchanged(t *testing.T) {
	b := tess.NewBuilder(0)
	require.Error(t, Parse("M0 0 L10 0 L", b, nil))
	assert.False(t, b.InSubpath())
	assert.True(t, b.Build().IsEmpty())
}

func TestMustParsePath_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParsePath("Q") })
}

func BenchmarkParsePath(b *testing.B) {
	const d = "M10 10 C20 20 40 20 50 10 S80 0 90 10 Q100 20 110 10 T130 10 A20 20 0 0 1 170 10 L170 50 H10 z"
	for i := 0; i < b.N; i++ {
		if _, err := ParsePath(d); err != nil {
			b.Fatal(err)
		}
	}
}
