package tess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSubpaths() *Path {
	b := NewBuilder(1)
	b.Begin(Pt(0, 0), []float32{1})
	b.LineTo(Pt(10, 0), []float32{2})
	b.LineTo(Pt(10, 10), []float32{3})
	b.Close()
	b.Begin(Pt(20, 20), []float32{4})
	b.QuadraticTo(Pt(25, 30), Pt(30, 20), []float32{5})
	b.End(false)
	return b.Build()
}

func TestPath_Events(t *testing.T) {
	events := collectEvents(twoSubpaths())
	require.Len(t, events, 7)

	assert.Equal(t, Event{
		Verb: VerbBegin, From: Pt(0, 0), To: Pt(0, 0),
		FromAttrs: []float32{1}, ToAttrs: []float32{1},
	}, events[0])
	assert.Equal(t, Pt(0, 0), events[1].From)
	assert.Equal(t, Pt(10, 0), events[1].To)

	closeEvent := events[3]
	assert.Equal(t, VerbClose, closeEvent.Verb)
	assert.Equal(t, Pt(10, 10), closeEvent.From)
	assert.Equal(t, Pt(0, 0), closeEvent.To)
	assert.Equal(t, []float32{3}, closeEvent.FromAttrs)
	assert.Equal(t, []float32{1}, closeEvent.ToAttrs)

	quad := events[5]
	assert.Equal(t, VerbQuadraticTo, quad.Verb)
	assert.Equal(t, Pt(20, 20), quad.From)
	assert.Equal(t, Pt(25, 30), quad.Ctrl1)
	assert.Equal(t, Pt(30, 20), quad.To)
	assert.Equal(t, []float32{5}, quad.ToAttrs)

	end := events[6]
	assert.Equal(t, VerbEnd, end.Verb)
	assert.Equal(t, Pt(30, 20), end.From)
	assert.Equal(t, Pt(20, 20), end.To)
}

func TestPath_EventsStop(t *testing.T) {
	calls := 0
	twoSubpaths().Events(func(Event) bool {
		calls++
		return calls < 3
	})
	assert.Equal(t, 3, calls)
}

func TestPath_Subpaths(t *testing.T) {
	subs := twoSubpaths().Subpaths()
	require.Len(t, subs, 2)

	assert.True(t, subs[0].Closed())
	assert.Equal(t, Pt(0, 0), subs[0].Start())
	assert.False(t, subs[1].Closed())
	assert.Equal(t, Pt(20, 20), subs[1].Start())

	var verbs []Verb
	var attrs []float32
	subs[1].Events(func(e Event) bool {
		verbs = append(verbs, e.Verb)
		attrs = append(attrs, e.ToAttrs...)
		return true
	})
	assert.Equal(t, []Verb{VerbBegin, VerbQuadraticTo, VerbEnd}, verbs)
	assert.Equal(t, []float32{4, 5, 4}, attrs)
}

func TestPath_BoundingBox(t *testing.T) {
	b := NewBuilder(0)
	b.Begin(Pt(0, 0), nil)
	b.QuadraticTo(Pt(5, 10), Pt(10, 0), nil)
	b.End(false)
	b.Begin(Pt(-2, -1), nil)
	b.CubicTo(Pt(-2, -1), Pt(-2, -1), Pt(-3, -1), nil)
	b.End(false)
	box := b.Build().BoundingBox()

	assert.InDelta(t, -3, box.Min.X, 1e-12)
	assert.InDelta(t, -1, box.Min.Y, 1e-12)
	assert.InDelta(t, 10, box.Max.X, 1e-12)
	// The quadratic peaks at t=0.5, halfway to its control point.
	assert.InDelta(t, 5, box.Max.Y, 1e-12)
}

func TestPath_BoundingBoxEmpty(t *testing.T) {
	p := NewBuilder(0).Build()
	assert.True(t, p.IsEmpty())
	assert.True(t, p.BoundingBox().IsEmpty())
	assert.Empty(t, p.Subpaths())
}

func TestPath_Transform(t *testing.T) {
	p := twoSubpaths()
	moved := p.Transform(Translate(100, 50))

	orig := collectEvents(p)
	got := collectEvents(moved)
	require.Len(t, got, len(orig))
	for i := range orig {
		assert.Equal(t, orig[i].Verb, got[i].Verb)
		assert.Equal(t, orig[i].To.Add(Vec(100, 50)), got[i].To)
		assert.Equal(t, orig[i].ToAttrs, got[i].ToAttrs)
	}
	assert.Equal(t, Pt(0, 0), p.Subpaths()[0].Start(), "the source path is unchanged")
}

func TestVerb_String(t *testing.T) {
	assert.Equal(t, "Begin", VerbBegin.String())
	assert.Equal(t, "CubicTo", VerbCubicTo.String())
	assert.Equal(t, "End", VerbEnd.String())
	assert.Equal(t, "Verb(42)", Verb(42).String())
}
