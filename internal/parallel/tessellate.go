package parallel

import (
	"github.com/gogpu/tess"
)

// Task describes the tessellations of one path. A nil Fill or Stroke skips
// that part.
type Task struct {
	Path   *tess.Path
	Fill   *tess.FillOptions
	Stroke *tess.StrokeOptions
}

// Result is the outcome of one Task. Fill and stroke triangles share one
// geometry, fill first.
type Result[I tess.Index] struct {
	Geometry *tess.Geometry[I]
	Err      error
}

// TessellateAll runs tasks on the pool and returns their results in task
// order. A failed task keeps whatever the part before the failure produced.
func TessellateAll[I tess.Index](p *Pool, tasks []Task) ([]Result[I], error) {
	results := make([]Result[I], len(tasks))
	jobs := make([]Job, len(tasks))
	for i := range tasks {
		jobs[i] = func(w *Worker) {
			results[i] = tessellateOne[I](w, tasks[i])
		}
	}
	if err := p.ExecuteAll(jobs); err != nil {
		return nil, err
	}
	return results, nil
}

func tessellateOne[I tess.Index](w *Worker, t Task) Result[I] {
	g := tess.NewGeometry[I]()
	if t.Fill != nil {
		if err := w.Fill.Tessellate(t.Path, *t.Fill, g); err != nil {
			return Result[I]{Geometry: g, Err: err}
		}
	}
	if t.Stroke != nil {
		if err := w.Stroke.Tessellate(t.Path, *t.Stroke, g); err != nil {
			return Result[I]{Geometry: g, Err: err}
		}
	}
	return Result[I]{Geometry: g}
}
