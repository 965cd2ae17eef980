// Command tessdemo tessellates a scene of shapes, rasterizes the triangles
// on the CPU and writes the result as PNG.
//
// Usage:
//
//	tessdemo -scene shapes.yaml -output demo.png -index 16
//
// Without -scene a built-in scene is drawn.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/handle"
	"github.com/gogpu/tess/internal/parallel"
	"github.com/gogpu/tess/internal/preview"
	"github.com/gogpu/tess/internal/scene"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "scene file (.yaml, .yml or .toml)")
		output    = flag.String("output", "demo.png", "output file")
		width     = flag.Int("width", 0, "image width, 0 keeps the scene's")
		height    = flag.Int("height", 0, "image height, 0 keeps the scene's")
		index     = flag.Int("index", 16, "index width: 16 or 32")
		workers   = flag.Int("workers", 0, "tessellation workers, 0 for GOMAXPROCS")
		logLevel  = flag.String("log-level", "info", "debug, info, warn or error")
		logFormat = flag.String("log-format", "text", "text or json")
		logFile   = flag.String("log-file", "", "also log to this file, rotated")
	)
	flag.Parse()

	logger, closer := newLogger(logOptions{Level: *logLevel, Format: *logFormat, File: *logFile})
	defer closer.Close()
	tess.SetLogger(logger)

	cfg := config{
		scene:   *scenePath,
		output:  *output,
		width:   *width,
		height:  *height,
		index:   *index,
		workers: *workers,
	}
	if err := run(cfg, logger); err != nil {
		logger.Error("tessdemo failed", "err", err)
		closer.Close()
		os.Exit(1)
	}
}

type config struct {
	scene         string
	output        string
	width, height int
	index         int
	workers       int
}

// stats summarizes one run.
type stats struct {
	Shapes    int
	Vertices  int
	Triangles int
	Retries   int
	Failures  int
	Elapsed   time.Duration
}

func run(cfg config, logger *slog.Logger) error {
	s := defaultScene()
	if cfg.scene != "" {
		var err error
		if s, err = scene.Load(cfg.scene); err != nil {
			return err
		}
	}
	if cfg.width > 0 {
		s.Width = cfg.width
	}
	if cfg.height > 0 {
		s.Height = cfg.height
	}

	img, st, err := renderScene(s, cfg.index, cfg.workers, logger)
	if err != nil {
		return err
	}
	if err := savePNG(cfg.output, img); err != nil {
		return err
	}

	logger.Info("scene rendered",
		"output", cfg.output,
		"size", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"shapes", st.Shapes,
		"vertices", st.Vertices,
		"triangles", st.Triangles,
		"retries", st.Retries,
		"failures", st.Failures,
		"elapsed", st.Elapsed,
	)
	return nil
}

// renderScene tessellates all shapes on a pool and draws them in scene
// order.
func renderScene(s *scene.Scene, index, workers int, logger *slog.Logger) (*image.NRGBA, stats, error) {
	st := stats{Shapes: len(s.Shapes)}
	start := time.Now()

	tasks, err := s.Tasks()
	if err != nil {
		return nil, st, err
	}

	view := tess.Identity()
	if s.Fit {
		view = preview.Fit(scene.Bounds(tasks), s.Width, s.Height, 8)
	}

	img := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	bg := image.NewUniform(preview.NRGBA(handle.PackColor(s.Background)))
	draw.Draw(img, img.Bounds(), bg, image.Point{}, draw.Src)

	pool := parallel.NewPool(workers)
	defer pool.Close()

	switch index {
	case 16:
		err = draw16(pool, tasks, img, view, &st, logger)
	case 32:
		err = drawAll[uint32](pool, tasks, img, view, &st, logger)
	default:
		err = fmt.Errorf("unsupported index width %d", index)
	}
	st.Elapsed = time.Since(start)
	return img, st, err
}

// draw16 tessellates with 16-bit indices and retries the shapes that do not
// fit with 32-bit indices.
func draw16(pool *parallel.Pool, tasks []parallel.Task, img draw.Image, view tess.Transform, st *stats, logger *slog.Logger) error {
	results, err := parallel.TessellateAll[uint16](pool, tasks)
	if err != nil {
		return err
	}
	for i, r := range results {
		if errors.Is(r.Err, tess.ErrTooManyVertices) {
			logger.Debug("retrying with 32-bit indices", "shape", i)
			st.Retries++
			wide, err := parallel.TessellateAll[uint32](pool, tasks[i:i+1])
			if err != nil {
				return err
			}
			drawResult(wide[0], i, img, view, st, logger)
			continue
		}
		drawResult(r, i, img, view, st, logger)
	}
	return nil
}

func drawAll[I tess.Index](pool *parallel.Pool, tasks []parallel.Task, img draw.Image, view tess.Transform, st *stats, logger *slog.Logger) error {
	results, err := parallel.TessellateAll[I](pool, tasks)
	if err != nil {
		return err
	}
	for i, r := range results {
		drawResult(r, i, img, view, st, logger)
	}
	return nil
}

func drawResult[I tess.Index](r parallel.Result[I], shape int, img draw.Image, view tess.Transform, st *stats, logger *slog.Logger) {
	if r.Err != nil {
		st.Failures++
		logger.Warn("shape failed", "shape", shape, "err", r.Err)
		return
	}
	st.Vertices += len(r.Geometry.Vertices)
	st.Triangles += r.Geometry.TriangleCount()
	preview.Render(img, r.Geometry, view)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
