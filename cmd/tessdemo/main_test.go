package main

import (
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRenderScene_DefaultScene(t *testing.T) {
	s := defaultScene()
	require.NoError(t, s.Validate())

	img16, st16, err := renderScene(s, 16, 2, quietLogger())
	require.NoError(t, err)
	assert.Zero(t, st16.Failures)
	assert.Zero(t, st16.Retries)
	assert.Equal(t, len(s.Shapes), st16.Shapes)
	assert.Positive(t, st16.Triangles)

	img32, st32, err := renderScene(s, 32, 2, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, st16.Vertices, st32.Vertices)
	assert.Equal(t, st16.Triangles, st32.Triangles)
	assert.Equal(t, img16.Pix, img32.Pix, "index width does not change the picture")

	// The center of the first circle is not background.
	bg := img16.NRGBAAt(1, 1)
	assert.NotEqual(t, bg, img16.NRGBAAt(150, 140))
}

func TestRenderScene_BadIndex(t *testing.T) {
	_, _, err := renderScene(defaultScene(), 8, 1, quietLogger())
	assert.Error(t, err)
}

func TestRun_WritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	err := run(config{
		scene:  "../../internal/scene/testdata/shapes.toml",
		output: out,
		width:  64,
		height: 48,
		index:  16,
	}, quietLogger())
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestRun_MissingScene(t *testing.T) {
	err := run(config{scene: "missing.yaml", output: filepath.Join(t.TempDir(), "x.png"), index: 16}, quietLogger())
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel(" DEBUG "))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.log")
	logger, closer := newLogger(logOptions{Level: "debug", Format: "json", File: path})
	logger.Debug("hello", "k", 1)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
