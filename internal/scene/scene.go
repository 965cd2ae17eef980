// Package scene reads demo scenes: a canvas size and a list of shapes, each
// with optional fill and stroke styles. Scenes are YAML or TOML, picked by
// file extension.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrFormat is returned for files that are neither YAML nor TOML.
	ErrFormat = errors.New("scene: unknown file format")

	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("scene: invalid scene")
)

// Format is a scene encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatOf picks the format from a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, path)
}

// Scene is the top-level document.
type Scene struct {
	Width      int        `yaml:"width" toml:"width"`
	Height     int        `yaml:"height" toml:"height"`
	Background [4]float32 `yaml:"background" toml:"background"`
	// Tolerance applies to every shape that does not set its own.
	Tolerance float64 `yaml:"tolerance" toml:"tolerance"`
	// Fit scales the scene's bounds into the canvas instead of drawing in
	// pixel coordinates.
	Fit    bool    `yaml:"fit" toml:"fit"`
	Shapes []Shape `yaml:"shapes" toml:"shapes"`
}

// Shape is one path with its styles. Exactly one geometry field is set.
type Shape struct {
	Name string `yaml:"name" toml:"name"`

	SVG         string       `yaml:"svg,omitempty" toml:"svg,omitempty"`
	Rect        *Rect        `yaml:"rect,omitempty" toml:"rect,omitempty"`
	RoundedRect *RoundedRect `yaml:"rounded_rect,omitempty" toml:"rounded_rect,omitempty"`
	Circle      *Circle      `yaml:"circle,omitempty" toml:"circle,omitempty"`
	Ellipse     *Ellipse     `yaml:"ellipse,omitempty" toml:"ellipse,omitempty"`
	Polygon     *Polygon     `yaml:"polygon,omitempty" toml:"polygon,omitempty"`

	Transform *Transform `yaml:"transform,omitempty" toml:"transform,omitempty"`
	Fill      *Fill      `yaml:"fill,omitempty" toml:"fill,omitempty"`
	Stroke    *Stroke    `yaml:"stroke,omitempty" toml:"stroke,omitempty"`
}

type Rect struct {
	Min [2]float64 `yaml:"min" toml:"min"`
	Max [2]float64 `yaml:"max" toml:"max"`
}

// RoundedRect radii are top-left, top-right, bottom-left, bottom-right.
type RoundedRect struct {
	Min   [2]float64 `yaml:"min" toml:"min"`
	Max   [2]float64 `yaml:"max" toml:"max"`
	Radii [4]float64 `yaml:"radii" toml:"radii"`
}

type Circle struct {
	Center [2]float64 `yaml:"center" toml:"center"`
	Radius float64    `yaml:"radius" toml:"radius"`
}

// Ellipse rotation is in degrees.
type Ellipse struct {
	Center   [2]float64 `yaml:"center" toml:"center"`
	Radii    [2]float64 `yaml:"radii" toml:"radii"`
	Rotation float64    `yaml:"rotation" toml:"rotation"`
}

type Polygon struct {
	Points [][2]float64 `yaml:"points" toml:"points"`
	Closed bool         `yaml:"closed" toml:"closed"`
}

// Transform is applied as scale, then rotate (degrees), then translate.
type Transform struct {
	Translate [2]float64 `yaml:"translate" toml:"translate"`
	Scale     [2]float64 `yaml:"scale" toml:"scale"`
	Rotate    float64    `yaml:"rotate" toml:"rotate"`
}

// Fill style. Rule is "evenodd" (default) or "nonzero"; Orientation is
// "vertical" (default) or "horizontal".
type Fill struct {
	Color       [4]float32 `yaml:"color" toml:"color"`
	Rule        string     `yaml:"rule" toml:"rule"`
	Orientation string     `yaml:"orientation" toml:"orientation"`
	Tolerance   float64    `yaml:"tolerance" toml:"tolerance"`
}

// Stroke style. Cap sets both ends unless StartCap or EndCap override it.
type Stroke struct {
	Color      [4]float32 `yaml:"color" toml:"color"`
	Width      float64    `yaml:"width" toml:"width"`
	Join       string     `yaml:"join" toml:"join"`
	Cap        string     `yaml:"cap" toml:"cap"`
	StartCap   string     `yaml:"start_cap" toml:"start_cap"`
	EndCap     string     `yaml:"end_cap" toml:"end_cap"`
	MiterLimit float64    `yaml:"miter_limit" toml:"miter_limit"`
	Tolerance  float64    `yaml:"tolerance" toml:"tolerance"`
}

// Default canvas size.
const (
	DefaultWidth  = 512
	DefaultHeight = 512
)

// Load reads and validates the scene at path.
func Load(path string) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode parses and validates a scene. Unknown keys are rejected.
func Decode(data []byte, format Format) (*Scene, error) {
	s := &Scene{Width: DefaultWidth, Height: DefaultHeight, Background: [4]float32{1, 1, 1, 1}}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scene: yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(s); err != nil {
			return nil, fmt.Errorf("scene: toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrFormat, format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the canvas, every geometry and every style name.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, s.Width, s.Height)
	}
	if s.Tolerance < 0 {
		return fmt.Errorf("%w: negative tolerance %v", ErrInvalid, s.Tolerance)
	}
	for i := range s.Shapes {
		if err := s.Shapes[i].validate(); err != nil {
			return fmt.Errorf("%w: shape %d (%s): %w", ErrInvalid, i, s.Shapes[i].Name, err)
		}
	}
	return nil
}

func (sh *Shape) validate() error {
	n := 0
	if sh.SVG != "" {
		n++
	}
	for _, set := range []bool{sh.Rect != nil, sh.RoundedRect != nil, sh.Circle != nil, sh.Ellipse != nil, sh.Polygon != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("want exactly one geometry, got %d", n)
	}
	if sh.Fill == nil && sh.Stroke == nil {
		return errors.New("neither fill nor stroke")
	}
	if sh.Fill != nil {
		if _, err := fillRule(sh.Fill.Rule); err != nil {
			return err
		}
		if _, err := orientation(sh.Fill.Orientation); err != nil {
			return err
		}
	}
	if st := sh.Stroke; st != nil {
		if _, err := lineJoin(st.Join); err != nil {
			return err
		}
		for _, c := range []string{st.Cap, st.StartCap, st.EndCap} {
			if _, err := lineCap(c); err != nil {
				return err
			}
		}
	}
	return nil
}
