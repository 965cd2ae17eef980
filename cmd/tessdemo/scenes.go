package main

import (
	"fmt"
	"math"

	"github.com/gogpu/tess/internal/scene"
)

// defaultScene is drawn when no scene file is given.
func defaultScene() *scene.Scene {
	s := &scene.Scene{
		Width:      800,
		Height:     600,
		Background: [4]float32{0.12, 0.16, 0.26, 1},
		Tolerance:  0.1,
	}
	add := func(sh scene.Shape) { s.Shapes = append(s.Shapes, sh) }

	// Overlapping translucent circles.
	for i, c := range []struct {
		x, y  float64
		color [4]float32
	}{
		{150, 150, [4]float32{1, 0.3, 0.3, 0.8}},
		{200, 150, [4]float32{0.3, 1, 0.3, 0.8}},
		{175, 200, [4]float32{0.3, 0.3, 1, 0.8}},
	} {
		add(scene.Shape{
			Name:   fmt.Sprintf("circle-%d", i),
			Circle: &scene.Circle{Center: [2]float64{c.x, c.y}, Radius: 60},
			Fill:   &scene.Fill{Color: c.color},
		})
	}

	add(scene.Shape{
		Name:        "card",
		RoundedRect: &scene.RoundedRect{Min: [2]float64{350, 100}, Max: [2]float64{470, 180}, Radii: [4]float64{15, 15, 15, 15}},
		Fill:        &scene.Fill{Color: [4]float32{1, 0.8, 0, 1}},
		Stroke:      &scene.Stroke{Color: [4]float32{1, 1, 1, 1}, Width: 4},
	})

	// A fan of rotated squares.
	for i := range 8 {
		t := float32(i) / 8
		add(scene.Shape{
			Name:      fmt.Sprintf("square-%d", i),
			Rect:      &scene.Rect{Min: [2]float64{-30, -30}, Max: [2]float64{30, 30}},
			Transform: &scene.Transform{Translate: [2]float64{600, 150}, Rotate: float64(i) * 45},
			Fill:      &scene.Fill{Color: [4]float32{0.4 + 0.6*t, 0.8 - 0.5*t, 0.6, 0.7}},
		})
	}

	add(scene.Shape{
		Name:   "wave",
		SVG:    "M150 400 c50 -50 100 50 150 0 s100 30 150 0",
		Stroke: &scene.Stroke{Color: [4]float32{1, 0.5, 0, 1}, Width: 6, Cap: "round", Join: "round"},
	})

	star := &scene.Polygon{Closed: true}
	for i := range 10 {
		angle := float64(i)*math.Pi/5 - math.Pi/2
		r := 60.0
		if i%2 == 1 {
			r = 30
		}
		star.Points = append(star.Points, [2]float64{550 + r*math.Cos(angle), 400 + r*math.Sin(angle)})
	}
	add(scene.Shape{
		Name:    "star",
		Polygon: star,
		Fill:    &scene.Fill{Color: [4]float32{1, 1, 0, 1}, Rule: "nonzero"},
		Stroke:  &scene.Stroke{Color: [4]float32{0.6, 0.4, 0, 1}, Width: 2, Join: "miterclip"},
	})

	add(scene.Shape{
		Name:   "orbit",
		SVG:    "M600 520 A120 40 -15 1 1 599 520 Z",
		Stroke: &scene.Stroke{Color: [4]float32{0.6, 0.8, 1, 1}, Width: 3},
	})
	return s
}
