package handle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackColor(t *testing.T) {
	tests := []struct {
		name string
		c    [4]float32
		want uint32
	}{
		{"opaque red", [4]float32{1, 0, 0, 1}, 0xFF0000FF},
		{"transparent", [4]float32{0, 0, 0, 0}, 0x00000000},
		{"white", [4]float32{1, 1, 1, 1}, 0xFFFFFFFF},
		{"truncates", [4]float32{0.5, 0.25, 0.999, 1}, 0x7F3FFEFF},
		{"negative clamps to zero", [4]float32{-1, 0, 0, 1}, 0x000000FF},
		{"NaN is zero", [4]float32{float32(math.NaN()), 1, 0, 0}, 0x00FF0000},
		{"overflow keeps low bits", [4]float32{2, 0, 0, 0}, 0xFE000000},
		{"huge saturates", [4]float32{float32(math.Inf(1)), 0, 0, 0}, 0xFF000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PackColor(tt.c), "PackColor(%v) = %#08x", tt.c, PackColor(tt.c))
		})
	}
}

func TestUnpackColor(t *testing.T) {
	c := UnpackColor(0xFF8000FF)
	assert.Equal(t, float32(1), c[0])
	assert.InDelta(t, 128.0/255, c[1], 1e-7)
	assert.Zero(t, c[2])
}

func TestVersion(t *testing.T) {
	assert.Equal(t, uint32(1<<24|0<<16|1), Version())
}
