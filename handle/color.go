package handle

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
)

// PackColor packs RGBA channels in [0, 1] as 0xRRGGBBAA. Each channel is
// scaled by 255 and truncated; negative and NaN channels become 0, and
// only the low 8 bits of larger values are kept.
func PackColor(c [4]float32) uint32 {
	return channel(c[0])<<24 | channel(c[1])<<16 | channel(c[2])<<8 | channel(c[3])
}

func channel(v float32) uint32 {
	v *= 255
	switch {
	case math32.IsNaN(v) || v <= 0:
		return 0
	case v >= math32.MaxUint32:
		return 0xFF
	}
	return uint32(math32.Trunc(v)) & 0xFF
}

// UnpackColor is the inverse of PackColor for in-range channels.
func UnpackColor(c uint32) [4]float32 {
	return [4]float32{
		float32(c>>24&0xFF) / 255,
		float32(c>>16&0xFF) / 255,
		float32(c>>8&0xFF) / 255,
		float32(c&0xFF) / 255,
	}
}

// Version returns the library version as major<<24 | minor<<16 | patch.
func Version() uint32 {
	return tess.PackedVersion()
}
