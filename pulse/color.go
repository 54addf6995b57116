package pulse

import (
	"math"

	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// ColorSRGBA converts non linear srgb encoded values into a linear rgb color.
// Use this if you picked a color from a jpeg image.
func ColorSRGBA(r, g, b, a float32) glm.Vec4f {
	return glm.Vec4f{degamma(r), degamma(g), degamma(b), a}
}

// ToWGPU converts a linear rgba color to a wgpu.Color, e.g. to be used
// as clear value.
func ToWGPU(color glm.Vec4f) wgpu.Color {
	return wgpu.Color{
		R: float64(color[0]),
		G: float64(color[1]),
		B: float64(color[2]),
		A: float64(color[3]),
	}
}

func degamma(value float32) float32 {
	x := float64(value)

	// https://www.w3.org/TR/css-color-4/#color-conversion-code
	sign := math.Copysign(1, x)
	abs := math.Abs(x)
	if abs <= 0.04045 {
		return float32(x / 12.92)
	}

	return float32(sign * math.Pow((abs+0.055)/1.055, 2.4))
}
