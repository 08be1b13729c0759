package farm

import (
	"math"
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Random returns a uniform value in [min, max).
func Random(r *rand.Rand, min, max float64) float64 {
	return r.Float64()*(max-min) + min
}

// Distance is the euclidean length of (dx, dz).
func Distance(dx, dz float64) float64 {
	return math.Hypot(dx, dz)
}

// RGBToHSV converts 8-bit channels to hue in degrees [0, 360) and saturation
// and value in [0, 1].
func RGBToHSV(r, g, b uint8) (h, s, v float64) {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	return c.Hsv()
}

// HSVToRGB converts hue in degrees (any value, wrapped into [0, 360)) and
// saturation and value, clamped to [0, 1], to rounded 8-bit channels.
func HSVToRGB(h, s, v float64) (r, g, b uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s)
	v = clamp01(v)
	return colorful.Hsv(h, s, v).RGB255()
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
