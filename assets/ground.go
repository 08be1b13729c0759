package assets

import (
	"image"
	"image/color"

	"github.com/aquilax/go-perlin"
)

const (
	groundAlpha  = 2.0
	groundBeta   = 2.0
	groundOctave = 3
	// groundScale is the noise period in pixels.
	groundScale = 24.0
)

var (
	grassLight = color.RGBA{R: 112, G: 158, B: 74, A: 255}
	grassDark  = color.RGBA{R: 66, G: 110, B: 48, A: 255}
	dirtLight  = color.RGBA{R: 138, G: 98, B: 64, A: 255}
	dirtDark   = color.RGBA{R: 90, G: 62, B: 40, A: 255}
)

// GroundTexture returns a size x size tile of mottled grass. The same seed
// always gives the same tile.
func GroundTexture(size int, seed int64) *image.RGBA {
	return noiseTile(size, seed, grassDark, grassLight)
}

// DirtTexture returns a size x size tile of mottled earth for the sides and
// floor of the farm block.
func DirtTexture(size int, seed int64) *image.RGBA {
	return noiseTile(size, seed+1, dirtDark, dirtLight)
}

func noiseTile(size int, seed int64, dark, light color.RGBA) *image.RGBA {
	p := perlin.NewPerlin(groundAlpha, groundBeta, groundOctave, seed)
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := p.Noise2D(float64(x)/groundScale, float64(y)/groundScale)
			img.SetRGBA(x, y, lerpColor(dark, light, (n+1)/2))
		}
	}
	return img
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
