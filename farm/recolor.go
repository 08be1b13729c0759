package farm

import (
	"errors"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/smasonuk/polyfarm/scene"
)

var (
	ErrTextureNotLoaded = errors.New("texture not loaded")
	ErrNoDrawingSurface = errors.New("no drawing surface")
)

// ColorBounds is an open RGB box: a pixel is inside when every channel is
// strictly greater than its min and strictly less than its max.
type ColorBounds struct {
	RMin, RMax int
	GMin, GMax int
	BMin, BMax int
}

func (b ColorBounds) Contains(r, g, bl uint8) bool {
	return int(r) > b.RMin && int(r) < b.RMax &&
		int(g) > b.GMin && int(g) < b.GMax &&
		int(bl) > b.BMin && int(bl) < b.BMax
}

// Recolor returns a copy of base in which every pixel inside bounds has its
// hue replaced and its saturation and value shifted. Shading noise survives
// because only the hue is overwritten; pixels outside bounds are copied
// unchanged. The result samples like base but with nearest filtering.
//
// Pixels are processed as 8-bit RGBA; textures are expected to be opaque.
func Recolor(base *scene.Texture, bounds ColorBounds, hue, satDelta, valDelta float64) (*scene.Texture, error) {
	if !base.Loaded() {
		return nil, ErrTextureNotLoaded
	}
	if base.Image.Bounds().Empty() {
		return nil, ErrNoDrawingSurface
	}

	img := adjust.Apply(base.Image, func(c color.RGBA) color.RGBA {
		if !bounds.Contains(c.R, c.G, c.B) {
			return c
		}
		_, s, v := RGBToHSV(c.R, c.G, c.B)
		r, g, b := HSVToRGB(hue, s+satDelta, v+valDelta)
		return color.RGBA{R: r, G: g, B: b, A: c.A}
	})

	out := scene.NewTexture(img)
	out.CopySampling(base)
	out.MagFilter = scene.Nearest
	out.MinFilter = scene.Nearest
	return out, nil
}
