package farm

import (
	"image"
	"image/color"
	"testing"

	"github.com/smasonuk/polyfarm/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorBoundsContains(t *testing.T) {
	testCases := []struct {
		name    string
		r, g, b uint8
		want    bool
	}{
		{"coat", 60, 50, 35, true},
		{"red on min", 50, 50, 35, false},
		{"red on max", 70, 50, 35, false},
		{"green outside", 60, 39, 35, false},
		{"blue outside", 60, 50, 41, false},
		{"white", 255, 255, 255, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Cow.Bounds.Contains(tc.r, tc.g, tc.b))
		})
	}
}

func TestRecolor(t *testing.T) {
	base := scene.NewTexture(coatImage())
	base.WrapS = scene.Repeat
	base.FlipY = true

	out, err := Recolor(base, Cow.Bounds, 200, 0.4, 0.4)
	require.NoError(t, err)
	require.NotSame(t, base, out)

	img, ok := out.Image.(*image.RGBA)
	require.True(t, ok)

	// the patch is outside the bounds
	assert.Equal(t, patchColor, img.RGBAAt(0, 0))

	_, s0, v0 := RGBToHSV(coatColor.R, coatColor.G, coatColor.B)
	c := img.RGBAAt(1, 1)
	h, s, v := RGBToHSV(c.R, c.G, c.B)
	assert.LessOrEqual(t, hueDistance(h, 200), 1.0)
	assert.InDelta(t, s0+0.4, s, 0.01)
	assert.InDelta(t, v0+0.4, v, 0.01)
	assert.Equal(t, uint8(255), c.A)

	// the base is untouched
	assert.Equal(t, coatColor, base.Image.(*image.RGBA).RGBAAt(1, 1))

	assert.Equal(t, scene.Repeat, out.WrapS)
	assert.True(t, out.FlipY)
	assert.Equal(t, scene.Nearest, out.MagFilter)
	assert.Equal(t, scene.Nearest, out.MinFilter)
}

func TestRecolorClampsSaturationAndValue(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 200, G: 100, B: 100, A: 255})

	out, err := Recolor(scene.NewTexture(img), Pig.Bounds, 120, 5, 5)
	require.NoError(t, err)

	c := out.Image.(*image.RGBA).RGBAAt(0, 0)
	assert.Equal(t, color.RGBA{R: 0, G: 255, B: 0, A: 255}, c)
}

func TestRecolorErrors(t *testing.T) {
	_, err := Recolor(nil, Cow.Bounds, 0, 0, 0)
	assert.ErrorIs(t, err, ErrTextureNotLoaded)

	_, err = Recolor(&scene.Texture{}, Cow.Bounds, 0, 0, 0)
	assert.ErrorIs(t, err, ErrTextureNotLoaded)

	_, err = Recolor(scene.NewTexture(image.NewRGBA(image.Rect(0, 0, 0, 0))), Cow.Bounds, 0, 0, 0)
	assert.ErrorIs(t, err, ErrNoDrawingSurface)
}
