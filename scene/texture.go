package scene

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"
)

type Wrap int

const (
	ClampToEdge Wrap = iota
	Repeat
)

type Filter int

const (
	Linear Filter = iota
	Nearest
)

const (
	ColorSpaceSRGB   = "srgb"
	ColorSpaceLinear = "linear"
)

// Texture is a pixel image plus the sampling metadata needed to map it onto
// a mesh's uv coordinates. A texture with a nil Image has not finished
// loading.
type Texture struct {
	Image      image.Image
	WrapS      Wrap
	WrapT      Wrap
	Repeat     mgl64.Vec2
	Offset     mgl64.Vec2
	Center     mgl64.Vec2
	Rotation   float64
	FlipY      bool
	ColorSpace string
	MagFilter  Filter
	MinFilter  Filter

	disposed bool
}

func NewTexture(img image.Image) *Texture {
	return &Texture{
		Image:      img,
		Repeat:     mgl64.Vec2{1, 1},
		ColorSpace: ColorSpaceSRGB,
	}
}

func (t *Texture) Loaded() bool {
	return t != nil && t.Image != nil
}

// Clone returns a texture sharing t's image with its own copy of the
// metadata.
func (t *Texture) Clone() *Texture {
	c := *t
	c.disposed = false
	return &c
}

// CopySampling copies every sampling field of src onto t, leaving the image
// alone.
func (t *Texture) CopySampling(src *Texture) {
	t.WrapS = src.WrapS
	t.WrapT = src.WrapT
	t.Repeat = src.Repeat
	t.Offset = src.Offset
	t.Center = src.Center
	t.Rotation = src.Rotation
	t.FlipY = src.FlipY
	t.ColorSpace = src.ColorSpace
}

// Dispose marks the texture as released. Renderers drop any GPU copy they
// hold for it on their next frame.
func (t *Texture) Dispose() {
	t.disposed = true
}

func (t *Texture) Disposed() bool {
	return t.disposed
}

// SourcePoint maps a uv coordinate to a pixel position in the image,
// applying repeat, offset, rotation around center and flipY.
func (t *Texture) SourcePoint(u, v float64) (float64, float64) {
	u = u*t.Repeat.X() + t.Offset.X()
	v = v*t.Repeat.Y() + t.Offset.Y()
	if t.Rotation != 0 {
		cx, cy := t.Center.X(), t.Center.Y()
		c, s := mgl64.Rotate2D(t.Rotation).Mul2x1(mgl64.Vec2{u - cx, v - cy}).Elem()
		u, v = c+cx, s+cy
	}
	if t.FlipY {
		v = 1 - v
	}
	if t.WrapS == ClampToEdge {
		u = mgl64.Clamp(u, 0, 1)
	}
	if t.WrapT == ClampToEdge {
		v = mgl64.Clamp(v, 0, 1)
	}
	b := t.Image.Bounds()
	return float64(b.Min.X) + u*float64(b.Dx()), float64(b.Min.Y) + v*float64(b.Dy())
}
