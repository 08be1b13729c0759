package polyfarm

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage *ebiten.Image
	whiteSub   *ebiten.Image
)

// white returns a 1x1 white source image for untextured polygons. It is
// created on first use so that nothing touches the graphics driver before
// the game loop starts.
func white() *ebiten.Image {
	if whiteSub == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSub
}

// maxBatchVertices keeps batch indices within uint16.
const maxBatchVertices = math.MaxUint16

// PolygonBatcher merges consecutive convex polygons that share a source
// image into a single DrawTriangles call.
type PolygonBatcher struct {
	screen   *ebiten.Image
	src      *ebiten.Image
	textured bool
	vertices []ebiten.Vertex
	indices  []uint16
	draws    int
}

func NewPolygonBatcher(screen *ebiten.Image) *PolygonBatcher {
	return &PolygonBatcher{screen: screen}
}

// AddPolygon queues a convex polygon whose vertices already carry screen
// positions, source coordinates and colors. Textured polygons sample src
// with wrapping; the rest sample the white image.
func (b *PolygonBatcher) AddPolygon(src *ebiten.Image, textured bool, verts []ebiten.Vertex) {
	if len(verts) < 3 {
		return
	}
	if src == nil {
		src = white()
		textured = false
	}
	if src != b.src || textured != b.textured || len(b.vertices)+len(verts) > maxBatchVertices {
		b.Flush()
		b.src, b.textured = src, textured
	}

	base := uint16(len(b.vertices))
	b.vertices = append(b.vertices, verts...)
	for i := 2; i < len(verts); i++ {
		b.indices = append(b.indices, base, base+uint16(i-1), base+uint16(i))
	}
}

// AddSolidPolygon queues a flat colored polygon in screen coordinates.
func (b *PolygonBatcher) AddSolidPolygon(xp, yp []float32, clr color.RGBA) {
	verts := make([]ebiten.Vertex, len(xp))
	r, g, bl, a := colorScale(clr)
	for i := range xp {
		verts[i] = ebiten.Vertex{DstX: xp[i], DstY: yp[i], SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: bl, ColorA: a}
	}
	b.AddPolygon(nil, false, verts)
}

// Flush draws everything queued so far.
func (b *PolygonBatcher) Flush() {
	if len(b.indices) == 0 {
		b.vertices, b.indices = b.vertices[:0], b.indices[:0]
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	if b.textured {
		op.Filter = ebiten.FilterNearest
		op.Address = ebiten.AddressRepeat
	}
	b.screen.DrawTriangles(b.vertices, b.indices, b.src, op)
	b.draws++
	b.vertices, b.indices = b.vertices[:0], b.indices[:0]
}

// Draws is the number of DrawTriangles calls issued.
func (b *PolygonBatcher) Draws() int {
	return b.draws
}

func colorScale(clr color.RGBA) (r, g, b, a float32) {
	return float32(clr.R) / 255, float32(clr.G) / 255, float32(clr.B) / 255, float32(clr.A) / 255
}

// FillConvexPolygon draws a filled convex polygon in screen coordinates.
func FillConvexPolygon(screen *ebiten.Image, xp, yp []float32, clr color.RGBA) {
	b := NewPolygonBatcher(screen)
	b.AddSolidPolygon(xp, yp, clr)
	b.Flush()
}

// FillRect draws a filled axis-aligned rectangle.
func FillRect(screen *ebiten.Image, x, y, w, h float32, clr color.RGBA) {
	FillConvexPolygon(screen, []float32{x, x + w, x + w, x}, []float32{y, y, y + h, y + h}, clr)
}

// DrawPolygonOutline strokes the closed outline of a polygon.
func DrawPolygonOutline(screen *ebiten.Image, xp, yp []float32, strokeWidth float32, clr color.RGBA) {
	if len(xp) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: strokeWidth})
	r, g, b, a := colorScale(clr)
	for i := range vertices {
		vertices[i].ColorR = r
		vertices[i].ColorG = g
		vertices[i].ColorB = b
		vertices[i].ColorA = a
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	screen.DrawTriangles(vertices, indices, white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
