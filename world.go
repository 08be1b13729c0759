package polyfarm

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/polyfarm/scene"
)

// paintedFace is a clipped, projected and shaded face waiting for the depth
// sort. Its vertices live in World.vertices[first : first+count].
type paintedFace struct {
	layer    scene.Layer
	depth    float64
	texture  *scene.Texture
	first    int
	count    int
	textured bool
}

// RenderStats describes the last frame.
type RenderStats struct {
	Nodes    int
	Faces    int
	Draws    int
	Textures int
}

// World paints a scene graph through a camera. Faces are painted layer by
// layer, back to front within a layer.
type World struct {
	camera   *Camera
	textures *textureCache

	faces    []paintedFace
	vertices []ebiten.Vertex
	camPts   []mgl64.Vec3
	frame    int
	stats    RenderStats
}

func NewWorld(camera *Camera) *World {
	return &World{camera: camera, textures: newTextureCache()}
}

func (w *World) Camera() *Camera {
	return w.camera
}

func (w *World) Stats() RenderStats {
	return w.stats
}

// PaintObjects draws every visible node of graph onto screen.
func (w *World) PaintObjects(screen *ebiten.Image, graph *scene.Graph) {
	w.frame++
	size := screen.Bounds().Size()
	w.camera.SetViewport(size.X, size.Y)
	view := w.camera.GetMatrix()

	w.faces = w.faces[:0]
	w.vertices = w.vertices[:0]
	w.stats = RenderStats{}

	for _, node := range graph.Nodes() {
		if !node.Visible || node.Disposed() || node.Mesh == nil {
			continue
		}
		w.stats.Nodes++
		w.paintNode(node, view, float32(size.X), float32(size.Y))
	}

	sort.SliceStable(w.faces, func(i, j int) bool {
		a, b := w.faces[i], w.faces[j]
		if a.layer != b.layer {
			return a.layer < b.layer
		}
		return a.depth > b.depth
	})

	batcher := NewPolygonBatcher(screen)
	for _, f := range w.faces {
		src := w.textures.get(f.texture, w.frame)
		batcher.AddPolygon(src, f.textured, w.vertices[f.first:f.first+f.count])
	}
	batcher.Flush()

	w.textures.sweep(w.frame)
	w.stats.Faces = len(w.faces)
	w.stats.Draws = batcher.Draws()
	w.stats.Textures = w.textures.len()
}

func (w *World) paintNode(node *scene.Node, view mgl64.Mat4, width, height float32) {
	modelView := view.Mul4(node.ModelMatrix())
	rotation := view.Mat3().Mul3(node.Orientation.Mat4().Mat3())

	w.camPts = w.camPts[:0]
	for _, v := range node.Mesh.Vertices {
		w.camPts = append(w.camPts, mgl64.TransformCoordinate(v.Pos, modelView))
	}

	textured := node.Texture.Loaded()
	focal := w.camera.focal()
	polygon := make([]clipVertex, 0, 8)

	for i := range node.Mesh.Faces {
		face := &node.Mesh.Faces[i]
		if len(face.Indices) < 3 {
			continue
		}
		first := w.camPts[face.Indices[0]]
		normal := rotation.Mul3x1(face.Normal).Normalize()
		if !facingCamera(normal, first) {
			if !node.DoubleSided {
				continue
			}
			normal = normal.Mul(-1)
		}

		polygon = polygon[:0]
		for _, idx := range face.Indices {
			polygon = append(polygon, clipVertex{pos: w.camPts[idx], uv: node.Mesh.Vertices[idx].UV})
		}
		clipped := clipPolygonAgainstNearPlane(polygon)
		if len(clipped) < 3 {
			continue
		}

		base := face.Color
		if textured {
			base = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		shaded := getColor(first, normal, modulate(base, node.Tint))
		r, g, b, a := colorScale(shaded)

		start := len(w.vertices)
		xs := make([]float32, len(clipped))
		ys := make([]float32, len(clipped))
		var sumDepth float64
		for k, cv := range clipped {
			sx, sy := convertToScreen(float64(width), float64(height), focal, cv.pos)
			xs[k], ys[k] = float32(sx), float32(sy)
			vert := ebiten.Vertex{
				DstX: xs[k], DstY: ys[k],
				SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			}
			if textured {
				u, v := node.Texture.SourcePoint(cv.uv.X(), cv.uv.Y())
				vert.SrcX, vert.SrcY = float32(u), float32(v)
			}
			w.vertices = append(w.vertices, vert)
			sumDepth += depth(cv.pos)
		}

		if outsideScreen(xs, ys, width, height) {
			w.vertices = w.vertices[:start]
			continue
		}

		pf := paintedFace{
			layer:    node.Layer,
			depth:    sumDepth / float64(len(clipped)),
			first:    start,
			count:    len(clipped),
			textured: textured,
		}
		if textured {
			pf.texture = node.Texture
		}
		w.faces = append(w.faces, pf)
	}
}
