package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

type Vertex struct {
	Pos mgl64.Vec3
	UV  mgl64.Vec2
}

// Face is a convex polygon referencing mesh vertices by index. Color is used
// for untextured meshes and is multiplied with the node tint.
type Face struct {
	Indices []int
	Normal  mgl64.Vec3
	Color   color.RGBA
}

type vertexKey [5]float64

// Mesh is an indexed polygon mesh. Vertices with the same position and uv
// are stored once.
type Mesh struct {
	Vertices []Vertex
	Faces    []Face

	vertexIndex map[vertexKey]int
}

func NewMesh() *Mesh {
	return &Mesh{
		vertexIndex: make(map[vertexKey]int),
	}
}

// AddVertex returns the index of the vertex, adding it if it is not already
// present.
func (m *Mesh) AddVertex(pos mgl64.Vec3, uv mgl64.Vec2) int {
	key := vertexKey{pos[0], pos[1], pos[2], uv[0], uv[1]}
	if index, found := m.vertexIndex[key]; found {
		return index
	}
	m.Vertices = append(m.Vertices, Vertex{Pos: pos, UV: uv})
	index := len(m.Vertices) - 1
	m.vertexIndex[key] = index
	return index
}

// AddFace adds a polygon over existing vertex indices. Points are expected
// counter-clockwise seen from the outside; the normal is derived from the
// first three.
func (m *Mesh) AddFace(indices []int, col color.RGBA) {
	f := Face{
		Indices: append([]int(nil), indices...),
		Color:   col,
	}
	f.Normal = m.faceNormal(f.Indices)
	m.Faces = append(m.Faces, f)
}

// AddPolygon adds the points as new (or shared) vertices and a face over them.
func (m *Mesh) AddPolygon(points []mgl64.Vec3, uvs []mgl64.Vec2, col color.RGBA) {
	indices := make([]int, len(points))
	for i, p := range points {
		var uv mgl64.Vec2
		if i < len(uvs) {
			uv = uvs[i]
		}
		indices[i] = m.AddVertex(p, uv)
	}
	m.AddFace(indices, col)
}

func (m *Mesh) faceNormal(indices []int) mgl64.Vec3 {
	if len(indices) < 3 {
		return mgl64.Vec3{0, 0, 1}
	}
	p1 := m.Vertices[indices[0]].Pos
	p2 := m.Vertices[indices[1]].Pos
	p3 := m.Vertices[indices[2]].Pos
	n := p2.Sub(p1).Cross(p3.Sub(p1))
	if n.Len() == 0 {
		return mgl64.Vec3{0, 0, 1}
	}
	return n.Normalize()
}

// Extents returns the size of the mesh's bounding box along each axis.
func (m *Mesh) Extents() mgl64.Vec3 {
	if len(m.Vertices) == 0 {
		return mgl64.Vec3{}
	}
	min, max := m.Vertices[0].Pos, m.Vertices[0].Pos
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Pos[i] < min[i] {
				min[i] = v.Pos[i]
			} else if v.Pos[i] > max[i] {
				max[i] = v.Pos[i]
			}
		}
	}
	return max.Sub(min)
}
