package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// NewPlane builds a width x depth quad on the xz plane facing +y, with uvs
// spanning 0..1.
func NewPlane(width, depth float64) *Mesh {
	return NewGrid(width, depth, 1)
}

// NewGrid builds a plane split into segments x segments quads sharing one
// 0..1 uv space. Smaller quads keep affine texture distortion down.
func NewGrid(width, depth float64, segments int) *Mesh {
	if segments < 1 {
		segments = 1
	}
	m := NewMesh()
	n := float64(segments)
	for i := 0; i < segments; i++ {
		v0, v1 := float64(i)/n, float64(i+1)/n
		z0, z1 := (v0-0.5)*depth, (v1-0.5)*depth
		for j := 0; j < segments; j++ {
			u0, u1 := float64(j)/n, float64(j+1)/n
			x0, x1 := (u0-0.5)*width, (u1-0.5)*width
			m.AddPolygon(
				[]mgl64.Vec3{{x0, 0, z1}, {x1, 0, z1}, {x1, 0, z0}, {x0, 0, z0}},
				[]mgl64.Vec2{{u0, v1}, {u1, v1}, {u1, v0}, {u0, v0}},
				white,
			)
		}
	}
	return m
}

// NewBox builds an axis-aligned box centred on the origin.
func NewBox(sx, sy, sz float64, col color.RGBA) *Mesh {
	m := NewMesh()
	x, y, z := sx/2, sy/2, sz/2
	quads := [][4]mgl64.Vec3{
		{{x, -y, z}, {x, -y, -z}, {x, y, -z}, {x, y, z}},     // +x
		{{-x, -y, -z}, {-x, -y, z}, {-x, y, z}, {-x, y, -z}}, // -x
		{{-x, y, z}, {x, y, z}, {x, y, -z}, {-x, y, -z}},     // +y
		{{-x, -y, -z}, {x, -y, -z}, {x, -y, z}, {-x, -y, z}}, // -y
		{{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}},     // +z
		{{x, -y, -z}, {-x, -y, -z}, {-x, y, -z}, {x, y, -z}}, // -z
	}
	uvs := []mgl64.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	for _, q := range quads {
		m.AddPolygon(q[:], uvs, col)
	}
	return m
}

// NewOctahedron builds a regular octahedron with its vertices on the axes.
func NewOctahedron(radius float64, col color.RGBA) *Mesh {
	m := NewMesh()
	r := radius
	px, nx := mgl64.Vec3{r, 0, 0}, mgl64.Vec3{-r, 0, 0}
	py, ny := mgl64.Vec3{0, r, 0}, mgl64.Vec3{0, -r, 0}
	pz, nz := mgl64.Vec3{0, 0, r}, mgl64.Vec3{0, 0, -r}
	tris := [][3]mgl64.Vec3{
		{px, py, pz}, {pz, py, nx}, {nx, py, nz}, {nz, py, px},
		{px, pz, ny}, {pz, nx, ny}, {nx, nz, ny}, {nz, px, ny},
	}
	for _, t := range tris {
		m.AddPolygon(t[:], nil, col)
	}
	return m
}

// NewTorus builds a ring of the given radius around the z axis, lying in the
// xy plane.
func NewTorus(radius, tube float64, radialSegments, tubularSegments int, col color.RGBA) *Mesh {
	m := NewMesh()
	point := func(i, j int) mgl64.Vec3 {
		u := float64(j%tubularSegments) / float64(tubularSegments) * 2 * math.Pi
		v := float64(i%radialSegments) / float64(radialSegments) * 2 * math.Pi
		return mgl64.Vec3{
			(radius + tube*math.Cos(v)) * math.Cos(u),
			(radius + tube*math.Cos(v)) * math.Sin(u),
			tube * math.Sin(v),
		}
	}
	for i := 0; i < radialSegments; i++ {
		for j := 0; j < tubularSegments; j++ {
			m.AddPolygon([]mgl64.Vec3{
				point(i, j),
				point(i, j+1),
				point(i+1, j+1),
				point(i+1, j),
			}, nil, col)
		}
	}
	return m
}
