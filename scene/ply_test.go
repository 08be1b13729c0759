package scene

import (
	"image/color"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const texturedQuad = `ply
format ascii 1.0
comment TextureFile quad.png
element vertex 4
property float x
property float y
property float z
property float s
property float t
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0 1
1 0 0 1 1
1 1 0 1 0
0 1 0 0 0
4 0 1 2 3
`

const coloredTriangles = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
property uchar red
property uchar green
property uchar blue
element face 2
property list uchar int vertex_indices
property uchar red
property uchar green
property uchar blue
end_header
0 0 0 200 0 0
1 0 0 100 0 0
0 1 0 0 0 0
0 0 1 0 0 0
3 0 1 2 10 20 30
3 0 2 3
`

func TestLoadPLYTextured(t *testing.T) {
	mesh, info, err := LoadPLY(strings.NewReader(texturedQuad))
	require.NoError(t, err)

	assert.Equal(t, "quad.png", info.TextureFile)
	require.Len(t, mesh.Vertices, 4)
	require.Len(t, mesh.Faces, 1)

	f := mesh.Faces[0]
	assert.Equal(t, []int{0, 1, 2, 3}, f.Indices)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, f.Normal)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, f.Color)
	assert.Equal(t, mgl64.Vec2{1, 0}, mesh.Vertices[2].UV)
}

func TestLoadPLYColors(t *testing.T) {
	mesh, info, err := LoadPLY(strings.NewReader(coloredTriangles))
	require.NoError(t, err)

	assert.Empty(t, info.TextureFile)
	require.Len(t, mesh.Faces, 2)
	// the face color overrides the averaged vertex colors
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, mesh.Faces[0].Color)
	assert.Equal(t, color.RGBA{R: 66, G: 0, B: 0, A: 255}, mesh.Faces[1].Color)
}

func TestLoadPLYAveragesVertexColors(t *testing.T) {
	src := strings.Replace(coloredTriangles, "3 0 1 2 10 20 30", "3 0 1 2", 1)
	mesh, _, err := LoadPLY(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 100, G: 0, B: 0, A: 255}, mesh.Faces[0].Color)
}

func TestLoadPLYErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"not ply", "obj\n"},
		{"binary", "ply\nformat binary_little_endian 1.0\nend_header\n"},
		{"bad count", "ply\nformat ascii 1.0\nelement vertex x\nend_header\n"},
		{"no position", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float s\nend_header\n0\n"},
		{"short vertices", strings.Replace(texturedQuad, "0 1 0 0 0\n", "", 1)},
		{"bad index", strings.Replace(texturedQuad, "4 0 1 2 3", "4 0 1 2 9", 1)},
		{"missing faces", strings.Replace(texturedQuad, "4 0 1 2 3\n", "", 1)},
		{"face without vertices", strings.Replace(texturedQuad, "4 0 1 2 3", "0", 1)},
		{"negative vertex count", strings.Replace(texturedQuad, "4 0 1 2 3", "-1", 1)},
		{"degenerate face", strings.Replace(texturedQuad, "4 0 1 2 3", "2 0 1", 1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := LoadPLY(strings.NewReader(tc.src))
			assert.Error(t, err)
		})
	}
}
