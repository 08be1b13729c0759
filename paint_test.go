package polyfarm

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

// cv builds a clip vertex at depth d (camera z = -d) with uv (x, y).
func cv(x, y, d float64) clipVertex {
	return clipVertex{pos: mgl64.Vec3{x, y, -d}, uv: mgl64.Vec2{x, y}}
}

func deepAlmostEqual(a, b []clipVertex) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		for k := 0; k < 3; k++ {
			if !almostEqual(a[i].pos[k], b[i].pos[k]) {
				return false
			}
		}
		for k := 0; k < 2; k++ {
			if !almostEqual(a[i].uv[k], b[i].uv[k]) {
				return false
			}
		}
	}
	return true
}

func TestClipPolygonAgainstNearPlane(t *testing.T) {
	// nearDepth is 10
	testCases := []struct {
		name     string
		input    []clipVertex
		expected []clipVertex
	}{
		{
			name:     "Polygon fully in front of near plane",
			input:    []clipVertex{cv(0, 0, 20), cv(1, 0, 20), cv(0, 1, 20)},
			expected: []clipVertex{cv(0, 0, 20), cv(1, 0, 20), cv(0, 1, 20)},
		},
		{
			name:     "Polygon fully behind near plane",
			input:    []clipVertex{cv(0, 0, 5), cv(1, 0, 5), cv(0, 1, 5)},
			expected: []clipVertex{},
		},
		{
			name: "Polygon with one point in front",
			input: []clipVertex{
				cv(0, 0, 15), // Inside
				cv(0, 1, 5),  // Outside
				cv(1, 0, 5),  // Outside
			},
			expected: []clipVertex{
				cv(0.5, 0, 10),
				cv(0, 0, 15),
				cv(0, 0.5, 10),
			},
		},
		{
			name: "Polygon with two points in front",
			input: []clipVertex{
				cv(0, 0, 5),  // Outside
				cv(0, 1, 15), // Inside
				cv(1, 0, 15), // Inside
			},
			expected: []clipVertex{
				cv(0.5, 0, 10),
				cv(0, 0.5, 10),
				cv(0, 1, 15),
				cv(1, 0, 15),
			},
		},
		{
			name:     "Empty polygon",
			input:    []clipVertex{},
			expected: []clipVertex{},
		},
		{
			name:     "Polygon on the near plane",
			input:    []clipVertex{cv(0, 0, 10), cv(1, 0, 10), cv(0, 1, 10)},
			expected: []clipVertex{cv(0, 0, 10), cv(1, 0, 10), cv(0, 1, 10)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clipped := clipPolygonAgainstNearPlane(tc.input)
			if !deepAlmostEqual(clipped, tc.expected) {
				t.Errorf("clipPolygonAgainstNearPlane() = %v, want %v", clipped, tc.expected)
			}
		})
	}
}

func TestIntersectNearPlane(t *testing.T) {
	testCases := []struct {
		name     string
		p1, p2   clipVertex
		expected clipVertex
	}{
		{"Standard intersection", cv(0, 0, 0), cv(0, 0, 20), cv(0, 0, 10)},
		{"Intersection with non-zero X and Y", cv(10, 20, 0), cv(30, 40, 20), cv(20, 30, 10)},
		{"Line parallel to near plane", cv(10, 10, 5), cv(20, 20, 5), cv(10, 10, 5)},
		{"Line segment on near plane", cv(10, 10, 10), cv(20, 20, 10), cv(10, 10, 10)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := intersectNearPlane(tc.p1, tc.p2)
			if !deepAlmostEqual([]clipVertex{result}, []clipVertex{tc.expected}) {
				t.Errorf("intersectNearPlane() = %v, want %v", result, tc.expected)
			}
		})
	}
}

func TestCoordinateConversion(t *testing.T) {
	width, height, focal := 800.0, 600.0, 500.0

	testPoints := []struct {
		name    string
		x, y, d float64
	}{
		{"Center point", 0, 0, 50},
		{"Arbitrary point", 15, -25, 75},
		{"Point with large depth", 100, 200, 1000},
		{"Point with small depth", 1, 2, 11},
	}

	for _, p := range testPoints {
		t.Run(p.name, func(t *testing.T) {
			sx, sy := convertToScreen(width, height, focal, mgl64.Vec3{p.x, p.y, -p.d})
			back := convertFromScreen(width, height, focal, sx, sy, p.d)
			if !almostEqual(p.x, back.X()) || !almostEqual(p.y, back.Y()) || !almostEqual(-p.d, back.Z()) {
				t.Errorf("Coordinate conversion failed. Original: (%f, %f), After converting back: (%f, %f)", p.x, p.y, back.X(), back.Y())
			}
		})
	}

	sx, sy := convertToScreen(width, height, focal, mgl64.Vec3{0, 10, -50})
	assert.InDelta(t, 400, sx, float64EqualityThreshold)
	assert.Less(t, sy, 300.0, "up in camera space is up on screen")
}

func TestFacingCamera(t *testing.T) {
	assert.True(t, facingCamera(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -20}))
	assert.False(t, facingCamera(mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, -20}))
	assert.False(t, facingCamera(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -20}))
}

func TestGetColor(t *testing.T) {
	grey := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	testCases := []struct {
		name      string
		polyColor color.RGBA
		point     mgl64.Vec3
		normal    mgl64.Vec3
		expected  color.RGBA
	}{
		{"Head-on lighting, in spotlight center", grey, mgl64.Vec3{0, 0, -10}, mgl64.Vec3{0, 0, 1}, color.RGBA{R: 200, G: 200, B: 200, A: 255}},
		{"Facing away from light", grey, mgl64.Vec3{0, 0, -10}, mgl64.Vec3{0, 0, -1}, color.RGBA{R: 116, G: 116, B: 116, A: 255}},
		{"90 degrees to light, diffuse should be 0", grey, mgl64.Vec3{10, 0, -10}, mgl64.Vec3{1, 0, 0}, color.RGBA{R: 116, G: 116, B: 116, A: 255}},
		{"45 degrees to light, off spotlight center", grey, mgl64.Vec3{10, 0, -10}, mgl64.Vec3{0.70710678118, 0, 0.70710678118}, color.RGBA{R: 117, G: 117, B: 117, A: 255}},
		{"Color clamping low", color.RGBA{R: 10, G: 10, B: 10, A: 255}, mgl64.Vec3{0, 0, -10}, mgl64.Vec3{0, 0, -1}, color.RGBA{R: 7, G: 7, B: 7, A: 255}},
		{"Alpha is kept", color.RGBA{R: 200, G: 200, B: 200, A: 128}, mgl64.Vec3{0, 0, -10}, mgl64.Vec3{0, 0, 1}, color.RGBA{R: 200, G: 200, B: 200, A: 128}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := getColor(tc.point, tc.normal, tc.polyColor)
			if result != tc.expected {
				t.Errorf("getColor() = %v, want %v", result, tc.expected)
			}
		})
	}
}

func TestModulate(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red := color.RGBA{R: 255, A: 255}
	assert.Equal(t, red, modulate(white, red))
	assert.Equal(t, color.RGBA{R: 100, G: 0, B: 0, A: 255}, modulate(color.RGBA{R: 200, G: 50, B: 50, A: 255}, color.RGBA{R: 128, A: 255}))
}

func TestOutsideScreen(t *testing.T) {
	assert.False(t, outsideScreen([]float32{10, 20, 15}, []float32{10, 10, 20}, 100, 100))
	assert.True(t, outsideScreen([]float32{-10, -20, -15}, []float32{10, 10, 20}, 100, 100))
	assert.True(t, outsideScreen([]float32{10, 20, 15}, []float32{110, 120, 150}, 100, 100))
	assert.False(t, outsideScreen([]float32{-10, 120, 50}, []float32{-10, 120, 50}, 100, 100), "straddling polygons are kept")
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 7, clamp(-3, 7, 255))
	assert.Equal(t, 255, clamp(300, 7, 255))
	assert.Equal(t, 100, clamp(100, 7, 255))
}
