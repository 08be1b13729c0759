package polyfarm

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// nearDepth is the camera-space depth of the near clipping plane. Camera
// space looks down -z, so depth is -z.
const nearDepth = 10

const (
	ambientLight         = 0.65
	spotlightConePower   = 10.0
	spotlightLightAmount = 1.0 - ambientLight
	minChannel           = 7
)

// clipVertex is a camera-space point with the texture coordinate that rides
// along with it through clipping.
type clipVertex struct {
	pos mgl64.Vec3
	uv  mgl64.Vec2
}

func depth(p mgl64.Vec3) float64 {
	return -p.Z()
}

// clipPolygonAgainstNearPlane keeps the part of a convex polygon at or
// beyond nearDepth (Sutherland-Hodgman against one plane).
func clipPolygonAgainstNearPlane(points []clipVertex) []clipVertex {
	if len(points) == 0 {
		return []clipVertex{}
	}

	clipped := make([]clipVertex, 0, len(points)+2)
	prev := points[len(points)-1]
	prevInside := depth(prev.pos) >= nearDepth

	for _, cur := range points {
		curInside := depth(cur.pos) >= nearDepth
		switch {
		case curInside && prevInside:
			clipped = append(clipped, cur)
		case curInside && !prevInside:
			clipped = append(clipped, intersectNearPlane(prev, cur), cur)
		case !curInside && prevInside:
			clipped = append(clipped, intersectNearPlane(prev, cur))
		}
		prev, prevInside = cur, curInside
	}
	return clipped
}

// intersectNearPlane returns the point where segment p1-p2 crosses the near
// plane. A segment parallel to the plane returns p1.
func intersectNearPlane(p1, p2 clipVertex) clipVertex {
	d1, d2 := depth(p1.pos), depth(p2.pos)
	if d1 == d2 {
		return p1
	}
	t := (nearDepth - d1) / (d2 - d1)
	return clipVertex{
		pos: p1.pos.Add(p2.pos.Sub(p1.pos).Mul(t)),
		uv:  p1.uv.Add(p2.uv.Sub(p1.uv).Mul(t)),
	}
}

// convertToScreen projects a camera-space point onto a screen of the given
// size. The point must be in front of the near plane.
func convertToScreen(width, height, focal float64, p mgl64.Vec3) (float64, float64) {
	d := depth(p)
	return width/2 + focal*p.X()/d, height/2 - focal*p.Y()/d
}

// convertFromScreen is the inverse of convertToScreen for a known depth.
func convertFromScreen(width, height, focal, sx, sy, d float64) mgl64.Vec3 {
	return mgl64.Vec3{(sx - width/2) * d / focal, -(sy - height/2) * d / focal, -d}
}

// facingCamera reports whether a face with camera-space normal n through
// camera-space point p faces the eye at the origin.
func facingCamera(n, p mgl64.Vec3) bool {
	return n.Dot(p) < 0
}

// getColor darkens polyColor by a fixed ambient term plus a headlight that
// follows the camera: faces square on to the view and near the centre of the
// screen are brightest.
func getColor(firstTransformedPoint, transformedNormal mgl64.Vec3, polyColor color.RGBA) color.RGBA {
	diffuseFactor := transformedNormal.Z()
	if diffuseFactor < 0 {
		diffuseFactor = 0
	}

	var spotlightFactor float64
	if l := firstTransformedPoint.Len(); l > 0 {
		cosAngle := depth(firstTransformedPoint) / l
		if cosAngle < 0 {
			cosAngle = 0
		}
		spotlightFactor = math.Pow(cosAngle, spotlightConePower)
	} else {
		spotlightFactor = 1.0
	}

	finalBrightness := ambientLight + diffuseFactor*spotlightFactor*spotlightLightAmount

	// A brightness of 1 leaves the color alone, 0 subtracts 240.
	c := 240 - int(finalBrightness*240)
	return color.RGBA{
		R: uint8(clamp(int(polyColor.R)-c, minChannel, 255)),
		G: uint8(clamp(int(polyColor.G)-c, minChannel, 255)),
		B: uint8(clamp(int(polyColor.B)-c, minChannel, 255)),
		A: polyColor.A,
	}
}

// modulate multiplies two colors channel by channel.
func modulate(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(int(a.R) * int(b.R) / 255),
		G: uint8(int(a.G) * int(b.G) / 255),
		B: uint8(int(a.B) * int(b.B) / 255),
		A: uint8(int(a.A) * int(b.A) / 255),
	}
}
