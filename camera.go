package polyfarm

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	minPitch = 0.1
	maxPitch = math.Pi/2 - 0.01
)

// Camera orbits a target point. Yaw turns around the world y axis, pitch
// lifts the eye above the ground plane and Distance is the eye's distance
// from the target.
type Camera struct {
	Target   mgl64.Vec3
	Yaw      float64
	Pitch    float64
	Distance float64
	// FOV is the vertical field of view in radians.
	FOV float64

	MinDistance float64
	MaxDistance float64

	width, height float64
}

// NewCamera places the eye at cameraPosition looking at lookAt.
func NewCamera(cameraPosition, lookAt mgl64.Vec3, fov float64) *Camera {
	c := &Camera{Target: lookAt, FOV: fov, width: 1, height: 1}
	dir := cameraPosition.Sub(lookAt)
	c.Distance = dir.Len()
	if c.Distance > 0 {
		c.Pitch = math.Asin(mgl64.Clamp(dir.Y()/c.Distance, -1, 1))
		c.Yaw = math.Atan2(dir.X(), dir.Z())
	}
	c.MinDistance = c.Distance / 4
	c.MaxDistance = c.Distance * 4
	return c
}

func (c *Camera) SetViewport(width, height int) {
	c.width, c.height = float64(width), float64(height)
}

func (c *Camera) Viewport() (float64, float64) {
	return c.width, c.height
}

func (c *Camera) GetPosition() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	offset := mgl64.Vec3{cp * math.Sin(c.Yaw), math.Sin(c.Pitch), cp * math.Cos(c.Yaw)}
	return c.Target.Add(offset.Mul(c.Distance))
}

// GetMatrix returns the world to camera transform. Camera space looks down
// -z with +y up.
func (c *Camera) GetMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.GetPosition(), c.Target, mgl64.Vec3{0, 1, 0})
}

// focal is the distance in pixels from the eye to the projection plane.
func (c *Camera) focal() float64 {
	return (c.height / 2) / math.Tan(c.FOV/2)
}

// Orbit turns the camera around its target, keeping the eye above ground.
func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw = math.Mod(c.Yaw+dyaw, 2*math.Pi)
	c.Pitch = mgl64.Clamp(c.Pitch+dpitch, minPitch, maxPitch)
}

// Zoom scales the distance to the target by factor.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = mgl64.Clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// Project returns the screen position of a world point. ok is false when the
// point is behind the near plane.
func (c *Camera) Project(p mgl64.Vec3) (sx, sy float64, ok bool) {
	cam := mgl64.TransformCoordinate(p, c.GetMatrix())
	if depth(cam) < nearDepth {
		return 0, 0, false
	}
	sx, sy = convertToScreen(c.width, c.height, c.focal(), cam)
	return sx, sy, true
}

// Unproject returns the world-space ray through a screen position.
func (c *Camera) Unproject(sx, sy float64) (origin, dir mgl64.Vec3) {
	camDir := convertFromScreen(c.width, c.height, c.focal(), sx, sy, 1)
	inv := c.GetMatrix().Inv()
	dir = inv.Mul4x1(camDir.Vec4(0)).Vec3().Normalize()
	return c.GetPosition(), dir
}

// PickGround intersects the ray through a screen position with the y=0
// ground. ok is false when the ray misses the ground square of the given
// half extent.
func (c *Camera) PickGround(sx, sy, halfExtent float64) (x, z float64, ok bool) {
	origin, dir := c.Unproject(sx, sy)
	if dir.Y() >= 0 {
		return 0, 0, false
	}
	t := -origin.Y() / dir.Y()
	hit := origin.Add(dir.Mul(t))
	if math.Abs(hit.X()) > halfExtent || math.Abs(hit.Z()) > halfExtent {
		return 0, 0, false
	}
	return hit.X(), hit.Z(), true
}
