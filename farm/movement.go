package farm

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/polyfarm/scene"
)

type MovementState int

const (
	Waiting MovementState = iota
	Rotating
	Moving
	FollowingMouse
)

func (s MovementState) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Rotating:
		return "rotating"
	case Moving:
		return "moving"
	case FollowingMouse:
		return "following"
	}
	return "unknown"
}

// Mouse is the ground point under the cursor. Valid is false when the cursor
// is not over the ground.
type Mouse struct {
	X, Z  float64
	Valid bool
}

// MovementParams tunes the wander cycle and the mouse override. Distances are
// world units, speeds are per second.
type MovementParams struct {
	Speed            float64
	RotationSpeed    float64
	MinDistance      float64
	MaxDistance      float64
	MinMoveInterval  float64
	MaxMoveInterval  float64
	MouseFollowRange float64
	MouseFollowLimit float64
	// WorldSize is the full edge length of the square world centred on the
	// origin.
	WorldSize float64
}

func DefaultMovementParams(worldSize float64) MovementParams {
	return MovementParams{
		Speed:            70,
		RotationSpeed:    3,
		MinDistance:      25,
		MaxDistance:      65,
		MinMoveInterval:  3,
		MaxMoveInterval:  10,
		MouseFollowRange: 300,
		MouseFollowLimit: 100,
		WorldSize:        worldSize,
	}
}

// facingTolerance is how close, in radians, a rotation has to get to its
// target before the animal starts walking.
const facingTolerance = 0.5

// MovementController drives a node through the wander cycle
// (waiting -> rotating -> moving -> waiting). A mouse target in range
// pre-empts the cycle for that tick without touching its timers.
type MovementController struct {
	params MovementParams
	node   *scene.Node
	gait   *Gait
	rng    *rand.Rand

	state     MovementState
	following bool
	target    mgl64.Quat

	moveInterval   float64
	moveTimer      float64
	distanceToMove float64
}

func NewMovementController(node *scene.Node, gait *Gait, params MovementParams, rng *rand.Rand) *MovementController {
	c := &MovementController{
		params: params,
		node:   node,
		gait:   gait,
		rng:    rng,
		state:  Waiting,
		target: mgl64.QuatIdent(),
	}
	c.moveInterval = c.generateMoveInterval()
	return c
}

// State reports FollowingMouse while the override was in effect on the last
// tick and the wander state otherwise.
func (c *MovementController) State() MovementState {
	if c.following {
		return FollowingMouse
	}
	return c.state
}

// WanderState is the state of the wander cycle regardless of the override.
func (c *MovementController) WanderState() MovementState {
	return c.state
}

func (c *MovementController) MoveTimer() float64      { return c.moveTimer }
func (c *MovementController) MoveInterval() float64   { return c.moveInterval }
func (c *MovementController) DistanceToMove() float64 { return c.distanceToMove }
func (c *MovementController) Target() mgl64.Quat      { return c.target }

func (c *MovementController) generateMoveInterval() float64 {
	return Random(c.rng, c.params.MinMoveInterval, c.params.MaxMoveInterval)
}

// Heading returns the orientation that points an animal's local +x axis at
// angle radians around the y axis.
func Heading(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, mgl64.Vec3{0, 1, 0})
}

// HeadingTowards returns the orientation that points local +x along (dx, dz).
func HeadingTowards(dx, dz float64) mgl64.Quat {
	return Heading(math.Atan2(dx, dz) + 3*math.Pi/2)
}

// Advance runs one tick of dt seconds.
func (c *MovementController) Advance(dt float64, mode MouseMode, mouse Mouse) {
	c.gait.Update(dt)

	c.following = c.handleMouse(dt, mode, mouse)
	if c.following {
		return
	}

	switch c.state {
	case Waiting:
		c.handleWaiting(dt)
	case Rotating:
		c.handleRotating(dt)
	case Moving:
		c.handleMoving(dt)
	}
}

// handleMouse applies the mouse override and reports whether it took the
// tick.
func (c *MovementController) handleMouse(dt float64, mode MouseMode, mouse Mouse) bool {
	if !mouse.Valid || mode == MouseNone {
		return false
	}

	dx := mouse.X - c.node.Position.X()
	dz := mouse.Z - c.node.Position.Z()
	distance := Distance(dx, dz)

	var heading mgl64.Quat
	switch mode {
	case MouseFollow:
		if distance <= c.params.MouseFollowLimit || distance >= c.params.MouseFollowRange {
			return false
		}
		heading = HeadingTowards(dx, dz)
	case MouseOrbit:
		if distance <= c.params.MouseFollowLimit || distance >= c.params.MouseFollowRange {
			return false
		}
		// tangent to the circle around the mouse
		heading = HeadingTowards(dz, -dx)
	case MousePush:
		if distance <= 0 || distance >= c.params.MouseFollowRange {
			return false
		}
		heading = HeadingTowards(-dx, -dz)
	default:
		return false
	}

	c.gait.Play()
	c.node.Orientation = slerp(c.node.Orientation, heading, math.Min(1, c.params.RotationSpeed*dt))
	c.node.TranslateX(c.params.Speed * 0.5 * dt)
	c.constrainMovement()
	return true
}

func (c *MovementController) handleWaiting(dt float64) {
	c.gait.Stop()
	c.moveTimer += dt

	if c.moveTimer > c.moveInterval {
		c.moveTimer = 0
		c.target = Heading(Random(c.rng, 0, 2*math.Pi))
		c.state = Rotating
	}
}

func (c *MovementController) handleRotating(dt float64) {
	c.gait.Play()
	c.node.Orientation = slerp(c.node.Orientation, c.target, math.Min(1, c.params.RotationSpeed*dt))

	if angleBetween(c.node.Orientation, c.target) < facingTolerance {
		c.distanceToMove = Random(c.rng, c.params.MinDistance, c.params.MaxDistance)
		c.state = Moving
	}
}

func (c *MovementController) handleMoving(dt float64) {
	c.gait.Play()

	step := c.params.Speed * dt
	c.distanceToMove -= step
	c.node.TranslateX(step)
	c.constrainMovement()

	if c.distanceToMove < 0 {
		c.state = Waiting
		c.moveInterval = c.generateMoveInterval()
	}
}

// constrainMovement clamps the node's x and z to the world's half extent.
func (c *MovementController) constrainMovement() {
	half := c.params.WorldSize / 2
	c.node.Position[0] = mgl64.Clamp(c.node.Position[0], -half, half)
	c.node.Position[2] = mgl64.Clamp(c.node.Position[2], -half, half)
}

// slerp interpolates along the shorter arc.
func slerp(from, to mgl64.Quat, t float64) mgl64.Quat {
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	if t >= 1 {
		return to.Normalize()
	}
	return mgl64.QuatSlerp(from, to, t).Normalize()
}

// angleBetween is the rotation angle separating two orientations.
func angleBetween(a, b mgl64.Quat) float64 {
	d := math.Abs(a.Normalize().Dot(b.Normalize()))
	return 2 * math.Acos(math.Min(1, d))
}
