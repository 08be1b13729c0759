package farm

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/polyfarm/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedParams() MovementParams {
	p := DefaultMovementParams(2000)
	p.MinMoveInterval = 1
	p.MaxMoveInterval = 1
	p.MinDistance = 10
	p.MaxDistance = 10
	return p
}

func newController(params MovementParams) (*MovementController, *scene.Node, *Gait) {
	node := scene.NewNode("cow", nil)
	gait := NewGait(node, 1, 2)
	return NewMovementController(node, gait, params, newRand()), node, gait
}

func TestWanderCycle(t *testing.T) {
	c, node, gait := newController(fixedParams())
	noMouse := Mouse{}

	require.Equal(t, Waiting, c.State())
	assert.Equal(t, 1.0, c.MoveInterval())

	c.Advance(0.6, MouseFollow, noMouse)
	assert.Equal(t, Waiting, c.State())
	assert.InDelta(t, 0.6, c.MoveTimer(), 1e-9)
	assert.False(t, gait.Playing())

	c.Advance(0.6, MouseFollow, noMouse)
	require.Equal(t, Rotating, c.State())
	assert.Zero(t, c.MoveTimer())

	// rotationSpeed*dt >= 1 snaps straight to the target
	c.Advance(1, MouseFollow, noMouse)
	require.Equal(t, Moving, c.State())
	assert.True(t, gait.Playing())
	assert.Equal(t, 10.0, c.DistanceToMove())
	assert.Less(t, angleBetween(node.Orientation, c.Target()), 1e-6)

	forward := node.Orientation.Rotate(mgl64.Vec3{1, 0, 0})

	c.Advance(0.1, MouseFollow, noMouse)
	assert.Equal(t, Moving, c.State())
	assert.InDelta(t, 3, c.DistanceToMove(), 1e-9)

	c.Advance(0.1, MouseFollow, noMouse)
	assert.Equal(t, Waiting, c.State())
	assert.Equal(t, 1.0, c.MoveInterval())

	want := forward.Mul(14)
	assert.InDelta(t, want.X(), node.Position.X(), 1e-6)
	assert.InDelta(t, 0, node.Position.Y(), 1e-9)
	assert.InDelta(t, want.Z(), node.Position.Z(), 1e-6)

	c.Advance(0.1, MouseFollow, noMouse)
	assert.False(t, gait.Playing())
	assert.Zero(t, node.Offset.Y())
}

func TestRotatingTurnsGradually(t *testing.T) {
	c, node, _ := newController(fixedParams())
	c.Advance(1.5, MouseNone, Mouse{})
	require.Equal(t, Rotating, c.State())

	before := angleBetween(node.Orientation, c.Target())
	c.Advance(0.01, MouseNone, Mouse{})
	after := angleBetween(node.Orientation, c.Target())
	if before > facingTolerance {
		assert.Less(t, after, before)
	}
}

func TestFollowPreemptsWander(t *testing.T) {
	c, node, gait := newController(fixedParams())

	c.Advance(0.5, MouseFollow, Mouse{})
	require.Equal(t, Waiting, c.State())

	mouse := Mouse{X: 200, Z: 0, Valid: true}
	c.Advance(0.1, MouseFollow, mouse)

	assert.Equal(t, FollowingMouse, c.State())
	assert.Equal(t, Waiting, c.WanderState())
	assert.InDelta(t, 0.5, c.MoveTimer(), 1e-9, "wander timers are frozen while following")
	assert.True(t, gait.Playing())
	assert.InDelta(t, 3.5, node.Position.X(), 1e-9)
	assert.InDelta(t, 0, node.Position.Z(), 1e-9)

	// mouse leaves: the wander cycle resumes where it left off
	c.Advance(0.1, MouseFollow, Mouse{})
	assert.Equal(t, Waiting, c.State())
	assert.InDelta(t, 0.6, c.MoveTimer(), 1e-9)
}

func TestFollowTurnsTowardsMouse(t *testing.T) {
	c, node, _ := newController(fixedParams())
	mouse := Mouse{X: 0, Z: 200, Valid: true}

	for i := 0; i < 120; i++ {
		c.Advance(1.0/60, MouseFollow, mouse)
	}
	require.Equal(t, FollowingMouse, c.State())

	forward := node.Orientation.Rotate(mgl64.Vec3{1, 0, 0})
	toMouse := mgl64.Vec3{mouse.X - node.Position.X(), 0, mouse.Z - node.Position.Z()}.Normalize()
	assert.InDelta(t, toMouse.X(), forward.X(), 0.05)
	assert.InDelta(t, toMouse.Z(), forward.Z(), 0.05)
	assert.Greater(t, node.Position.Z(), 0.0)
}

func TestMouseBands(t *testing.T) {
	testCases := []struct {
		name   string
		mode   MouseMode
		mouse  Mouse
		follow bool
	}{
		{"follow inside band", MouseFollow, Mouse{X: 200, Valid: true}, true},
		{"follow too close", MouseFollow, Mouse{X: 50, Valid: true}, false},
		{"follow on limit", MouseFollow, Mouse{X: 100, Valid: true}, false},
		{"follow too far", MouseFollow, Mouse{X: 300, Valid: true}, false},
		{"invalid mouse", MouseFollow, Mouse{X: 200}, false},
		{"none mode", MouseNone, Mouse{X: 200, Valid: true}, false},
		{"push close", MousePush, Mouse{X: 50, Valid: true}, true},
		{"push far", MousePush, Mouse{X: 400, Valid: true}, false},
		{"orbit inside band", MouseOrbit, Mouse{X: 200, Valid: true}, true},
		{"orbit too close", MouseOrbit, Mouse{X: 50, Valid: true}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _, _ := newController(fixedParams())
			c.Advance(0.01, tc.mode, tc.mouse)
			assert.Equal(t, tc.follow, c.State() == FollowingMouse)
		})
	}
}

func TestPushMovesAway(t *testing.T) {
	c, node, _ := newController(fixedParams())
	mouse := Mouse{X: 50, Z: 0, Valid: true}

	for i := 0; i < 30; i++ {
		c.Advance(1.0/30, MousePush, mouse)
	}
	assert.Less(t, node.Position.X(), 0.0)
}

func TestOrbitMovesTangentially(t *testing.T) {
	c, node, _ := newController(fixedParams())
	mouse := Mouse{X: 200, Z: 0, Valid: true}

	for i := 0; i < 30; i++ {
		c.Advance(1.0/30, MouseOrbit, mouse)
	}
	assert.Less(t, node.Position.Z(), 0.0)
	assert.InDelta(t, 200, Distance(mouse.X-node.Position.X(), mouse.Z-node.Position.Z()), 10)
}

func TestMovementIsClamped(t *testing.T) {
	params := fixedParams()
	params.WorldSize = 100
	c, node, _ := newController(params)
	node.Position = mgl64.Vec3{49, 0, -49}

	mouse := Mouse{X: 200, Z: -49, Valid: true}
	for i := 0; i < 60; i++ {
		c.Advance(0.1, MouseFollow, mouse)
		assert.LessOrEqual(t, node.Position.X(), 50.0)
		assert.GreaterOrEqual(t, node.Position.Z(), -50.0)
	}
	assert.Equal(t, 50.0, node.Position.X())
}

func TestWanderingIsClamped(t *testing.T) {
	params := fixedParams()
	params.WorldSize = 100
	params.MinDistance = 1000
	params.MaxDistance = 1000
	c, node, _ := newController(params)
	noMouse := Mouse{}

	c.Advance(0.6, MouseNone, noMouse)
	c.Advance(0.6, MouseNone, noMouse)
	c.Advance(1, MouseNone, noMouse)
	require.Equal(t, Moving, c.State())

	// 700 units from the centre reaches an edge on any heading
	for i := 0; i < 100; i++ {
		c.Advance(0.1, MouseNone, noMouse)
		assert.LessOrEqual(t, math.Abs(node.Position.X()), 50.0)
		assert.LessOrEqual(t, math.Abs(node.Position.Z()), 50.0)
	}
	assert.Equal(t, Moving, c.State())
	assert.InDelta(t, 50, math.Max(math.Abs(node.Position.X()), math.Abs(node.Position.Z())), 1e-9)
}

func TestHeadingTowards(t *testing.T) {
	testCases := []struct {
		name   string
		dx, dz float64
	}{
		{"+x", 1, 0},
		{"+z", 0, 1},
		{"-x", -1, 0},
		{"-z", 0, -1},
		{"diagonal", 3, -4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			forward := HeadingTowards(tc.dx, tc.dz).Rotate(mgl64.Vec3{1, 0, 0})
			d := Distance(tc.dx, tc.dz)
			assert.InDelta(t, tc.dx/d, forward.X(), 1e-9)
			assert.InDelta(t, 0, forward.Y(), 1e-9)
			assert.InDelta(t, tc.dz/d, forward.Z(), 1e-9)
		})
	}
}

func TestSlerpShortestPath(t *testing.T) {
	from := Heading(0.1)
	to := Heading(0.3).Scale(-1)

	mid := slerp(from, to, 0.5)
	assert.InDelta(t, 0.1, angleBetween(from, mid), 1e-6)
	assert.Equal(t, to.Scale(-1).Normalize(), slerp(from, to, 1))
}
