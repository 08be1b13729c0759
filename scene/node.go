package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

type Layer int

const (
	// LayerUnderground nodes sit below the ground and are painted first.
	LayerUnderground Layer = iota
	// LayerGround nodes are painted before anything standing on them.
	LayerGround
	LayerDefault
)

// Node is a positioned, oriented and scaled instance of a mesh.
type Node struct {
	Name        string
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
	// Offset is added to Position when drawing only; animations use it so
	// they never disturb the simulated position.
	Offset  mgl64.Vec3
	Mesh    *Mesh
	Texture *Texture
	Tint    color.RGBA
	Visible bool
	Layer   Layer
	// DoubleSided disables back-face culling.
	DoubleSided bool

	disposed bool
}

func NewNode(name string, mesh *Mesh) *Node {
	return &Node{
		Name:        name,
		Orientation: mgl64.QuatIdent(),
		Scale:       mgl64.Vec3{1, 1, 1},
		Mesh:        mesh,
		Tint:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Visible:     true,
		Layer:       LayerDefault,
	}
}

// TranslateX moves the node along its local x axis.
func (n *Node) TranslateX(d float64) {
	n.Position = n.Position.Add(n.Orientation.Rotate(mgl64.Vec3{d, 0, 0}))
}

// AddScalar grows every scale component by s.
func (n *Node) AddScalar(s float64) {
	n.Scale = n.Scale.Add(mgl64.Vec3{s, s, s})
}

// RotateY turns the node about the world y axis.
func (n *Node) RotateY(angle float64) {
	n.Orientation = mgl64.QuatRotate(angle, mgl64.Vec3{0, 1, 0}).Mul(n.Orientation).Normalize()
}

// RotateX turns the node about its local x axis.
func (n *Node) RotateX(angle float64) {
	n.Orientation = n.Orientation.Mul(mgl64.QuatRotate(angle, mgl64.Vec3{1, 0, 0})).Normalize()
}

// ModelMatrix returns translation * rotation * scale for drawing.
func (n *Node) ModelMatrix() mgl64.Mat4 {
	p := n.Position.Add(n.Offset)
	return mgl64.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(n.Orientation.Mat4()).
		Mul4(mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z()))
}

// Dispose releases the node's mesh and texture references. A disposed node
// is never drawn. Textures may be shared, so disposing them is left to their
// owner.
func (n *Node) Dispose() {
	n.Mesh = nil
	n.Texture = nil
	n.Visible = false
	n.disposed = true
}

func (n *Node) Disposed() bool {
	return n.disposed
}
