package farm

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/polyfarm/scene"
)

const GrassModelPath = "grass"

// Grass is a static tuft. Like animals it is pending until its model loads.
type Grass struct {
	spawn mgl64.Vec2
	node  *scene.Node
}

func NewGrass(x, z float64) *Grass {
	return &Grass{spawn: mgl64.Vec2{x, z}}
}

func (g *Grass) Active() bool {
	return g.node != nil
}

func (g *Grass) Node() *scene.Node {
	return g.node
}

func (g *Grass) Activate(model *scene.Model, rng *rand.Rand) {
	if g.Active() {
		return
	}
	node := model.Instantiate("grass")
	node.Position = mgl64.Vec3{g.spawn.X(), 0, g.spawn.Y()}
	node.Orientation = Heading(Random(rng, 0, 2*math.Pi))
	s := Random(rng, 0.8, 1.4)
	node.Scale = mgl64.Vec3{s, s, s}
	node.DoubleSided = true
	g.node = node
}
