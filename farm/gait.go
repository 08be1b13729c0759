package farm

import (
	"math"

	"github.com/smasonuk/polyfarm/scene"
)

// Gait is the walk cycle of an animal: while playing it bobs the node's
// drawn position without touching the simulated one.
type Gait struct {
	node      *scene.Node
	amplitude float64
	frequency float64
	phase     float64
	playing   bool
}

func NewGait(node *scene.Node, amplitude, frequency float64) *Gait {
	return &Gait{node: node, amplitude: amplitude, frequency: frequency}
}

func (g *Gait) Play() {
	g.playing = true
}

// Stop halts the cycle and resets the pose.
func (g *Gait) Stop() {
	g.playing = false
	g.phase = 0
	g.node.Offset = g.node.Offset.Mul(0)
}

func (g *Gait) Playing() bool {
	return g.playing
}

func (g *Gait) Update(dt float64) {
	if !g.playing {
		return
	}
	g.phase = math.Mod(g.phase+dt*g.frequency*2*math.Pi, 2*math.Pi)
	g.node.Offset[1] = g.amplitude * math.Abs(math.Sin(g.phase))
}
