package farm

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/polyfarm/scene"
)

const (
	clickRingHeight     = 5
	clickParticleCount  = 25
	clickParticleSpread = 60
	clickRingGrowth     = 15
	clickParticleGrowth = 20
	clickRingMaxScale   = 5
	clickFallSpeed      = 100
	clickRemoveBelow    = -5

	hoverParticleCount = 4
	hoverHeight        = 20
	hoverParticleScale = 10
	hoverRadius        = 20
	hoverOrbitSpeed    = 2
	hoverSpinSpeed     = 4
	hoverHueStep       = 1
)

// EffectMeshes is the geometry shared by every effect instance. Effects
// color their nodes through the node tint.
type EffectMeshes struct {
	Ring     *scene.Mesh
	Particle *scene.Mesh
}

func NewEffectMeshes() EffectMeshes {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	return EffectMeshes{
		Ring:     scene.NewTorus(10, 3, 8, 24, white),
		Particle: scene.NewOctahedron(1, white),
	}
}

func hueColor(hue float64) color.RGBA {
	r, g, b := HSVToRGB(hue, 1, 1)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ClickEffect is the expanding ring and particle burst left where the ground
// was clicked. It grows, sinks, and then removes itself from the graph.
type ClickEffect struct {
	graph     *scene.Graph
	ring      *scene.Node
	particles []*scene.Node
	done      bool
}

func NewClickEffect(graph *scene.Graph, meshes EffectMeshes, x, z, hue float64, rng *rand.Rand) *ClickEffect {
	tint := hueColor(hue)

	ring := scene.NewNode("click-ring", meshes.Ring)
	ring.Position = mgl64.Vec3{x, clickRingHeight, z}
	ring.RotateX(math.Pi / 2)
	ring.Tint = tint
	graph.Add(ring)

	e := &ClickEffect{graph: graph, ring: ring}
	for i := 0; i < clickParticleCount; i++ {
		p := scene.NewNode("click-particle", meshes.Particle)
		p.Position = mgl64.Vec3{
			x + Random(rng, -clickParticleSpread, clickParticleSpread),
			Random(rng, 10, 110),
			z + Random(rng, -clickParticleSpread, clickParticleSpread),
		}
		p.Tint = tint
		graph.Add(p)
		e.particles = append(e.particles, p)
	}
	return e
}

// Animate advances the effect by dt seconds.
func (e *ClickEffect) Animate(dt float64) {
	if e.done {
		return
	}

	switch {
	case e.ring.Position.Y() < clickRemoveBelow:
		e.dispose()
	case e.ring.Scale.X() > clickRingMaxScale:
		e.ring.Position[1] -= clickFallSpeed * dt
	default:
		e.ring.AddScalar(clickRingGrowth * dt)
		for _, p := range e.particles {
			p.AddScalar(clickParticleGrowth * dt)
		}
	}
}

func (e *ClickEffect) dispose() {
	e.graph.Remove(e.ring)
	e.ring.Dispose()
	for _, p := range e.particles {
		e.graph.Remove(p)
		p.Dispose()
	}
	e.done = true
}

func (e *ClickEffect) Done() bool {
	return e.done
}

func (e *ClickEffect) Ring() *scene.Node {
	return e.ring
}

func (e *ClickEffect) Particles() []*scene.Node {
	return e.particles
}

// HoverEffect is the ring of spinning particles that tracks the cursor over
// the ground. Each particle cycles through the hue wheel, starting a quarter
// turn apart.
type HoverEffect struct {
	particles []*scene.Node
	hues      []float64
	angle     float64
	center    mgl64.Vec2
	visible   bool
}

func NewHoverEffect(graph *scene.Graph, meshes EffectMeshes) *HoverEffect {
	e := &HoverEffect{}
	for i := 0; i < hoverParticleCount; i++ {
		p := scene.NewNode("hover-particle", meshes.Particle)
		p.AddScalar(hoverParticleScale)
		p.Visible = false
		hue := float64(90 * i)
		p.Tint = hueColor(hue)
		graph.Add(p)
		e.particles = append(e.particles, p)
		e.hues = append(e.hues, hue)
	}
	e.place()
	return e
}

// Update moves the effect to the mouse, or hides it when the mouse is off
// the ground.
func (e *HoverEffect) Update(dt float64, mouse Mouse) {
	e.visible = mouse.Valid
	for _, p := range e.particles {
		p.Visible = mouse.Valid
	}
	if !mouse.Valid {
		return
	}

	e.center = mgl64.Vec2{mouse.X, mouse.Z}
	e.angle += hoverOrbitSpeed * dt

	for i, p := range e.particles {
		p.RotateY(hoverSpinSpeed * dt)
		e.hues[i] = math.Mod(e.hues[i]+hoverHueStep, 360)
		p.Tint = hueColor(e.hues[i])
	}
	e.place()
}

func (e *HoverEffect) place() {
	step := 2 * math.Pi / float64(len(e.particles))
	for i, p := range e.particles {
		offset := mgl64.Rotate2D(e.angle + step*float64(i)).Mul2x1(mgl64.Vec2{hoverRadius, 0})
		p.Position = mgl64.Vec3{e.center.X() + offset.X(), hoverHeight, e.center.Y() + offset.Y()}
	}
}

func (e *HoverEffect) Visible() bool {
	return e.visible
}

func (e *HoverEffect) Particles() []*scene.Node {
	return e.particles
}

func (e *HoverEffect) Hues() []float64 {
	return e.hues
}
