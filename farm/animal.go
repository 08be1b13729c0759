package farm

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/polyfarm/scene"
)

// HueChoice is an optional hue in degrees. The zero value means "keep the
// species' natural coloring".
type HueChoice struct {
	Degrees float64
	Set     bool
}

func WithHue(degrees float64) HueChoice {
	return HueChoice{Degrees: degrees, Set: true}
}

var NaturalColor = HueChoice{}

type AnimalConfig struct {
	ID       int
	X, Z     float64
	Species  *Species
	Hue      HueChoice
	// Registry is shared by every animal of the farm.
	Registry *SpeciesRegistry
}

// Animal is one animal in the farm. It is pending until its model has
// loaded; pending animals ignore Animate and ChangeColor.
type Animal struct {
	ID      int
	Species *Species

	spawn    mgl64.Vec2
	hue      HueChoice
	registry *SpeciesRegistry

	model    *scene.Model
	node     *scene.Node
	gait     *Gait
	movement *MovementController
	// tinted is this animal's own recolored texture, if any.
	tinted   *scene.Texture
	disposed bool
}

func NewAnimal(cfg AnimalConfig) *Animal {
	return &Animal{
		ID:       cfg.ID,
		Species:  cfg.Species,
		spawn:    mgl64.Vec2{cfg.X, cfg.Z},
		hue:      cfg.Hue,
		registry: cfg.Registry,
	}
}

func (a *Animal) Active() bool {
	return a.node != nil && !a.disposed
}

// Node is nil while the animal is pending.
func (a *Animal) Node() *scene.Node {
	return a.node
}

func (a *Animal) Movement() *MovementController {
	return a.movement
}

func (a *Animal) Hue() HueChoice {
	return a.hue
}

// Texture is the texture the animal is currently drawn with.
func (a *Animal) Texture() *scene.Texture {
	if a.node == nil {
		return nil
	}
	return a.node.Texture
}

// Activate finishes construction once the model has loaded. The first
// animal of a species to activate provides the species' original texture.
// A recolor failure leaves the animal active with its natural coloring and
// is returned.
func (a *Animal) Activate(model *scene.Model, params MovementParams, rng *rand.Rand) error {
	if a.Active() || a.disposed {
		return nil
	}
	a.model = model

	node := model.Instantiate(fmt.Sprintf("%s-%d", a.Species.Name, a.ID))
	// jitter on y keeps overlapping animals from z-fighting with the ground
	node.Position = mgl64.Vec3{a.spawn.X(), Random(rng, -0.1, 0.1), a.spawn.Y()}
	s := a.Species.Scale
	if s == 0 {
		s = 1
	}
	node.Scale = mgl64.Vec3{s, s, s}
	node.Orientation = Heading(Random(rng, 0, 2*math.Pi))

	if model.Texture.Loaded() {
		if _, ok := a.registry.Original(a.Species.Name); !ok {
			a.registry.StoreOriginal(a.Species.Name, model.Texture.Clone())
		}
	}

	a.node = node
	a.gait = NewGait(node, a.Species.GaitAmplitude, a.Species.GaitFrequency)
	a.movement = NewMovementController(node, a.gait, params, rng)

	if a.hue.Set {
		return a.ChangeColor(a.hue.Degrees)
	}
	return nil
}

// Animate advances the animal by dt seconds.
func (a *Animal) Animate(dt float64, mode MouseMode, mouse Mouse) {
	if a.movement == nil {
		return
	}
	a.movement.Advance(dt, mode, mouse)
}

// ChangeColor retints the animal from its species' original texture. It is
// a no-op while the animal is pending. On error the current texture stays.
func (a *Animal) ChangeColor(hue float64) error {
	if !a.Active() {
		return nil
	}
	original, ok := a.registry.Original(a.Species.Name)
	if !ok {
		return fmt.Errorf("recolor %s %d: %w", a.Species.Name, a.ID, ErrTextureNotLoaded)
	}

	tex, err := Recolor(original, a.Species.Bounds, hue, a.Species.SaturationModifier, a.Species.ValueModifier)
	if err != nil {
		return fmt.Errorf("recolor %s %d: %w", a.Species.Name, a.ID, err)
	}

	a.releaseTint()
	a.tinted = tex
	a.node.Texture = tex
	a.hue = WithHue(hue)
	return nil
}

// RestoreColor returns the animal to its natural coloring.
func (a *Animal) RestoreColor() {
	if !a.Active() {
		return
	}
	a.releaseTint()
	a.node.Texture = a.model.Texture
	a.hue = NaturalColor
}

func (a *Animal) releaseTint() {
	if a.tinted != nil {
		a.tinted.Dispose()
		a.tinted = nil
	}
}

// Dispose releases the animal's own resources. The model's mesh and the
// species' original texture are shared and stay alive.
func (a *Animal) Dispose() {
	a.releaseTint()
	if a.node != nil {
		a.node.Dispose()
	}
	a.movement = nil
	a.disposed = true
}

func (a *Animal) Disposed() bool {
	return a.disposed
}
