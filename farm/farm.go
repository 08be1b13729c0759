package farm

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/smasonuk/polyfarm/scene"
)

// ModelLoader produces a fresh model for every call. Implementations must be
// safe for concurrent use.
type ModelLoader interface {
	LoadModel(ctx context.Context, path string) (*scene.Model, error)
}

type Options struct {
	// WorldSize is the edge length of the square ground.
	WorldSize   float64
	AnimalCount int
	GrassCount  int
	// SpawnMargin keeps initial animals this far inside the ground edge.
	SpawnMargin float64
	// PigRatio is the share of initial animals that are pigs.
	PigRatio float64
	Movement MovementParams
	Settings Settings
	Rand     *rand.Rand
	Logger   *slog.Logger
}

func DefaultOptions() Options {
	const worldSize = 2000
	return Options{
		WorldSize:   worldSize,
		AnimalCount: 25,
		GrassCount:  1000,
		SpawnMargin: 200,
		Movement:    DefaultMovementParams(worldSize),
		Settings:    DefaultSettings(),
	}
}

type completion struct {
	path  string
	model *scene.Model
	err   error
	apply func(*scene.Model)
}

// Farm owns every entity of the scene. All methods except Close must be
// called from one goroutine; model loads run elsewhere and are applied by
// Update.
type Farm struct {
	opts     Options
	graph    *scene.Graph
	loader   ModelLoader
	registry *SpeciesRegistry
	rng      *rand.Rand
	logger   *slog.Logger

	settings Settings
	progress LoadProgress
	nextID   int

	animals []*Animal
	grass   []*Grass
	clicks  []*ClickEffect
	hover   *HoverEffect
	meshes  EffectMeshes

	pending     int
	completions chan completion
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

func New(graph *scene.Graph, loader ModelLoader, opts Options) *Farm {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())

	f := &Farm{
		opts:        opts,
		graph:       graph,
		loader:      loader,
		registry:    NewSpeciesRegistry(),
		rng:         opts.Rand,
		logger:      opts.Logger,
		settings:    opts.Settings,
		meshes:      NewEffectMeshes(),
		completions: make(chan completion, 64),
		ctx:         ctx,
		cancel:      cancel,
	}
	f.hover = NewHoverEffect(graph, f.meshes)
	return f
}

func (f *Farm) Settings() *Settings          { return &f.settings }
func (f *Farm) Progress() LoadProgress       { return f.progress }
func (f *Farm) Registry() *SpeciesRegistry   { return f.registry }
func (f *Farm) Graph() *scene.Graph          { return f.graph }
func (f *Farm) Animals() []*Animal           { return f.animals }
func (f *Farm) Grass() []*Grass              { return f.grass }
func (f *Farm) ClickEffects() []*ClickEffect { return f.clicks }
func (f *Farm) Hover() *HoverEffect          { return f.hover }

// Populate spawns the initial animals and grass. Every spawn is a pending
// load counted in the progress total.
func (f *Farm) Populate() {
	animalExtent := f.opts.WorldSize/2 - f.opts.SpawnMargin
	if animalExtent < 0 {
		animalExtent = 0
	}
	for i := 0; i < f.opts.AnimalCount; i++ {
		species := Cow
		if f.rng.Float64() < f.opts.PigRatio {
			species = Pig
		}
		x := Random(f.rng, -animalExtent, animalExtent)
		z := Random(f.rng, -animalExtent, animalExtent)
		f.SpawnAnimal(species, x, z, f.hueForSpawn())
	}

	grassExtent := f.opts.WorldSize / 2
	for i := 0; i < f.opts.GrassCount; i++ {
		f.SpawnGrass(Random(f.rng, -grassExtent, grassExtent), Random(f.rng, -grassExtent, grassExtent))
	}
	f.logger.Info("populating farm", "animals", f.opts.AnimalCount, "grass", f.opts.GrassCount)
}

// SpawnAnimal adds a pending animal and requests its model.
func (f *Farm) SpawnAnimal(species *Species, x, z float64, hue HueChoice) *Animal {
	f.nextID++
	a := NewAnimal(AnimalConfig{
		ID:       f.nextID,
		X:        x,
		Z:        z,
		Species:  species,
		Hue:      hue,
		Registry: f.registry,
	})
	f.animals = append(f.animals, a)

	f.request(species.ModelPath, func(m *scene.Model) {
		if a.Disposed() {
			return
		}
		if err := a.Activate(m, f.opts.Movement, f.rng); err != nil {
			f.logger.Warn("animal recolor failed", "id", a.ID, "species", species.Name, "err", err)
		}
		f.graph.Add(a.Node())
		f.logger.Debug("animal active", "id", a.ID, "species", species.Name)
	})
	return a
}

// SpawnGrass adds a pending grass tuft and requests its model.
func (f *Farm) SpawnGrass(x, z float64) *Grass {
	g := NewGrass(x, z)
	f.grass = append(f.grass, g)
	f.request(GrassModelPath, func(m *scene.Model) {
		g.Activate(m, f.rng)
		f.graph.Add(g.Node())
	})
	return g
}

func (f *Farm) request(path string, apply func(*scene.Model)) {
	f.progress.Total++
	f.pending++

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		m, err := f.loader.LoadModel(f.ctx, path)
		select {
		case f.completions <- completion{path: path, model: m, err: err, apply: apply}:
		case <-f.ctx.Done():
		}
	}()
}

func (f *Farm) complete(c completion) {
	f.pending--
	if c.err != nil {
		f.logger.Warn("model load failed", "path", c.path, "err", c.err)
		return
	}
	c.apply(c.model)
	f.progress.Loaded++
}

// drain applies every completion that has already arrived.
func (f *Farm) drain() {
	for {
		select {
		case c := <-f.completions:
			f.complete(c)
		default:
			return
		}
	}
}

// AwaitLoads blocks until every requested load has completed or failed,
// applying each as it arrives.
func (f *Farm) AwaitLoads(ctx context.Context) error {
	for f.pending > 0 {
		select {
		case c := <-f.completions:
			f.complete(c)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Pending is the number of loads not yet applied.
func (f *Farm) Pending() int {
	return f.pending
}

// Update advances the farm by dt seconds.
func (f *Farm) Update(dt float64, mouse Mouse) {
	f.drain()

	if !f.settings.Paused {
		for _, a := range f.animals {
			a.Animate(dt, f.settings.MouseMode, mouse)
		}
	}

	for _, e := range f.clicks {
		e.Animate(dt)
	}
	f.clicks = slices.DeleteFunc(f.clicks, (*ClickEffect).Done)

	f.hover.Update(dt, mouse)
}

// Click places the selected object under the mouse along with a click
// effect. It reports whether anything was placed.
func (f *Farm) Click(mouse Mouse) bool {
	if !f.settings.ClickToPlace || !mouse.Valid {
		return false
	}

	hue := f.hueForSpawn()
	switch f.settings.ObjectType {
	case ObjectCow:
		f.SpawnAnimal(Cow, mouse.X, mouse.Z, hue)
	case ObjectPig:
		f.SpawnAnimal(Pig, mouse.X, mouse.Z, hue)
	case ObjectGrass:
		f.SpawnGrass(mouse.X, mouse.Z)
	}

	effectHue := hue.Degrees
	if !hue.Set {
		effectHue = Random(f.rng, 0, 360)
	}
	f.clicks = append(f.clicks, NewClickEffect(f.graph, f.meshes, mouse.X, mouse.Z, effectHue, f.rng))
	f.logger.Debug("placed object", "type", f.settings.ObjectType, "x", mouse.X, "z", mouse.Z)
	return true
}

func (f *Farm) hueForSpawn() HueChoice {
	switch f.settings.ColorMode {
	case ColorRandom:
		return WithHue(Random(f.rng, 0, 360))
	case ColorCustom:
		return WithHue(f.settings.Hue)
	}
	return NaturalColor
}

// Recolor reapplies the current color settings to every active animal.
func (f *Farm) Recolor() {
	for _, a := range f.animals {
		if !a.Active() {
			continue
		}
		if f.settings.ColorMode == ColorOriginal {
			a.RestoreColor()
			continue
		}
		if err := a.ChangeColor(f.hueForSpawn().Degrees); err != nil {
			f.logger.Warn("animal recolor failed", "id", a.ID, "err", err)
		}
	}
}

// RemoveAnimal takes an animal out of the farm and releases its tint.
func (f *Farm) RemoveAnimal(a *Animal) bool {
	i := slices.Index(f.animals, a)
	if i < 0 {
		return false
	}
	f.animals = slices.Delete(f.animals, i, i+1)
	if n := a.Node(); n != nil {
		f.graph.Remove(n)
	}
	a.Dispose()
	return true
}

// Close cancels in-flight loads and waits for their goroutines.
func (f *Farm) Close() {
	f.cancel()
	f.wg.Wait()
}
