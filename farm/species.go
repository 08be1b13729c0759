package farm

import (
	"sync"

	"github.com/smasonuk/polyfarm/scene"
)

// Species describes everything animals of one kind share.
type Species struct {
	Name      string
	ModelPath string
	// Bounds selects the coat pixels that recoloring rewrites.
	Bounds             ColorBounds
	SaturationModifier float64
	ValueModifier      float64
	Scale              float64
	// GaitAmplitude and GaitFrequency shape the walk bob.
	GaitAmplitude float64
	GaitFrequency float64
}

// Cow recolors the brown coat band, leaving the white patches, eyes and nose
// alone.
var Cow = &Species{
	Name:      "cow",
	ModelPath: "cow",
	Bounds: ColorBounds{
		RMin: 50, RMax: 70,
		GMin: 40, GMax: 60,
		BMin: 30, BMax: 40,
	},
	SaturationModifier: 0.4,
	ValueModifier:      0.4,
	Scale:              1,
	GaitAmplitude:      1.5,
	GaitFrequency:      2,
}

// Pig recolors everything except pure black and white channel values.
var Pig = &Species{
	Name:      "pig",
	ModelPath: "pig",
	Bounds: ColorBounds{
		RMin: 0, RMax: 255,
		GMin: 0, GMax: 255,
		BMin: 0, BMax: 255,
	},
	SaturationModifier: 0.3,
	ValueModifier:      -0.2,
	Scale:              1,
	GaitAmplitude:      1,
	GaitFrequency:      3,
}

func SpeciesByName(name string) (*Species, bool) {
	switch name {
	case Cow.Name:
		return Cow, true
	case Pig.Name:
		return Pig, true
	}
	return nil, false
}

// SpeciesRegistry holds the original texture of each species. The first
// texture stored for a species is kept for the life of the registry.
type SpeciesRegistry struct {
	mu        sync.Mutex
	originals map[string]*scene.Texture
}

func NewSpeciesRegistry() *SpeciesRegistry {
	return &SpeciesRegistry{originals: make(map[string]*scene.Texture)}
}

func (r *SpeciesRegistry) Original(species string) (*scene.Texture, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.originals[species]
	return t, ok
}

// StoreOriginal records tex for species unless one is already stored, and
// returns whichever texture the registry holds afterwards.
func (r *SpeciesRegistry) StoreOriginal(species string, tex *scene.Texture) *scene.Texture {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.originals[species]; ok {
		return existing
	}
	r.originals[species] = tex
	return tex
}
