package farm

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"sync"

	"github.com/smasonuk/polyfarm/scene"
)

var (
	coatColor  = color.RGBA{R: 60, G: 50, B: 35, A: 255}
	patchColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// coatImage is a 4x4 image of coat color with one white patch at (0, 0).
func coatImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, coatColor)
		}
	}
	img.SetRGBA(0, 0, patchColor)
	return img
}

func testModel() *scene.Model {
	return &scene.Model{
		Mesh:    scene.NewBox(40, 20, 20, color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		Texture: scene.NewTexture(coatImage()),
	}
}

var errMissing = errors.New("missing model")

// fakeLoader returns a fresh test model per call. When gate is set every
// load waits for a value on it.
type fakeLoader struct {
	gate chan struct{}
	fail map[string]bool

	mu    sync.Mutex
	calls []string
}

func (l *fakeLoader) LoadModel(ctx context.Context, path string) (*scene.Model, error) {
	l.mu.Lock()
	l.calls = append(l.calls, path)
	l.mu.Unlock()

	if l.gate != nil {
		select {
		case <-l.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if l.fail[path] {
		return nil, errMissing
	}
	return testModel(), nil
}

func (l *fakeLoader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

func testOptions(animals, grass int) Options {
	opts := DefaultOptions()
	opts.AnimalCount = animals
	opts.GrassCount = grass
	opts.Rand = newRand()
	return opts
}
