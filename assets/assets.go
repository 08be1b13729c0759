// Package assets loads the farm's models from a file system and builds the
// procedural ground texture.
package assets

import (
	"context"
	"embed"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/smasonuk/polyfarm/scene"
	"golang.org/x/sync/errgroup"
)

//go:embed models
var models embed.FS

// Models returns the built-in model files.
func Models() fs.FS {
	sub, err := fs.Sub(models, "models")
	if err != nil {
		panic(err)
	}
	return sub
}

type decoded struct {
	once sync.Once
	mesh *scene.Mesh
	img  image.Image
	err  error
}

// Loader reads <name>.ply and <name>.png pairs. Each file pair is decoded
// once; every LoadModel call returns a model with its own texture wrapping
// the shared image.
type Loader struct {
	fsys    fs.FS
	latency time.Duration
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[string]*decoded
}

type Option func(*Loader)

// WithLatency delays every load, which makes the pending state visible.
func WithLatency(d time.Duration) Option {
	return func(l *Loader) { l.latency = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

func NewLoader(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{
		fsys:   fsys,
		logger: slog.Default(),
		cache:  make(map[string]*decoded),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) LoadModel(ctx context.Context, name string) (*scene.Model, error) {
	if l.latency > 0 {
		select {
		case <-time.After(l.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d := l.entry(name)
	d.once.Do(func() {
		d.mesh, d.img, d.err = l.decode(name)
		if d.err == nil {
			l.logger.Debug("model decoded", "name", name, "faces", len(d.mesh.Faces))
		}
	})
	if d.err != nil {
		return nil, d.err
	}

	tex := scene.NewTexture(d.img)
	tex.MagFilter = scene.Nearest
	tex.MinFilter = scene.Nearest
	return &scene.Model{Mesh: d.mesh, Texture: tex}, nil
}

func (l *Loader) entry(name string) *decoded {
	l.mu.Lock()
	defer l.mu.Unlock()
	d, ok := l.cache[name]
	if !ok {
		d = &decoded{}
		l.cache[name] = d
	}
	return d
}

// decode reads the mesh and its texture concurrently.
func (l *Loader) decode(name string) (*scene.Mesh, image.Image, error) {
	var (
		mesh *scene.Mesh
		info *scene.PLYInfo
		img  image.Image
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		f, err := l.fsys.Open(name + ".ply")
		if err != nil {
			return fmt.Errorf("open mesh %s: %w", name, err)
		}
		defer f.Close()

		mesh, info, err = scene.LoadPLY(f)
		if err != nil {
			return fmt.Errorf("parse mesh %s: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		f, err := l.fsys.Open(name + ".png")
		if err != nil {
			return fmt.Errorf("open texture %s: %w", name, err)
		}
		defer f.Close()

		img, err = png.Decode(f)
		if err != nil {
			return fmt.Errorf("decode texture %s: %w", name, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if want := path.Base(name) + ".png"; info.TextureFile != "" && info.TextureFile != want {
		l.logger.Warn("mesh names a different texture", "name", name, "texture", info.TextureFile, "using", want)
	}
	return mesh, img, nil
}
