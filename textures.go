package polyfarm

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/polyfarm/scene"
)

// textureTTL is how many frames an unused image survives in the cache.
const textureTTL = 120

type cachedImage struct {
	image    *ebiten.Image
	source   *scene.Texture
	lastUsed int
}

// textureCache uploads texture images once and shares the upload between
// textures that wrap the same image.
type textureCache struct {
	images map[image.Image]*cachedImage
}

func newTextureCache() *textureCache {
	return &textureCache{images: make(map[image.Image]*cachedImage)}
}

func (c *textureCache) get(tex *scene.Texture, frame int) *ebiten.Image {
	if !tex.Loaded() {
		return nil
	}
	entry, ok := c.images[tex.Image]
	if !ok {
		entry = &cachedImage{image: ebiten.NewImageFromImage(tex.Image), source: tex}
		c.images[tex.Image] = entry
	}
	if entry.source.Disposed() {
		entry.source = tex
	}
	entry.lastUsed = frame
	return entry.image
}

// sweep drops images whose texture was disposed, or that went unused for
// textureTTL frames.
func (c *textureCache) sweep(frame int) {
	for key, entry := range c.images {
		if entry.lastUsed == frame {
			continue
		}
		if entry.source.Disposed() || frame-entry.lastUsed > textureTTL {
			entry.image.Deallocate()
			delete(c.images, key)
		}
	}
}

func (c *textureCache) len() int {
	return len(c.images)
}
