package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// framesToKeep is how long an uploaded image survives without being drawn.
const framesToKeep = 600

type cachedImage struct {
	img      *ebiten.Image
	lastUsed int
}

// imageCache uploads tile images to the GPU once and reuses them across
// frames. Entries are keyed by the source image, which placed tiles share.
type imageCache struct {
	images map[image.Image]*cachedImage
	frame  int
}

func newImageCache() *imageCache {
	return &imageCache{images: make(map[image.Image]*cachedImage)}
}

func (c *imageCache) get(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	ci, ok := c.images[img]
	if !ok {
		ci = &cachedImage{img: ebiten.NewImageFromImage(img)}
		c.images[img] = ci
	}
	ci.lastUsed = c.frame
	return ci.img
}

// sweep drops images that have not been drawn for a while, such as tiles
// from a reloaded tileset.
func (c *imageCache) sweep() {
	c.frame++
	for k, ci := range c.images {
		if c.frame-ci.lastUsed > framesToKeep {
			ci.img.Deallocate()
			delete(c.images, k)
		}
	}
}

// screenSurface lets the tilemap renderer draw onto an ebiten image.
type screenSurface struct {
	dst   *ebiten.Image
	cache *imageCache
	// alpha scales every image drawn, 1 when zero.
	alpha float32
}

func (s *screenSurface) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *screenSurface) DrawImage(img image.Image, x, y float64) {
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	if s.alpha > 0 && s.alpha < 1 {
		op.ColorScale.ScaleAlpha(s.alpha)
	}
	s.dst.DrawImage(s.cache.get(img), op)
}
