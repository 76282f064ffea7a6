package tilemap

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Surface is the output target the engine composites onto.
type Surface interface {
	Size() (w, h int)
	DrawImage(img image.Image, x, y float64)
}

// RGBASurface is an in-memory Surface.
type RGBASurface struct {
	Img *image.RGBA
}

func NewRGBASurface(w, h int) *RGBASurface {
	return &RGBASurface{Img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (s *RGBASurface) Size() (int, int) {
	b := s.Img.Bounds()
	return b.Dx(), b.Dy()
}

// DrawImage blends img over the surface with its top-left corner at (x, y).
func (s *RGBASurface) DrawImage(img image.Image, x, y float64) {
	if img == nil {
		return
	}
	src := img.Bounds()
	ix, iy := int(math.Floor(x)), int(math.Floor(y))
	r := image.Rect(ix, iy, ix+src.Dx(), iy+src.Dy())
	xdraw.Draw(s.Img, r, img, src.Min, xdraw.Over)
}

// Fill replaces every pixel with c.
func (s *RGBASurface) Fill(c color.Color) {
	xdraw.Draw(s.Img, s.Img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}
