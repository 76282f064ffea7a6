package tilemap

import (
	"image"

	"golang.org/x/image/colornames"
	xdraw "golang.org/x/image/draw"
)

// PreviewAlpha is the opacity of tiles on layers that are not selected.
const PreviewAlpha = 40

// Fit scales img to a size×size square with nearest-neighbour sampling.
// Images that already have that size are returned as is.
func Fit(img image.Image, size int) image.Image {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Dim returns a copy of img with every pixel's alpha multiplied by
// alpha/255.
func Dim(img image.Image, alpha uint8) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = uint8(uint16(dst.Pix[i]) * uint16(alpha) / 255)
	}
	return dst
}

// MissingTile is the magenta placeholder drawn for tiles whose image could
// not be resolved.
func MissingTile(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(colornames.Magenta), image.Point{}, xdraw.Src)
	return img
}
