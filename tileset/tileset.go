// Package tileset slices sprite sheets into fixed-size tiles and keeps the
// catalog of loaded sheets.
package tileset

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/milk9111/tilemapper/common"
)

var (
	ErrInvalidSpec  = fmt.Errorf("%w: invalid tileset spec", common.ErrValidation)
	ErrTileTooLarge = fmt.Errorf("%w: tile does not fit in image", common.ErrValidation)
	ErrUnknownTile  = fmt.Errorf("%w: unknown tile", common.ErrValidation)
)

// Spec describes how to slice one image into tiles.
type Spec struct {
	Name       string
	Type       string
	ImagePath  string
	TileWidth  int
	TileHeight int
	Margin     int
	Spacing    int
	// Colorkey pixels become fully transparent. nil disables keying.
	Colorkey *color.RGBA
}

func (s Spec) Validate() error {
	switch {
	case s.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidSpec)
	case s.TileWidth <= 0 || s.TileHeight <= 0:
		return fmt.Errorf("%w: tile size %dx%d", ErrInvalidSpec, s.TileWidth, s.TileHeight)
	case s.Margin < 0 || s.Spacing < 0:
		return fmt.Errorf("%w: margin %d, spacing %d", ErrInvalidSpec, s.Margin, s.Spacing)
	}
	return nil
}

// Tileset is an immutable sliced image. Tile ids run row-major from 0.
type Tileset struct {
	spec    Spec
	cols    int
	rows    int
	tiles   []*image.NRGBA
	regions []image.Rectangle
}

// New slices img according to spec. The same spec and image always yield
// the same id to region mapping. Columns are (W-margin+spacing)/(w+spacing)
// and rows alike, so a non-zero margin or spacing gives fewer tiles than
// floor(W/w) x floor(H/h); partial tiles at the edges are dropped.
func New(spec Spec, img image.Image) (*Tileset, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	w, h := spec.TileWidth, spec.TileHeight
	if w > b.Dx() || h > b.Dy() {
		return nil, fmt.Errorf("%w: %dx%d tiles on a %dx%d image", ErrTileTooLarge, w, h, b.Dx(), b.Dy())
	}
	cols := (b.Dx() - spec.Margin + spec.Spacing) / (w + spec.Spacing)
	rows := (b.Dy() - spec.Margin + spec.Spacing) / (h + spec.Spacing)
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: margin %d leaves no room for %dx%d tiles", ErrTileTooLarge, spec.Margin, w, h)
	}

	ts := &Tileset{
		spec:    spec,
		cols:    cols,
		rows:    rows,
		tiles:   make([]*image.NRGBA, 0, cols*rows),
		regions: make([]image.Rectangle, 0, cols*rows),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := b.Min.X + spec.Margin + col*(w+spec.Spacing)
			y := b.Min.Y + spec.Margin + row*(h+spec.Spacing)
			r := image.Rect(x, y, x+w, y+h)
			ts.regions = append(ts.regions, r)
			ts.tiles = append(ts.tiles, cut(img, r, spec.Colorkey))
		}
	}
	return ts, nil
}

func cut(img image.Image, r image.Rectangle, key *color.RGBA) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, r.Min, xdraw.Src)
	if key == nil {
		return dst
	}
	for i := 0; i < len(dst.Pix); i += 4 {
		p := dst.Pix[i : i+4 : i+4]
		if p[0] == key.R && p[1] == key.G && p[2] == key.B {
			p[0], p[1], p[2], p[3] = 0, 0, 0, 0
		}
	}
	return dst
}

func (t *Tileset) Spec() Spec   { return t.spec }
func (t *Tileset) Name() string { return t.spec.Name }
func (t *Tileset) Len() int     { return len(t.tiles) }
func (t *Tileset) Columns() int { return t.cols }
func (t *Tileset) Rows() int    { return t.rows }

// Tile returns the image for id.
func (t *Tileset) Tile(id int) (image.Image, error) {
	if id < 0 || id >= len(t.tiles) {
		return nil, fmt.Errorf("%w: %q has no tile %d", ErrUnknownTile, t.spec.Name, id)
	}
	return t.tiles[id], nil
}

// Region returns the source rectangle id was cut from.
func (t *Tileset) Region(id int) (image.Rectangle, error) {
	if id < 0 || id >= len(t.regions) {
		return image.Rectangle{}, fmt.Errorf("%w: %q has no tile %d", ErrUnknownTile, t.spec.Name, id)
	}
	return t.regions[id], nil
}
