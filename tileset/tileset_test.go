package tileset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/milk9111/tilemapper/common"
)

var (
	red  = color.NRGBA{R: 0xff, A: 0xff}
	blue = color.NRGBA{B: 0xff, A: 0xff}
)

// halves builds a w×h image whose left half is red and right half blue.
func halves(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetNRGBA(x, y, red)
			} else {
				img.SetNRGBA(x, y, blue)
			}
		}
	}
	return img
}

func spec(w, h int) Spec {
	return Spec{Name: "terrain", Type: "grass", ImagePath: "terrain.png", TileWidth: w, TileHeight: h}
}

func TestNewSlicesHalves(t *testing.T) {
	ts, err := New(spec(64, 64), halves(128, 64))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if ts.Len() != 2 || ts.Columns() != 2 || ts.Rows() != 1 {
		t.Fatalf("got %d tiles in %dx%d", ts.Len(), ts.Columns(), ts.Rows())
	}
	wantRegions := []image.Rectangle{image.Rect(0, 0, 64, 64), image.Rect(64, 0, 128, 64)}
	wantColors := []color.NRGBA{red, blue}
	for id := range wantRegions {
		r, err := ts.Region(id)
		if err != nil || r != wantRegions[id] {
			t.Fatalf("region %d = %v, %v", id, r, err)
		}
		img, err := ts.Tile(id)
		if err != nil {
			t.Fatalf("tile %d: %v", id, err)
		}
		if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
			t.Fatalf("tile %d bounds %v", id, b)
		}
		for _, p := range []image.Point{{0, 0}, {63, 63}} {
			if got := color.NRGBAModel.Convert(img.At(p.X, p.Y)); got != wantColors[id] {
				t.Fatalf("tile %d pixel %v = %v", id, p, got)
			}
		}
	}
}

func TestNewMarginAndSpacing(t *testing.T) {
	s := spec(4, 4)
	s.Margin = 1
	s.Spacing = 2
	ts, err := New(s, image.NewNRGBA(image.Rect(0, 0, 11, 5)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := []image.Rectangle{image.Rect(1, 1, 5, 5), image.Rect(7, 1, 11, 5)}
	if ts.Len() != len(want) {
		t.Fatalf("got %d tiles", ts.Len())
	}
	for id, w := range want {
		if r, _ := ts.Region(id); r != w {
			t.Fatalf("region %d = %v, want %v", id, r, w)
		}
	}
}

func TestNewMarginAndSpacingShrinkGrid(t *testing.T) {
	cases := []struct {
		name               string
		margin, spacing    int
		wantCols, wantRows int
	}{
		{"plain", 0, 0, 4, 4},
		{"margin", 1, 0, 3, 3},
		{"spacing", 0, 2, 3, 3},
		{"both", 2, 1, 3, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := spec(16, 16)
			s.Margin = c.margin
			s.Spacing = c.spacing
			ts, err := New(s, image.NewNRGBA(image.Rect(0, 0, 64, 64)))
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			if ts.Columns() != c.wantCols || ts.Rows() != c.wantRows || ts.Len() != c.wantCols*c.wantRows {
				t.Fatalf("got %dx%d (%d tiles), want %dx%d", ts.Columns(), ts.Rows(), ts.Len(), c.wantCols, c.wantRows)
			}
		})
	}
}

func TestNewDropsPartialTiles(t *testing.T) {
	ts, err := New(spec(64, 64), halves(100, 70))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if ts.Len() != 1 {
		t.Fatalf("expected a single whole tile, got %d", ts.Len())
	}
}

func TestNewHonoursImageOrigin(t *testing.T) {
	sub := halves(192, 64).SubImage(image.Rect(64, 0, 192, 64))
	ts, err := New(spec(64, 64), sub)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if r, _ := ts.Region(0); r != image.Rect(64, 0, 128, 64) {
		t.Fatalf("region 0 = %v", r)
	}
	img, _ := ts.Tile(1)
	if got := color.NRGBAModel.Convert(img.At(0, 0)); got != blue {
		t.Fatalf("tile 1 = %v", got)
	}
}

func TestNewErrors(t *testing.T) {
	cases := []struct {
		name string
		spec Spec
		img  image.Image
		want error
	}{
		{"too_wide", spec(200, 64), halves(128, 64), ErrTileTooLarge},
		{"too_tall", spec(64, 65), halves(128, 64), ErrTileTooLarge},
		{"margin_eats_image", Spec{Name: "t", TileWidth: 64, TileHeight: 64, Margin: 10}, halves(64, 64), ErrTileTooLarge},
		{"zero_width", spec(0, 64), halves(128, 64), ErrInvalidSpec},
		{"negative_spacing", Spec{Name: "t", TileWidth: 8, TileHeight: 8, Spacing: -1}, halves(16, 16), ErrInvalidSpec},
		{"no_name", Spec{TileWidth: 8, TileHeight: 8}, halves(16, 16), ErrInvalidSpec},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.spec, c.img)
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
			if !errors.Is(err, common.ErrValidation) {
				t.Fatalf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestSlicingIsDeterministic(t *testing.T) {
	src := halves(96, 64)
	s := spec(32, 32)
	a, err := New(s, src)
	if err != nil {
		t.Fatalf("first slice: %v", err)
	}
	b, err := New(a.Spec(), src)
	if err != nil {
		t.Fatalf("second slice: %v", err)
	}
	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for id := 0; id < a.Len(); id++ {
		ra, _ := a.Region(id)
		rb, _ := b.Region(id)
		if ra != rb {
			t.Fatalf("region %d differs: %v vs %v", id, ra, rb)
		}
		ia, _ := a.Tile(id)
		ib, _ := b.Tile(id)
		if !bytes.Equal(ia.(*image.NRGBA).Pix, ib.(*image.NRGBA).Pix) {
			t.Fatalf("tile %d pixels differ", id)
		}
	}
}

func TestTilesAreIndependentCopies(t *testing.T) {
	src := halves(128, 64)
	ts, _ := New(spec(64, 64), src)
	src.SetNRGBA(0, 0, blue)
	img, _ := ts.Tile(0)
	if got := color.NRGBAModel.Convert(img.At(0, 0)); got != red {
		t.Fatalf("tile changed with its source: %v", got)
	}
}

func TestColorkey(t *testing.T) {
	s := spec(64, 64)
	s.Colorkey = &color.RGBA{R: 0xff, A: 0xff}
	ts, err := New(s, halves(128, 64))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	left, _ := ts.Tile(0)
	if _, _, _, a := left.At(10, 10).RGBA(); a != 0 {
		t.Fatalf("keyed pixel should be transparent, alpha %d", a)
	}
	right, _ := ts.Tile(1)
	if got := color.NRGBAModel.Convert(right.At(10, 10)); got != blue {
		t.Fatalf("unkeyed pixel = %v", got)
	}
}

func TestUnknownTile(t *testing.T) {
	ts, _ := New(spec(64, 64), halves(128, 64))
	for _, id := range []int{-1, 2} {
		if _, err := ts.Tile(id); !errors.Is(err, ErrUnknownTile) {
			t.Fatalf("Tile(%d) err = %v", id, err)
		}
		if _, err := ts.Region(id); !errors.Is(err, ErrUnknownTile) {
			t.Fatalf("Region(%d) err = %v", id, err)
		}
	}
}
