package layers

import (
	"testing"

	"github.com/milk9111/tilemapper/camera"
)

func TestLayerPutReplaces(t *testing.T) {
	l, err := NewLayer("fg", 1)
	if err != nil {
		t.Fatalf("new layer: %v", err)
	}
	c := camera.Cell{X: 1, Y: 1}
	l.Put(Tile{Type: "grass", Variant: 0, Cell: c})
	l.Put(Tile{Type: "grass", Variant: 3, Cell: c})
	if l.TileCount() != 1 {
		t.Fatalf("expected one tile, got %d", l.TileCount())
	}
	got, ok := l.Tile(c)
	if !ok || got.Variant != 3 {
		t.Fatalf("expected variant 3, got %+v ok=%v", got, ok)
	}
}

func TestLayerDeleteIsIdempotent(t *testing.T) {
	l, _ := NewLayer("fg", 1)
	c := camera.Cell{X: -2, Y: 4}
	l.Put(Tile{Cell: c})
	if !l.Delete(c) {
		t.Fatalf("first delete should report a removal")
	}
	if l.Delete(c) {
		t.Fatalf("second delete should be a no-op")
	}
}

func TestLayerTilesSorted(t *testing.T) {
	l, _ := NewLayer("fg", 1)
	for _, c := range []camera.Cell{{X: 2, Y: 1}, {X: 0, Y: 0}, {X: -1, Y: 1}, {X: 5, Y: -3}} {
		l.Put(Tile{Cell: c})
	}
	want := []camera.Cell{{X: 5, Y: -3}, {X: 0, Y: 0}, {X: -1, Y: 1}, {X: 2, Y: 1}}
	tiles := l.Tiles()
	for i, tl := range tiles {
		if tl.Cell != want[i] {
			t.Fatalf("tile %d at %v, want %v", i, tl.Cell, want[i])
		}
	}
}

func TestLayerFreeTiles(t *testing.T) {
	cases := []struct {
		name    string
		placed  []camera.Vec
		at      camera.Vec
		all     bool
		removed int
		left    int
	}{
		{"miss", []camera.Vec{{X: 0, Y: 0}}, camera.Vec{X: 70, Y: 0}, false, 0, 1},
		{"hit", []camera.Vec{{X: 0, Y: 0}}, camera.Vec{X: 63.5, Y: 10}, false, 1, 0},
		{"topmost_only", []camera.Vec{{X: 0, Y: 0}, {X: 10, Y: 10}}, camera.Vec{X: 20, Y: 20}, false, 1, 1},
		{"all_overlapping", []camera.Vec{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 200, Y: 0}}, camera.Vec{X: 20, Y: 20}, true, 2, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l, _ := NewLayer("fg", 1)
			for i, p := range c.placed {
				if !l.AddFree(FreeTile{Variant: i, Pos: p}) {
					t.Fatalf("placement %d rejected", i)
				}
			}
			if n := l.RemoveFreeAt(c.at, 64, c.all); n != c.removed {
				t.Fatalf("removed %d, want %d", n, c.removed)
			}
			if l.FreeCount() != c.left {
				t.Fatalf("%d left, want %d", l.FreeCount(), c.left)
			}
		})
	}
}

func TestLayerRemoveFreeKeepsOlderTile(t *testing.T) {
	l, _ := NewLayer("fg", 1)
	l.AddFree(FreeTile{Variant: 1, Pos: camera.Vec{X: 0, Y: 0}})
	l.AddFree(FreeTile{Variant: 2, Pos: camera.Vec{X: 5, Y: 5}})
	l.RemoveFreeAt(camera.Vec{X: 6, Y: 6}, 64, false)
	left := l.FreeTiles()
	if len(left) != 1 || left[0].Variant != 1 {
		t.Fatalf("expected the older tile to survive, got %+v", left)
	}
}

func TestLayerAddFreeRejectsExactDuplicate(t *testing.T) {
	l, _ := NewLayer("fg", 1)
	p := camera.Vec{X: 10.25, Y: 3}
	if !l.AddFree(FreeTile{Variant: 0, Pos: p}) {
		t.Fatalf("first placement rejected")
	}
	if l.AddFree(FreeTile{Variant: 1, Pos: p}) {
		t.Fatalf("duplicate placement accepted")
	}
	if !l.AddFree(FreeTile{Variant: 1, Pos: camera.Vec{X: 10.250001, Y: 3}}) {
		t.Fatalf("near-duplicate should be accepted under exact matching")
	}
	var variants []int
	l.ForEachFree(func(ft FreeTile) { variants = append(variants, ft.Variant) })
	if len(variants) != 2 || variants[0] != 0 {
		t.Fatalf("unexpected free tiles %v", variants)
	}
}
