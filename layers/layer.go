// Package layers holds the ordered, selectable collection of tile layers.
package layers

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/milk9111/tilemapper/camera"
)

// Tile is a tile snapped to a grid cell.
type Tile struct {
	Tileset string
	Type    string
	Variant int
	Cell    camera.Cell

	// Image is drawn while the layer is selected, Preview otherwise.
	Image   image.Image
	Preview image.Image
}

// FreeTile is a tile placed at an arbitrary world position.
type FreeTile struct {
	Tileset string
	Type    string
	Variant int
	Pos     camera.Vec

	Image   image.Image
	Preview image.Image
}

// Layer owns the on-grid and off-grid tiles of a single layer.
type Layer struct {
	name     string
	parallax float64
	onGrid   map[camera.Cell]Tile
	offGrid  []FreeTile
}

// NewLayer validates and constructs an empty layer.
func NewLayer(name string, parallax float64) (*Layer, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidLayer)
	}
	if err := checkParallax(parallax); err != nil {
		return nil, err
	}
	return &Layer{
		name:     name,
		parallax: parallax,
		onGrid:   make(map[camera.Cell]Tile),
	}, nil
}

func checkParallax(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return fmt.Errorf("%w: parallax %v", ErrInvalidLayer, p)
	}
	return nil
}

func (l *Layer) Name() string      { return l.name }
func (l *Layer) Parallax() float64 { return l.parallax }

// Put stores t at t.Cell, replacing any previous occupant.
func (l *Layer) Put(t Tile) {
	l.onGrid[t.Cell] = t
}

// Tile returns the on-grid tile at c.
func (l *Layer) Tile(c camera.Cell) (Tile, bool) {
	t, ok := l.onGrid[c]
	return t, ok
}

// Delete removes the on-grid tile at c and reports whether one existed.
func (l *Layer) Delete(c camera.Cell) bool {
	if _, ok := l.onGrid[c]; !ok {
		return false
	}
	delete(l.onGrid, c)
	return true
}

// Tiles returns the on-grid tiles sorted row by row.
func (l *Layer) Tiles() []Tile {
	out := make([]Tile, 0, len(l.onGrid))
	for _, t := range l.onGrid {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell.Y != out[j].Cell.Y {
			return out[i].Cell.Y < out[j].Cell.Y
		}
		return out[i].Cell.X < out[j].Cell.X
	})
	return out
}

// TileCount is the number of on-grid tiles.
func (l *Layer) TileCount() int { return len(l.onGrid) }

// AddFree appends an off-grid tile unless one already sits at exactly the
// same position.
func (l *Layer) AddFree(t FreeTile) bool {
	for _, ft := range l.offGrid {
		if ft.Pos == t.Pos {
			return false
		}
	}
	l.offGrid = append(l.offGrid, t)
	return true
}

// RemoveFreeAt removes off-grid tiles whose size×size footprint contains p.
// Only the most recently placed match is removed unless all is set.
func (l *Layer) RemoveFreeAt(p camera.Vec, size int, all bool) int {
	removed := 0
	for i := len(l.offGrid) - 1; i >= 0; i-- {
		if !covers(l.offGrid[i].Pos, size, p) {
			continue
		}
		l.offGrid = append(l.offGrid[:i], l.offGrid[i+1:]...)
		removed++
		if !all {
			break
		}
	}
	return removed
}

func covers(origin camera.Vec, size int, p camera.Vec) bool {
	s := float64(size)
	return p.X >= origin.X && p.X < origin.X+s && p.Y >= origin.Y && p.Y < origin.Y+s
}

// FreeTiles returns a copy of the off-grid tiles in placement order.
func (l *Layer) FreeTiles() []FreeTile {
	out := make([]FreeTile, len(l.offGrid))
	copy(out, l.offGrid)
	return out
}

// ForEachFree calls fn for every off-grid tile in placement order.
func (l *Layer) ForEachFree(fn func(FreeTile)) {
	for _, t := range l.offGrid {
		fn(t)
	}
}

// FreeCount is the number of off-grid tiles.
func (l *Layer) FreeCount() int { return len(l.offGrid) }

func (l *Layer) clone() *Layer {
	c := &Layer{
		name:     l.name,
		parallax: l.parallax,
		onGrid:   make(map[camera.Cell]Tile, len(l.onGrid)),
		offGrid:  make([]FreeTile, len(l.offGrid)),
	}
	for k, v := range l.onGrid {
		c.onGrid[k] = v
	}
	copy(c.offGrid, l.offGrid)
	return c
}
