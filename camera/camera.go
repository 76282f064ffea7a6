// Package camera converts between screen space, parallax-adjusted world
// space and grid cells, and holds the scrollable editor camera.
package camera

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/milk9111/tilemapper/common"
)

var ErrBadCellKey = fmt.Errorf("%w: bad cell key", common.ErrValidation)

// Vec is a point or offset in screen or world pixels.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }

// Floor rounds both components toward negative infinity.
func (v Vec) Floor() Vec { return Vec{math.Floor(v.X), math.Floor(v.Y)} }

func (v Vec) String() string { return FormatPosition(v) }

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

func (c Cell) String() string { return FormatCell(c) }

// CellRect is an inclusive range of cells.
type CellRect struct {
	Min, Max Cell
}

func (r CellRect) Contains(c Cell) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X && c.Y >= r.Min.Y && c.Y <= r.Max.Y
}

// ParallaxOffset scales a camera offset by a layer's parallax factor.
func ParallaxOffset(offset Vec, parallax float64) Vec {
	return offset.Scale(parallax)
}

// ScreenOffset is the whole-pixel shift a layer is drawn with. It floors
// like GridCell so a tile is drawn under the point that placed it.
func ScreenOffset(offset Vec, parallax float64) Vec {
	return ParallaxOffset(offset, parallax).Floor()
}

// WorldPosition maps a canvas-relative screen point into the world space of
// a layer with the given parallax.
func WorldPosition(screen, offset Vec, parallax float64) Vec {
	return screen.Add(ParallaxOffset(offset, parallax))
}

// GridCell quantizes a world position, flooring toward negative infinity so
// cells left of or above the origin stay one tile wide.
func GridCell(world Vec, tileSize int) Cell {
	return Cell{
		X: common.FloorDivF(world.X, tileSize),
		Y: common.FloorDivF(world.Y, tileSize),
	}
}

// CellOrigin returns the world position of a cell's top-left corner.
func CellOrigin(c Cell, tileSize int) Vec {
	return Vec{float64(c.X * tileSize), float64(c.Y * tileSize)}
}

// VisibleCells returns the cells a w×h viewport at offset can show, with one
// extra cell on every edge.
func VisibleCells(offset Vec, w, h, tileSize int) CellRect {
	minX := common.FloorDivF(offset.X, tileSize)
	minY := common.FloorDivF(offset.Y, tileSize)
	maxX := common.FloorDivF(offset.X+float64(w), tileSize)
	maxY := common.FloorDivF(offset.Y+float64(h), tileSize)
	return CellRect{
		Min: Cell{minX - 1, minY - 1},
		Max: Cell{maxX + 1, maxY + 1},
	}
}

// FormatCell renders a cell as its canonical "x;y" key.
func FormatCell(c Cell) string {
	return strconv.Itoa(c.X) + ";" + strconv.Itoa(c.Y)
}

// FormatPosition renders a position as "x;y" after truncating both
// components toward zero.
func FormatPosition(v Vec) string {
	return FormatCell(Cell{int(v.X), int(v.Y)})
}

// ParseCell is the inverse of FormatCell.
func ParseCell(key string) (Cell, error) {
	xs, ys, ok := strings.Cut(key, ";")
	if !ok {
		return Cell{}, fmt.Errorf("%w: %q", ErrBadCellKey, key)
	}
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if err := errors.Join(errX, errY); err != nil {
		return Cell{}, fmt.Errorf("%w: %q", ErrBadCellKey, key)
	}
	return Cell{x, y}, nil
}

// Camera is the editor's scrollable view. Offset is the world position of
// the canvas' top-left corner at parallax 1.
type Camera struct {
	Offset Vec

	// pixels per second for keyboard scrolling
	Speed float64
	// pixels per mouse wheel notch
	WheelStep float64
}

// NewCamera creates a camera at the world origin.
func NewCamera(speed, wheelStep float64) *Camera {
	return &Camera{Speed: speed, WheelStep: wheelStep}
}

// Move scrolls along dir at Speed for dt seconds. dir is normalised so
// diagonal scrolling is not faster.
func (c *Camera) Move(dir Vec, dt float64) {
	l := dir.Len()
	if l == 0 {
		return
	}
	c.Offset = c.Offset.Add(dir.Scale(c.Speed * dt / l))
}

// Drag pans the camera opposite to a pointer drag of (dx, dy) pixels.
func (c *Camera) Drag(dx, dy float64) {
	c.Offset.X -= dx
	c.Offset.Y -= dy
}

// Scroll applies mouse wheel notches; positive steps scroll toward the
// origin like the wheel-up button.
func (c *Camera) Scroll(steps float64, horizontal bool) {
	d := -steps * c.WheelStep
	if horizontal {
		c.Offset.X += d
	} else {
		c.Offset.Y += d
	}
}

// Snap returns the offset floored to whole pixels, the value handed to
// the renderer each frame.
func (c *Camera) Snap() Vec {
	return c.Offset.Floor()
}
