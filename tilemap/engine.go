// Package tilemap resolves pointer input into tile edits on the selected
// layer and composites the layers onto a Surface.
package tilemap

import (
	"fmt"
	"image"

	"github.com/milk9111/tilemapper/camera"
	"github.com/milk9111/tilemapper/common"
	"github.com/milk9111/tilemapper/layers"
)

var ErrInvalidTileSize = fmt.Errorf("%w: tile size must be positive", common.ErrValidation)

// Brush is the tile currently chosen for drawing.
type Brush struct {
	Tileset string
	Type    string
	Variant int
	Image   image.Image
	Preview image.Image
}

// Placement describes a single place-tile call. Screen is relative to the
// canvas and Camera is the unscaled camera offset.
type Placement struct {
	Tileset string
	Type    string
	Variant int
	Screen  camera.Vec
	Camera  camera.Vec
	Image   image.Image
	Preview image.Image
	OnGrid  bool
}

// Removal describes a single remove-tile call.
type Removal struct {
	Screen camera.Vec
	Camera camera.Vec
	OnGrid bool
	// Overlapping removes every off-grid tile under the point instead of
	// only the most recently placed one.
	Overlapping bool
}

// Input is one pointer action with the tool mode passed explicitly.
type Input struct {
	Screen      camera.Vec
	Camera      camera.Vec
	OnGrid      bool
	Deleting    bool
	Overlapping bool
	Brush       *Brush
}

// Engine owns the layer store and applies edits to its selected layer.
type Engine struct {
	store    *layers.Store
	tileSize int
}

func NewEngine(tileSize int) (*Engine, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTileSize, tileSize)
	}
	return &Engine{store: layers.NewStore(), tileSize: tileSize}, nil
}

func (e *Engine) Store() *layers.Store { return e.store }
func (e *Engine) TileSize() int        { return e.tileSize }

// Replace swaps in a whole store, e.g. one decoded from a document. A nil
// store resets the engine to an empty one.
func (e *Engine) Replace(s *layers.Store) {
	if s == nil {
		s = layers.NewStore()
	}
	e.store = s
}

// Place puts a tile on the selected layer and reports whether anything
// changed. It does nothing without a selected layer or an image.
func (e *Engine) Place(p Placement) bool {
	l := e.store.SelectedLayer()
	if l == nil || p.Image == nil {
		return false
	}
	world := camera.WorldPosition(p.Screen, p.Camera, l.Parallax())

	img := Fit(p.Image, e.tileSize)
	var preview image.Image
	if p.Preview != nil {
		preview = Fit(p.Preview, e.tileSize)
	} else {
		preview = Dim(img, PreviewAlpha)
	}

	if p.OnGrid {
		l.Put(layers.Tile{
			Tileset: p.Tileset,
			Type:    p.Type,
			Variant: p.Variant,
			Cell:    camera.GridCell(world, e.tileSize),
			Image:   img,
			Preview: preview,
		})
		return true
	}
	return l.AddFree(layers.FreeTile{
		Tileset: p.Tileset,
		Type:    p.Type,
		Variant: p.Variant,
		Pos:     world,
		Image:   img,
		Preview: preview,
	})
}

// Remove deletes tiles under the pointer on the selected layer and returns
// how many were removed.
func (e *Engine) Remove(r Removal) int {
	l := e.store.SelectedLayer()
	if l == nil {
		return 0
	}
	world := camera.WorldPosition(r.Screen, r.Camera, l.Parallax())
	if r.OnGrid {
		if l.Delete(camera.GridCell(world, e.tileSize)) {
			return 1
		}
		return 0
	}
	return l.RemoveFreeAt(world, e.tileSize, r.Overlapping)
}

// Apply dispatches a pointer action to Remove or Place and returns the
// number of tiles changed.
func (e *Engine) Apply(in Input) int {
	if in.Deleting {
		return e.Remove(Removal{
			Screen:      in.Screen,
			Camera:      in.Camera,
			OnGrid:      in.OnGrid,
			Overlapping: in.Overlapping,
		})
	}
	if in.Brush == nil {
		return 0
	}
	placed := e.Place(Placement{
		Tileset: in.Brush.Tileset,
		Type:    in.Brush.Type,
		Variant: in.Brush.Variant,
		Screen:  in.Screen,
		Camera:  in.Camera,
		Image:   in.Brush.Image,
		Preview: in.Brush.Preview,
		OnGrid:  in.OnGrid,
	})
	if placed {
		return 1
	}
	return 0
}

// Hover returns the cell under the pointer on the selected layer and that
// cell's top-left corner in screen space, matching where Render draws it.
func (e *Engine) Hover(screen, cam camera.Vec) (camera.Cell, camera.Vec, bool) {
	l := e.store.SelectedLayer()
	if l == nil {
		return camera.Cell{}, camera.Vec{}, false
	}
	world := camera.WorldPosition(screen, cam, l.Parallax())
	cell := camera.GridCell(world, e.tileSize)
	off := camera.ScreenOffset(cam, l.Parallax())
	return cell, camera.CellOrigin(cell, e.tileSize).Sub(off), true
}
