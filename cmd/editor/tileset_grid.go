package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/tilemapper/tilemap"
	"github.com/milk9111/tilemapper/tileset"
)

const (
	thumbSize   = 32
	gridColumns = 6
)

// TilesetGrid shows every tile of a tileset as a clickable thumbnail.
type TilesetGrid struct {
	Container *widget.Container
	label     *widget.Label
	count     int
}

// NewTilesetGrid lays the tiles out row-major, so the n-th thumbnail is
// tile id n regardless of the sheet's own column count.
func NewTilesetGrid(ts *tileset.Tileset, fontFace *text.Face, onSelect func(variant int)) *TilesetGrid {
	g := &TilesetGrid{count: ts.Len()}
	g.Container = widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
	)
	g.label = widget.NewLabel(
		widget.LabelOpts.Text("", fontFace, labelColor),
	)
	g.Container.AddChild(g.label)

	cols := min(ts.Columns(), gridColumns)
	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(cols),
				widget.GridLayoutOpts.Spacing(2, 2),
			),
		),
	)
	for id := 0; id < ts.Len(); id++ {
		tile, err := ts.Tile(id)
		if err != nil {
			continue
		}
		thumb := ebiten.NewImageFromImage(tilemap.Fit(tile, thumbSize))
		variant := id
		grid.AddChild(widget.NewGraphic(
			widget.GraphicOpts.Image(thumb),
			widget.GraphicOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(thumbSize, thumbSize),
				widget.WidgetOpts.MouseButtonClickedHandler(func(args *widget.WidgetMouseButtonClickedEventArgs) {
					if onSelect != nil {
						onSelect(variant)
					}
				}),
			),
		))
	}
	g.Container.AddChild(grid)
	g.SetSelected(0)
	return g
}

func (g *TilesetGrid) SetSelected(variant int) {
	if g == nil || g.label == nil {
		return
	}
	g.label.Label = fmt.Sprintf("Tile %d of %d", variant, g.count)
}
