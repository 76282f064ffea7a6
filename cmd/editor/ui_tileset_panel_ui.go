package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/tilemapper/tileset"
)

type tilesetHandlers struct {
	Selected func(name string)
	Load     func(asset AssetInfo)
	Unload   func(name string)
	Tile     func(variant int)
}

func buildTilesetPanelUI(
	assets []AssetInfo,
	theme *widget.Theme,
	fontFace *text.Face,
	h tilesetHandlers,
) *TilesetPanelUI {
	var tileGrid *TilesetGrid
	suppress := false

	tilesetPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(240, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	tilesetPanel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Tilesets", fontFace, labelColor),
	))
	tilesetList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			name, _ := e.(string)
			return name
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if suppress || h.Selected == nil {
				return
			}
			if name, ok := args.Entry.(string); ok {
				h.Selected(name)
			}
		}),
	)
	tilesetPanel.AddChild(tilesetList)

	unloadRow := newRow(6)
	unloadRow.AddChild(newButton(theme, fontFace, "Unload", func() {
		if name, ok := tilesetList.SelectedEntry().(string); ok && h.Unload != nil {
			h.Unload(name)
		}
	}))
	tilesetPanel.AddChild(unloadRow)

	tilesetPanel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Assets", fontFace, labelColor),
	))
	entries := make([]any, 0, len(assets))
	for _, a := range assets {
		entries = append(entries, a)
	}
	assetList := widget.NewList(
		widget.ListOpts.Entries(entries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if asset, ok := e.(AssetInfo); ok {
				return asset.Name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if h.Load == nil {
				return
			}
			if asset, ok := args.Entry.(AssetInfo); ok {
				h.Load(asset)
			}
		}),
	)
	tilesetPanel.AddChild(assetList)

	setTilesets := func(names []string, selected string) {
		suppress = true
		defer func() { suppress = false }()
		items := make([]any, len(names))
		for i, n := range names {
			items[i] = n
		}
		tilesetList.SetEntries(items)
		for _, item := range items {
			if item == selected {
				tilesetList.SetSelectedEntry(item)
			}
		}
	}

	setTiles := func(ts *tileset.Tileset) {
		if tileGrid != nil {
			tilesetPanel.RemoveChild(tileGrid.Container)
			tileGrid = nil
		}
		if ts == nil {
			return
		}
		tileGrid = NewTilesetGrid(ts, fontFace, h.Tile)
		tilesetPanel.AddChild(tileGrid.Container)
	}

	setTileSelection := func(variant int) {
		tileGrid.SetSelected(variant)
	}

	return &TilesetPanelUI{
		Container:        tilesetPanel,
		SetTilesets:      setTilesets,
		SetTiles:         setTiles,
		SetTileSelection: setTileSelection,
	}
}
