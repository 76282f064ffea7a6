package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func addLayersSection(
	parent *widget.Container,
	theme *widget.Theme,
	fontFace *text.Face,
	layerPanel *LayerPanel,
	onLayerSelected func(name string),
) {
	layersLabel := widget.NewLabel(
		widget.LabelOpts.Text("Layers (top first)", fontFace, labelColor),
	)
	parent.AddChild(layersLabel)

	layerList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(LayerEntry); ok {
				return fmt.Sprintf("%d. %s  x%g", entry.Index, entry.Name, entry.Parallax)
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if layerPanel.suppressEvents {
				return
			}
			entry, ok := args.Entry.(LayerEntry)
			if !ok {
				return
			}
			layerPanel.setParallaxText(entry.Parallax)
			if onLayerSelected != nil {
				onLayerSelected(entry.Name)
			}
		}),
	)
	parent.AddChild(layerList)
	layerPanel.list = layerList

	withSelected := func(fn func(name string)) func() {
		return func() {
			if fn == nil {
				return
			}
			if sel, ok := layerPanel.Selected(); ok {
				fn(sel.Name)
			}
		}
	}

	buttonsRow := newRow(6)
	buttonsRow.AddChild(newButton(theme, fontFace, "New", func() {
		if layerPanel.openNameDialog == nil || layerPanel.onNewLayer == nil {
			return
		}
		name := fmt.Sprintf("layer %d", len(layerPanel.entries)+1)
		layerPanel.openNameDialog("New layer", name, layerPanel.onNewLayer)
	}))
	buttonsRow.AddChild(newButton(theme, fontFace, "Delete", withSelected(layerPanel.onDeleteLayer)))
	buttonsRow.AddChild(newButton(theme, fontFace, "Up", withSelected(layerPanel.onMoveUp)))
	buttonsRow.AddChild(newButton(theme, fontFace, "Down", withSelected(layerPanel.onMoveDown)))
	parent.AddChild(buttonsRow)

	renameRow := newRow(6)
	renameRow.AddChild(newButton(theme, fontFace, "Rename", withSelected(func(name string) {
		if layerPanel.openNameDialog == nil || layerPanel.onRename == nil {
			return
		}
		layerPanel.openNameDialog("Rename layer", name, func(to string) {
			layerPanel.onRename(name, to)
		})
	})))
	parent.AddChild(renameRow)

	parallaxRow := newRow(6)
	parallaxRow.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Parallax", fontFace, labelColor),
	))
	parallaxInput := newTextInput(fontFace, 80,
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			if layerPanel.suppressEvents || layerPanel.onParallax == nil {
				return
			}
			if sel, ok := layerPanel.Selected(); ok {
				layerPanel.onParallax(sel.Name, args.InputText)
			}
		}),
	)
	parallaxRow.AddChild(parallaxInput)
	parent.AddChild(parallaxRow)
	layerPanel.parallaxInput = parallaxInput
}
