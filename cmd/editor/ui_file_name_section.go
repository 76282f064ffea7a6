package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// addFileNameSection adds the map file field. Ctrl+S saves to it and
// Ctrl+O opens it.
func addFileNameSection(parent *widget.Container, fontFace *text.Face, initial string) *widget.TextInput {
	fileLabel := widget.NewLabel(
		widget.LabelOpts.Text("Map file", fontFace, labelColor),
	)
	fileNameInput := newTextInput(fontFace, 180)
	fileNameInput.SetText(initial)
	parent.AddChild(fileLabel)
	parent.AddChild(fileNameInput)
	return fileNameInput
}
