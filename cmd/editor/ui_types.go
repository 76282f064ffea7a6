package main

import (
	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/tilemapper/tileset"
)

// ToolBar contains the radio-group state for the floating tool buttons and
// the placement toggles next to them.
type ToolBar struct {
	group      *widget.RadioGroup
	buttons    []*widget.Button
	gridBtn    *widget.Button
	overlapBtn *widget.Button
}

func (tb *ToolBar) SetTool(t Tool) {
	idx := int(t)
	if tb == nil || tb.group == nil || idx < 0 || idx >= len(tb.buttons) {
		return
	}
	tb.group.SetActive(tb.buttons[idx])
}

// SetPlacement updates the toggle labels to match the placement mode.
func (tb *ToolBar) SetPlacement(offGrid, overlapping bool) {
	if tb == nil {
		return
	}
	gridLabel := "On Grid"
	if offGrid {
		gridLabel = "Off Grid"
	}
	overlapLabel := "Erase: Top"
	if overlapping {
		overlapLabel = "Erase: All"
	}
	setButtonLabel(tb.gridBtn, gridLabel)
	setButtonLabel(tb.overlapBtn, overlapLabel)
}

func setButtonLabel(b *widget.Button, label string) {
	if b == nil {
		return
	}
	if text := b.Text(); text != nil {
		text.Label = label
	}
}

// TilesetPanelUI is the composed right-panel widget plus helper closures.
type TilesetPanelUI struct {
	Container        *widget.Container
	SetTilesets      func(names []string, selected string)
	SetTiles         func(ts *tileset.Tileset)
	SetTileSelection func(variant int)
}

// LeftPanelUI is the composed left-panel widget and its stateful helpers.
type LeftPanelUI struct {
	Container     *widget.Container
	LayerPanel    *LayerPanel
	FileNameInput *widget.TextInput
	NameOverlay   *widget.Container
}
