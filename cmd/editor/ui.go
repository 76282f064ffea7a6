package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

type editorUI struct {
	UI       *ebitenui.UI
	ToolBar  *ToolBar
	Left     *LeftPanelUI
	Tilesets *TilesetPanelUI
}

func BuildEditorUI(
	assets []AssetInfo,
	fileName string,
	layerH layerHandlers,
	tilesetH tilesetHandlers,
	onToolSelected func(tool Tool),
	onToggleGrid func(),
	onToggleOverlap func(),
	initialTool Tool,
) *editorUI {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	rightPanel := buildTilesetPanelUI(assets, ui.PrimaryTheme, &fontFace, tilesetH)
	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, onToolSelected, onToggleGrid, onToggleOverlap, initialTool)
	leftPanel := buildLeftPanelUI(ui.PrimaryTheme, &fontFace, fileName, layerH)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	rightPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(leftPanel.Container)
	root.AddChild(rightPanel.Container)
	root.AddChild(toolbarContainer)
	// The name dialog covers everything else while open.
	root.AddChild(leftPanel.NameOverlay)

	ui.Container = root
	return &editorUI{
		UI:       ui,
		ToolBar:  toolBar,
		Left:     leftPanel,
		Tilesets: rightPanel,
	}
}
