package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

type layerHandlers struct {
	Selected func(name string)
	New      func(name string)
	Delete   func(name string)
	Rename   func(from, to string)
	MoveUp   func(name string)
	MoveDown func(name string)
	Parallax func(name, value string)
}

func buildLeftPanelUI(
	theme *widget.Theme,
	fontFace *text.Face,
	fileName string,
	h layerHandlers,
) *LeftPanelUI {
	layerPanel := NewLayerPanel()
	layerPanel.onNewLayer = h.New
	layerPanel.onDeleteLayer = h.Delete
	layerPanel.onRename = h.Rename
	layerPanel.onMoveUp = h.MoveUp
	layerPanel.onMoveDown = h.MoveDown
	layerPanel.onParallax = h.Parallax

	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	fileNameInput := addFileNameSection(leftPanel, fontFace, fileName)
	addLayersSection(leftPanel, theme, fontFace, layerPanel, h.Selected)

	dialog := newNameDialog(theme, fontFace)
	layerPanel.openNameDialog = dialog.Open

	return &LeftPanelUI{
		Container:     leftPanel,
		LayerPanel:    layerPanel,
		FileNameInput: fileNameInput,
		NameOverlay:   dialog.Overlay,
	}
}
