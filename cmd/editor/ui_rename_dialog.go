package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// nameDialog is a modal prompt for a single name, shared by the new-layer
// and rename actions.
type nameDialog struct {
	Overlay *widget.Container
	Open    func(title, current string, onSubmit func(string))
}

func newNameDialog(theme *widget.Theme, fontFace *text.Face) *nameDialog {
	var submit func(string)

	overlay := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{0, 0, 0, 160})),
	)
	overlay.GetWidget().Visibility = widget.Visibility_Hide

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 140),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 220, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	dialog.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}

	title := widget.NewLabel(
		widget.LabelOpts.Text("", fontFace, &widget.LabelColor{Idle: color.Black, Disabled: color.Gray{Y: 140}}),
	)

	closeDialog := func() {
		overlay.GetWidget().Visibility = widget.Visibility_Hide
		submit = nil
	}
	finish := func(value string) {
		if submit != nil && value != "" {
			submit(value)
		}
		closeDialog()
	}

	nameInput := newTextInput(fontFace, 260,
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			finish(args.InputText)
		}),
	)

	buttonsRow := newRow(8)
	buttonsRow.AddChild(newButton(theme, fontFace, "OK", func() {
		finish(nameInput.GetText())
	}))
	buttonsRow.AddChild(newButton(theme, fontFace, "Cancel", closeDialog))

	dialog.AddChild(title)
	dialog.AddChild(nameInput)
	dialog.AddChild(buttonsRow)
	overlay.AddChild(dialog)

	open := func(heading, current string, onSubmit func(string)) {
		submit = onSubmit
		title.Label = heading
		nameInput.SetText(current)
		nameInput.Focus(true)
		overlay.GetWidget().Visibility = widget.Visibility_Show
	}

	return &nameDialog{Overlay: overlay, Open: open}
}
