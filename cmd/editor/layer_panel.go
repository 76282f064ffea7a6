package main

import (
	"strconv"

	"github.com/ebitenui/ebitenui/widget"
)

// LayerEntry is a small value used by the UI list to represent a layer row.
// Index is the layer's render number; 0 is drawn on top.
type LayerEntry struct {
	Index    int
	Name     string
	Parallax float64
}

// LayerPanel holds the list widget and small helpers used by the editor UI.
type LayerPanel struct {
	list           *widget.List
	parallaxInput  *widget.TextInput
	entries        []any
	openNameDialog func(title, current string, onSubmit func(string))

	onNewLayer    func(name string)
	onDeleteLayer func(name string)
	onRename      func(from, to string)
	onMoveUp      func(name string)
	onMoveDown    func(name string)
	onParallax    func(name, value string)
	// suppressEvents, when true, causes the selection handler to ignore
	// programmatic selections.
	suppressEvents bool
}

func NewLayerPanel() *LayerPanel {
	return &LayerPanel{}
}

func (lp *LayerPanel) SetLayers(layers []LayerEntry) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	entries := make([]any, len(layers))
	for i, l := range layers {
		entries[i] = l
	}
	lp.entries = entries
	lp.list.SetEntries(entries)
	lp.suppressEvents = false
}

// SetSelected highlights the named layer; an unknown name leaves the list
// as is.
func (lp *LayerPanel) SetSelected(name string) {
	if lp == nil || lp.list == nil {
		return
	}
	for _, e := range lp.entries {
		entry := e.(LayerEntry)
		if entry.Name != name {
			continue
		}
		lp.suppressEvents = true
		lp.list.SetSelectedEntry(e)
		lp.suppressEvents = false
		lp.setParallaxText(entry.Parallax)
		return
	}
}

// Selected returns the highlighted layer.
func (lp *LayerPanel) Selected() (LayerEntry, bool) {
	if lp == nil || lp.list == nil {
		return LayerEntry{}, false
	}
	entry, ok := lp.list.SelectedEntry().(LayerEntry)
	return entry, ok
}

func (lp *LayerPanel) setParallaxText(p float64) {
	if lp.parallaxInput == nil {
		return
	}
	lp.suppressEvents = true
	lp.parallaxInput.SetText(strconv.FormatFloat(p, 'g', -1, 64))
	lp.suppressEvents = false
}
