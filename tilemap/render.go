package tilemap

import (
	"image"

	"github.com/milk9111/tilemapper/camera"
	"github.com/milk9111/tilemapper/layers"
)

// Render composites every layer onto dst, back to front, so the first layer
// in render order ends up on top. The selected layer is drawn at full
// opacity and the rest with their preview images.
func (e *Engine) Render(dst Surface, viewport camera.Vec) {
	w, h := dst.Size()
	selected, _ := e.store.Selected()
	ls := e.store.Layers()
	for i := len(ls) - 1; i >= 0; i-- {
		l := ls[i]
		e.renderLayer(dst, l, viewport, w, h, l.Name() == selected)
	}
}

func (e *Engine) renderLayer(dst Surface, l *layers.Layer, viewport camera.Vec, w, h int, active bool) {
	off := camera.ScreenOffset(viewport, l.Parallax())

	// off-grid tiles are few and may be any size, so they are not culled
	l.ForEachFree(func(t layers.FreeTile) {
		dst.DrawImage(pick(t.Image, t.Preview, active), t.Pos.X-off.X, t.Pos.Y-off.Y)
	})

	if l.TileCount() == 0 {
		return
	}
	vis := camera.VisibleCells(off, w, h, e.tileSize)
	for y := vis.Min.Y; y <= vis.Max.Y; y++ {
		for x := vis.Min.X; x <= vis.Max.X; x++ {
			c := camera.Cell{X: x, Y: y}
			t, ok := l.Tile(c)
			if !ok {
				continue
			}
			o := camera.CellOrigin(c, e.tileSize).Sub(off)
			dst.DrawImage(pick(t.Image, t.Preview, active), o.X, o.Y)
		}
	}
}

func pick(img, preview image.Image, active bool) image.Image {
	if active || preview == nil {
		return img
	}
	return preview
}
