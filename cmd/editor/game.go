package main

import (
	"fmt"
	"image"
	"log"
	"strconv"
	"time"

	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/tilemapper/camera"
	"github.com/milk9111/tilemapper/layers"
	"github.com/milk9111/tilemapper/prefabs"
	"github.com/milk9111/tilemapper/session"
	"github.com/milk9111/tilemapper/tilemap"
	"github.com/milk9111/tilemapper/tileset"
)

const statusDuration = 3 * time.Second

// EditorGame is the ebiten game driving one editing session.
type EditorGame struct {
	cfg     prefabs.EditorConfig
	cfgPath string
	sess    *session.Session
	cam     *camera.Camera
	ui      *editorUI
	images  *imageCache
	watcher *tileset.Watcher
	watched map[string]bool

	tool        Tool
	offGrid     bool
	overlapping bool
	clipboardOK bool

	isPanning bool
	lastPanX  int
	lastPanY  int

	// shownTileset is the tileset whose tiles the picker shows.
	shownTileset *tileset.Tileset
	ghostSrc     image.Image
	ghost        image.Image

	status   string
	statusAt time.Time
}

func newEditorGame(cfg prefabs.EditorConfig, cfgPath string, sess *session.Session, assets []AssetInfo, clipboardOK bool) *EditorGame {
	g := &EditorGame{
		cfg:         cfg,
		cfgPath:     cfgPath,
		sess:        sess,
		cam:         camera.NewCamera(cfg.Camera.Speed, cfg.Camera.WheelStep),
		images:      newImageCache(),
		watched:     make(map[string]bool),
		clipboardOK: clipboardOK,
	}
	g.ui = BuildEditorUI(
		assets,
		sess.Path,
		layerHandlers{
			Selected: g.selectLayer,
			New:      g.newLayer,
			Delete:   g.deleteLayer,
			Rename:   g.renameLayer,
			MoveUp:   g.moveLayerUp,
			MoveDown: g.moveLayerDown,
			Parallax: g.setParallax,
		},
		tilesetHandlers{
			Selected: g.selectTileset,
			Load:     g.loadAsset,
			Unload:   g.unloadTileset,
			Tile:     g.selectTile,
		},
		func(t Tool) { g.tool = t },
		g.toggleGrid,
		g.toggleOverlap,
		g.tool,
	)
	g.refreshLayers()
	g.refreshTilesets()
	g.watchTilesets()
	return g
}

func (g *EditorGame) Update() error {
	// If the UI has a focused text widget (user is typing), suppress hotkeys.
	suppressHotkeys := false
	if fw := g.ui.UI.GetFocusedWidget(); fw != nil {
		switch fw.(type) {
		case *widget.TextInput:
			suppressHotkeys = true
		}
	}

	if !suppressHotkeys {
		if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
			return ebiten.Termination
		}
		g.handleHotkeys()
		g.moveCamera()
	}

	g.ui.UI.Update()

	g.handlePan()
	if !ebuiinput.UIHovered {
		g.handleWheel()
		g.handlePointer()
	}

	g.drainWatcher()
	g.drainLayerEvents()
	return nil
}

func (g *EditorGame) handleHotkeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.saveMap()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.openMap(g.ui.Left.FileNameInput.GetText())
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyDocument()
	case ctrl:
		// Ctrl combinations are not tool hotkeys.
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.setTool(ToolDraw)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.setTool(ToolErase)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.toggleGrid()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.toggleOverlap()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.cycleLayer()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.sess.Engine.Store().Deselect()
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		if name, ok := g.sess.Engine.Store().Selected(); ok {
			g.moveLayerUp(name)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		if name, ok := g.sess.Engine.Store().Selected(); ok {
			g.moveLayerDown(name)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.stepTile(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.stepTile(1)
	}
}

// moveCamera scrolls with WASD or the arrow keys. Ctrl is left alone so
// Ctrl+S does not also scroll.
func (g *EditorGame) moveCamera() {
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		return
	}
	var dir camera.Vec
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y++
	}
	g.cam.Move(dir, 1/float64(ebiten.TPS()))
}

// handlePan drags the camera with the middle mouse button.
func (g *EditorGame) handlePan() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.isPanning = true
		g.lastPanX, g.lastPanY = ebiten.CursorPosition()
	}
	if g.isPanning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		cx, cy := ebiten.CursorPosition()
		g.cam.Drag(float64(cx-g.lastPanX), float64(cy-g.lastPanY))
		g.lastPanX, g.lastPanY = cx, cy
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.isPanning = false
	}
}

// handleWheel scrolls vertically, or horizontally while Alt is held.
func (g *EditorGame) handleWheel() {
	wx, wy := ebiten.Wheel()
	if wy != 0 {
		g.cam.Scroll(wy, ebiten.IsKeyPressed(ebiten.KeyAlt))
	}
	if wx != 0 {
		g.cam.Scroll(wx, true)
	}
}

// handlePointer draws with the left button and erases with the right one.
// Off-grid tiles are placed once per click.
func (g *EditorGame) handlePointer() {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	erase := right || g.tool == ToolErase
	if g.offGrid && !erase && !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	if _, ok := g.sess.Engine.Store().Selected(); !ok {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			g.setStatus("select a layer first")
		}
		return
	}
	cx, cy := ebiten.CursorPosition()
	g.sess.Apply(tilemap.Input{
		Screen:      camera.Vec{X: float64(cx), Y: float64(cy)},
		Camera:      g.cam.Snap(),
		OnGrid:      !g.offGrid,
		Deleting:    erase,
		Overlapping: g.overlapping,
	})
}

func (g *EditorGame) drainLayerEvents() {
	events := g.sess.Engine.Store().Events()
	if len(events) == 0 {
		return
	}
	for _, evt := range events {
		switch evt.Kind {
		case layers.LayerRenamed:
			log.Printf("layer %s renamed to %s", evt.Previous, evt.Layer)
		case layers.LayerSelected, layers.LayerDeselected:
		default:
			log.Printf("layer %s: %s", evt.Kind, evt.Layer)
		}
	}
	g.refreshLayers()
}

// drainWatcher reloads tilesets whose image changed on disk.
func (g *EditorGame) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case file, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if names := g.sess.ReloadChanged(file); len(names) > 0 {
				log.Printf("reloaded tilesets %v from %s", names, file)
				g.shownTileset = nil
				g.refreshTilesets()
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("tileset watcher: %v", err)
		default:
			return
		}
	}
}

// watchTilesets adds the directories of every loaded tileset image to the
// watcher, starting it on first use.
func (g *EditorGame) watchTilesets() {
	for _, dir := range g.sess.Catalog.WatchDirs() {
		if g.watched[dir] {
			continue
		}
		var err error
		if g.watcher == nil {
			g.watcher, err = tileset.NewWatcher(dir)
		} else {
			err = g.watcher.Add(dir)
		}
		if err != nil {
			log.Printf("tileset watcher: watch %s: %v", dir, err)
			continue
		}
		g.watched[dir] = true
	}
}

// Close stops the tileset watcher.
func (g *EditorGame) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

// afterRestore resyncs the panels once the session holds a new map.
func (g *EditorGame) afterRestore() {
	g.shownTileset = nil
	g.refreshLayers()
	g.refreshTilesets()
	g.watchTilesets()
}

func (g *EditorGame) refreshLayers() {
	store := g.sess.Engine.Store()
	list := store.Layers()
	entries := make([]LayerEntry, len(list))
	for i, l := range list {
		entries[i] = LayerEntry{Index: i, Name: l.Name(), Parallax: l.Parallax()}
	}
	g.ui.Left.LayerPanel.SetLayers(entries)
	if name, ok := store.Selected(); ok {
		g.ui.Left.LayerPanel.SetSelected(name)
	}
}

func (g *EditorGame) refreshTilesets() {
	ts, ok := g.sess.Catalog.Selected()
	selected := ""
	if ok {
		selected = ts.Name()
	}
	g.ui.Tilesets.SetTilesets(g.sess.Catalog.Names(), selected)
	if ts != g.shownTileset {
		g.shownTileset = ts
		g.ui.Tilesets.SetTiles(ts)
	}
	if b := g.sess.Brush(); b != nil {
		g.ui.Tilesets.SetTileSelection(b.Variant)
	}
}

func (g *EditorGame) selectLayer(name string) {
	if err := g.sess.SelectLayer(name); err != nil {
		g.report(err)
	}
}

func (g *EditorGame) newLayer(name string) {
	if err := g.sess.AddLayer(name, 1); err != nil {
		g.report(err)
		return
	}
	g.selectLayer(name)
}

func (g *EditorGame) deleteLayer(name string) {
	if err := g.sess.RemoveLayer(name); err != nil {
		g.report(err)
	}
}

func (g *EditorGame) renameLayer(from, to string) {
	if err := g.sess.Engine.Store().Rename(from, to); err != nil {
		g.report(err)
	}
}

func (g *EditorGame) moveLayerUp(name string) {
	if err := g.sess.Engine.Store().MoveUp(name); err != nil {
		g.report(err)
	}
}

func (g *EditorGame) moveLayerDown(name string) {
	if err := g.sess.Engine.Store().MoveDown(name); err != nil {
		g.report(err)
	}
}

func (g *EditorGame) setParallax(name, value string) {
	p, err := strconv.ParseFloat(value, 64)
	if err != nil {
		g.setStatus(fmt.Sprintf("parallax %q is not a number", value))
		return
	}
	if err := g.sess.Engine.Store().SetParallax(name, p); err != nil {
		g.report(err)
	}
}

// cycleLayer selects the next layer down, wrapping to the top.
func (g *EditorGame) cycleLayer() {
	store := g.sess.Engine.Store()
	order := store.RenderOrder()
	if len(order) == 0 {
		return
	}
	next := 0
	if name, ok := store.Selected(); ok {
		n, _ := store.RenderNumber(name)
		next = (n + 1) % len(order)
	}
	g.selectLayer(order[next])
}

func (g *EditorGame) selectTileset(name string) {
	if err := g.sess.SelectTileset(name); err != nil {
		g.report(err)
		return
	}
	g.refreshTilesets()
}

// loadAsset loads an image from the assets folder as a tileset sliced at the
// map's tile size, or selects it when it is already loaded.
func (g *EditorGame) loadAsset(a AssetInfo) {
	spec := assetSpec(a, g.sess.Engine.TileSize())
	if _, ok := g.sess.Catalog.Get(spec.Name); ok {
		g.selectTileset(spec.Name)
		return
	}
	if err := g.sess.LoadTileset(spec); err != nil {
		g.report(err)
		return
	}
	log.Printf("loaded tileset %s from %s", spec.Name, a.Path)
	g.refreshTilesets()
	g.watchTilesets()
}

func (g *EditorGame) unloadTileset(name string) {
	if err := g.sess.UnloadTileset(name); err != nil {
		g.report(err)
		return
	}
	g.refreshTilesets()
}

func (g *EditorGame) selectTile(variant int) {
	if err := g.sess.SelectTile(variant); err != nil {
		g.report(err)
		return
	}
	g.ui.Tilesets.SetTileSelection(variant)
}

func (g *EditorGame) stepTile(delta int) {
	b := g.sess.Brush()
	ts, ok := g.sess.Catalog.Selected()
	if b == nil || !ok || ts.Len() == 0 {
		return
	}
	g.selectTile((b.Variant + delta + ts.Len()) % ts.Len())
}

func (g *EditorGame) setTool(t Tool) {
	g.tool = t
	g.ui.ToolBar.SetTool(t)
}

func (g *EditorGame) toggleGrid() {
	g.offGrid = !g.offGrid
	g.ui.ToolBar.SetPlacement(g.offGrid, g.overlapping)
}

func (g *EditorGame) toggleOverlap() {
	g.overlapping = !g.overlapping
	g.ui.ToolBar.SetPlacement(g.offGrid, g.overlapping)
}

func (g *EditorGame) report(err error) {
	log.Printf("editor: %v", err)
	g.setStatus(err.Error())
}

func (g *EditorGame) setStatus(msg string) {
	g.status = msg
	g.statusAt = time.Now()
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Colors.Background.Color)
	view := g.cam.Snap()
	g.sess.Engine.Render(&screenSurface{dst: screen, cache: g.images}, view)
	g.drawGrid(screen, view)
	if !ebuiinput.UIHovered {
		g.drawHover(screen, view)
	}
	g.ui.UI.Draw(screen)
	g.drawStatus(screen, view)
	g.images.sweep()
}

// drawGrid draws cell borders at the selected layer's parallax.
func (g *EditorGame) drawGrid(screen *ebiten.Image, view camera.Vec) {
	parallax := 1.0
	if l := g.sess.Engine.Store().SelectedLayer(); l != nil {
		parallax = l.Parallax()
	}
	ts := g.sess.Engine.TileSize()
	off := camera.ScreenOffset(view, parallax)
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	r := camera.VisibleCells(off, w, h, ts)
	clr := g.cfg.Colors.Grid.Color
	for x := r.Min.X; x <= r.Max.X; x++ {
		sx := float32(camera.CellOrigin(camera.Cell{X: x}, ts).X - off.X)
		vector.StrokeLine(screen, sx, 0, sx, float32(h), 1, clr, false)
	}
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		sy := float32(camera.CellOrigin(camera.Cell{Y: y}, ts).Y - off.Y)
		vector.StrokeLine(screen, 0, sy, float32(w), sy, 1, clr, false)
	}
}

// drawHover marks where the pointer would act: red for erasing, a ghost of
// the current tile for drawing.
func (g *EditorGame) drawHover(screen *ebiten.Image, view camera.Vec) {
	cx, cy := ebiten.CursorPosition()
	_, origin, ok := g.sess.Engine.Hover(camera.Vec{X: float64(cx), Y: float64(cy)}, view)
	if !ok {
		return
	}
	ts := g.sess.Engine.TileSize()
	size := float32(ts)
	if g.offGrid {
		origin = camera.Vec{X: float64(cx), Y: float64(cy)}
	}
	x, y := float32(origin.X), float32(origin.Y)

	erase := g.tool == ToolErase || ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if erase {
		vector.FillRect(screen, x, y, size, size, g.cfg.Colors.Delete.Color, false)
		return
	}
	if ghost := g.ghostImage(ts); ghost != nil {
		surf := &screenSurface{dst: screen, cache: g.images, alpha: 0.5}
		surf.DrawImage(ghost, origin.X, origin.Y)
	}
	vector.StrokeRect(screen, x, y, size, size, 1, g.cfg.Colors.Hover.Color, false)
}

// ghostImage returns the current tile fitted to the grid, reusing the last
// result while the brush image is unchanged.
func (g *EditorGame) ghostImage(tileSize int) image.Image {
	b := g.sess.Brush()
	if b == nil {
		return nil
	}
	if b.Image != g.ghostSrc {
		g.ghostSrc = b.Image
		g.ghost = tilemap.Fit(b.Image, tileSize)
	}
	return g.ghost
}

func (g *EditorGame) drawStatus(screen *ebiten.Image, view camera.Vec) {
	store := g.sess.Engine.Store()
	layer, ok := store.Selected()
	if !ok {
		layer = "(none)"
	}
	brush := "(none)"
	if b := g.sess.Brush(); b != nil {
		brush = fmt.Sprintf("%s #%d", b.Tileset, b.Variant)
	}
	placement := "on grid"
	if g.offGrid {
		placement = "off grid"
	}
	cx, cy := ebiten.CursorPosition()
	cell := "-"
	if c, _, ok := g.sess.Engine.Hover(camera.Vec{X: float64(cx), Y: float64(cy)}, view); ok {
		cell = c.String()
	}
	line := fmt.Sprintf("layer: %s  tool: %s  %s  tile: %s  cell: %s  camera: %s",
		layer, g.tool, placement, brush, cell, view)
	if g.status != "" && time.Since(g.statusAt) < statusDuration {
		line += "\n" + g.status
	}
	h := screen.Bounds().Dy()
	ebitenutil.DebugPrintAt(screen, line, 232, h-40)
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
