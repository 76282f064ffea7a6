package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/tilemapper/prefabs"
	"github.com/milk9111/tilemapper/tileset"
)

const viewSize = 512

// previewGame steps through the tiles of one sliced tileset so a spec's
// margin and spacing can be checked by eye.
type previewGame struct {
	ts          *tileset.Tileset
	tiles       []*ebiten.Image
	current     int
	tick        int
	ticksPerFrm int
	paused      bool
}

func (g *previewGame) Update() error {
	n := len(g.tiles)
	if n == 0 {
		return nil
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.current = (g.current + 1) % n
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.current = (g.current - 1 + n) % n
	}
	if g.paused || n <= 1 {
		return nil
	}
	g.tick++
	if g.tick >= g.ticksPerFrm {
		g.tick = 0
		g.current = (g.current + 1) % n
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	if len(g.tiles) == 0 {
		ebitenutil.DebugPrintAt(screen, "tileset has no tiles", 8, 8)
		return
	}
	tile := g.tiles[g.current]
	fw := tile.Bounds().Dx()
	fh := tile.Bounds().Dy()
	scale := float64(viewSize/2) / float64(max(fw, fh))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((viewSize-float64(fw)*scale)/2, (viewSize-float64(fh)*scale)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(tile, op)

	r, _ := g.ts.Region(g.current)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  tile %d/%d  region %v\n%dx%d grid  space: pause  arrows: step",
		g.ts.Name(), g.current, len(g.tiles), r, g.ts.Columns(), g.ts.Rows()), 8, 8)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	specName := flag.String("tileset", "terrain.yaml", "Tileset prefab to preview")
	assetsDir := flag.String("dir", "assets", "Directory containing tileset images")
	fps := flag.Int("fps", 2, "Tiles shown per second")
	flag.Parse()

	spec, err := prefabs.LoadTilesetSpec(*specName)
	if err != nil {
		log.Fatal(err)
	}
	cat := tileset.NewCatalog(tileset.DirSource{Roots: []string{*assetsDir}})
	ts, err := cat.Load(spec)
	if err != nil {
		log.Fatal(err)
	}

	tiles := make([]*ebiten.Image, 0, ts.Len())
	for id := 0; id < ts.Len(); id++ {
		img, err := ts.Tile(id)
		if err != nil {
			log.Printf("tile %d: %v", id, err)
			continue
		}
		tiles = append(tiles, ebiten.NewImageFromImage(img))
	}
	ticks := 1
	if *fps > 0 {
		ticks = max(60 / *fps, 1)
	}

	g := &previewGame{ts: ts, tiles: tiles, ticksPerFrm: ticks}
	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("Tileset Preview: " + spec.Name)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
