package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/milk9111/tilemapper/prefabs"
	"github.com/milk9111/tilemapper/session"
	"github.com/milk9111/tilemapper/tileset"
)

func main() {
	configPath := flag.String("config", prefabs.EditorConfigFile, "Editor config, read from prefabs/ or the bundled default")
	mapPath := flag.String("map", "", "Map document to open (basename under levels/ or a path, .json optional); defaults to the last one opened")
	assetsDir := flag.String("dir", "", "Directory containing tileset images; overrides assets_dir from the config")
	flag.Parse()

	log.Println("Editor starting...")
	cfg, err := prefabs.LoadEditorConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load editor config: %v", err)
	}
	if *assetsDir != "" {
		cfg.Assets = *assetsDir
	}

	sess, err := session.New(cfg.TileSize, tileset.DirSource{Roots: []string{cfg.Assets}})
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	for _, name := range cfg.Tilesets {
		spec, err := prefabs.LoadTilesetSpec(name)
		if err != nil {
			log.Printf("Skipping tileset %s: %v", name, err)
			continue
		}
		if err := sess.LoadTileset(spec); err != nil {
			log.Printf("Skipping tileset %s: %v", name, err)
		}
	}
	for _, l := range cfg.Layers {
		if err := sess.AddLayer(l.Name, l.Parallax); err != nil {
			log.Printf("Skipping layer %s: %v", l.Name, err)
		}
	}
	if order := sess.Engine.Store().RenderOrder(); len(order) > 0 {
		_ = sess.SelectLayer(order[0])
	}

	assets, err := ListImageAssets(cfg.Assets)
	if err != nil {
		log.Printf("Failed to list assets in %s: %v", cfg.Assets, err)
	}

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
		clipboardOK = false
	}

	game := newEditorGame(cfg, *configPath, sess, assets, clipboardOK)
	defer game.Close()

	path := *mapPath
	if path == "" {
		path = cfg.LastDocument
	}
	if path != "" {
		game.openMap(path)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
