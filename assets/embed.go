package assets

import (
	"embed"

	"github.com/milk9111/tilemapper/tileset"
)

//go:embed *.png
var assetsFS embed.FS

// Source serves the bundled tileset images. Paths may be given relative
// to this directory or with an "assets/" prefix.
func Source() tileset.FSSource {
	return tileset.FSSource{FS: assetsFS, Prefix: "assets"}
}

// TerrainSpec describes the bundled two-tile terrain sheet.
func TerrainSpec() tileset.Spec {
	return tileset.Spec{
		Name:       "terrain",
		Type:       "terrain",
		ImagePath:  "assets/terrain.png",
		TileWidth:  64,
		TileHeight: 64,
	}
}
