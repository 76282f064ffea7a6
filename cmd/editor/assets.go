package main

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/milk9111/tilemapper/tileset"
)

// AssetInfo holds information about an image file that can be loaded as a
// tileset.
type AssetInfo struct {
	Name string
	Path string
}

// ListImageAssets scans dir for images the tileset decoders understand.
func ListImageAssets(dir string) ([]AssetInfo, error) {
	var assets []AssetInfo
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !tileset.IsImage(d.Name()) {
			return nil
		}
		assets = append(assets, AssetInfo{
			Name: d.Name(),
			Path: filepath.ToSlash(path),
		})
		return nil
	})
	return assets, err
}

// assetSpec builds a tileset spec for an image dropped into the assets
// folder, sliced at the map's tile size.
func assetSpec(a AssetInfo, tileSize int) tileset.Spec {
	name := strings.TrimSuffix(a.Name, filepath.Ext(a.Name))
	return tileset.Spec{
		Name:       name,
		Type:       name,
		ImagePath:  a.Path,
		TileWidth:  tileSize,
		TileHeight: tileSize,
	}
}
