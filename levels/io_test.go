package levels

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/milk9111/tilemapper/assets"
	"github.com/milk9111/tilemapper/camera"
	"github.com/milk9111/tilemapper/tileset"
)

func TestSaveLoad(t *testing.T) {
	doc := EncodeStore(buildStore(t, testCatalog(t)))
	doc.TileSize = 64
	doc.Tilesets = []TilesetDocument{EncodeTileset(tileset.Spec{Name: "terrain", ImagePath: "terrain.png", TileWidth: 64, TileHeight: 64})}

	path := filepath.Join(t.TempDir(), "maps", "nested", "level.json")
	if err := Save(path, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Fatalf("loaded document differs from saved one")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err = %v", err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("bad json err = %v", err)
	}
}

func TestBundledSample(t *testing.T) {
	names := Bundled()
	if len(names) == 0 || names[0] != "sample.json" {
		t.Fatalf("bundled maps = %v", names)
	}
	doc, err := LoadFromFS("sample.json")
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}

	cat := tileset.NewCatalog(assets.Source())
	for _, td := range doc.Tilesets {
		spec, err := DecodeTileset(td)
		if err != nil {
			t.Fatalf("decode tileset: %v", err)
		}
		if _, err := cat.Load(spec); err != nil {
			t.Fatalf("load tileset %q: %v", spec.Name, err)
		}
	}
	s, err := DecodeStore(doc, cat, doc.TileSize)
	if err != nil {
		t.Fatalf("decode sample: %v", err)
	}
	if got := s.RenderOrder(); !reflect.DeepEqual(got, []string{"foreground", "background"}) {
		t.Fatalf("render order = %v", got)
	}
	fg, _ := s.Layer("foreground")
	if fg.TileCount() != 3 || fg.FreeCount() != 1 {
		t.Fatalf("foreground has %d tiles and %d free tiles", fg.TileCount(), fg.FreeCount())
	}
	if _, ok := fg.Tile(camera.Cell{X: 2, Y: 3}); !ok {
		t.Fatalf("expected a tile at 2;3")
	}
	if _, err := LoadFromFS("nope.json"); err == nil {
		t.Fatalf("expected an error for a missing sample")
	}
}
