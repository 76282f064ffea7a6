package tileset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/milk9111/tilemapper/common"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func fill(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"tiles/terrain.png": {Data: encodePNG(t, halves(128, 64))},
		"tiles/water.png":   {Data: encodePNG(t, fill(64, 64, blue))},
		"tiles/broken.png":  {Data: []byte("not a png")},
	}
}

func terrainSpec() Spec {
	return Spec{Name: "terrain", Type: "grass", ImagePath: "tiles/terrain.png", TileWidth: 64, TileHeight: 64}
}

func TestCatalogLoad(t *testing.T) {
	c := NewCatalog(FSSource{FS: testFS(t)})
	ts, err := c.Load(terrainSpec())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ts.Len() != 2 {
		t.Fatalf("expected 2 tiles, got %d", ts.Len())
	}
	img, err := c.Image("terrain", 1)
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if got := color.NRGBAModel.Convert(img.At(5, 5)); got != blue {
		t.Fatalf("tile 1 = %v", got)
	}
	if _, err := c.Load(terrainSpec()); !errors.Is(err, ErrDuplicateTileset) {
		t.Fatalf("duplicate load err = %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("duplicate load changed the catalog")
	}
}

func TestCatalogLoadImageErrors(t *testing.T) {
	cases := []struct {
		name string
		path string
	}{
		{"missing", "tiles/nope.png"},
		{"empty_path", ""},
		{"undecodable", "tiles/broken.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCatalog(FSSource{FS: testFS(t)})
			s := terrainSpec()
			s.ImagePath = tc.path
			_, err := c.Load(s)
			if !errors.Is(err, ErrImageNotFound) || !errors.Is(err, common.ErrResource) {
				t.Fatalf("err = %v", err)
			}
			var ie *ImageError
			if !errors.As(err, &ie) || ie.Path != tc.path {
				t.Fatalf("expected an *ImageError for %q, got %v", tc.path, err)
			}
			if c.Len() != 0 {
				t.Fatalf("failed load registered a tileset")
			}
		})
	}
}

func TestCatalogLoadTooLarge(t *testing.T) {
	c := NewCatalog(FSSource{FS: testFS(t)})
	s := terrainSpec()
	s.TileWidth = 256
	if _, err := c.Load(s); !errors.Is(err, ErrTileTooLarge) {
		t.Fatalf("err = %v", err)
	}
}

func TestCatalogUnload(t *testing.T) {
	c := NewCatalog(FSSource{FS: testFS(t)})
	_, _ = c.Load(terrainSpec())
	_, _ = c.Load(Spec{Name: "water", ImagePath: "tiles/water.png", TileWidth: 32, TileHeight: 32})
	if err := c.Select("terrain"); err != nil {
		t.Fatalf("select: %v", err)
	}
	placed, _ := c.Image("terrain", 0)

	if err := c.Unload("terrain"); err != nil {
		t.Fatalf("unload: %v", err)
	}
	if _, ok := c.Selected(); ok {
		t.Fatalf("unloading the selected tileset should clear the selection")
	}
	if got := c.Names(); len(got) != 1 || got[0] != "water" {
		t.Fatalf("names = %v", got)
	}
	if _, err := c.Image("terrain", 0); !errors.Is(err, ErrUnknownTileset) {
		t.Fatalf("image from unloaded tileset err = %v", err)
	}
	if got := color.NRGBAModel.Convert(placed.At(0, 0)); got != red {
		t.Fatalf("image handed out before unload changed: %v", got)
	}
	if err := c.Unload("terrain"); !errors.Is(err, ErrUnknownTileset) {
		t.Fatalf("second unload err = %v", err)
	}
}

func TestCatalogSpecsAndSelection(t *testing.T) {
	c := NewCatalog(FSSource{FS: testFS(t)})
	_, _ = c.Load(Spec{Name: "water", ImagePath: "tiles/water.png", TileWidth: 32, TileHeight: 32})
	_, _ = c.Load(terrainSpec())

	specs := c.Specs()
	if len(specs) != 2 || specs[0].Name != "water" || specs[1] != terrainSpec() {
		t.Fatalf("specs = %+v", specs)
	}
	if err := c.Select("lava"); !errors.Is(err, ErrUnknownTileset) {
		t.Fatalf("select unknown err = %v", err)
	}
	_ = c.Select("water")
	ts, ok := c.Selected()
	if !ok || ts.Name() != "water" || ts.Len() != 4 {
		t.Fatalf("selected = %v, %v", ts, ok)
	}
	if _, err := c.Image("water", 4); !errors.Is(err, ErrUnknownTile) {
		t.Fatalf("out of range image err = %v", err)
	}
}

func TestCatalogReload(t *testing.T) {
	fsys := testFS(t)
	c := NewCatalog(FSSource{FS: fsys})
	_, _ = c.Load(Spec{Name: "water", ImagePath: "tiles/water.png", TileWidth: 32, TileHeight: 32})
	_, _ = c.Load(terrainSpec())
	_ = c.Select("terrain")

	fsys["tiles/terrain.png"] = &fstest.MapFile{Data: encodePNG(t, fill(128, 64, blue))}
	ts, err := c.Reload("terrain")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	img, _ := ts.Tile(0)
	if got := color.NRGBAModel.Convert(img.At(0, 0)); got != blue {
		t.Fatalf("reloaded tile = %v", got)
	}
	if got := c.Names(); got[1] != "terrain" {
		t.Fatalf("reload moved the tileset: %v", got)
	}
	if sel, _ := c.Selected(); sel != ts {
		t.Fatalf("selection should point at the reloaded tileset")
	}

	delete(fsys, "tiles/terrain.png")
	if _, err := c.Reload("terrain"); !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("reload of deleted image err = %v", err)
	}
	if cur, _ := c.Get("terrain"); cur != ts {
		t.Fatalf("failed reload replaced the tileset")
	}
	if _, err := c.Reload("lava"); !errors.Is(err, ErrUnknownTileset) {
		t.Fatalf("reload unknown err = %v", err)
	}
}

func TestFSSourcePaths(t *testing.T) {
	fsys := fstest.MapFS{"terrain.png": {Data: encodePNG(t, halves(128, 64))}}
	cases := []struct {
		name   string
		prefix string
		path   string
	}{
		{"plain", "", "terrain.png"},
		{"prefixed", "assets", "assets/terrain.png"},
		{"absolute_prefixed", "assets", "/home/me/game/assets/terrain.png"},
		{"base_name_fallback", "", "some/other/dir/terrain.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := FSSource{FS: fsys, Prefix: tc.prefix}
			img, err := src.Open(tc.path)
			if err != nil {
				t.Fatalf("open %q: %v", tc.path, err)
			}
			if b := img.Bounds(); b.Dx() != 128 {
				t.Fatalf("bounds = %v", b)
			}
		})
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "terrain.png")
	if err := os.WriteFile(file, encodePNG(t, halves(128, 64)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src := DirSource{Roots: []string{dir}}

	for _, p := range []string{file, "terrain.png", "elsewhere/terrain.png"} {
		resolved, ok := src.Resolve(p)
		if !ok || resolved != file {
			t.Fatalf("Resolve(%q) = %q, %v", p, resolved, ok)
		}
	}
	if _, ok := src.Resolve("nothing.png"); ok {
		t.Fatalf("resolved a missing file")
	}
	if _, err := src.Open("nothing.png"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("open missing err = %v", err)
	}

	c := NewCatalog(src)
	s := terrainSpec()
	s.ImagePath = "terrain.png"
	if _, err := c.Load(s); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := c.Affected(file); len(got) != 1 || got[0] != "terrain" {
		t.Fatalf("affected = %v", got)
	}
	if got := c.Affected(filepath.Join(dir, "other.png")); len(got) != 0 {
		t.Fatalf("unrelated file affected %v", got)
	}
	if got := c.WatchDirs(); len(got) != 1 || got[0] != dir {
		t.Fatalf("watch dirs = %v", got)
	}
}

func TestWatcherReportsImageChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	file := filepath.Join(dir, "terrain.png")
	if err := os.WriteFile(file, encodePNG(t, halves(2, 2)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != file {
			t.Fatalf("event for %q, want %q", got, file)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", file)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
