package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/tilemapper/tileset"
)

func TestLoadEditorConfigBundled(t *testing.T) {
	cfg, err := LoadEditorConfig(EditorConfigFile)
	if err != nil {
		t.Fatalf("LoadEditorConfig: %v", err)
	}
	if cfg.TileSize != 64 || cfg.Camera.Speed != 600 || cfg.Camera.WheelStep != 40 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Tilesets, []string{"terrain.yaml"}) {
		t.Fatalf("tilesets = %v", cfg.Tilesets)
	}
	want := []LayerSpec{{Name: "foreground", Parallax: 1}, {Name: "background", Parallax: 0.5}}
	if !reflect.DeepEqual(cfg.Layers, want) {
		t.Fatalf("layers = %+v", cfg.Layers)
	}
	if got := cfg.Colors.Grid.Color; got != (color.NRGBA{R: 255, G: 255, B: 255, A: 0x30}) {
		t.Fatalf("grid color = %v", got)
	}
}

func TestEditorConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	if err := os.WriteFile(path, []byte("tile_size: 32\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadEditorConfig(path)
	if err != nil {
		t.Fatalf("LoadEditorConfig: %v", err)
	}
	if cfg.TileSize != 32 {
		t.Fatalf("tile size = %d", cfg.TileSize)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 || cfg.Assets != "assets" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if len(cfg.Tilesets) != 1 || cfg.Tilesets[0] != "terrain.yaml" {
		t.Fatalf("default tilesets = %v, want the bundled terrain prefab", cfg.Tilesets)
	}
	for name, c := range map[string]YAMLColor{
		"background": cfg.Colors.Background,
		"grid":       cfg.Colors.Grid,
		"hover":      cfg.Colors.Hover,
		"delete":     cfg.Colors.Delete,
	} {
		if c.Color == nil {
			t.Fatalf("%s color not defaulted", name)
		}
	}
}

func TestSaveEditorConfig(t *testing.T) {
	cfg, err := LoadEditorConfig(EditorConfigFile)
	if err != nil {
		t.Fatalf("LoadEditorConfig: %v", err)
	}
	cfg.LastDocument = "levels/cave.json"

	path := filepath.Join(t.TempDir(), "nested", "editor.yaml")
	if err := SaveEditorConfig(path, cfg); err != nil {
		t.Fatalf("SaveEditorConfig: %v", err)
	}
	got, err := LoadEditorConfig(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadTilesetSpec(t *testing.T) {
	spec, err := LoadTilesetSpec("prefabs/terrain.yaml")
	if err != nil {
		t.Fatalf("LoadTilesetSpec: %v", err)
	}
	want := tileset.Spec{
		Name:       "terrain",
		Type:       "terrain",
		ImagePath:  "assets/terrain.png",
		TileWidth:  64,
		TileHeight: 64,
	}
	if !reflect.DeepEqual(spec, want) {
		t.Fatalf("spec = %+v, want %+v", spec, want)
	}
}

func TestTilesetSpec(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantErr error
		check   func(t *testing.T, s tileset.Spec)
	}{
		{
			name: "colorkey",
			doc:  "name: props\nimage: props.png\ntile_width: 16\ntile_height: 16\ncolorkey: \"#ff00ff\"\n",
			check: func(t *testing.T, s tileset.Spec) {
				if s.Colorkey == nil || *s.Colorkey != (color.RGBA{R: 255, B: 255, A: 255}) {
					t.Fatalf("colorkey = %v", s.Colorkey)
				}
				if s.Type != "props" {
					t.Fatalf("type = %q, want name", s.Type)
				}
			},
		},
		{
			name:    "missing_name",
			doc:     "image: a.png\ntile_width: 16\ntile_height: 16\n",
			wantErr: tileset.ErrInvalidSpec,
		},
		{
			name:    "zero_tile_size",
			doc:     "name: a\nimage: a.png\ntile_width: 0\ntile_height: 16\n",
			wantErr: tileset.ErrInvalidSpec,
		},
		{
			name:    "negative_spacing",
			doc:     "name: a\nimage: a.png\ntile_width: 8\ntile_height: 8\nspacing: -1\n",
			wantErr: tileset.ErrInvalidSpec,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ts TilesetSpec
			if err := yaml.Unmarshal([]byte(tc.doc), &ts); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			spec, err := ts.Tileset()
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Tileset: %v", err)
			}
			tc.check(t, spec)
		})
	}
}

func TestYAMLColorRejects(t *testing.T) {
	for _, doc := range []string{
		"c: \"#12345\"\n",
		"c: \"#gggggg\"\n",
		"c: [1, 2, 3]\n",
	} {
		var v struct {
			C YAMLColor `yaml:"c"`
		}
		if err := yaml.Unmarshal([]byte(doc), &v); err == nil {
			t.Fatalf("expected error for %q", doc)
		}
	}
}

func TestLoadSpecMissing(t *testing.T) {
	if _, err := LoadSpec[TilesetSpec]("missing.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	want := map[string]bool{"editor.yaml": false, "terrain.yaml": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Fatalf("bundled prefab %s missing from %v", n, names)
		}
	}
}
