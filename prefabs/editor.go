package prefabs

import (
	"fmt"
	"image/color"

	"gopkg.in/yaml.v3"
)

const EditorConfigFile = "editor.yaml"

// EditorConfig is editor.yaml. Tilesets lists the tileset prefabs
// preloaded at startup; when the key is left out every bundled tileset
// prefab is loaded.
type EditorConfig struct {
	TileSize int         `yaml:"tile_size"`
	Window   WindowSpec  `yaml:"window"`
	Camera   CameraSpec  `yaml:"camera"`
	Colors   ColorsSpec  `yaml:"colors"`
	Assets   string      `yaml:"assets_dir"`
	Tilesets []string    `yaml:"tilesets"`
	Layers   []LayerSpec `yaml:"layers"`
	// LastDocument is the map opened or saved most recently.
	LastDocument string `yaml:"last_document"`
}

type WindowSpec struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type CameraSpec struct {
	Speed     float64 `yaml:"speed"`
	WheelStep float64 `yaml:"wheel_step"`
}

type ColorsSpec struct {
	Background YAMLColor `yaml:"background"`
	Grid       YAMLColor `yaml:"grid"`
	Hover      YAMLColor `yaml:"hover"`
	Delete     YAMLColor `yaml:"delete"`
}

// LayerSpec is a layer created for a new, empty map. Layers are listed
// topmost first.
type LayerSpec struct {
	Name     string  `yaml:"name"`
	Parallax float64 `yaml:"parallax"`
}

// LoadEditorConfig reads the editor config and fills in defaults for
// anything left out.
func LoadEditorConfig(filename string) (EditorConfig, error) {
	cfg, err := LoadSpec[EditorConfig](filename)
	if err != nil {
		return EditorConfig{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func SaveEditorConfig(filename string, cfg EditorConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("prefabs: marshal %s: %w", filename, err)
	}
	return Save(filename, data)
}

func (c *EditorConfig) applyDefaults() {
	if c.TileSize <= 0 {
		c.TileSize = 64
	}
	if c.Window.Title == "" {
		c.Window.Title = "Tilemap Editor"
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window.Width, c.Window.Height = 1280, 720
	}
	if c.Camera.Speed <= 0 {
		c.Camera.Speed = 600
	}
	if c.Camera.WheelStep <= 0 {
		c.Camera.WheelStep = 40
	}
	if c.Assets == "" {
		c.Assets = "assets"
	}
	if c.Tilesets == nil {
		c.Tilesets = bundledTilesets()
	}
	defaultColor(&c.Colors.Background, color.NRGBA{R: 24, G: 24, B: 32, A: 255})
	defaultColor(&c.Colors.Grid, color.NRGBA{R: 255, G: 255, B: 255, A: 48})
	defaultColor(&c.Colors.Hover, color.NRGBA{R: 255, G: 255, B: 255, A: 96})
	defaultColor(&c.Colors.Delete, color.NRGBA{R: 255, G: 0, B: 0, A: 96})
}

// bundledTilesets lists every bundled prefab except the editor config.
func bundledTilesets() []string {
	var names []string
	for _, n := range Names() {
		if n != EditorConfigFile {
			names = append(names, n)
		}
	}
	return names
}

func defaultColor(c *YAMLColor, def color.Color) {
	if c.Color == nil {
		c.Color = def
	}
}
