package levels

// Version is the map document format written by this package.
const Version = 1

// MapDocument is the on-disk form of a map. RenderOrder is authoritative;
// each layer's RenderNumber is a derived copy that must agree with it.
type MapDocument struct {
	Version     int                      `json:"version"`
	TileSize    int                      `json:"tile_size"`
	RenderOrder []string                 `json:"render_order"`
	Layers      map[string]LayerDocument `json:"layers"`
	Tilesets    []TilesetDocument        `json:"tilesets,omitempty"`
}

type LayerDocument struct {
	Parallax     *float64              `json:"parallax"`
	RenderNumber *int                  `json:"render_number"`
	OnGrid       map[string]TileRecord `json:"on_grid"`
	OffGrid      []TileRecord          `json:"off_grid"`
}

// TileRecord identifies a tile by tileset and variant. Position is the
// grid cell for on-grid tiles and the world position for off-grid ones.
type TileRecord struct {
	Tileset  string    `json:"tileset"`
	Type     string    `json:"type"`
	Variant  int       `json:"variant"`
	Position []float64 `json:"position"`
}

type TilesetDocument struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	ImagePath  string `json:"image_path"`
	TileWidth  int    `json:"tile_width"`
	TileHeight int    `json:"tile_height"`
	Margin     int    `json:"margin"`
	Spacing    int    `json:"spacing"`
	Colorkey   []int  `json:"colorkey"`
}
