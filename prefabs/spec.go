package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/tilemapper/tileset"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// TilesetSpec is the YAML form of a tileset.Spec.
type TilesetSpec struct {
	Name       string     `yaml:"name"`
	Type       string     `yaml:"type"`
	Image      string     `yaml:"image"`
	TileWidth  int        `yaml:"tile_width"`
	TileHeight int        `yaml:"tile_height"`
	Margin     int        `yaml:"margin"`
	Spacing    int        `yaml:"spacing"`
	Colorkey   *YAMLColor `yaml:"colorkey"`
}

// Tileset converts the prefab into a validated tileset.Spec. The colorkey
// alpha is ignored.
func (s TilesetSpec) Tileset() (tileset.Spec, error) {
	spec := tileset.Spec{
		Name:       s.Name,
		Type:       s.Type,
		ImagePath:  s.Image,
		TileWidth:  s.TileWidth,
		TileHeight: s.TileHeight,
		Margin:     s.Margin,
		Spacing:    s.Spacing,
	}
	if spec.Type == "" {
		spec.Type = spec.Name
	}
	if s.Colorkey != nil && s.Colorkey.Color != nil {
		c := color.NRGBAModel.Convert(s.Colorkey.Color).(color.NRGBA)
		spec.Colorkey = &color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	if err := spec.Validate(); err != nil {
		return tileset.Spec{}, err
	}
	return spec, nil
}

func LoadTilesetSpec(filename string) (tileset.Spec, error) {
	ts, err := LoadSpec[TilesetSpec](filename)
	if err != nil {
		return tileset.Spec{}, err
	}
	spec, err := ts.Tileset()
	if err != nil {
		return tileset.Spec{}, fmt.Errorf("prefabs: tileset %s: %w", filename, err)
	}
	return spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// MarshalYAML writes the colour back as #rrggbb, or #rrggbbaa when it is
// not opaque.
func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
