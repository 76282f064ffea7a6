package levels

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/milk9111/tilemapper/camera"
	"github.com/milk9111/tilemapper/common"
	"github.com/milk9111/tilemapper/layers"
	"github.com/milk9111/tilemapper/tilemap"
	"github.com/milk9111/tilemapper/tileset"
)

var ErrMalformedDocument = fmt.Errorf("%w: malformed document", common.ErrConsistency)

// ImageProvider resolves a tile image by tileset name and tile id.
// *tileset.Catalog implements it.
type ImageProvider interface {
	Image(tileset string, id int) (image.Image, error)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedDocument}, args...)...)
}

// EncodeStore converts a layer store into a document. TileSize and
// Tilesets are left for the caller to fill in.
func EncodeStore(s *layers.Store) MapDocument {
	doc := MapDocument{
		Version:     Version,
		RenderOrder: s.RenderOrder(),
		Layers:      make(map[string]LayerDocument, s.Len()),
	}
	for i, l := range s.Layers() {
		parallax, rn := l.Parallax(), i
		ld := LayerDocument{
			Parallax:     &parallax,
			RenderNumber: &rn,
			OnGrid:       make(map[string]TileRecord, l.TileCount()),
			OffGrid:      make([]TileRecord, 0, l.FreeCount()),
		}
		for _, t := range l.Tiles() {
			ld.OnGrid[camera.FormatCell(t.Cell)] = TileRecord{
				Tileset:  t.Tileset,
				Type:     t.Type,
				Variant:  t.Variant,
				Position: []float64{float64(t.Cell.X), float64(t.Cell.Y)},
			}
		}
		l.ForEachFree(func(t layers.FreeTile) {
			ld.OffGrid = append(ld.OffGrid, TileRecord{
				Tileset:  t.Tileset,
				Type:     t.Type,
				Variant:  t.Variant,
				Position: []float64{t.Pos.X, t.Pos.Y},
			})
		})
		doc.Layers[l.Name()] = ld
	}
	return doc
}

// DecodeStore rebuilds a layer store from doc, re-linking every tile to
// its image through provider. Tiles whose image cannot be resolved are
// kept with a placeholder image. The document is checked in full before
// the store is returned; nothing is returned on error.
func DecodeStore(doc MapDocument, provider ImageProvider, tileSize int) (*layers.Store, error) {
	if doc.Version != Version {
		return nil, malformed("unsupported version %d", doc.Version)
	}
	if tileSize <= 0 {
		return nil, malformed("tile size %d", tileSize)
	}
	if doc.RenderOrder == nil {
		return nil, malformed("missing render_order")
	}
	if doc.Layers == nil {
		return nil, malformed("missing layers")
	}
	if len(doc.RenderOrder) != len(doc.Layers) {
		return nil, malformed("render_order names %d layers, document has %d", len(doc.RenderOrder), len(doc.Layers))
	}

	r := newRelinker(provider, tileSize)
	s := layers.NewStore()
	for i, name := range doc.RenderOrder {
		ld, ok := doc.Layers[name]
		if !ok {
			return nil, malformed("render_order names unknown layer %q", name)
		}
		if err := decodeLayer(s, name, i, ld, r); err != nil {
			return nil, err
		}
	}
	s.Events()
	return s, nil
}

func decodeLayer(s *layers.Store, name string, index int, ld LayerDocument, r *relinker) error {
	switch {
	case ld.Parallax == nil:
		return malformed("layer %q: missing parallax", name)
	case ld.RenderNumber == nil:
		return malformed("layer %q: missing render_number", name)
	case *ld.RenderNumber != index:
		return malformed("layer %q: render_number %d, render_order index %d", name, *ld.RenderNumber, index)
	case ld.OnGrid == nil:
		return malformed("layer %q: missing on_grid", name)
	case ld.OffGrid == nil:
		return malformed("layer %q: missing off_grid", name)
	}
	// Add also rejects a name listed twice in render_order.
	if err := s.Add(name, *ld.Parallax); err != nil {
		return malformed("layer %q: %v", name, err)
	}
	l, _ := s.Layer(name)

	keys := make([]string, 0, len(ld.OnGrid))
	for k := range ld.OnGrid {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rec := ld.OnGrid[key]
		cell, err := camera.ParseCell(key)
		if err != nil {
			return malformed("layer %q: %v", name, err)
		}
		pos, err := position(rec)
		if err != nil {
			return malformed("layer %q tile %q: %v", name, key, err)
		}
		if pos.X != float64(cell.X) || pos.Y != float64(cell.Y) {
			return malformed("layer %q tile %q: position %v does not match its key", name, key, rec.Position)
		}
		img, preview := r.images(rec)
		l.Put(layers.Tile{
			Tileset: rec.Tileset,
			Type:    rec.Type,
			Variant: rec.Variant,
			Cell:    cell,
			Image:   img,
			Preview: preview,
		})
	}

	for i, rec := range ld.OffGrid {
		pos, err := position(rec)
		if err != nil {
			return malformed("layer %q off-grid tile %d: %v", name, i, err)
		}
		img, preview := r.images(rec)
		added := l.AddFree(layers.FreeTile{
			Tileset: rec.Tileset,
			Type:    rec.Type,
			Variant: rec.Variant,
			Pos:     pos,
			Image:   img,
			Preview: preview,
		})
		if !added {
			return malformed("layer %q off-grid tile %d: duplicate position %v", name, i, rec.Position)
		}
	}
	return nil
}

func position(rec TileRecord) (camera.Vec, error) {
	if len(rec.Position) != 2 {
		return camera.Vec{}, fmt.Errorf("position needs 2 components, got %d", len(rec.Position))
	}
	for _, v := range rec.Position {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return camera.Vec{}, fmt.Errorf("position %v is not finite", rec.Position)
		}
	}
	return camera.Vec{X: rec.Position[0], Y: rec.Position[1]}, nil
}

type tileRef struct {
	tileset string
	variant int
}

type imagePair struct {
	img, preview image.Image
}

// relinker resolves and fits tile images once per (tileset, variant).
type relinker struct {
	provider ImageProvider
	tileSize int
	cache    map[tileRef]imagePair
	missing  *imagePair
}

func newRelinker(p ImageProvider, tileSize int) *relinker {
	return &relinker{provider: p, tileSize: tileSize, cache: make(map[tileRef]imagePair)}
}

func (r *relinker) images(rec TileRecord) (image.Image, image.Image) {
	ref := tileRef{rec.Tileset, rec.Variant}
	if p, ok := r.cache[ref]; ok {
		return p.img, p.preview
	}
	var p imagePair
	img, err := r.resolve(ref)
	if err != nil {
		log.Printf("levels: tile %s/%d: %v", rec.Tileset, rec.Variant, err)
		p = r.placeholder()
	} else {
		fitted := tilemap.Fit(img, r.tileSize)
		p = imagePair{img: fitted, preview: tilemap.Dim(fitted, tilemap.PreviewAlpha)}
	}
	r.cache[ref] = p
	return p.img, p.preview
}

func (r *relinker) resolve(ref tileRef) (image.Image, error) {
	if r.provider == nil {
		return nil, fmt.Errorf("no tilesets loaded")
	}
	return r.provider.Image(ref.tileset, ref.variant)
}

func (r *relinker) placeholder() imagePair {
	if r.missing == nil {
		img := tilemap.MissingTile(r.tileSize)
		r.missing = &imagePair{img: img, preview: tilemap.Dim(img, tilemap.PreviewAlpha)}
	}
	return *r.missing
}

// EncodeTileset converts a tileset spec into its document form.
func EncodeTileset(spec tileset.Spec) TilesetDocument {
	doc := TilesetDocument{
		Name:       spec.Name,
		Type:       spec.Type,
		ImagePath:  spec.ImagePath,
		TileWidth:  spec.TileWidth,
		TileHeight: spec.TileHeight,
		Margin:     spec.Margin,
		Spacing:    spec.Spacing,
	}
	if spec.Colorkey != nil {
		doc.Colorkey = []int{int(spec.Colorkey.R), int(spec.Colorkey.G), int(spec.Colorkey.B)}
	}
	return doc
}

// DecodeTileset is the inverse of EncodeTileset.
func DecodeTileset(doc TilesetDocument) (tileset.Spec, error) {
	spec := tileset.Spec{
		Name:       doc.Name,
		Type:       doc.Type,
		ImagePath:  doc.ImagePath,
		TileWidth:  doc.TileWidth,
		TileHeight: doc.TileHeight,
		Margin:     doc.Margin,
		Spacing:    doc.Spacing,
	}
	if doc.Colorkey != nil {
		if len(doc.Colorkey) != 3 {
			return tileset.Spec{}, malformed("tileset %q: colorkey needs 3 components", doc.Name)
		}
		var c [3]uint8
		for i, v := range doc.Colorkey {
			if v < 0 || v > 255 {
				return tileset.Spec{}, malformed("tileset %q: colorkey component %d out of range", doc.Name, v)
			}
			c[i] = uint8(v)
		}
		spec.Colorkey = &color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
	}
	if err := spec.Validate(); err != nil {
		return tileset.Spec{}, malformed("tileset %q: %v", doc.Name, err)
	}
	return spec, nil
}
