// Package session wires the tilemap engine and the tileset catalog into the
// operations the editor frontend calls.
package session

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/milk9111/tilemapper/levels"
	"github.com/milk9111/tilemapper/tilemap"
	"github.com/milk9111/tilemapper/tileset"
)

// Session is one open map: its layers, its tilesets and where it is saved.
type Session struct {
	Engine  *tilemap.Engine
	Catalog *tileset.Catalog
	Path    string

	variant int
}

func New(tileSize int, src tileset.Source) (*Session, error) {
	e, err := tilemap.NewEngine(tileSize)
	if err != nil {
		return nil, err
	}
	return &Session{Engine: e, Catalog: tileset.NewCatalog(src)}, nil
}

// Apply runs one pointer action. Without an explicit brush the current
// one is used.
func (s *Session) Apply(in tilemap.Input) int {
	if in.Brush == nil && !in.Deleting {
		in.Brush = s.Brush()
	}
	return s.Engine.Apply(in)
}

func (s *Session) AddLayer(name string, parallax float64) error {
	return s.Engine.Store().Add(name, parallax)
}

func (s *Session) RemoveLayer(name string) error {
	return s.Engine.Store().Remove(name)
}

func (s *Session) ReorderLayers(order []string) error {
	return s.Engine.Store().Reorder(order)
}

func (s *Session) SelectLayer(name string) error {
	return s.Engine.Store().Select(name)
}

// LoadTileset loads a tileset and makes it the current one.
func (s *Session) LoadTileset(spec tileset.Spec) error {
	if _, err := s.Catalog.Load(spec); err != nil {
		return err
	}
	return s.SelectTileset(spec.Name)
}

func (s *Session) UnloadTileset(name string) error {
	return s.Catalog.Unload(name)
}

func (s *Session) SelectTileset(name string) error {
	if err := s.Catalog.Select(name); err != nil {
		return err
	}
	s.variant = 0
	return nil
}

// SelectTile picks the variant of the current tileset used for drawing.
func (s *Session) SelectTile(variant int) error {
	ts, ok := s.Catalog.Selected()
	if !ok {
		return fmt.Errorf("%w: no tileset selected", tileset.ErrUnknownTileset)
	}
	if _, err := ts.Tile(variant); err != nil {
		return err
	}
	s.variant = variant
	return nil
}

// Brush returns the current tile, or nil when no tileset is selected.
func (s *Session) Brush() *tilemap.Brush {
	ts, ok := s.Catalog.Selected()
	if !ok {
		return nil
	}
	img, err := ts.Tile(s.variant)
	if err != nil {
		return nil
	}
	return &tilemap.Brush{
		Tileset: ts.Name(),
		Type:    ts.Spec().Type,
		Variant: s.variant,
		Image:   img,
	}
}

// Document encodes the open map together with its tilesets.
func (s *Session) Document() levels.MapDocument {
	doc := levels.EncodeStore(s.Engine.Store())
	doc.TileSize = s.Engine.TileSize()
	for _, spec := range s.Catalog.Specs() {
		doc.Tilesets = append(doc.Tilesets, levels.EncodeTileset(spec))
	}
	return doc
}

// SaveDocument writes the map to path. An empty path reuses the last one,
// or picks a fresh name under levels/.
func (s *Session) SaveDocument(path string) error {
	if path == "" {
		path = s.Path
	}
	if path == "" {
		path = filepath.Join("levels", fmt.Sprintf("level_%d.json", time.Now().Unix()))
	}
	if err := levels.Save(path, s.Document()); err != nil {
		return err
	}
	s.Path = path
	log.Printf("saved %s", path)
	return nil
}

// LoadDocument replaces the open map with the one stored at path.
func (s *Session) LoadDocument(path string) error {
	doc, err := levels.Load(path)
	if err != nil {
		return err
	}
	if err := s.Restore(doc); err != nil {
		return fmt.Errorf("levels: load %s: %w", path, err)
	}
	s.Path = path
	log.Printf("loaded %s", path)
	return nil
}

// Restore replaces the open map with doc. Tilesets and layers are decoded
// into fresh values first; on error the session is left untouched.
// Tilesets whose image is missing are skipped and their tiles drawn with
// the placeholder image.
func (s *Session) Restore(doc levels.MapDocument) error {
	cat := tileset.NewCatalog(s.Catalog.Source())
	for _, td := range doc.Tilesets {
		spec, err := levels.DecodeTileset(td)
		if err != nil {
			return err
		}
		if _, err := cat.Load(spec); err != nil {
			if errors.Is(err, tileset.ErrImageNotFound) {
				log.Printf("session: %v", err)
				continue
			}
			return fmt.Errorf("%w: tileset %q: %v", levels.ErrMalformedDocument, spec.Name, err)
		}
	}

	store, err := levels.DecodeStore(doc, cat, doc.TileSize)
	if err != nil {
		return err
	}
	e, err := tilemap.NewEngine(doc.TileSize)
	if err != nil {
		return err
	}
	e.Replace(store)

	s.Engine = e
	s.Catalog = cat
	s.variant = 0
	if names := cat.Names(); len(names) > 0 {
		_ = cat.Select(names[0])
	}
	return nil
}

// ReloadChanged re-slices every tileset whose image is file and returns
// their names. Tiles already placed keep their old images.
func (s *Session) ReloadChanged(file string) []string {
	var reloaded []string
	for _, name := range s.Catalog.Affected(file) {
		if _, err := s.Catalog.Reload(name); err != nil {
			log.Printf("session: reload %s: %v", name, err)
			continue
		}
		reloaded = append(reloaded, name)
	}
	return reloaded
}
