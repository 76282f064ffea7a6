package tileset

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/milk9111/tilemapper/common"
)

var (
	ErrDuplicateTileset = fmt.Errorf("%w: duplicate tileset", common.ErrValidation)
	ErrUnknownTileset   = fmt.Errorf("%w: unknown tileset", common.ErrValidation)
	ErrImageNotFound    = fmt.Errorf("%w: image not found", common.ErrResource)
)

// ImageError reports an image path that could not be opened or decoded.
type ImageError struct {
	Path string
	Err  error
}

func (e *ImageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("tileset: image %q not found", e.Path)
	}
	return fmt.Sprintf("tileset: image %q: %v", e.Path, e.Err)
}

func (e *ImageError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrImageNotFound}
	}
	return []error{ErrImageNotFound, e.Err}
}

// Catalog holds the loaded tilesets in load order.
type Catalog struct {
	src      Source
	order    []string
	sets     map[string]*Tileset
	selected string
}

func NewCatalog(src Source) *Catalog {
	return &Catalog{src: src, sets: make(map[string]*Tileset)}
}

func (c *Catalog) Source() Source { return c.src }

// Load opens spec.ImagePath through the catalog's source, slices it, and
// registers the result under spec.Name.
func (c *Catalog) Load(spec Spec) (*Tileset, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if _, ok := c.sets[spec.Name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTileset, spec.Name)
	}
	ts, err := c.slice(spec)
	if err != nil {
		return nil, err
	}
	c.order = append(c.order, spec.Name)
	c.sets[spec.Name] = ts
	return ts, nil
}

func (c *Catalog) slice(spec Spec) (*Tileset, error) {
	if c.src == nil {
		return nil, &ImageError{Path: spec.ImagePath, Err: errors.New("no image source")}
	}
	img, err := c.src.Open(spec.ImagePath)
	if err != nil {
		return nil, &ImageError{Path: spec.ImagePath, Err: err}
	}
	return New(spec, img)
}

// Unload drops a tileset. Tiles already placed from it keep their images.
func (c *Catalog) Unload(name string) error {
	idx := c.index(name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownTileset, name)
	}
	c.order = append(c.order[:idx], c.order[idx+1:]...)
	delete(c.sets, name)
	if c.selected == name {
		c.selected = ""
	}
	return nil
}

// Reload re-reads and re-slices a tileset from its source, keeping its
// position in the catalog and its selection. On failure the previous
// tileset stays in place.
func (c *Catalog) Reload(name string) (*Tileset, error) {
	old, ok := c.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTileset, name)
	}
	ts, err := c.slice(old.spec)
	if err != nil {
		return nil, err
	}
	c.sets[name] = ts
	return ts, nil
}

func (c *Catalog) Get(name string) (*Tileset, bool) {
	ts, ok := c.sets[name]
	return ts, ok
}

// Names returns tileset names in load order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Specs returns the specs of all tilesets in load order.
func (c *Catalog) Specs() []Spec {
	out := make([]Spec, len(c.order))
	for i, name := range c.order {
		out[i] = c.sets[name].spec
	}
	return out
}

func (c *Catalog) Len() int { return len(c.order) }

func (c *Catalog) Select(name string) error {
	if _, ok := c.sets[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTileset, name)
	}
	c.selected = name
	return nil
}

func (c *Catalog) Selected() (*Tileset, bool) {
	if c.selected == "" {
		return nil, false
	}
	return c.sets[c.selected], true
}

// Image returns tile id of the named tileset.
func (c *Catalog) Image(tileset string, id int) (image.Image, error) {
	ts, ok := c.sets[tileset]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTileset, tileset)
	}
	return ts.Tile(id)
}

// Affected returns the tilesets whose image resolves to file. It needs a
// Source that implements Resolver.
func (c *Catalog) Affected(file string) []string {
	r, ok := c.src.(Resolver)
	if !ok {
		return nil
	}
	target := absPath(file)
	var out []string
	for _, name := range c.order {
		resolved, ok := r.Resolve(c.sets[name].spec.ImagePath)
		if ok && absPath(resolved) == target {
			out = append(out, name)
		}
	}
	return out
}

// WatchDirs lists the directories holding the loaded tileset images.
func (c *Catalog) WatchDirs() []string {
	r, ok := c.src.(Resolver)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, name := range c.order {
		resolved, ok := r.Resolve(c.sets[name].spec.ImagePath)
		if !ok {
			continue
		}
		dir := filepath.Dir(absPath(resolved))
		if !seen[dir] {
			seen[dir] = true
			out = append(out, dir)
		}
	}
	return out
}

func (c *Catalog) index(name string) int {
	for i, n := range c.order {
		if n == name {
			return i
		}
	}
	return -1
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
