package layers

import (
	"fmt"

	"github.com/milk9111/tilemapper/common"
)

var (
	ErrDuplicateLayer     = fmt.Errorf("%w: duplicate layer", common.ErrValidation)
	ErrUnknownLayer       = fmt.Errorf("%w: unknown layer", common.ErrValidation)
	ErrInvalidPermutation = fmt.Errorf("%w: render order is not a permutation of the layers", common.ErrValidation)
	ErrInvalidLayer       = fmt.Errorf("%w: invalid layer", common.ErrValidation)
)

// Store is the ordered set of layers. order[0] is the topmost layer; it is
// drawn last.
type Store struct {
	order    []string
	layers   map[string]*Layer
	selected string
	events   EventQueue
}

func NewStore() *Store {
	return &Store{layers: make(map[string]*Layer)}
}

// Add appends a new empty layer to the bottom of the render order.
func (s *Store) Add(name string, parallax float64) error {
	if _, ok := s.layers[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateLayer, name)
	}
	l, err := NewLayer(name, parallax)
	if err != nil {
		return err
	}
	s.insert(l)
	s.events.Push(Event{Kind: LayerAdded, Layer: name})
	return nil
}

func (s *Store) insert(l *Layer) {
	s.order = append(s.order, l.name)
	s.layers[l.name] = l
}

// Remove deletes a layer. Removing the selected layer leaves nothing
// selected.
func (s *Store) Remove(name string) error {
	idx := s.index(name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	s.order = append(s.order[:idx], s.order[idx+1:]...)
	delete(s.layers, name)
	s.events.Push(Event{Kind: LayerRemoved, Layer: name})
	if s.selected == name {
		s.selected = ""
		s.events.Push(Event{Kind: LayerDeselected, Previous: name})
	}
	return nil
}

// Reorder replaces the render order. order must name every layer exactly
// once.
func (s *Store) Reorder(order []string) error {
	if len(order) != len(s.layers) {
		return fmt.Errorf("%w: got %d names for %d layers", ErrInvalidPermutation, len(order), len(s.layers))
	}
	seen := make(map[string]struct{}, len(order))
	for _, name := range order {
		if _, ok := s.layers[name]; !ok {
			return fmt.Errorf("%w: unknown name %q", ErrInvalidPermutation, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q listed twice", ErrInvalidPermutation, name)
		}
		seen[name] = struct{}{}
	}
	s.order = append([]string(nil), order...)
	s.events.Push(Event{Kind: LayersReordered})
	return nil
}

// MoveUp moves a layer one step toward the front. It is a no-op for the
// topmost layer.
func (s *Store) MoveUp(name string) error {
	return s.shift(name, -1)
}

// MoveDown moves a layer one step toward the back.
func (s *Store) MoveDown(name string) error {
	return s.shift(name, 1)
}

func (s *Store) shift(name string, delta int) error {
	idx := s.index(name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	to := idx + delta
	if to < 0 || to >= len(s.order) {
		return nil
	}
	order := s.RenderOrder()
	order[idx], order[to] = order[to], order[idx]
	return s.Reorder(order)
}

// Select makes name the layer that receives edits. Selecting the already
// selected layer does nothing.
func (s *Store) Select(name string) error {
	if _, ok := s.layers[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	if s.selected == name {
		return nil
	}
	prev := s.selected
	s.selected = name
	s.events.Push(Event{Kind: LayerSelected, Layer: name, Previous: prev})
	return nil
}

// Deselect clears the selection.
func (s *Store) Deselect() {
	if s.selected == "" {
		return
	}
	prev := s.selected
	s.selected = ""
	s.events.Push(Event{Kind: LayerDeselected, Previous: prev})
}

// Rename changes a layer's name in place, keeping its position and
// selection state.
func (s *Store) Rename(from, to string) error {
	idx := s.index(from)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, from)
	}
	if from == to {
		return nil
	}
	if to == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidLayer)
	}
	if _, ok := s.layers[to]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateLayer, to)
	}
	l := s.layers[from]
	delete(s.layers, from)
	l.name = to
	s.layers[to] = l
	s.order[idx] = to
	if s.selected == from {
		s.selected = to
	}
	s.events.Push(Event{Kind: LayerRenamed, Layer: to, Previous: from})
	return nil
}

// SetParallax changes a layer's parallax factor.
func (s *Store) SetParallax(name string, parallax float64) error {
	l, ok := s.layers[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	if err := checkParallax(parallax); err != nil {
		return err
	}
	if l.parallax == parallax {
		return nil
	}
	l.parallax = parallax
	s.events.Push(Event{Kind: LayerParallaxChanged, Layer: name})
	return nil
}

func (s *Store) Parallax(name string) (float64, error) {
	l, ok := s.layers[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	return l.parallax, nil
}

// RenderOrder returns a copy of the layer names, topmost first.
func (s *Store) RenderOrder() []string {
	return append([]string(nil), s.order...)
}

// RenderNumber is the layer's index in the render order.
func (s *Store) RenderNumber(name string) (int, bool) {
	idx := s.index(name)
	return idx, idx >= 0
}

// Selected returns the selected layer name.
func (s *Store) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// SelectedLayer returns the selected layer, or nil.
func (s *Store) SelectedLayer() *Layer {
	if s.selected == "" {
		return nil
	}
	return s.layers[s.selected]
}

func (s *Store) Layer(name string) (*Layer, bool) {
	l, ok := s.layers[name]
	return l, ok
}

// Layers returns the layers in render order, topmost first.
func (s *Store) Layers() []*Layer {
	out := make([]*Layer, len(s.order))
	for i, name := range s.order {
		out[i] = s.layers[name]
	}
	return out
}

func (s *Store) Len() int { return len(s.order) }

// Events drains the pending change events.
func (s *Store) Events() []Event {
	return s.events.Drain()
}

// Clone returns a deep copy of the layers, order and selection. Tile image
// handles are shared. Pending events are not copied.
func (s *Store) Clone() *Store {
	c := NewStore()
	for _, name := range s.order {
		c.insert(s.layers[name].clone())
	}
	c.selected = s.selected
	return c
}

func (s *Store) index(name string) int {
	if _, ok := s.layers[name]; !ok {
		return -1
	}
	for i, n := range s.order {
		if n == name {
			return i
		}
	}
	return -1
}
