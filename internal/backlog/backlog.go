// Package backlog is the unordered source collection items are drawn
// from. It implements the engine's Source contract: item lookup plus the
// used/available flag that mirrors grid occupancy.
package backlog

import (
	"sync"

	"github.com/merrin/topgrid/internal/grid"
)

// Item is one backlog entry.
type Item struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	ImageRef    string   `yaml:"image_ref,omitempty" json:"image_ref,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Transferable converts the item to the grid's transfer shape.
func (i Item) Transferable() grid.TransferableItem {
	return grid.TransferableItem{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		ImageRef:    i.ImageRef,
		Tags:        i.Tags,
	}
}

// Store holds backlog items and their used-flags in memory.
//
// Thread-safety: all methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items map[string]Item
	order []string
	used  map[string]bool
}

// NewStore creates a store holding the given items. Duplicate ids keep the
// first occurrence.
func NewStore(items ...Item) *Store {
	s := &Store{
		items: make(map[string]Item, len(items)),
		used:  make(map[string]bool),
	}
	for _, it := range items {
		if _, dup := s.items[it.ID]; dup {
			continue
		}
		s.items[it.ID] = it
		s.order = append(s.order, it.ID)
	}
	return s
}

// ItemByID resolves an item to its transfer shape.
// Implements engine.Source.
func (s *Store) ItemByID(id string) (grid.TransferableItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return grid.TransferableItem{}, false
	}
	return it.Transferable(), true
}

// IsItemUsed reports whether the item is currently placed in a grid.
// Implements engine.Source.
func (s *Store) IsItemUsed(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used[id]
}

// MarkItemUsed flips the item's used-flag. Unknown ids are ignored.
// Implements engine.Source.
func (s *Store) MarkItemUsed(id string, used bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return
	}
	if used {
		s.used[id] = true
	} else {
		delete(s.used, id)
	}
}

// Items returns all items in catalog order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Available returns the items not currently placed, in catalog order.
func (s *Store) Available() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		if !s.used[id] {
			out = append(out, s.items[id])
		}
	}
	return out
}

// Len returns the number of items in the backlog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
