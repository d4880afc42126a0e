// Package grid holds the structural model of a fixed-capacity ranking grid:
// slots, placed items, and the statistics derived from them.
//
// The package carries no business rules. Whether a placement is legal is
// decided by the engine's validation layer; this package only represents
// slot state and exposes structural constructors.
package grid

import "fmt"

// Slot is one addressable position in the grid.
//
// Slots are treated as immutable values: mutation is always "replace the
// slot at index i" in the containing slice, never in-place modification.
// An unoccupied slot carries no item reference.
type Slot struct {
	Position int         `json:"position"`
	Occupied bool        `json:"occupied"`
	Item     *PlacedItem `json:"item,omitempty"`
}

// PlacedItem is the denormalized snapshot of a source item taken at the
// moment of placement. Once placed, the grid owns this snapshot and never
// re-reads the source, so later source mutations cannot skew the display.
type PlacedItem struct {
	SlotID       string   `json:"slot_id"`
	SourceItemID string   `json:"source_item_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	ImageRef     string   `json:"image_ref,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// TransferableItem is the minimal shape any source must offer to donate an
// item to the grid, and the shape the grid hands back when a slot's content
// leaves. It decouples the engine from concrete source store types.
type TransferableItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	ImageRef    string   `json:"image_ref,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// SlotID derives the stable identifier for the slot at a position.
func SlotID(position int) string {
	return fmt.Sprintf("slot-%d", position)
}

// EmptySlot returns an unoccupied slot at the given position.
func EmptySlot(position int) Slot {
	return Slot{Position: position}
}

// OccupiedSlot returns a slot at the given position bound to item.
// The item's SlotID is assumed to already match the position; use the
// factory functions in item.go to build a correctly bound PlacedItem.
func OccupiedSlot(position int, item PlacedItem) Slot {
	return Slot{Position: position, Occupied: true, Item: &item}
}

// NewEmptyGrid returns size empty slots with positions 0..size-1.
// A non-positive size yields an empty grid.
func NewEmptyGrid(size int) []Slot {
	if size <= 0 {
		return []Slot{}
	}
	slots := make([]Slot, size)
	for i := range slots {
		slots[i] = EmptySlot(i)
	}
	return slots
}

// AsTransferable converts an occupied slot's snapshot back into the
// transfer shape. Returns false for empty slots.
func (s Slot) AsTransferable() (TransferableItem, bool) {
	if !s.Occupied || s.Item == nil {
		return TransferableItem{}, false
	}
	return TransferableItem{
		ID:          s.Item.SourceItemID,
		Title:       s.Item.Title,
		Description: s.Item.Description,
		ImageRef:    s.Item.ImageRef,
		Tags:        s.Item.Tags,
	}, true
}

// Statistics is derived from the grid and never independently mutated.
//
// INVARIANTS:
//   - MatchedCount + EmptyCount == Total
//   - IsComplete iff MatchedCount == Total && Total > 0
type Statistics struct {
	MatchedCount int  `json:"matched_count"`
	EmptyCount   int  `json:"empty_count"`
	Total        int  `json:"total"`
	Percentage   int  `json:"percentage"`
	IsComplete   bool `json:"is_complete"`
}

// ComputeStatistics recomputes grid statistics from slot state.
// Percentage is an integer truncated toward zero (1 of 3 slots -> 33).
func ComputeStatistics(slots []Slot) Statistics {
	stats := Statistics{Total: len(slots)}
	for _, s := range slots {
		if s.Occupied {
			stats.MatchedCount++
		}
	}
	stats.EmptyCount = stats.Total - stats.MatchedCount
	if stats.Total > 0 {
		stats.Percentage = stats.MatchedCount * 100 / stats.Total
		stats.IsComplete = stats.MatchedCount == stats.Total
	}
	return stats
}
