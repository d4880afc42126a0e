// Package snapshot persists grid state. The in-memory grid is always the
// source of truth; snapshots are eventually consistent with it and are
// only read back at startup.
//
// Statistics are never persisted, only recomputed from the restored slots.
package snapshot

import (
	"context"

	"github.com/merrin/topgrid/internal/grid"
)

// Record is the persisted form of one slot.
type Record struct {
	Position     int      `json:"position"`
	Occupied     bool     `json:"occupied"`
	SourceItemID string   `json:"source_item_id,omitempty"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	ImageRef     string   `json:"image_ref,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// Snapshot is a full persisted grid: the configured capacity plus one
// record per slot, in position order.
type Snapshot struct {
	MaxSize int      `json:"max_size"`
	Records []Record `json:"records"`
}

// Store is a snapshot backend. Save overwrites the active snapshot; Load
// returns it, with ok false when none has been written yet.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (Snapshot, bool, error)
}

// FromSlots captures the persisted form of the given slot state.
func FromSlots(slots []grid.Slot) Snapshot {
	snap := Snapshot{MaxSize: len(slots), Records: make([]Record, len(slots))}
	for i, s := range slots {
		rec := Record{Position: s.Position}
		if s.Occupied && s.Item != nil {
			rec.Occupied = true
			rec.SourceItemID = s.Item.SourceItemID
			rec.Title = s.Item.Title
			rec.Description = s.Item.Description
			rec.ImageRef = s.Item.ImageRef
			rec.Tags = s.Item.Tags
		}
		snap.Records[i] = rec
	}
	return snap
}

// Slots converts the snapshot back into slot state. Position comes from
// record order; a snapshot shorter than MaxSize is padded with empty slots
// and a longer one truncated, restoring the fixed-length invariant.
func (s Snapshot) Slots() []grid.Slot {
	slots := grid.NewEmptyGrid(s.MaxSize)
	for i := 0; i < len(slots) && i < len(s.Records); i++ {
		rec := s.Records[i]
		if !rec.Occupied {
			continue
		}
		slots[i] = grid.OccupiedSlot(i, grid.PlacedItem{
			SlotID:       grid.SlotID(i),
			SourceItemID: rec.SourceItemID,
			Title:        rec.Title,
			Description:  rec.Description,
			ImageRef:     rec.ImageRef,
			Tags:         rec.Tags,
		})
	}
	return slots
}

// Writer adapts a Store to the engine's Persister contract.
type Writer struct {
	Store Store
}

// UpdateGridItems saves the slots as the active snapshot.
func (w Writer) UpdateGridItems(slots []grid.Slot) error {
	return w.Store.Save(context.Background(), FromSlots(slots))
}
