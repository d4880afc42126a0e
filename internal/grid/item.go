package grid

import "golang.org/x/text/unicode/norm"

// The item factory: normalize heterogeneous inputs (a backlog item already
// converted to TransferableItem, or an item previously placed in another
// slot) into a PlacedItem bound to a target position.
//
// Titles are NFC-normalized so snapshots taken from different sources
// compare bytewise equal when they are the same text. Inputs are never
// mutated; missing optional fields stay empty rather than failing.

// PlacedFromTransferable binds a transferable item to a position, deriving
// a fresh slot id.
func PlacedFromTransferable(item TransferableItem, position int) PlacedItem {
	return PlacedItem{
		SlotID:       SlotID(position),
		SourceItemID: item.ID,
		Title:        norm.NFC.String(item.Title),
		Description:  item.Description,
		ImageRef:     item.ImageRef,
		Tags:         cloneTags(item.Tags),
	}
}

// Rebind returns a copy of an already-placed item bound to a new position.
// Used when an item relocates between grid slots.
func Rebind(item PlacedItem, position int) PlacedItem {
	rebound := item
	rebound.SlotID = SlotID(position)
	rebound.Tags = cloneTags(item.Tags)
	return rebound
}

// cloneTags copies the tag slice so the factory's outputs never alias the
// caller's backing array. Empty input stays nil to keep omitempty stable.
func cloneTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
