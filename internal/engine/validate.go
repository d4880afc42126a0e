package engine

import (
	"fmt"

	"github.com/merrin/topgrid/internal/grid"
)

// Lookups supplies the source-side queries validation needs. Each field is
// a closure so the pure decision function stays decoupled from concrete
// source stores and lock tables.
type Lookups struct {
	// ItemByID resolves a source item id to its transfer shape.
	ItemByID func(id string) (grid.TransferableItem, bool)

	// IsItemUsed reports whether the item is already placed elsewhere.
	IsItemUsed func(id string) bool

	// IsLocked reports whether a different in-flight assignment holds the
	// item's lock. Callers that have already acquired the item's claim
	// pass a constant-false lookup: the acquisition itself resolved this
	// check for them.
	IsLocked func(id string) bool
}

// ValidatePlacement is the single source of truth for "is this transfer
// legal right now". Pure function of the request, the slot state, and the
// supplied lookups; it never mutates anything.
//
// Checks run in order and short-circuit on the first failure:
// bounds, occupancy, source existence, source availability, lock conflict.
//
// On success the resolved item is returned so the caller can commit
// without a second lookup, which would reopen the validate/use race.
func ValidatePlacement(itemID string, dest int, slots []grid.Slot, lk Lookups) (grid.TransferableItem, *Rejection) {
	if dest < 0 || dest >= len(slots) {
		return grid.TransferableItem{}, &Rejection{
			Code:         CodeTargetPositionInvalid,
			Message:      fmt.Sprintf("destination outside [0,%d)", len(slots)),
			SourceItemID: itemID,
			Position:     dest,
		}
	}

	if slots[dest].Occupied {
		return grid.TransferableItem{}, &Rejection{
			Code:         CodeTargetOccupied,
			Message:      "destination slot already bound",
			SourceItemID: itemID,
			Position:     dest,
		}
	}

	item, ok := lk.ItemByID(itemID)
	if !ok {
		return grid.TransferableItem{}, &Rejection{
			Code:         CodeSourceNotFound,
			Message:      "source item does not exist",
			SourceItemID: itemID,
			Position:     dest,
		}
	}

	if lk.IsItemUsed != nil && lk.IsItemUsed(itemID) {
		return grid.TransferableItem{}, &Rejection{
			Code:         CodeSourceAlreadyUsed,
			Message:      "source item already placed",
			SourceItemID: itemID,
			Position:     dest,
		}
	}

	if lk.IsLocked != nil && lk.IsLocked(itemID) {
		return grid.TransferableItem{}, &Rejection{
			Code:         CodeSourceLocked,
			Message:      "concurrent assignment in flight",
			SourceItemID: itemID,
			Position:     dest,
		}
	}

	return item, nil
}

// CanAccept is the reduced positional form of validation: can the slot at
// position currently take an item, independent of any specific source.
// Used by drop-target highlighting.
func CanAccept(slots []grid.Slot, position int) bool {
	return position >= 0 && position < len(slots) && !slots[position].Occupied
}
