package engine

import (
	"github.com/merrin/topgrid/internal/grid"
)

// OriginKind distinguishes where a placement request's item comes from.
type OriginKind int

const (
	// OriginGrid means the item is already in a grid slot (a relocation).
	OriginGrid OriginKind = iota + 1
	// OriginExternal means the item comes from a source collection.
	OriginExternal
)

// Origin is a tagged union identifying the item being placed: either a
// grid slot (by position) or an external source item (by id). Constructed
// once at the boundary so nothing downstream parses encoded identifiers.
type Origin struct {
	Kind         OriginKind
	Position     int    // valid when Kind == OriginGrid
	SourceItemID string // valid when Kind == OriginExternal
}

// GridOrigin builds the origin for an item already occupying a grid slot.
func GridOrigin(position int) Origin {
	return Origin{Kind: OriginGrid, Position: position}
}

// ExternalOrigin builds the origin for an item offered by a source
// collection.
func ExternalOrigin(sourceItemID string) Origin {
	return Origin{Kind: OriginExternal, SourceItemID: sourceItemID}
}

// PlacementRequest is the externally-triggered placement tuple: what is
// being placed and which slot it should land in. Produced by drag-end
// handlers, keyboard commands, and programmatic callers alike.
type PlacementRequest struct {
	Origin      Origin
	Destination int
}

// The transfer-protocol façade: the small uniform surface a non-grid
// source writes against instead of the full engine API. Receive accepts a
// donated item, AsTransferable hands a slot's content back out, and
// CanReceiveAt / Swap mirror the positional accessors.

// Receive accepts a transferable item into the slot at position, running
// the full validation pipeline under the item's assignment lock.
//
// The donated item itself is the resolution of the source-existence check;
// availability is still verified against the source collaborator and the
// grid's own occupancy so no source id can appear in two slots.
func (e *Engine) Receive(item grid.TransferableItem, position int) error {
	return e.place(item.ID, position, func(string) (grid.TransferableItem, bool) {
		return item, true
	})
}

// CanReceiveAt reports whether the slot at position can currently accept
// an item. Alias of CanAcceptAt for the transfer protocol.
func (e *Engine) CanReceiveAt(position int) bool {
	return e.CanAcceptAt(position)
}

// AsTransferable returns the slot's content in transfer shape, or false
// for an empty or out-of-range position.
func (e *Engine) AsTransferable(position int) (grid.TransferableItem, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if position < 0 || position >= len(e.slots) {
		return grid.TransferableItem{}, false
	}
	return e.slots[position].AsTransferable()
}

// Swap exchanges the items bound to two occupied slots. Unlike Move, both
// ends must be occupied; an empty end is rejected with SOURCE_NOT_FOUND.
// Checks and exchange happen in one critical section.
func (e *Engine) Swap(a, b int) error {
	e.mu.Lock()
	var rej *Rejection
	for _, p := range [2]int{a, b} {
		switch {
		case p < 0 || p >= len(e.slots):
			rej = &Rejection{
				Code:     CodeTargetPositionInvalid,
				Message:  "swap position out of bounds",
				Position: p,
			}
		case !e.slots[p].Occupied:
			rej = &Rejection{
				Code:     CodeSourceNotFound,
				Message:  "swap requires both slots occupied",
				Position: p,
			}
		}
		if rej != nil {
			e.mu.Unlock()
			return e.reject(rej)
		}
	}
	snap, rej := e.moveLocked(a, b)
	e.mu.Unlock()

	if rej != nil {
		return e.reject(rej)
	}
	if snap != nil {
		e.persistBestEffort(snap)
	}
	return nil
}
