// Package engine owns grid state and decides, executes, and reports
// placements. It orchestrates lock acquisition, validation, mutation, and
// collaborator notification for every transfer into, out of, or within the
// grid.
package engine

import (
	"log/slog"
	"sync"

	"github.com/merrin/topgrid/internal/grid"
)

// Source is the contract a source collection (backlog) must satisfy to
// donate items to the grid. The engine never mutates source items except
// through MarkItemUsed.
type Source interface {
	ItemByID(id string) (grid.TransferableItem, bool)
	IsItemUsed(id string) bool
	MarkItemUsed(id string, used bool)
}

// Persister receives grid snapshots after every mutation. Calls are
// best-effort: the in-memory grid is the source of truth and a persistence
// failure is logged, never propagated, and never rolls anything back.
type Persister interface {
	UpdateGridItems(slots []grid.Slot) error
}

// Notifier receives every typed rejection. It owns how (and whether) a
// rejection becomes user-visible.
type Notifier interface {
	EmitValidationError(rej *Rejection)
}

// Engine is the grid store: it holds slot state and derived statistics and
// exposes the assignment, removal, move, and transfer-protocol operations.
//
// All collaborators are injected at construction; there is no global state
// and independent instances are fully isolated, including their lock
// tables unless one is shared deliberately.
//
// Thread-safety model:
//   - slot state is guarded by mu; every public operation is safe for
//     concurrent use
//   - per-item assignment atomicity (validate → mutate → mark used) is
//     guarded by the lock table, which spans the whole request, not just
//     the critical section under mu
//   - collaborators are called outside mu to avoid re-entrancy deadlocks
//
// INVARIANTS:
//   - len(slots) never changes between Initialize/Restore calls
//   - every slot is empty or bound to exactly one source item id, and no
//     source item id appears in two slots
//   - statistics are recomputed inside the same critical section as every
//     mutation
type Engine struct {
	mu    sync.Mutex
	slots []grid.Slot
	stats grid.Statistics

	locks   *LockTable
	source  Source
	persist Persister
	notify  Notifier
	tokens  TokenGenerator

	// onRemove is told when a slot empties so the caller can drop any
	// selection referencing it.
	onRemove func(position int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLockTable injects a lock table, e.g. one shared between engines that
// draw from the same source collection.
func WithLockTable(t *LockTable) Option {
	return func(e *Engine) { e.locks = t }
}

// WithTokenGenerator injects the attempt-token generator. Tests use
// NewFixedGenerator for deterministic logs.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(e *Engine) { e.tokens = g }
}

// WithRemoveHook registers a callback invoked after a slot empties, with
// the freed position. Used to clear selections referencing the slot.
func WithRemoveHook(fn func(position int)) Option {
	return func(e *Engine) { e.onRemove = fn }
}

// New creates an engine with the given collaborators. persist and notify
// may be nil; the engine then skips snapshotting and rejection reporting
// respectively. source may be nil for grids operated purely through the
// transfer protocol. The grid starts at size zero; call Initialize or
// Restore before placing anything.
func New(source Source, persist Persister, notify Notifier, opts ...Option) *Engine {
	e := &Engine{
		slots:   grid.NewEmptyGrid(0),
		source:  source,
		persist: persist,
		notify:  notify,
		locks:   NewLockTable(),
		tokens:  UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.stats = grid.ComputeStatistics(e.slots)
	return e
}

// Initialize resets the engine to an all-empty grid of the given size,
// releases any currently placed items back to the source, recomputes
// statistics, and snapshots the fresh state.
func (e *Engine) Initialize(size int) {
	e.mu.Lock()
	var freed []string
	for _, s := range e.slots {
		if s.Occupied && s.Item != nil {
			freed = append(freed, s.Item.SourceItemID)
		}
	}
	e.slots = grid.NewEmptyGrid(size)
	e.stats = grid.ComputeStatistics(e.slots)
	snap := e.copySlotsLocked()
	e.mu.Unlock()

	for _, id := range freed {
		e.markUsed(id, false)
	}
	slog.Info("grid initialized", "size", size)
	e.persistBestEffort(snap)
}

// Restore rebuilds the grid from persisted slots, padding with empty slots
// or truncating so the grid is exactly maxSize long. Occupied slots are
// rebound to their restored positions and the source collaborator's
// used-flags are reconciled so availability matches occupancy.
//
// Restore does not snapshot; the caller just loaded this state.
func (e *Engine) Restore(restored []grid.Slot, maxSize int) {
	if maxSize < 0 {
		maxSize = 0
	}
	slots := grid.NewEmptyGrid(maxSize)
	var placed []string
	for i := 0; i < maxSize && i < len(restored); i++ {
		s := restored[i]
		if !s.Occupied || s.Item == nil {
			continue
		}
		slots[i] = grid.OccupiedSlot(i, grid.Rebind(*s.Item, i))
		placed = append(placed, s.Item.SourceItemID)
	}

	e.mu.Lock()
	e.slots = slots
	e.stats = grid.ComputeStatistics(e.slots)
	e.mu.Unlock()

	for _, id := range placed {
		e.markUsed(id, true)
	}
	slog.Info("grid restored", "size", maxSize, "occupied", len(placed))
}

// HandlePlacementRequest is the externally-triggered entry point (end of a
// drag gesture, keyboard command, API call). Grid-origin requests are
// relocations and delegate to Move; external-origin requests run the full
// lock → validate → commit → mark-used pipeline.
//
// Rejections are reported to the notifier and returned; the grid is
// unchanged on every failure path.
func (e *Engine) HandlePlacementRequest(req PlacementRequest) error {
	attempt := e.tokens.Generate()
	switch req.Origin.Kind {
	case OriginGrid:
		slog.Debug("placement request",
			"attempt", attempt, "origin", "grid",
			"from", req.Origin.Position, "to", req.Destination)
		return e.Move(req.Origin.Position, req.Destination)
	case OriginExternal:
		slog.Debug("placement request",
			"attempt", attempt, "origin", "external",
			"item", req.Origin.SourceItemID, "to", req.Destination)
		return e.place(req.Origin.SourceItemID, req.Destination, e.lookupSourceItem)
	default:
		// Malformed origin from a trusted caller. Reject, don't panic.
		slog.Warn("placement request with unknown origin kind", "attempt", attempt)
		return e.reject(&Rejection{
			Code:     CodeSourceNotFound,
			Message:  "unknown placement origin",
			Position: req.Destination,
		})
	}
}

// place runs the external→grid pipeline for one source item: acquire the
// item's lock, validate, commit the snapshot into the slot, mark the
// source used, release. resolve supplies the source-existence lookup:
// the source collaborator for id-based requests, the donated item itself
// for Receive.
func (e *Engine) place(id string, dest int, resolve func(string) (grid.TransferableItem, bool)) error {
	if !e.locks.Acquire(id) {
		return e.reject(&Rejection{
			Code:         CodeSourceLocked,
			Message:      "concurrent assignment in flight",
			SourceItemID: id,
			Position:     dest,
		})
	}
	defer e.locks.Release(id)

	e.mu.Lock()
	item, rej := ValidatePlacement(id, dest, e.slots, Lookups{
		ItemByID:   resolve,
		IsItemUsed: e.usedAnywhereLocked,
		// This request holds the item's claim; Acquire above already
		// resolved the lock-conflict check.
		IsLocked: func(string) bool { return false },
	})
	if rej != nil {
		e.mu.Unlock()
		return e.reject(rej)
	}
	e.slots[dest] = grid.OccupiedSlot(dest, grid.PlacedFromTransferable(item, dest))
	e.stats = grid.ComputeStatistics(e.slots)
	snap := e.copySlotsLocked()
	e.mu.Unlock()

	e.markUsed(id, true)
	e.persistBestEffort(snap)
	slog.Info("item placed", "item", id, "position", dest)
	return nil
}

// Assign is the direct, pre-validated placement path for trusted callers.
// Bounds and occupancy are still re-checked defensively as a second line
// of defense, but failures here warn and no-op instead of raising; a bad
// internal call must not take the session down. External entry points go
// through HandlePlacementRequest instead.
//
// Assign binds the slot only; it does not touch source used-flags.
func (e *Engine) Assign(item grid.TransferableItem, position int) bool {
	e.mu.Lock()
	if position < 0 || position >= len(e.slots) {
		e.mu.Unlock()
		slog.Warn("assign outside grid bounds", "item", item.ID, "position", position)
		return false
	}
	if e.slots[position].Occupied {
		e.mu.Unlock()
		slog.Warn("assign to occupied slot", "item", item.ID, "position", position)
		return false
	}
	e.slots[position] = grid.OccupiedSlot(position, grid.PlacedFromTransferable(item, position))
	e.stats = grid.ComputeStatistics(e.slots)
	snap := e.copySlotsLocked()
	e.mu.Unlock()

	e.persistBestEffort(snap)
	return true
}

// Remove resets the slot at position to empty, clears any selection
// referencing it, and marks the freed item available in the source.
// Returns false if the position is out of range or already empty.
func (e *Engine) Remove(position int) bool {
	e.mu.Lock()
	if position < 0 || position >= len(e.slots) {
		e.mu.Unlock()
		slog.Warn("remove outside grid bounds", "position", position)
		return false
	}
	slot := e.slots[position]
	if !slot.Occupied || slot.Item == nil {
		e.mu.Unlock()
		return false
	}
	freed := slot.Item.SourceItemID
	e.slots[position] = grid.EmptySlot(position)
	e.stats = grid.ComputeStatistics(e.slots)
	snap := e.copySlotsLocked()
	e.mu.Unlock()

	if e.onRemove != nil {
		e.onRemove(position)
	}
	e.markUsed(freed, false)
	e.persistBestEffort(snap)
	slog.Info("item removed", "item", freed, "position", position)
	return true
}

// RemoveBySourceID empties every slot bound to the given source item id.
// Scanning all slots is defensive: the occupancy invariant forbids
// duplicates, but an accidental one must not survive a removal. Returns
// the number of slots emptied.
func (e *Engine) RemoveBySourceID(id string) int {
	e.mu.Lock()
	var emptied []int
	for i, s := range e.slots {
		if s.Occupied && s.Item != nil && s.Item.SourceItemID == id {
			e.slots[i] = grid.EmptySlot(i)
			emptied = append(emptied, i)
		}
	}
	if len(emptied) == 0 {
		e.mu.Unlock()
		return 0
	}
	e.stats = grid.ComputeStatistics(e.slots)
	snap := e.copySlotsLocked()
	e.mu.Unlock()

	if e.onRemove != nil {
		for _, p := range emptied {
			e.onRemove(p)
		}
	}
	e.markUsed(id, false)
	e.persistBestEffort(snap)
	return len(emptied)
}

// Move relocates the item at from into to. If to is occupied the two
// slots exchange items atomically; no intermediate empty state is
// observable. Rejections: out-of-bounds positions, or an empty origin.
func (e *Engine) Move(from, to int) error {
	e.mu.Lock()
	snap, rej := e.moveLocked(from, to)
	e.mu.Unlock()

	if rej != nil {
		return e.reject(rej)
	}
	if snap != nil {
		e.persistBestEffort(snap)
	}
	return nil
}

// moveLocked performs the relocation/swap under mu. Returns the snapshot
// to persist, or nil for the from == to no-op.
func (e *Engine) moveLocked(from, to int) ([]grid.Slot, *Rejection) {
	for _, p := range [2]int{from, to} {
		if p < 0 || p >= len(e.slots) {
			return nil, &Rejection{
				Code:     CodeTargetPositionInvalid,
				Message:  "move position out of bounds",
				Position: p,
			}
		}
	}
	origin := e.slots[from]
	if !origin.Occupied || origin.Item == nil {
		return nil, &Rejection{
			Code:     CodeSourceNotFound,
			Message:  "origin slot is empty",
			Position: from,
		}
	}
	if from == to {
		return nil, nil
	}

	dest := e.slots[to]
	if dest.Occupied && dest.Item != nil {
		// Swap: both slots replaced in the same critical section.
		e.slots[from] = grid.OccupiedSlot(from, grid.Rebind(*dest.Item, from))
		e.slots[to] = grid.OccupiedSlot(to, grid.Rebind(*origin.Item, to))
	} else {
		e.slots[to] = grid.OccupiedSlot(to, grid.Rebind(*origin.Item, to))
		e.slots[from] = grid.EmptySlot(from)
	}
	e.stats = grid.ComputeStatistics(e.slots)
	return e.copySlotsLocked(), nil
}

// Clear resets the entire grid to empty and releases every placed item
// back to the source.
func (e *Engine) Clear() {
	e.mu.Lock()
	var freed []string
	for i, s := range e.slots {
		if s.Occupied && s.Item != nil {
			freed = append(freed, s.Item.SourceItemID)
		}
		e.slots[i] = grid.EmptySlot(i)
	}
	e.stats = grid.ComputeStatistics(e.slots)
	snap := e.copySlotsLocked()
	e.mu.Unlock()

	for _, id := range freed {
		e.markUsed(id, false)
	}
	e.persistBestEffort(snap)
	slog.Info("grid cleared", "freed", len(freed))
}

// Slots returns a copy of the current slot state.
func (e *Engine) Slots() []grid.Slot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copySlotsLocked()
}

// Size returns the grid's fixed capacity.
func (e *Engine) Size() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.slots)
}

// Statistics returns the derived grid statistics.
func (e *Engine) Statistics() grid.Statistics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// MatchedItems returns the placed items in slot order.
func (e *Engine) MatchedItems() []grid.PlacedItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	items := make([]grid.PlacedItem, 0, e.stats.MatchedCount)
	for _, s := range e.slots {
		if s.Occupied && s.Item != nil {
			items = append(items, *s.Item)
		}
	}
	return items
}

// NextEmptyPosition returns the lowest empty position, or false when the
// grid is complete.
func (e *Engine) NextEmptyPosition() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.slots {
		if !s.Occupied {
			return s.Position, true
		}
	}
	return 0, false
}

// CanAcceptAt reports whether the slot at position can currently take an
// item.
func (e *Engine) CanAcceptAt(position int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return CanAccept(e.slots, position)
}

// Locks exposes the engine's lock table. Test support.
func (e *Engine) Locks() *LockTable {
	return e.locks
}

// copySlotsLocked copies slot state for handing outside mu. PlacedItems
// are value-copied so callers can't alias engine-owned state.
func (e *Engine) copySlotsLocked() []grid.Slot {
	out := make([]grid.Slot, len(e.slots))
	for i, s := range e.slots {
		out[i] = s
		if s.Item != nil {
			item := *s.Item
			out[i].Item = &item
		}
	}
	return out
}

// lookupSourceItem resolves an id through the source collaborator.
func (e *Engine) lookupSourceItem(id string) (grid.TransferableItem, bool) {
	if e.source == nil {
		return grid.TransferableItem{}, false
	}
	return e.source.ItemByID(id)
}

// usedAnywhereLocked reports whether the item is marked used by the source
// or already bound to a grid slot. The grid check keeps the no-duplicate
// invariant even if source flags drift. Called with mu held.
func (e *Engine) usedAnywhereLocked(id string) bool {
	if e.source != nil && e.source.IsItemUsed(id) {
		return true
	}
	for _, s := range e.slots {
		if s.Occupied && s.Item != nil && s.Item.SourceItemID == id {
			return true
		}
	}
	return false
}

// markUsed updates the source's used-flag, tolerating a nil source.
func (e *Engine) markUsed(id string, used bool) {
	if e.source != nil {
		e.source.MarkItemUsed(id, used)
	}
}

// reject reports a rejection to the notifier and returns it as the
// operation's error.
func (e *Engine) reject(rej *Rejection) error {
	slog.Debug("placement rejected",
		"code", string(rej.Code), "item", rej.SourceItemID, "position", rej.Position)
	if e.notify != nil {
		e.notify.EmitValidationError(rej)
	}
	return rej
}

// persistBestEffort snapshots the grid. Failures are logged and swallowed;
// persistence is eventually consistent with the in-memory grid, never a
// gate on it.
func (e *Engine) persistBestEffort(slots []grid.Slot) {
	if e.persist == nil {
		return
	}
	if err := e.persist.UpdateGridItems(slots); err != nil {
		slog.Error("grid snapshot failed", "error", err)
	}
}
