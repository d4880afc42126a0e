package engine

import "sync"

// LockTable is the set of source item ids currently mid-assignment.
//
// It makes the validate → mutate → mark-used sequence effectively atomic
// per source item: a burst of overlapping placement requests for the same
// item resolves to exactly one winner, the rest fail Acquire.
//
// The table is injectable so tests can assert its state directly and so
// independent engine instances never share hidden global state. It is not
// persisted; a process restart clears it implicitly.
//
// Thread-safety: all methods are safe for concurrent use.
type LockTable struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLockTable creates an empty lock table.
func NewLockTable() *LockTable {
	return &LockTable{held: make(map[string]struct{})}
}

// Acquire atomically claims id. Returns true if the id was not already
// held; false means another assignment for the same item is in flight.
func (t *LockTable) Acquire(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, taken := t.held[id]; taken {
		return false
	}
	t.held[id] = struct{}{}
	return true
}

// Release removes id from the table unconditionally.
//
// Every successful Acquire must be paired with exactly one Release on
// every exit path of the operation it guards. A lost release permanently
// blocks the item from being placed again.
func (t *LockTable) Release(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.held, id)
}

// Held reports whether id is currently claimed. Test support.
func (t *LockTable) Held(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, taken := t.held[id]
	return taken
}

// Len returns the number of in-flight claims. Test support.
func (t *LockTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.held)
}
