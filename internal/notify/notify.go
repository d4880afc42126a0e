// Package notify provides notification collaborators for the engine.
// The engine reports every typed rejection here; implementations decide
// how (and whether) that becomes user-visible.
package notify

import (
	"log/slog"
	"sync"

	"github.com/merrin/topgrid/internal/engine"
)

// SlogNotifier logs rejections through slog. The default collaborator for
// headless use: rejections are expected outcomes, so they log at Warn, not
// Error.
type SlogNotifier struct{}

// EmitValidationError implements engine.Notifier.
func (SlogNotifier) EmitValidationError(rej *engine.Rejection) {
	slog.Warn("placement rejected",
		"code", string(rej.Code),
		"item", rej.SourceItemID,
		"position", rej.Position,
		"reason", rej.Message,
	)
}

// Recorder captures rejections for assertions in tests.
//
// Thread-safety: safe for concurrent use.
type Recorder struct {
	mu         sync.Mutex
	rejections []*engine.Rejection
}

// EmitValidationError implements engine.Notifier.
func (r *Recorder) EmitValidationError(rej *engine.Rejection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejections = append(r.rejections, rej)
}

// Rejections returns the captured rejections in emission order.
func (r *Recorder) Rejections() []*engine.Rejection {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*engine.Rejection, len(r.rejections))
	copy(out, r.rejections)
	return out
}

// Codes returns just the rejection codes, in emission order.
func (r *Recorder) Codes() []engine.Code {
	r.mu.Lock()
	defer r.mu.Unlock()
	codes := make([]engine.Code, len(r.rejections))
	for i, rej := range r.rejections {
		codes[i] = rej.Code
	}
	return codes
}

// Reset drops all captured rejections.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejections = nil
}
