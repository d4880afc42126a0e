// Package harness executes scripted placement scenarios against a fresh
// engine and captures a deterministic trace of outcomes and final grid
// state, suitable for golden-file comparison.
package harness

import (
	"fmt"

	"github.com/merrin/topgrid/internal/backlog"
	"github.com/merrin/topgrid/internal/engine"
	"github.com/merrin/topgrid/internal/grid"
	"github.com/merrin/topgrid/internal/notify"
)

// Step ops understood by Run.
const (
	OpPlace      = "place"       // Item → Position, through the full request pipeline
	OpMove       = "move"        // From → To (relocate or swap)
	OpSwap       = "swap"        // From ↔ To, both must be occupied
	OpRemove     = "remove"      // empty the slot at Position
	OpRemoveItem = "remove_item" // empty every slot bound to Item
	OpClear      = "clear"       // empty the whole grid
)

// Step is one scripted operation.
type Step struct {
	Op       string
	ItemID   string
	Position int
	From     int
	To       int
}

// Scenario is a scripted run: a grid size, a catalog to draw from, and the
// steps to execute in order.
type Scenario struct {
	Name     string
	GridSize int
	Catalog  []backlog.Item
	Steps    []Step
}

// StepTrace records one step's outcome.
type StepTrace struct {
	Op      string `json:"op"`
	Outcome string `json:"outcome"`
	Code    string `json:"code,omitempty"`
}

// Trace is the full deterministic record of a scenario execution.
type Trace struct {
	Scenario string          `json:"scenario"`
	Steps    []StepTrace     `json:"steps"`
	Final    []string        `json:"final"` // source item id per slot, "" when empty
	Stats    grid.Statistics `json:"stats"`
}

// Run executes the scenario against a fresh engine and backlog.
// Returns an error only for malformed scenarios (unknown op) or when the
// notification stream disagrees with the returned outcomes; placement
// rejections themselves are expected results, recorded in the trace.
func Run(scenario *Scenario) (*Trace, error) {
	source := backlog.NewStore(scenario.Catalog...)
	rec := &notify.Recorder{}
	eng := engine.New(source, nil, rec)
	eng.Initialize(scenario.GridSize)

	trace := &Trace{Scenario: scenario.Name, Steps: make([]StepTrace, 0, len(scenario.Steps))}

	for i, step := range scenario.Steps {
		var err error
		switch step.Op {
		case OpPlace:
			err = eng.HandlePlacementRequest(engine.PlacementRequest{
				Origin:      engine.ExternalOrigin(step.ItemID),
				Destination: step.Position,
			})
		case OpMove:
			err = eng.Move(step.From, step.To)
		case OpSwap:
			err = eng.Swap(step.From, step.To)
		case OpRemove:
			eng.Remove(step.Position)
		case OpRemoveItem:
			eng.RemoveBySourceID(step.ItemID)
		case OpClear:
			eng.Clear()
		default:
			return nil, fmt.Errorf("scenario %s step %d: unknown op %q", scenario.Name, i, step.Op)
		}

		st := StepTrace{Op: step.Op, Outcome: "ok"}
		if rej, ok := engine.AsRejection(err); ok {
			st.Outcome = "rejected"
			st.Code = string(rej.Code)
		}
		trace.Steps = append(trace.Steps, st)
	}

	// Every rejected step must have been reported to the notifier, in
	// step order.
	rejected := 0
	for _, st := range trace.Steps {
		if st.Outcome == "rejected" {
			rejected++
		}
	}
	if notified := len(rec.Codes()); notified != rejected {
		return nil, fmt.Errorf("scenario %s: %d rejections but %d notifications", scenario.Name, rejected, notified)
	}

	for _, s := range eng.Slots() {
		id := ""
		if s.Occupied && s.Item != nil {
			id = s.Item.SourceItemID
		}
		trace.Final = append(trace.Final, id)
	}
	trace.Stats = eng.Statistics()

	return trace, nil
}
