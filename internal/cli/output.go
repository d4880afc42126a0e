package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/merrin/topgrid/internal/backlog"
	"github.com/merrin/topgrid/internal/grid"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Placement rejected
	ExitCommandError = 2 // Command error (bad paths, malformed catalog, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

var (
	occupiedColor = color.New(color.FgGreen)
	emptyColor    = color.New(color.Faint)
	usedColor     = color.New(color.FgYellow)
)

// gridView is the JSON shape of a rendered grid.
type gridView struct {
	Slots []grid.Slot     `json:"slots"`
	Stats grid.Statistics `json:"stats"`
}

// printGrid renders slot state and statistics in the configured format.
func printGrid(w io.Writer, format string, slots []grid.Slot, stats grid.Statistics) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(gridView{Slots: slots, Stats: stats})
	}

	for _, s := range slots {
		if s.Occupied && s.Item != nil {
			line := fmt.Sprintf("%2d. %s", s.Position+1, s.Item.Title)
			if len(s.Item.Tags) > 0 {
				line += fmt.Sprintf("  [%s]", strings.Join(s.Item.Tags, ", "))
			}
			occupiedColor.Fprintln(w, line)
		} else {
			emptyColor.Fprintf(w, "%2d. (empty)\n", s.Position+1)
		}
	}
	fmt.Fprintf(w, "\n%d/%d filled (%d%%)", stats.MatchedCount, stats.Total, stats.Percentage)
	if stats.IsComplete {
		occupiedColor.Fprint(w, "  complete")
	}
	fmt.Fprintln(w)
	return nil
}

// backlogView is the JSON shape of a rendered backlog.
type backlogView struct {
	Items []backlogItemView `json:"items"`
}

type backlogItemView struct {
	backlog.Item
	Used bool `json:"used"`
}

// printBacklog renders the catalog with used markers.
func printBacklog(w io.Writer, format string, store *backlog.Store) error {
	items := store.Items()

	if format == "json" {
		view := backlogView{Items: make([]backlogItemView, len(items))}
		for i, it := range items {
			view.Items[i] = backlogItemView{Item: it, Used: store.IsItemUsed(it.ID)}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	for _, it := range items {
		if store.IsItemUsed(it.ID) {
			usedColor.Fprintf(w, "  %-16s %s (placed)\n", it.ID, it.Title)
		} else {
			fmt.Fprintf(w, "  %-16s %s\n", it.ID, it.Title)
		}
	}
	return nil
}
