package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/merrin/topgrid/internal/backlog"
	"github.com/merrin/topgrid/internal/engine"
	"github.com/merrin/topgrid/internal/notify"
	"github.com/merrin/topgrid/internal/snapshot"
)

// Session is one rebuilt engine over the persisted grid: the SQLite
// snapshot store plus the catalog-backed backlog.
type Session struct {
	Engine  *engine.Engine
	Backlog *backlog.Store
	Store   *snapshot.SQLiteStore
}

// Close releases the session's database handle.
func (s *Session) Close() error {
	return s.Store.Close()
}

// openSession opens the grid database, loads the backlog catalog, and
// restores the engine from the active snapshot.
//
// A missing catalog file yields an empty backlog rather than an error:
// read-only commands (show) work without one. Commands that resolve items
// fail later with SOURCE_NOT_FOUND, which is the accurate diagnosis.
func openSession(opts *RootOptions) (*Session, error) {
	store, err := snapshot.OpenSQLite(opts.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open grid database", err)
	}

	var items []backlog.Item
	if _, statErr := os.Stat(opts.Catalog); statErr == nil {
		items, err = backlog.LoadCatalog(opts.Catalog)
		if err != nil {
			store.Close()
			return nil, WrapExitError(ExitCommandError, "load catalog", err)
		}
	}
	source := backlog.NewStore(items...)

	eng := engine.New(source, snapshot.Writer{Store: store}, notify.SlogNotifier{})

	snap, ok, err := store.Load(context.Background())
	if err != nil {
		store.Close()
		return nil, WrapExitError(ExitCommandError, "load grid snapshot", err)
	}
	if ok {
		eng.Restore(snap.Slots(), snap.MaxSize)
	}

	return &Session{Engine: eng, Backlog: source, Store: store}, nil
}

// requireGrid fails with a usable message when no grid has been
// initialized yet.
func requireGrid(s *Session) error {
	if s.Engine.Size() == 0 {
		return NewExitError(ExitCommandError, "no grid initialized: run 'topgrid init <size>' first")
	}
	return nil
}

// rejectionError converts an engine rejection into the command's exit
// error, preserving the typed code in the message.
func rejectionError(err error) error {
	if rej, ok := engine.AsRejection(err); ok {
		return WrapExitError(ExitFailure, fmt.Sprintf("placement rejected (%s)", rej.Code), rej)
	}
	return err
}
