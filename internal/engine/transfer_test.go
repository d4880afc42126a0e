package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merrin/topgrid/internal/grid"
)

func TestOriginConstructors(t *testing.T) {
	g := GridOrigin(3)
	assert.Equal(t, OriginGrid, g.Kind)
	assert.Equal(t, 3, g.Position)

	x := ExternalOrigin("item-9")
	assert.Equal(t, OriginExternal, x.Kind)
	assert.Equal(t, "item-9", x.SourceItemID)
}

func TestHandlePlacementRequest_UnknownOriginKind(t *testing.T) {
	f := setupEngine(t, 2)

	err := f.engine.HandlePlacementRequest(PlacementRequest{Destination: 0})

	require.Error(t, err)
	assert.True(t, IsCode(err, CodeSourceNotFound))
}

// Receive works without any source collaborator: the donated item is its
// own existence proof.
func TestEngine_Receive_NoSource(t *testing.T) {
	e := New(nil, nil, nil)
	e.Initialize(2)

	item := grid.TransferableItem{ID: "donated", Title: "Donated"}
	require.NoError(t, e.Receive(item, 1))

	got, ok := e.AsTransferable(1)
	require.True(t, ok)
	assert.Equal(t, "donated", got.ID)
}

// The same id cannot be received twice: grid occupancy backs the
// availability check even when no source tracks used-flags.
func TestEngine_Receive_DuplicateRejected(t *testing.T) {
	e := New(nil, nil, nil)
	e.Initialize(3)
	item := grid.TransferableItem{ID: "dup", Title: "Dup"}

	require.NoError(t, e.Receive(item, 0))
	err := e.Receive(item, 2)

	require.Error(t, err)
	assert.True(t, IsCode(err, CodeSourceAlreadyUsed))
	assert.Equal(t, 1, e.Statistics().MatchedCount)
}

func TestEngine_Receive_OccupiedSlot(t *testing.T) {
	f := setupEngine(t, 2, "X")
	require.NoError(t, place(f.engine, "X", 0))

	err := f.engine.Receive(grid.TransferableItem{ID: "other"}, 0)

	assert.True(t, IsCode(err, CodeTargetOccupied))
}

func TestEngine_CanReceiveAt(t *testing.T) {
	f := setupEngine(t, 2, "X")
	require.NoError(t, place(f.engine, "X", 0))

	assert.False(t, f.engine.CanReceiveAt(0))
	assert.True(t, f.engine.CanReceiveAt(1))
	assert.False(t, f.engine.CanReceiveAt(-1))
}

func TestEngine_AsTransferable(t *testing.T) {
	f := setupEngine(t, 2, "X")
	require.NoError(t, place(f.engine, "X", 0))

	item, ok := f.engine.AsTransferable(0)
	require.True(t, ok)
	assert.Equal(t, "X", item.ID)
	assert.Equal(t, "Title X", item.Title)

	_, ok = f.engine.AsTransferable(1)
	assert.False(t, ok)
	_, ok = f.engine.AsTransferable(5)
	assert.False(t, ok)
}

func TestEngine_Swap(t *testing.T) {
	f := setupEngine(t, 3, "X", "Y")
	require.NoError(t, place(f.engine, "X", 0))
	require.NoError(t, place(f.engine, "Y", 2))

	require.NoError(t, f.engine.Swap(0, 2))

	assert.Equal(t, "Y", occupant(f.engine, 0))
	assert.Equal(t, "X", occupant(f.engine, 2))
}

func TestEngine_Swap_Rejections(t *testing.T) {
	f := setupEngine(t, 3, "X")
	require.NoError(t, place(f.engine, "X", 0))

	// Unlike Move, swap demands both ends occupied.
	err := f.engine.Swap(0, 1)
	assert.True(t, IsCode(err, CodeSourceNotFound))

	err = f.engine.Swap(0, 7)
	assert.True(t, IsCode(err, CodeTargetPositionInvalid))

	assert.Equal(t, "X", occupant(f.engine, 0))
}
