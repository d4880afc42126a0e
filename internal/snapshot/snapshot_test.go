package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merrin/topgrid/internal/grid"
)

func sampleSlots() []grid.Slot {
	slots := grid.NewEmptyGrid(3)
	slots[1] = grid.OccupiedSlot(1, grid.PlacedItem{
		SlotID:       grid.SlotID(1),
		SourceItemID: "film-1",
		Title:        "Stalker",
		Description:  "1979",
		ImageRef:     "img://stalker",
		Tags:         []string{"sf"},
	})
	return slots
}

func TestFromSlots(t *testing.T) {
	snap := FromSlots(sampleSlots())

	assert.Equal(t, 3, snap.MaxSize)
	require.Len(t, snap.Records, 3)
	assert.False(t, snap.Records[0].Occupied)
	assert.True(t, snap.Records[1].Occupied)
	assert.Equal(t, "film-1", snap.Records[1].SourceItemID)
	assert.Equal(t, "Stalker", snap.Records[1].Title)
	assert.Empty(t, snap.Records[2].SourceItemID)
}

func TestSnapshot_Slots_RestoresState(t *testing.T) {
	snap := FromSlots(sampleSlots())

	slots := snap.Slots()

	require.Len(t, slots, 3)
	assert.False(t, slots[0].Occupied)
	require.NotNil(t, slots[1].Item)
	assert.Equal(t, "film-1", slots[1].Item.SourceItemID)
	assert.Equal(t, "slot-1", slots[1].Item.SlotID)
	assert.Equal(t, []string{"sf"}, slots[1].Item.Tags)
}

func TestSnapshot_Slots_PadsToMaxSize(t *testing.T) {
	snap := Snapshot{
		MaxSize: 4,
		Records: []Record{
			{Position: 0, Occupied: true, SourceItemID: "a", Title: "A"},
		},
	}

	slots := snap.Slots()

	require.Len(t, slots, 4)
	assert.True(t, slots[0].Occupied)
	for _, s := range slots[1:] {
		assert.False(t, s.Occupied)
	}
}

func TestSnapshot_Slots_TruncatesToMaxSize(t *testing.T) {
	snap := Snapshot{
		MaxSize: 1,
		Records: []Record{
			{Position: 0, Occupied: true, SourceItemID: "a"},
			{Position: 1, Occupied: true, SourceItemID: "b"},
		},
	}

	slots := snap.Slots()

	require.Len(t, slots, 1)
	assert.Equal(t, "a", slots[0].Item.SourceItemID)
}

func TestWriter_UpdateGridItems(t *testing.T) {
	store := &memStore{}
	w := Writer{Store: store}

	require.NoError(t, w.UpdateGridItems(sampleSlots()))

	require.NotNil(t, store.saved)
	assert.Equal(t, 3, store.saved.MaxSize)
}
