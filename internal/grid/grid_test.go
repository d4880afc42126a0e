package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyGrid(t *testing.T) {
	slots := NewEmptyGrid(5)

	require.Len(t, slots, 5)
	for i, s := range slots {
		assert.Equal(t, i, s.Position)
		assert.False(t, s.Occupied)
		assert.Nil(t, s.Item)
	}
}

func TestNewEmptyGrid_NonPositiveSize(t *testing.T) {
	assert.Empty(t, NewEmptyGrid(0))
	assert.Empty(t, NewEmptyGrid(-3))
}

func TestSlotID(t *testing.T) {
	assert.Equal(t, "slot-0", SlotID(0))
	assert.Equal(t, "slot-7", SlotID(7))
}

func TestOccupiedSlot(t *testing.T) {
	item := PlacedItem{SlotID: SlotID(2), SourceItemID: "item-a", Title: "A"}
	s := OccupiedSlot(2, item)

	assert.Equal(t, 2, s.Position)
	assert.True(t, s.Occupied)
	require.NotNil(t, s.Item)
	assert.Equal(t, "item-a", s.Item.SourceItemID)
}

func TestSlot_AsTransferable(t *testing.T) {
	empty := EmptySlot(0)
	_, ok := empty.AsTransferable()
	assert.False(t, ok)

	s := OccupiedSlot(1, PlacedItem{
		SlotID:       SlotID(1),
		SourceItemID: "item-b",
		Title:        "B",
		Description:  "desc",
		ImageRef:     "img://b",
		Tags:         []string{"x"},
	})
	got, ok := s.AsTransferable()
	require.True(t, ok)
	assert.Equal(t, "item-b", got.ID)
	assert.Equal(t, "B", got.Title)
	assert.Equal(t, "desc", got.Description)
	assert.Equal(t, "img://b", got.ImageRef)
	assert.Equal(t, []string{"x"}, got.Tags)
}

func TestComputeStatistics(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		occupied []int
		want     Statistics
	}{
		{
			name: "empty grid",
			size: 3,
			want: Statistics{MatchedCount: 0, EmptyCount: 3, Total: 3, Percentage: 0},
		},
		{
			name:     "one of three",
			size:     3,
			occupied: []int{1},
			want:     Statistics{MatchedCount: 1, EmptyCount: 2, Total: 3, Percentage: 33},
		},
		{
			name:     "complete",
			size:     3,
			occupied: []int{0, 1, 2},
			want:     Statistics{MatchedCount: 3, EmptyCount: 0, Total: 3, Percentage: 100, IsComplete: true},
		},
		{
			name: "zero-size grid is never complete",
			size: 0,
			want: Statistics{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := NewEmptyGrid(tt.size)
			for _, p := range tt.occupied {
				slots[p] = OccupiedSlot(p, PlacedItem{SlotID: SlotID(p), SourceItemID: "x"})
			}
			got := ComputeStatistics(slots)
			assert.Equal(t, tt.want, got)

			// Derived-state invariants hold for every case.
			assert.Equal(t, got.Total, got.MatchedCount+got.EmptyCount)
			assert.Equal(t, got.IsComplete, got.Total > 0 && got.MatchedCount == got.Total)
		})
	}
}
