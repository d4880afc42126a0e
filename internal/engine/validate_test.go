package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merrin/topgrid/internal/grid"
)

// fixedLookups builds Lookups over a static item set.
func fixedLookups(items map[string]grid.TransferableItem, used, locked map[string]bool) Lookups {
	return Lookups{
		ItemByID: func(id string) (grid.TransferableItem, bool) {
			item, ok := items[id]
			return item, ok
		},
		IsItemUsed: func(id string) bool { return used[id] },
		IsLocked:   func(id string) bool { return locked[id] },
	}
}

func TestValidatePlacement_ChecksInOrder(t *testing.T) {
	slots := grid.NewEmptyGrid(3)
	slots[1] = grid.OccupiedSlot(1, grid.PlacedItem{SlotID: grid.SlotID(1), SourceItemID: "taken"})

	items := map[string]grid.TransferableItem{
		"free": {ID: "free", Title: "Free"},
		"used": {ID: "used", Title: "Used"},
		"held": {ID: "held", Title: "Held"},
	}
	used := map[string]bool{"used": true}
	locked := map[string]bool{"held": true}

	tests := []struct {
		name     string
		itemID   string
		dest     int
		wantCode Code
	}{
		{"destination below bounds", "free", -1, CodeTargetPositionInvalid},
		{"destination above bounds", "free", 3, CodeTargetPositionInvalid},
		{"destination occupied", "free", 1, CodeTargetOccupied},
		{"unknown item", "ghost", 0, CodeSourceNotFound},
		{"item already placed", "used", 0, CodeSourceAlreadyUsed},
		{"item locked by another request", "held", 0, CodeSourceLocked},
		// Bounds beat occupancy beats existence: an unknown item aimed at
		// an occupied slot reports the slot, not the item.
		{"occupancy checked before existence", "ghost", 1, CodeTargetOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rej := ValidatePlacement(tt.itemID, tt.dest, slots, fixedLookups(items, used, locked))
			require.NotNil(t, rej)
			assert.Equal(t, tt.wantCode, rej.Code)
			assert.Equal(t, tt.itemID, rej.SourceItemID)
			assert.Equal(t, tt.dest, rej.Position)
		})
	}
}

func TestValidatePlacement_SuccessReturnsResolvedItem(t *testing.T) {
	slots := grid.NewEmptyGrid(2)
	items := map[string]grid.TransferableItem{
		"free": {ID: "free", Title: "Free", Tags: []string{"t"}},
	}

	item, rej := ValidatePlacement("free", 0, slots, fixedLookups(items, nil, nil))

	require.Nil(t, rej)
	assert.Equal(t, "free", item.ID)
	assert.Equal(t, "Free", item.Title)
}

func TestValidatePlacement_NilOptionalLookups(t *testing.T) {
	slots := grid.NewEmptyGrid(1)
	lk := Lookups{
		ItemByID: func(id string) (grid.TransferableItem, bool) {
			return grid.TransferableItem{ID: id}, true
		},
	}

	_, rej := ValidatePlacement("x", 0, slots, lk)
	assert.Nil(t, rej)
}

func TestCanAccept(t *testing.T) {
	slots := grid.NewEmptyGrid(2)
	slots[0] = grid.OccupiedSlot(0, grid.PlacedItem{SlotID: grid.SlotID(0), SourceItemID: "a"})

	assert.False(t, CanAccept(slots, -1))
	assert.False(t, CanAccept(slots, 2))
	assert.False(t, CanAccept(slots, 0))
	assert.True(t, CanAccept(slots, 1))
}

func TestRejection_Error(t *testing.T) {
	rej := &Rejection{Code: CodeTargetOccupied, Message: "destination slot already bound", SourceItemID: "x", Position: 2}
	assert.Equal(t, "TARGET_OCCUPIED: destination slot already bound (item=x, position=2)", rej.Error())

	bare := &Rejection{Code: CodeSourceNotFound, Message: "nope", Position: -1}
	assert.Equal(t, "SOURCE_NOT_FOUND: nope", bare.Error())
}

func TestIsCode(t *testing.T) {
	rej := &Rejection{Code: CodeSourceLocked, Message: "held", Position: -1}

	assert.True(t, IsCode(rej, CodeSourceLocked))
	assert.False(t, IsCode(rej, CodeSourceAlreadyUsed))
	assert.False(t, IsCode(assert.AnError, CodeSourceLocked))
}
