package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlacedFromTransferable(t *testing.T) {
	in := TransferableItem{
		ID:          "item-1",
		Title:       "Seven Samurai",
		Description: "1954",
		ImageRef:    "img://seven",
		Tags:        []string{"classic", "jp"},
	}

	placed := PlacedFromTransferable(in, 4)

	assert.Equal(t, "slot-4", placed.SlotID)
	assert.Equal(t, "item-1", placed.SourceItemID)
	assert.Equal(t, "Seven Samurai", placed.Title)
	assert.Equal(t, "1954", placed.Description)
	assert.Equal(t, "img://seven", placed.ImageRef)
	assert.Equal(t, []string{"classic", "jp"}, placed.Tags)
}

func TestPlacedFromTransferable_OptionalFieldsOmitted(t *testing.T) {
	placed := PlacedFromTransferable(TransferableItem{ID: "bare", Title: "Bare"}, 0)

	assert.Empty(t, placed.Description)
	assert.Empty(t, placed.ImageRef)
	assert.Nil(t, placed.Tags)
}

func TestPlacedFromTransferable_NormalizesTitle(t *testing.T) {
	// "é" as 'e' + combining acute; NFC folds it to the precomposed rune.
	decomposed := "Amélie"
	composed := "Amélie"

	placed := PlacedFromTransferable(TransferableItem{ID: "a", Title: decomposed}, 0)

	assert.Equal(t, composed, placed.Title)
}

func TestPlacedFromTransferable_DoesNotAliasInput(t *testing.T) {
	in := TransferableItem{ID: "item-2", Title: "T", Tags: []string{"a", "b"}}
	placed := PlacedFromTransferable(in, 1)

	placed.Tags[0] = "mutated"
	assert.Equal(t, "a", in.Tags[0])
}

func TestRebind(t *testing.T) {
	original := PlacedItem{
		SlotID:       SlotID(0),
		SourceItemID: "item-3",
		Title:        "T",
		Tags:         []string{"a"},
	}

	moved := Rebind(original, 6)

	assert.Equal(t, "slot-6", moved.SlotID)
	assert.Equal(t, "item-3", moved.SourceItemID)
	assert.Equal(t, "slot-0", original.SlotID)

	require.Len(t, moved.Tags, 1)
	moved.Tags[0] = "mutated"
	assert.Equal(t, "a", original.Tags[0])
}
