package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDv7Generator_Unique(t *testing.T) {
	gen := UUIDv7Generator{}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := gen.Generate()
		assert.Len(t, token, 36)
		assert.False(t, seen[token], "duplicate token %s", token)
		seen[token] = true
	}
}

func TestFixedGenerator_Sequence(t *testing.T) {
	gen := NewFixedGenerator("a-1", "a-2")

	assert.Equal(t, "a-1", gen.Generate())
	assert.Equal(t, "a-2", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

// Every placement request consumes exactly one attempt token.
func TestEngine_WithTokenGenerator(t *testing.T) {
	gen := NewFixedGenerator("attempt-1")
	e := New(newStubSource("X"), nil, nil, WithTokenGenerator(gen))
	e.Initialize(1)

	assert.NoError(t, place(e, "X", 0))
	assert.Panics(t, func() { gen.Generate() }, "token not consumed by the request")
}
