package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockTable_AcquireRelease(t *testing.T) {
	table := NewLockTable()

	assert.True(t, table.Acquire("item-1"))
	assert.True(t, table.Held("item-1"))
	assert.False(t, table.Acquire("item-1"))

	// A different id is independent.
	assert.True(t, table.Acquire("item-2"))
	assert.Equal(t, 2, table.Len())

	table.Release("item-1")
	assert.False(t, table.Held("item-1"))
	assert.True(t, table.Acquire("item-1"))
}

func TestLockTable_ReleaseUnheldIsNoop(t *testing.T) {
	table := NewLockTable()
	table.Release("never-acquired")
	assert.Equal(t, 0, table.Len())
}

func TestLockTable_ConcurrentAcquire_OneWinner(t *testing.T) {
	table := NewLockTable()

	const attempts = 64
	var wg sync.WaitGroup
	results := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- table.Acquire("contested")
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for won := range results {
		if won {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
	assert.True(t, table.Held("contested"))
}
