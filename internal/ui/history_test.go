package ui

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	for i := range 5 {
		h.Add(Entry{Kind: "key-press", Text: fmt.Sprint(i)})
	}

	entries := h.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "2", entries[0].Text)
	assert.Equal(t, "4", entries[2].Text)
	assert.Equal(t, 2, h.Dropped())

	entries[0].Text = "changed"
	assert.Equal(t, "2", h.Entries()[0].Text, "Entries returns a copy")

	h.Clear()
	assert.Zero(t, h.Len())
	assert.Zero(t, h.Dropped())
}

func TestHistoryMinimumLimit(t *testing.T) {
	h := NewHistory(0)
	h.Add(Entry{Text: "a"})
	h.Add(Entry{Text: "b"})
	assert.Equal(t, []Entry{{Text: "b"}}, h.Entries())
}

func TestHistoryConcurrentAdd(t *testing.T) {
	h := NewHistory(1000)
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				h.Add(Entry{Kind: "motion"})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400, h.Len())
}
