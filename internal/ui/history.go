package ui

import (
	"sync"
	"time"
)

// Entry is one line of monitor history
type Entry struct {
	At   time.Time
	Kind string
	Text string
}

// History keeps the most recent entries up to a limit. It is safe for
// concurrent use.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
	dropped int
}

// NewHistory keeps at most limit entries; limit <= 0 keeps one
func NewHistory(limit int) *History {
	return &History{limit: max(limit, 1)}
}

// Add appends e, dropping the oldest entry when full
func (h *History) Add(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, e)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = h.entries[over:]
		h.dropped += over
	}
}

// Entries returns a copy, oldest first
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}

// Len is the number of entries held
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Dropped is how many entries were discarded for space since the last Clear
func (h *History) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Clear empties the history
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	h.dropped = 0
}
