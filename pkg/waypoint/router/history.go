package router

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// History is a bounded back/forward log of executed sequences with a cursor on
// the current entry. Recording something new after moving back discards the
// abandoned forward entries, like a browser.
type History struct {
	entries []route.Sequence
	cursor  int
	maxSize int
}

// NewHistory creates an empty history holding at most maxSize entries.
// Non-positive sizes use constants.DefaultHistorySize.
func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = constants.DefaultHistorySize
	}
	return &History{
		entries: make([]route.Sequence, 0, maxSize),
		cursor:  -1,
		maxSize: maxSize,
	}
}

// Current returns the entry under the cursor.
func (h *History) Current() (route.Sequence, bool) {
	return h.at(h.cursor)
}

// Previous returns the entry before the cursor without moving it.
func (h *History) Previous() (route.Sequence, bool) {
	return h.at(h.cursor - 1)
}

// Next returns the entry after the cursor without moving it.
func (h *History) Next() (route.Sequence, bool) {
	return h.at(h.cursor + 1)
}

func (h *History) at(i int) (route.Sequence, bool) {
	if i < 0 || i >= len(h.entries) {
		return route.Sequence{}, false
	}
	return h.entries[i], true
}

// MoveBackward moves the cursor one entry back. It never goes below the first
// entry.
func (h *History) MoveBackward() {
	if h.cursor > 0 {
		h.cursor--
	}
}

// MoveForward moves the cursor one entry forward, stopping at the last entry.
func (h *History) MoveForward() {
	if h.cursor < len(h.entries)-1 {
		h.cursor++
	}
}

// RecordForward records seq after the cursor. Recording the current entry
// again is a no-op and replaying the entry that is already next only advances
// the cursor; anything else truncates the forward entries first. The oldest
// entry is evicted once the log is full.
func (h *History) RecordForward(seq route.Sequence) {
	if cur, ok := h.Current(); ok && cur.Equal(seq) {
		return
	}
	if next, ok := h.Next(); ok {
		if next.Equal(seq) {
			h.cursor++
			return
		}
		h.entries = h.entries[:h.cursor+1]
	}

	h.entries = append(h.entries, seq)
	h.cursor = len(h.entries) - 1

	if len(h.entries) > h.maxSize {
		evict := len(h.entries) - h.maxSize
		h.entries = append(h.entries[:0], h.entries[evict:]...)
		h.cursor -= evict
	}
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the index of the current entry, or -1 when empty.
func (h *History) Cursor() int {
	return h.cursor
}

// MaxSize returns the configured bound.
func (h *History) MaxSize() int {
	return h.maxSize
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []route.Sequence {
	out := make([]route.Sequence, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear removes all entries.
func (h *History) Clear() {
	h.entries = h.entries[:0]
	h.cursor = -1
}
