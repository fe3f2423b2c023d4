// Package history holds the durable conversation history of one assistant
// instance.
//
// History is append-only from the assistant's point of view: messages are
// added in order and only the most recent window is sent to the model. An
// optional storage capacity discards the oldest messages once exceeded.
//
// Example:
//
//	h := history.New()
//	h.Append(flightdesk.UserMessage("Is DL456 delayed?"))
//	h.Append(flightdesk.AssistantMessage("Yes, by 30 minutes."))
//	recent := h.RecentWindow(10) // both messages
package history

import (
	"sync"

	"github.com/rickchristie/flightdesk"
)

// History is an ordered message log. The zero value is not usable; create one
// with New.
//
// History is safe for concurrent use, though the assistant itself only
// supports one in-flight message at a time.
type History struct {
	mu       sync.RWMutex
	messages []flightdesk.Message
	capacity int
}

// New creates an empty, unbounded History.
func New() *History {
	return &History{}
}

// WithCapacity bounds storage to the most recent capacity messages.
// Panics if capacity < 1.
func (h *History) WithCapacity(capacity int) *History {
	if capacity < 1 {
		panic("flightdesk: history capacity must be >= 1")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.capacity = capacity
	h.trimLocked()
	return h
}

// Capacity returns the storage bound, zero when unbounded.
func (h *History) Capacity() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.capacity
}

// Append adds messages to the end of the history, in order.
func (h *History) Append(msgs ...flightdesk.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msgs...)
	h.trimLocked()
}

// RecentWindow returns the last n messages, or all of them when fewer are
// stored. The returned slice is a copy. n <= 0 yields an empty slice.
func (h *History) RecentWindow(n int) []flightdesk.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n <= 0 {
		return []flightdesk.Message{}
	}
	start := 0
	if len(h.messages) > n {
		start = len(h.messages) - n
	}
	out := make([]flightdesk.Message, len(h.messages)-start)
	copy(out, h.messages[start:])
	return out
}

// Messages returns a copy of every stored message.
func (h *History) Messages() []flightdesk.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]flightdesk.Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of stored messages.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}

// Clear removes every message and returns how many were removed.
func (h *History) Clear() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.messages)
	h.messages = nil
	return n
}

func (h *History) trimLocked() {
	if h.capacity == 0 || len(h.messages) <= h.capacity {
		return
	}
	kept := make([]flightdesk.Message, h.capacity)
	copy(kept, h.messages[len(h.messages)-h.capacity:])
	h.messages = kept
}
