package flightdesk

import (
	"sort"
	"sync"
)

// Stats contains usage counters for one assistant instance. All standard keys
// are prefixed with "flightdesk:".
//
// Stats is itself an event subscriber: the assistant registers it on its event
// registry so counters follow model calls, tool dispatches and replies without
// extra bookkeeping in the loop.
//
// All methods are safe for concurrent use.
type Stats struct {
	mu       sync.RWMutex
	counters map[string]int64
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{counters: make(map[string]int64)}
}

// IncrCounter increments a counter by delta. Creates the counter if it doesn't
// exist. Panics if delta is negative (counters only go up).
func (s *Stats) IncrCounter(key string, delta int64) {
	if delta < 0 {
		panic("flightdesk: counter delta must not be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] += delta
}

// GetCounter returns the current value of a counter, zero if unset.
func (s *Stats) GetCounter(key string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

// Counters returns a copy of all counters.
func (s *Stats) Counters() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int64, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

// Keys returns the counter keys in sorted order.
func (s *Stats) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.counters))
	for k := range s.counters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset clears all counters.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = make(map[string]int64)
}

// GetTotalInputTokens returns the total input tokens across all models.
func (s *Stats) GetTotalInputTokens() int64 {
	return s.GetCounter(KeyInputTokens)
}

// GetTotalOutputTokens returns the total output tokens across all models.
func (s *Stats) GetTotalOutputTokens() int64 {
	return s.GetCounter(KeyOutputTokens)
}

// GetTotalTokens returns input plus output tokens.
func (s *Stats) GetTotalTokens() int64 {
	return s.GetTotalInputTokens() + s.GetTotalOutputTokens()
}

// GetToolCallCount returns the total number of tool dispatches.
func (s *Stats) GetToolCallCount() int64 {
	return s.GetCounter(KeyToolCalls)
}

// GetModelCallCount returns the total number of remote model calls.
func (s *Stats) GetModelCallCount() int64 {
	return s.GetCounter(KeyModelCalls)
}

// OnAfterModelCall implements AfterModelCallSubscriber.
func (s *Stats) OnAfterModelCall(event *AfterModelCallEvent) {
	s.IncrCounter(KeyModelCalls, 1)
	if event.Response == nil || event.Response.Info == nil {
		return
	}
	in := int64(event.Response.Info.InputTokens)
	out := int64(event.Response.Info.OutputTokens)
	s.IncrCounter(KeyInputTokens, in)
	s.IncrCounter(KeyOutputTokens, out)
	if event.Response.Model != "" {
		s.IncrCounter(KeyInputTokensFor+event.Response.Model, in)
		s.IncrCounter(KeyOutputTokensFor+event.Response.Model, out)
	}
}

// OnAfterToolCall implements AfterToolCallSubscriber.
func (s *Stats) OnAfterToolCall(event *AfterToolCallEvent) {
	s.IncrCounter(KeyToolCalls, 1)
	s.IncrCounter(KeyToolCallsFor+event.Call.Name, 1)
}

// OnReply implements ReplySubscriber.
func (s *Stats) OnReply(event *ReplyEvent) {
	s.IncrCounter(KeyReplies, 1)
	if event.Error != nil {
		s.IncrCounter(KeyRemoteErrors, 1)
	}
}
