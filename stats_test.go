package flightdesk

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_IncrCounter(t *testing.T) {
	s := NewStats()

	s.IncrCounter(KeyReplies, 1)
	s.IncrCounter(KeyReplies, 2)

	assert.Equal(t, int64(3), s.GetCounter(KeyReplies))
	assert.Equal(t, int64(0), s.GetCounter("unset"))
	assert.Panics(t, func() { s.IncrCounter(KeyReplies, -1) })
}

func TestStats_Concurrent(t *testing.T) {
	s := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.IncrCounter(KeyToolCalls, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), s.GetToolCallCount())
}

func TestStats_Subscriber(t *testing.T) {
	s := NewStats()

	s.OnAfterModelCall(&AfterModelCallEvent{
		Round: 1,
		Response: &ContentResponse{
			Result: &Final{Content: "hi"},
			Model:  "gpt-3.5-turbo",
			Info:   &GenerationInfo{InputTokens: 120, OutputTokens: 30},
		},
	})
	s.OnAfterModelCall(&AfterModelCallEvent{Round: 1, Error: errors.New("timeout")})
	s.OnAfterToolCall(&AfterToolCallEvent{Call: ToolCallRequest{Name: "get_flight_info"}})
	s.OnAfterToolCall(&AfterToolCallEvent{Call: ToolCallRequest{Name: "get_flight_info"}})
	s.OnReply(&ReplyEvent{Reply: "ok"})
	s.OnReply(&ReplyEvent{Reply: "sorry", Error: errors.New("timeout")})

	assert.Equal(t, int64(2), s.GetModelCallCount())
	assert.Equal(t, int64(120), s.GetTotalInputTokens())
	assert.Equal(t, int64(30), s.GetTotalOutputTokens())
	assert.Equal(t, int64(150), s.GetTotalTokens())
	assert.Equal(t, int64(120), s.GetCounter(KeyInputTokensFor+"gpt-3.5-turbo"))
	assert.Equal(t, int64(2), s.GetCounter(KeyToolCallsFor+"get_flight_info"))
	assert.Equal(t, int64(2), s.GetCounter(KeyReplies))
	assert.Equal(t, int64(1), s.GetCounter(KeyRemoteErrors))

	keys := s.Keys()
	assert.IsIncreasing(t, keys)

	s.Reset()
	assert.Empty(t, s.Counters())
}
