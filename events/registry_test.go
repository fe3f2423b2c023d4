package events

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rickchristie/flightdesk"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// recorder implements every subscriber interface and records event names.
type recorder struct {
	names []string
}

func (r *recorder) OnBeforeModelCall(e *flightdesk.BeforeModelCallEvent) {
	r.names = append(r.names, e.Name())
}

func (r *recorder) OnAfterModelCall(e *flightdesk.AfterModelCallEvent) {
	r.names = append(r.names, e.Name())
}

func (r *recorder) OnAfterToolCall(e *flightdesk.AfterToolCallEvent) {
	r.names = append(r.names, e.Name())
}

func (r *recorder) OnReply(e *flightdesk.ReplyEvent) {
	r.names = append(r.names, e.Name())
}

func (r *recorder) OnReset(e *flightdesk.ResetEvent) {
	r.names = append(r.names, e.Name())
}

// replyOnly implements a single interface.
type replyOnly struct {
	replies []string
}

func (r *replyOnly) OnReply(e *flightdesk.ReplyEvent) {
	r.replies = append(r.replies, e.Reply)
}

// republisher publishes a reset from inside OnReset.
type republisher struct {
	registry *Registry
}

func (r *republisher) OnReset(e *flightdesk.ResetEvent) {
	r.registry.Publish(&flightdesk.ResetEvent{})
}

func allEvents() []flightdesk.Event {
	return []flightdesk.Event{
		&flightdesk.BeforeModelCallEvent{Round: 1},
		&flightdesk.AfterModelCallEvent{Round: 1},
		&flightdesk.AfterToolCallEvent{Call: flightdesk.ToolCallRequest{Name: "get_all_flights"}},
		&flightdesk.ReplyEvent{Reply: "done"},
		&flightdesk.ResetEvent{Cleared: 2},
	}
}

func TestRegistry_Publish(t *testing.T) {
	rec := &recorder{}
	ro := &replyOnly{}
	r := NewRegistry().Subscribe(rec).Subscribe(ro)
	assert.Equal(t, 2, r.Len())

	for _, e := range allEvents() {
		r.Publish(e)
	}

	assert.Equal(t, []string{
		flightdesk.EventNameModelCallBefore,
		flightdesk.EventNameModelCallAfter,
		flightdesk.EventNameToolCallAfter,
		flightdesk.EventNameReply,
		flightdesk.EventNameReset,
	}, rec.names)
	assert.Equal(t, []string{"done"}, ro.replies)
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() { r.Publish(&flightdesk.ReplyEvent{}) })
	assert.NotPanics(t, func() { NewRegistry().Publish(nil) })
}

// replyFunc is a subscriber of a non-comparable type.
type replyFunc func(e *flightdesk.ReplyEvent)

func (f replyFunc) OnReply(e *flightdesk.ReplyEvent) { f(e) }

func TestRegistry_SubscribeOnce(t *testing.T) {
	t.Run("same subscriber twice", func(t *testing.T) {
		rec := &recorder{}
		r := NewRegistry().Subscribe(rec).Subscribe(rec)
		assert.Equal(t, 1, r.Len())
		assert.True(t, r.Has(rec))

		r.Publish(&flightdesk.ReplyEvent{})
		assert.Equal(t, []string{flightdesk.EventNameReply}, rec.names)
	})

	t.Run("distinct subscribers of one type", func(t *testing.T) {
		r := NewRegistry().Subscribe(&recorder{}).Subscribe(&recorder{})
		assert.Equal(t, 2, r.Len())
	})

	t.Run("nil is ignored", func(t *testing.T) {
		r := NewRegistry().Subscribe(nil)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("non-comparable subscribers are always added", func(t *testing.T) {
		var got int
		f := replyFunc(func(e *flightdesk.ReplyEvent) { got++ })

		var r *Registry
		require.NotPanics(t, func() { r = NewRegistry().Subscribe(f).Subscribe(f) })
		assert.Equal(t, 2, r.Len())
		assert.False(t, r.Has(f))

		r.Publish(&flightdesk.ReplyEvent{})
		assert.Equal(t, 2, got)
	})
}

func TestRegistry_RecursionLimit(t *testing.T) {
	r := NewRegistry().SetMaxRecursion(3)
	r.Subscribe(&republisher{registry: r})

	assert.PanicsWithValue(t,
		"flightdesk: event recursion depth 3 exceeded while publishing flightdesk:reset",
		func() { r.Publish(&flightdesk.ResetEvent{}) },
	)
}

func TestTranscript(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTranscript(&buf)
	r := NewRegistry().Subscribe(tr)

	base := flightdesk.Base{RequestID: "req-1", Timestamp: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	call := flightdesk.ToolCallRequest{ID: "call_1", Name: "get_flight_info", Arguments: `{"flight_number":"AA123"}`}

	r.Publish(&flightdesk.BeforeModelCallEvent{
		Base:  base,
		Round: 1,
		Request: &flightdesk.Request{
			Messages:   []flightdesk.Message{flightdesk.SystemMessage("sys"), flightdesk.UserMessage("AA123?")},
			ToolChoice: flightdesk.AutoToolChoice(),
			MaxTokens:  500,
		},
	})
	r.Publish(&flightdesk.AfterModelCallEvent{
		Base:  base,
		Round: 1,
		Response: &flightdesk.ContentResponse{
			Result: &flightdesk.ToolCallsRequested{Calls: []flightdesk.ToolCallRequest{call}},
			Info:   &flightdesk.GenerationInfo{InputTokens: 10, OutputTokens: 3},
		},
	})
	r.Publish(&flightdesk.AfterToolCallEvent{Base: base, Call: call, Result: "Flight AA123:\n• Status: On Time"})
	r.Publish(&flightdesk.ReplyEvent{Base: base, UserText: "AA123?", Reply: "On time.", ModelCalls: 2, ToolCalls: 1})
	r.Publish(&flightdesk.ReplyEvent{Base: base, UserText: "again", Reply: "sorry", Error: errors.New("timeout")})

	dec := yaml.NewDecoder(strings.NewReader(buf.String()))
	var docs []map[string]any
	for {
		var doc map[string]any
		if err := dec.Decode(&doc); err != nil {
			break
		}
		docs = append(docs, doc)
	}
	require.Len(t, docs, 5)

	assert.Equal(t, flightdesk.EventNameModelCallBefore, docs[0]["event"])
	assert.Equal(t, "req-1", docs[0]["request_id"])
	assert.Equal(t, "auto", docs[0]["tool_choice"])
	assert.Len(t, docs[0]["messages"], 2)

	assert.Equal(t, "tool_calls", docs[1]["response"])
	assert.Equal(t, 10, docs[1]["input_tokens"])

	assert.Equal(t, "get_flight_info", docs[2]["tool"])
	assert.Equal(t, "Flight AA123:\n• Status: On Time", docs[2]["result"])

	assert.Equal(t, "On time.", docs[3]["reply"])
	assert.NotContains(t, docs[3], "error")
	assert.Equal(t, "timeout", docs[4]["error"])
}

func TestLogSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	r := NewRegistry().Subscribe(NewLogSubscriber(logger))

	for _, e := range allEvents() {
		r.Publish(e)
	}
	r.Publish(&flightdesk.AfterModelCallEvent{Round: 2, Error: errors.New("rate limited")})

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 6)
	assert.Contains(t, out, `"message":"model call"`)
	assert.Contains(t, out, `"tool":"get_all_flights"`)
	assert.Contains(t, out, `"message":"replied"`)
	assert.Contains(t, out, `"cleared":2`)
	assert.Contains(t, lines[5], `"level":"warn"`)
	assert.Contains(t, lines[5], `"error":"rate limited"`)
}

func TestLogSubscriber_ToolFailure(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "tool output", input: "Flight AA123:\n• Status: On Time", expected: `"level":"debug"`},
		{name: "unknown function", input: "Unknown function: book_flight", expected: `"level":"warn"`},
		{name: "execution error", input: "Error executing get_flight_info: boom", expected: `"level":"warn"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := NewLogSubscriber(zerolog.New(&buf))
			s.OnAfterToolCall(&flightdesk.AfterToolCallEvent{
				Call:   flightdesk.ToolCallRequest{ID: "call_1", Name: "get_flight_info"},
				Result: tc.input,
			})

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, 1)
			assert.Contains(t, lines[0], tc.expected)
		})
	}
}

func TestLogSubscriber_WithLogger(t *testing.T) {
	var first, second bytes.Buffer
	s := NewLogSubscriber(zerolog.New(&first))

	s.OnReset(&flightdesk.ResetEvent{Cleared: 1})
	s.WithLogger(zerolog.New(&second))
	s.OnReset(&flightdesk.ResetEvent{Cleared: 2})

	assert.Contains(t, first.String(), `"cleared":1`)
	assert.NotContains(t, first.String(), `"cleared":2`)
	assert.Contains(t, second.String(), `"cleared":2`)
}
