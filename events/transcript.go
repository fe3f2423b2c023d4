package events

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rickchristie/flightdesk"
	"gopkg.in/yaml.v3"
)

// Transcript writes every event as a YAML document. Nothing is truncated;
// message and tool result bodies are logged in full.
//
//	---
//	event: flightdesk:tool_call:after
//	request_id: 9b0c...
//	time: 2024-05-01T10:00:00.123Z
//	tool: get_flight_info
//	call_id: call_abc
//	arguments: '{"flight_number":"AA123"}'
//	result: |-
//	  Flight AA123:
//	  ...
type Transcript struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTranscript creates a Transcript writing to w.
func NewTranscript(w io.Writer) *Transcript {
	return &Transcript{out: w}
}

func (t *Transcript) write(event flightdesk.Event, base flightdesk.Base, fields map[string]any) {
	doc := map[string]any{
		"event":      event.Name(),
		"request_id": base.RequestID,
		"time":       base.Timestamp.UTC().Format(time.RFC3339Nano),
	}
	for k, v := range fields {
		doc[k] = v
	}

	data, err := yaml.Marshal(doc)
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		fmt.Fprintf(t.out, "---\n# failed to marshal %s: %v\n", event.Name(), err)
		return
	}
	fmt.Fprintf(t.out, "---\n%s", data)
}

// OnBeforeModelCall implements flightdesk.BeforeModelCallSubscriber.
func (t *Transcript) OnBeforeModelCall(e *flightdesk.BeforeModelCallEvent) {
	fields := map[string]any{"round": e.Round}
	if e.Request != nil {
		fields["messages"] = e.Request.Messages
		fields["tools"] = len(e.Request.Tools)
		fields["max_tokens"] = e.Request.MaxTokens
		fields["temperature"] = e.Request.Temperature
		if !e.Request.ToolChoice.IsZero() {
			fields["tool_choice"] = string(e.Request.ToolChoice.Mode)
		}
	}
	t.write(e, e.Base, fields)
}

// OnAfterModelCall implements flightdesk.AfterModelCallSubscriber.
func (t *Transcript) OnAfterModelCall(e *flightdesk.AfterModelCallEvent) {
	fields := map[string]any{
		"round":    e.Round,
		"duration": e.Duration.String(),
	}
	if e.Error != nil {
		fields["error"] = e.Error.Error()
	}
	if e.Response != nil {
		switch r := e.Response.Result.(type) {
		case *flightdesk.Final:
			fields["response"] = "final"
			fields["content"] = r.Content
		case *flightdesk.ToolCallsRequested:
			fields["response"] = "tool_calls"
			fields["content"] = r.Content
			fields["tool_calls"] = r.Calls
		}
		if e.Response.Info != nil {
			fields["input_tokens"] = e.Response.Info.InputTokens
			fields["output_tokens"] = e.Response.Info.OutputTokens
		}
		if e.Response.Model != "" {
			fields["model"] = e.Response.Model
		}
	}
	t.write(e, e.Base, fields)
}

// OnAfterToolCall implements flightdesk.AfterToolCallSubscriber.
func (t *Transcript) OnAfterToolCall(e *flightdesk.AfterToolCallEvent) {
	t.write(e, e.Base, map[string]any{
		"tool":      e.Call.Name,
		"call_id":   e.Call.ID,
		"arguments": e.Call.Arguments,
		"result":    e.Result,
		"duration":  e.Duration.String(),
	})
}

// OnReply implements flightdesk.ReplySubscriber.
func (t *Transcript) OnReply(e *flightdesk.ReplyEvent) {
	fields := map[string]any{
		"user":        e.UserText,
		"reply":       e.Reply,
		"model_calls": e.ModelCalls,
		"tool_calls":  e.ToolCalls,
	}
	if e.Error != nil {
		fields["error"] = e.Error.Error()
	}
	t.write(e, e.Base, fields)
}

// OnReset implements flightdesk.ResetSubscriber.
func (t *Transcript) OnReset(e *flightdesk.ResetEvent) {
	t.write(e, e.Base, map[string]any{"cleared": e.Cleared})
}
