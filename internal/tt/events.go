// Package tt provides test helpers shared by the flightdesk packages.
package tt

import (
	"sync"

	"github.com/rickchristie/flightdesk"
)

// -----------------------------------------------------------------------------
// EventCollector
// -----------------------------------------------------------------------------

// EventCollector implements every flightdesk subscriber interface and keeps
// the events it receives, in order.
type EventCollector struct {
	mu     sync.Mutex
	events []flightdesk.Event
}

// NewEventCollector creates an empty collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{}
}

func (c *EventCollector) add(e flightdesk.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Events returns a copy of the collected events.
func (c *EventCollector) Events() []flightdesk.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]flightdesk.Event(nil), c.events...)
}

// OnBeforeModelCall implements flightdesk.BeforeModelCallSubscriber.
func (c *EventCollector) OnBeforeModelCall(e *flightdesk.BeforeModelCallEvent) { c.add(e) }

// OnAfterModelCall implements flightdesk.AfterModelCallSubscriber.
func (c *EventCollector) OnAfterModelCall(e *flightdesk.AfterModelCallEvent) { c.add(e) }

// OnAfterToolCall implements flightdesk.AfterToolCallSubscriber.
func (c *EventCollector) OnAfterToolCall(e *flightdesk.AfterToolCallEvent) { c.add(e) }

// OnReply implements flightdesk.ReplySubscriber.
func (c *EventCollector) OnReply(e *flightdesk.ReplyEvent) { c.add(e) }

// OnReset implements flightdesk.ResetSubscriber.
func (c *EventCollector) OnReset(e *flightdesk.ResetEvent) { c.add(e) }

// -----------------------------------------------------------------------------
// Event Builders
// -----------------------------------------------------------------------------

// BeforeModelCall creates an expected BeforeModelCallEvent. The request is
// not compared by AssertEventsEqual.
func BeforeModelCall(round int) *flightdesk.BeforeModelCallEvent {
	return &flightdesk.BeforeModelCallEvent{Round: round}
}

// AfterModelCall creates an expected AfterModelCallEvent. Only the error text
// is compared, when set.
func AfterModelCall(round int, err error) *flightdesk.AfterModelCallEvent {
	return &flightdesk.AfterModelCallEvent{Round: round, Error: err}
}

// AfterToolCall creates an expected AfterToolCallEvent.
func AfterToolCall(id, name, arguments, result string) *flightdesk.AfterToolCallEvent {
	return &flightdesk.AfterToolCallEvent{
		Call:   flightdesk.ToolCallRequest{ID: id, Name: name, Arguments: arguments},
		Result: result,
	}
}

// Reply creates an expected ReplyEvent.
func Reply(userText, reply string, modelCalls, toolCalls int, err error) *flightdesk.ReplyEvent {
	return &flightdesk.ReplyEvent{
		UserText:   userText,
		Reply:      reply,
		ModelCalls: modelCalls,
		ToolCalls:  toolCalls,
		Error:      err,
	}
}

// Reset creates an expected ResetEvent.
func Reset(cleared int) *flightdesk.ResetEvent {
	return &flightdesk.ResetEvent{Cleared: cleared}
}
