package events

import (
	"fmt"
	"reflect"

	"github.com/rickchristie/flightdesk"
)

// Registry manages event subscribers and dispatches events to them.
//
// Subscribers can implement any combination of the subscriber interfaces in
// the flightdesk package; they only receive events for the interfaces they
// implement, in the order they were registered.
//
//	registry := events.NewRegistry()
//	registry.Subscribe(events.NewTranscript(file))
//
//	bot := assistant.New(model).WithEvents(registry)
//
// The assistant adds its own stats and log subscribers to the registry.
//
// # Thread Safety
//
// Registry is NOT thread-safe. Register all subscribers before the assistant
// starts processing messages.
type Registry struct {
	subscribers  []any
	maxRecursion int
	depth        int
}

// DefaultMaxRecursion is the default maximum event recursion depth.
const DefaultMaxRecursion = 10

// NewRegistry creates a new empty Registry with default settings.
func NewRegistry() *Registry {
	return &Registry{
		subscribers:  make([]any, 0),
		maxRecursion: DefaultMaxRecursion,
	}
}

// Subscribe adds a subscriber to the registry. A subscriber that is already
// registered is not added again, so it never sees an event twice.
func (r *Registry) Subscribe(subscriber any) *Registry {
	if subscriber == nil || r.Has(subscriber) {
		return r
	}
	r.subscribers = append(r.subscribers, subscriber)
	return r
}

// Has reports whether subscriber is registered. Subscribers of a
// non-comparable type are never reported as registered.
func (r *Registry) Has(subscriber any) bool {
	t := reflect.TypeOf(subscriber)
	if t == nil || !t.Comparable() {
		return false
	}
	for _, s := range r.subscribers {
		if reflect.TypeOf(s) == t && s == subscriber {
			return true
		}
	}
	return false
}

// Len returns the number of registered subscribers.
func (r *Registry) Len() int {
	return len(r.subscribers)
}

// SetMaxRecursion sets the maximum depth of subscribers publishing events from
// inside a handler. Publish panics beyond it.
func (r *Registry) SetMaxRecursion(max int) *Registry {
	r.maxRecursion = max
	return r
}

// Publish sends an event to all matching subscribers. A nil registry drops
// the event.
func (r *Registry) Publish(event flightdesk.Event) {
	if r == nil || event == nil {
		return
	}
	r.depth++
	defer func() { r.depth-- }()
	if r.depth > r.maxRecursion {
		panic(fmt.Sprintf(
			"flightdesk: event recursion depth %d exceeded while publishing %s",
			r.maxRecursion, event.Name(),
		))
	}

	switch e := event.(type) {
	case *flightdesk.BeforeModelCallEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(flightdesk.BeforeModelCallSubscriber); ok {
				sub.OnBeforeModelCall(e)
			}
		}
	case *flightdesk.AfterModelCallEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(flightdesk.AfterModelCallSubscriber); ok {
				sub.OnAfterModelCall(e)
			}
		}
	case *flightdesk.AfterToolCallEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(flightdesk.AfterToolCallSubscriber); ok {
				sub.OnAfterToolCall(e)
			}
		}
	case *flightdesk.ReplyEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(flightdesk.ReplySubscriber); ok {
				sub.OnReply(e)
			}
		}
	case *flightdesk.ResetEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(flightdesk.ResetSubscriber); ok {
				sub.OnReset(e)
			}
		}
	}
}

// Compile-time check.
var _ flightdesk.Publisher = (*Registry)(nil)
