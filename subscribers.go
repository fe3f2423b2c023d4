package flightdesk

// Subscriber interfaces define type-safe event subscriptions.
//
// Implement any combination of these interfaces on a single struct to receive
// multiple event types. The events.Registry detects which interfaces a
// subscriber implements and calls the matching methods.
//
// # Example
//
//	type TimingSubscriber struct{}
//
//	func (s *TimingSubscriber) OnAfterModelCall(event *flightdesk.AfterModelCallEvent) {
//	    fmt.Printf("round %d took %v\n", event.Round, event.Duration)
//	}
//
//	registry := events.NewRegistry()
//	registry.Subscribe(&TimingSubscriber{})

// BeforeModelCallSubscriber receives BeforeModelCallEvent events.
type BeforeModelCallSubscriber interface {
	OnBeforeModelCall(event *BeforeModelCallEvent)
}

// AfterModelCallSubscriber receives AfterModelCallEvent events.
type AfterModelCallSubscriber interface {
	OnAfterModelCall(event *AfterModelCallEvent)
}

// AfterToolCallSubscriber receives AfterToolCallEvent events.
type AfterToolCallSubscriber interface {
	OnAfterToolCall(event *AfterToolCallEvent)
}

// ReplySubscriber receives ReplyEvent events.
type ReplySubscriber interface {
	OnReply(event *ReplyEvent)
}

// ResetSubscriber receives ResetEvent events.
type ResetSubscriber interface {
	OnReset(event *ResetEvent)
}

// Publisher is implemented by events.Registry. The assistant publishes through
// it so the root package does not depend on the registry implementation.
type Publisher interface {
	Publish(event Event)
}
