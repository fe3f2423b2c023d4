package flightdesk

import "time"

// -----------------------------------------------------------------------------
// Event Interface
// -----------------------------------------------------------------------------

// Event is implemented by every lifecycle event published by the assistant.
type Event interface {
	// Name returns the event's EventName constant.
	Name() string

	event()
}

// Base holds the fields common to all events.
type Base struct {
	// RequestID identifies the ProcessMessage call that published the event.
	RequestID string

	// Timestamp is when the event was published.
	Timestamp time.Time
}

// -----------------------------------------------------------------------------
// Model Call Events
// -----------------------------------------------------------------------------

// BeforeModelCallEvent is published before each remote model call.
type BeforeModelCallEvent struct {
	Base

	// Round is 1 for the initial call and 2 for the follow-up call.
	Round int

	// Request is the request about to be sent.
	Request *Request
}

func (*BeforeModelCallEvent) Name() string { return EventNameModelCallBefore }
func (*BeforeModelCallEvent) event()       {}

// AfterModelCallEvent is published after each remote model call completes.
type AfterModelCallEvent struct {
	Base

	// Round is 1 for the initial call and 2 for the follow-up call.
	Round int

	// Request is the request that was sent.
	Request *Request

	// Response is nil when Error is set.
	Response *ContentResponse

	// Duration is how long the call took.
	Duration time.Duration

	// Error is any error that occurred (nil if successful).
	Error error
}

func (*AfterModelCallEvent) Name() string { return EventNameModelCallAfter }
func (*AfterModelCallEvent) event()       {}

// -----------------------------------------------------------------------------
// Tool Call Events
// -----------------------------------------------------------------------------

// AfterToolCallEvent is published after each tool dispatch.
type AfterToolCallEvent struct {
	Base

	// Call is the request that was dispatched.
	Call ToolCallRequest

	// Result is the text returned to the model, including error texts.
	Result string

	// Duration is how long the dispatch took.
	Duration time.Duration
}

func (*AfterToolCallEvent) Name() string { return EventNameToolCallAfter }
func (*AfterToolCallEvent) event()       {}

// -----------------------------------------------------------------------------
// Conversation Events
// -----------------------------------------------------------------------------

// ReplyEvent is published when ProcessMessage returns.
type ReplyEvent struct {
	Base

	// UserText is the incoming message.
	UserText string

	// Reply is the text returned to the caller.
	Reply string

	// ModelCalls is the number of remote calls made (1 or 2, or fewer on failure).
	ModelCalls int

	// ToolCalls is the number of tool dispatches made.
	ToolCalls int

	// Error is the remote failure behind an apology reply, nil otherwise.
	Error error
}

func (*ReplyEvent) Name() string { return EventNameReply }
func (*ReplyEvent) event()       {}

// ResetEvent is published when the conversation history is cleared.
type ResetEvent struct {
	Base

	// Cleared is the number of messages removed.
	Cleared int
}

func (*ResetEvent) Name() string { return EventNameReset }
func (*ResetEvent) event()       {}
