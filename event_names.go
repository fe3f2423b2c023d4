package flightdesk

// Event name constants follow the pattern "namespace:category:timing".
//
//	flightdesk:model_call:before    // before a remote model call
//	flightdesk:reply                // single event, no timing
const (
	// Model calls
	EventNameModelCallBefore = "flightdesk:model_call:before"
	EventNameModelCallAfter  = "flightdesk:model_call:after"

	// Tool calls
	EventNameToolCallAfter = "flightdesk:tool_call:after"

	// Conversation
	EventNameReply = "flightdesk:reply"
	EventNameReset = "flightdesk:reset"
)
