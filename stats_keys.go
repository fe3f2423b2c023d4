package flightdesk

// Standard key prefix for all flightdesk usage counters.
const KeyPrefix = "flightdesk:"

// Conversation tracking.
const (
	KeyReplies      = "flightdesk:replies"
	KeyRemoteErrors = "flightdesk:remote_errors"
)

// Model call and token tracking keys.
const (
	KeyModelCalls      = "flightdesk:model_calls"
	KeyInputTokens     = "flightdesk:input_tokens"
	KeyInputTokensFor  = "flightdesk:input_tokens:" // + model name
	KeyOutputTokens    = "flightdesk:output_tokens"
	KeyOutputTokensFor = "flightdesk:output_tokens:" // + model name
)

// Tool call tracking keys.
const (
	KeyToolCalls    = "flightdesk:tool_calls"
	KeyToolCallsFor = "flightdesk:tool_calls:" // + tool name
)
