package flightdesk

// =============================================================================
// Conversation defaults
// =============================================================================

const (
	// DefaultHistoryWindow is the number of most recent history messages sent
	// with every request.
	DefaultHistoryWindow = 10

	// DefaultMaxTokens bounds each completion.
	DefaultMaxTokens = 500

	// DefaultTemperature is the sampling temperature for support replies.
	DefaultTemperature = 0.7

	// DefaultModel is the chat model used when none is configured.
	DefaultModel = ModelOpenAIGPT35Turbo
)

// =============================================================================
// OpenAI Models
// https://platform.openai.com/docs/models/
// =============================================================================

const (
	// GPT-3.5 Series
	ModelOpenAIGPT35Turbo = "gpt-3.5-turbo"

	// GPT-4.1 Series
	ModelOpenAIGPT41     = "gpt-4.1"
	ModelOpenAIGPT41Mini = "gpt-4.1-mini"
	ModelOpenAIGPT41Nano = "gpt-4.1-nano"

	// GPT-4o Series
	ModelOpenAIGPT4o     = "gpt-4o"
	ModelOpenAIGPT4oMini = "gpt-4o-mini"
)
