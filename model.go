package flightdesk

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrEmptyResponse is returned by model adapters when the provider answered
// without any choice to read.
var ErrEmptyResponse = errors.New("model returned no choices")

// Model is the remote chat-completion client used by the assistant. Adapters in
// the models package wrap langchaingo and go-openai clients behind it.
//
// Implementations return errors for transport, provider and decoding failures.
// They never retry.
type Model interface {
	// GenerateContent sends one chat-completion request and resolves the
	// provider's answer into a tagged Response.
	GenerateContent(ctx context.Context, req *Request) (*ContentResponse, error)
}

// ToolChoiceMode tells the model how it may use the advertised tools.
type ToolChoiceMode string

const (
	// ToolChoiceAuto lets the model decide whether to call a tool.
	ToolChoiceAuto ToolChoiceMode = "auto"

	// ToolChoiceNone forbids tool calls.
	ToolChoiceNone ToolChoiceMode = "none"

	// ToolChoiceRequired forces at least one tool call.
	ToolChoiceRequired ToolChoiceMode = "required"

	// ToolChoiceFunction forces a call to the tool named in ToolChoice.Function.
	ToolChoiceFunction ToolChoiceMode = "function"
)

// ToolChoice is the tool-use directive sent with a request. The zero value
// means the provider default.
type ToolChoice struct {
	Mode     ToolChoiceMode
	Function string
}

// IsZero reports whether no directive was set.
func (c ToolChoice) IsZero() bool {
	return c.Mode == ""
}

// AutoToolChoice returns the "model decides" directive.
func AutoToolChoice() ToolChoice {
	return ToolChoice{Mode: ToolChoiceAuto}
}

// ForceTool returns a directive forcing a call to the named tool.
func ForceTool(name string) ToolChoice {
	return ToolChoice{Mode: ToolChoiceFunction, Function: name}
}

// Request is a single chat-completion request.
type Request struct {
	// Messages is the full outgoing message list, system message first.
	Messages []Message

	// Tools is the advertised tool schema. Nil means no tools are offered.
	Tools []ToolDescriptor

	// ToolChoice is only meaningful when Tools is non-empty.
	ToolChoice ToolChoice

	// MaxTokens bounds the completion length. Zero leaves it to the provider.
	MaxTokens int

	// Temperature is the sampling temperature.
	Temperature float64
}

// Response is the tagged result of a model call. It is implemented by *Final
// and *ToolCallsRequested only; resolve it with a type switch.
type Response interface {
	// Text returns the textual part of the response, empty when absent.
	Text() string

	response()
}

// Final is a plain text answer.
type Final struct {
	Content string
}

// Text returns the answer.
func (f *Final) Text() string { return f.Content }

func (*Final) response() {}

// ToolCallsRequested is an answer asking for one or more tool invocations.
// Content is optional text that accompanied the calls.
type ToolCallsRequested struct {
	Content string
	Calls   []ToolCallRequest
}

// Text returns the accompanying text, possibly empty.
func (t *ToolCallsRequested) Text() string { return t.Content }

func (*ToolCallsRequested) response() {}

// Message returns the assistant message carrying the tool calls, as it must be
// echoed back to the model before the tool results.
func (t *ToolCallsRequested) Message() Message {
	return Message{
		Role:      RoleAssistant,
		Content:   t.Content,
		ToolCalls: t.Calls,
	}
}

// NewResponse builds the tagged variant from raw text and calls.
func NewResponse(text string, calls []ToolCallRequest) Response {
	if len(calls) == 0 {
		return &Final{Content: text}
	}
	return &ToolCallsRequested{Content: text, Calls: calls}
}

// ContentResponse is the response from a GenerateContent call.
type ContentResponse struct {
	// Result is the resolved response variant. Never nil on success.
	Result Response

	// Model is the model that produced the response, when known.
	Model string

	// StopReason is the provider's finish reason.
	StopReason string

	// Info contains generation metadata including normalized token counts.
	Info *GenerationInfo
}

// GenerationInfo contains metadata about the generation including normalized
// token counts.
type GenerationInfo struct {
	// InputTokens is the number of prompt tokens used.
	InputTokens int

	// OutputTokens is the number of completion tokens generated.
	OutputTokens int

	// TotalTokens is InputTokens + OutputTokens unless the provider reports it.
	TotalTokens int

	// CachedInputTokens is the number of prompt tokens served from cache.
	CachedInputTokens int

	// ReasoningTokens is the number of tokens used for reasoning.
	ReasoningTokens int

	// RawGenerationInfo contains the provider-specific generation map, if any.
	RawGenerationInfo map[string]any

	// Duration is how long the generation took.
	Duration time.Duration
}
