package models

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rickchristie/flightdesk"
	"github.com/tmc/langchaingo/llms"
)

// LCGWrapper wraps an llms.Model and implements flightdesk.Model.
// It converts requests to langchaingo messages and call options, resolves the
// first choice into the tagged response variant, and normalizes token usage
// across providers.
//
// Example usage:
//
//	llm, _ := openai.New(openai.WithToken(apiKey), openai.WithModel("gpt-3.5-turbo"))
//	model := models.NewLCGWrapper(llm).WithModelName("gpt-3.5-turbo")
//
//	resp, err := model.GenerateContent(ctx, &flightdesk.Request{Messages: msgs})
type LCGWrapper struct {
	model     llms.Model
	modelName string // Optional model name reported in responses
}

// NewLCGWrapper creates a new LCGWrapper wrapping the given llms.Model.
func NewLCGWrapper(model llms.Model) *LCGWrapper {
	return &LCGWrapper{
		model: model,
	}
}

// WithModelName sets the model name reported in ContentResponse.Model.
// Returns the model for chaining.
func (m *LCGWrapper) WithModelName(name string) *LCGWrapper {
	m.modelName = name
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *LCGWrapper) Unwrap() llms.Model {
	return m.model
}

// GenerateContent implements flightdesk.Model.
func (m *LCGWrapper) GenerateContent(
	ctx context.Context,
	req *flightdesk.Request,
) (*flightdesk.ContentResponse, error) {
	messages := toLCGMessages(req.Messages)
	options := toLCGOptions(req)

	startTime := time.Now()
	lcgResponse, err := m.model.GenerateContent(ctx, messages, options...)
	duration := time.Since(startTime)
	if err != nil {
		return nil, errors.Wrap(err, "generate content")
	}
	if lcgResponse == nil || len(lcgResponse.Choices) == 0 {
		return nil, flightdesk.ErrEmptyResponse
	}

	response := convertLCGResponse(lcgResponse, duration)
	response.Model = m.modelName
	return response, nil
}

// toLCGMessages converts flightdesk messages to langchaingo message content.
func toLCGMessages(messages []flightdesk.Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case flightdesk.RoleSystem:
			out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, msg.Content))
		case flightdesk.RoleUser:
			out = append(out, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		case flightdesk.RoleAssistant:
			mc := llms.MessageContent{Role: llms.ChatMessageTypeAI}
			if msg.Content != "" || len(msg.ToolCalls) == 0 {
				mc.Parts = append(mc.Parts, llms.TextContent{Text: msg.Content})
			}
			for _, call := range msg.ToolCalls {
				mc.Parts = append(mc.Parts, llms.ToolCall{
					ID:   call.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      call.Name,
						Arguments: call.Arguments,
					},
				})
			}
			out = append(out, mc)
		case flightdesk.RoleTool:
			out = append(out, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: msg.ToolCallID,
					Name:       msg.Name,
					Content:    msg.Content,
				}},
			})
		}
	}
	return out
}

// toLCGOptions converts request parameters to langchaingo call options.
func toLCGOptions(req *flightdesk.Request) []llms.CallOption {
	var opts []llms.CallOption
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	opts = append(opts, llms.WithTemperature(req.Temperature))

	if len(req.Tools) == 0 {
		return opts
	}

	tools := make([]llms.Tool, len(req.Tools))
	for i, d := range req.Tools {
		tools[i] = llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Parameters,
			},
		}
	}
	opts = append(opts, llms.WithTools(tools))

	switch req.ToolChoice.Mode {
	case flightdesk.ToolChoiceAuto, flightdesk.ToolChoiceNone, flightdesk.ToolChoiceRequired:
		opts = append(opts, llms.WithToolChoice(string(req.ToolChoice.Mode)))
	case flightdesk.ToolChoiceFunction:
		opts = append(opts, llms.WithToolChoice(llms.ToolChoice{
			Type:     "function",
			Function: &llms.FunctionReference{Name: req.ToolChoice.Function},
		}))
	}
	return opts
}

// convertLCGResponse converts the first choice of an llms.ContentResponse to a
// flightdesk.ContentResponse with normalized tokens.
func convertLCGResponse(
	lcgResponse *llms.ContentResponse,
	duration time.Duration,
) *flightdesk.ContentResponse {
	choice := lcgResponse.Choices[0]

	var calls []flightdesk.ToolCallRequest
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		calls = append(calls, flightdesk.ToolCallRequest{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}

	response := &flightdesk.ContentResponse{
		Result:     flightdesk.NewResponse(choice.Content, calls),
		StopReason: choice.StopReason,
		Info:       &flightdesk.GenerationInfo{Duration: duration},
	}

	if rawInfo := choice.GenerationInfo; rawInfo != nil {
		response.Info.RawGenerationInfo = rawInfo
		response.Info.InputTokens = extractInputTokens(rawInfo)
		response.Info.OutputTokens = extractOutputTokens(rawInfo)
		response.Info.TotalTokens = extractTotalTokens(
			rawInfo,
			response.Info.InputTokens,
			response.Info.OutputTokens,
		)
		response.Info.CachedInputTokens = extractCachedInputTokens(rawInfo)
		response.Info.ReasoningTokens = extractReasoningTokens(rawInfo)
	}

	return response
}

// extractInputTokens extracts input/prompt token count from GenerationInfo.
// Handles different key names used by different providers.
func extractInputTokens(info map[string]any) int {
	// OpenAI / Ollama / Maritaca / Google (compat)
	if v := getIntFromMap(info, "PromptTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "InputTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	if v := getIntFromMap(info, "input_tokens"); v > 0 {
		return v
	}
	return 0
}

// extractOutputTokens extracts output/completion token count from GenerationInfo.
func extractOutputTokens(info map[string]any) int {
	if v := getIntFromMap(info, "CompletionTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "OutputTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "output_tokens"); v > 0 {
		return v
	}
	return 0
}

// extractTotalTokens extracts total token count or computes it.
func extractTotalTokens(info map[string]any, input, output int) int {
	if v := getIntFromMap(info, "TotalTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "total_tokens"); v > 0 {
		return v
	}
	return input + output
}

// extractCachedInputTokens extracts cached input token count from GenerationInfo.
func extractCachedInputTokens(info map[string]any) int {
	// OpenAI
	if v := getIntFromMap(info, "PromptCachedTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "CacheReadInputTokens"); v > 0 {
		return v
	}
	return 0
}

// extractReasoningTokens extracts reasoning token count from GenerationInfo.
func extractReasoningTokens(info map[string]any) int {
	if v := getIntFromMap(info, "ReasoningTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "CompletionReasoningTokens"); v > 0 {
		return v
	}
	return 0
}

// getIntFromMap extracts an int value from a map, handling various numeric types.
func getIntFromMap(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}

// Compile-time check that LCGWrapper implements flightdesk.Model.
var _ flightdesk.Model = (*LCGWrapper)(nil)
