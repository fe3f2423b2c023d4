package models

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rickchristie/flightdesk"
	"github.com/rs/zerolog/log"
	go_openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements flightdesk.Model directly on the go-openai chat
// completions client. It is the "openai-native" provider.
type OpenAIClient struct {
	client *go_openai.Client
	model  string
}

// NewOpenAIClient creates a client for model. An empty baseURL keeps the
// go-openai default (api.openai.com).
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	config := go_openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: go_openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// GenerateContent implements flightdesk.Model.
func (c *OpenAIClient) GenerateContent(
	ctx context.Context,
	req *flightdesk.Request,
) (*flightdesk.ContentResponse, error) {
	request := c.makeRequest(req)

	log.Debug().
		Str("model", request.Model).
		Int("messages", len(request.Messages)).
		Int("tools", len(request.Tools)).
		Int("max_tokens", request.MaxTokens).
		Interface("tool_choice", request.ToolChoice).
		Msg("Making request to openai")

	startTime := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	duration := time.Since(startTime)
	if err != nil {
		return nil, errors.Wrap(err, "create chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, flightdesk.ErrEmptyResponse
	}

	choice := resp.Choices[0]
	var calls []flightdesk.ToolCallRequest
	for _, tc := range choice.Message.ToolCalls {
		calls = append(calls, flightdesk.ToolCallRequest{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	info := &flightdesk.GenerationInfo{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
		Duration:     duration,
	}
	if d := resp.Usage.PromptTokensDetails; d != nil {
		info.CachedInputTokens = d.CachedTokens
	}
	if d := resp.Usage.CompletionTokensDetails; d != nil {
		info.ReasoningTokens = d.ReasoningTokens
	}
	if info.TotalTokens == 0 {
		info.TotalTokens = info.InputTokens + info.OutputTokens
	}

	model := resp.Model
	if model == "" {
		model = c.model
	}

	return &flightdesk.ContentResponse{
		Result:     flightdesk.NewResponse(choice.Message.Content, calls),
		Model:      model,
		StopReason: string(choice.FinishReason),
		Info:       info,
	}, nil
}

func (c *OpenAIClient) makeRequest(req *flightdesk.Request) go_openai.ChatCompletionRequest {
	request := go_openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAIMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	}

	if len(req.Tools) == 0 {
		return request
	}

	request.Tools = make([]go_openai.Tool, len(req.Tools))
	for i, d := range req.Tools {
		request.Tools[i] = go_openai.Tool{
			Type: go_openai.ToolTypeFunction,
			Function: &go_openai.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Parameters,
			},
		}
	}

	switch req.ToolChoice.Mode {
	case flightdesk.ToolChoiceAuto, flightdesk.ToolChoiceNone, flightdesk.ToolChoiceRequired:
		request.ToolChoice = string(req.ToolChoice.Mode)
	case flightdesk.ToolChoiceFunction:
		request.ToolChoice = go_openai.ToolChoice{
			Type:     go_openai.ToolTypeFunction,
			Function: go_openai.ToolFunction{Name: req.ToolChoice.Function},
		}
	}
	return request
}

func toOpenAIMessages(messages []flightdesk.Message) []go_openai.ChatCompletionMessage {
	out := make([]go_openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		m := go_openai.ChatCompletionMessage{
			Role:       string(msg.Role),
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
			Name:       msg.Name,
		}
		for _, call := range msg.ToolCalls {
			m.ToolCalls = append(m.ToolCalls, go_openai.ToolCall{
				ID:   call.ID,
				Type: go_openai.ToolTypeFunction,
				Function: go_openai.FunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
		out = append(out, m)
	}
	return out
}

var _ flightdesk.Model = (*OpenAIClient)(nil)
