package models

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rickchristie/flightdesk"
	"github.com/rickchristie/flightdesk/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var flightInfoTool = flightdesk.ToolDescriptor{
	Name:        "get_flight_info",
	Description: "Get flight information",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flight_number": map[string]any{"type": "string"},
		},
		"required": []string{"flight_number"},
	},
}

func TestLCGWrapper_Messages(t *testing.T) {
	call := flightdesk.ToolCallRequest{ID: "call_1", Name: "get_flight_info", Arguments: `{"flight_number":"AA123"}`}
	fake := tt.NewFakeLLM().AddText("It is on time.", 12, 4)
	model := NewLCGWrapper(fake).WithModelName("gpt-test")

	_, err := model.GenerateContent(context.Background(), &flightdesk.Request{
		Messages: []flightdesk.Message{
			flightdesk.SystemMessage("sys"),
			flightdesk.UserMessage("Is AA123 on time?"),
			(&flightdesk.ToolCallsRequested{Calls: []flightdesk.ToolCallRequest{call}}).Message(),
			flightdesk.ToolResultMessage(call, "Flight AA123: On Time"),
		},
	})
	require.NoError(t, err)
	require.Len(t, fake.Messages, 1)

	msgs := fake.Messages[0]
	require.Len(t, msgs, 4)

	assert.Equal(t, llms.TextParts(llms.ChatMessageTypeSystem, "sys"), msgs[0])
	assert.Equal(t, llms.TextParts(llms.ChatMessageTypeHuman, "Is AA123 on time?"), msgs[1])

	assert.Equal(t, llms.ChatMessageTypeAI, msgs[2].Role)
	assert.Equal(t, []llms.ContentPart{llms.ToolCall{
		ID:           "call_1",
		Type:         "function",
		FunctionCall: &llms.FunctionCall{Name: "get_flight_info", Arguments: `{"flight_number":"AA123"}`},
	}}, msgs[2].Parts)

	assert.Equal(t, llms.ChatMessageTypeTool, msgs[3].Role)
	assert.Equal(t, []llms.ContentPart{llms.ToolCallResponse{
		ToolCallID: "call_1",
		Name:       "get_flight_info",
		Content:    "Flight AA123: On Time",
	}}, msgs[3].Parts)
}

func TestLCGWrapper_Options(t *testing.T) {
	type input struct {
		request *flightdesk.Request
	}

	type expected struct {
		tools      int
		toolChoice any
		maxTokens  int
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "no tools",
			input: input{request: &flightdesk.Request{
				MaxTokens:   500,
				Temperature: 0.7,
			}},
			expected: expected{maxTokens: 500},
		},
		{
			name: "auto",
			input: input{request: &flightdesk.Request{
				Tools:       []flightdesk.ToolDescriptor{flightInfoTool},
				ToolChoice:  flightdesk.AutoToolChoice(),
				MaxTokens:   500,
				Temperature: 0.7,
			}},
			expected: expected{tools: 1, toolChoice: "auto", maxTokens: 500},
		},
		{
			name: "forced function",
			input: input{request: &flightdesk.Request{
				Tools:      []flightdesk.ToolDescriptor{flightInfoTool},
				ToolChoice: flightdesk.ForceTool("get_flight_info"),
			}},
			expected: expected{
				tools: 1,
				toolChoice: llms.ToolChoice{
					Type:     "function",
					Function: &llms.FunctionReference{Name: "get_flight_info"},
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := tt.NewFakeLLM()
			_, err := NewLCGWrapper(fake).GenerateContent(context.Background(), tc.input.request)
			require.NoError(t, err)
			require.Len(t, fake.Options, 1)

			opts := fake.Options[0]
			assert.Len(t, opts.Tools, tc.expected.tools)
			assert.Equal(t, tc.expected.toolChoice, opts.ToolChoice)
			assert.Equal(t, tc.expected.maxTokens, opts.MaxTokens)
			assert.InDelta(t, tc.input.request.Temperature, opts.Temperature, 1e-9)
			if tc.expected.tools > 0 {
				assert.Equal(t, "get_flight_info", opts.Tools[0].Function.Name)
				assert.Equal(t, flightInfoTool.Parameters, opts.Tools[0].Function.Parameters)
			}
		})
	}
}

func TestLCGWrapper_Response(t *testing.T) {
	type expected struct {
		result flightdesk.Response
		info   *flightdesk.GenerationInfo
		err    error
	}

	tests := []struct {
		name     string
		input    *llms.ContentResponse
		llmErr   error
		expected expected
	}{
		{
			name: "final with openai usage",
			input: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
				Content:    "hello",
				StopReason: "stop",
				GenerationInfo: map[string]any{
					"PromptTokens":       100,
					"CompletionTokens":   20,
					"TotalTokens":        120,
					"PromptCachedTokens": 40,
				},
			}}},
			expected: expected{
				result: &flightdesk.Final{Content: "hello"},
				info: &flightdesk.GenerationInfo{
					InputTokens:       100,
					OutputTokens:      20,
					TotalTokens:       120,
					CachedInputTokens: 40,
				},
			},
		},
		{
			name: "tool calls with anthropic usage",
			input: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
				Content: "checking",
				ToolCalls: []llms.ToolCall{{
					ID:           "call_9",
					Type:         "function",
					FunctionCall: &llms.FunctionCall{Name: "get_all_flights", Arguments: "{}"},
				}},
				GenerationInfo: map[string]any{
					"InputTokens":  int64(50),
					"OutputTokens": float64(7),
				},
			}}},
			expected: expected{
				result: &flightdesk.ToolCallsRequested{
					Content: "checking",
					Calls:   []flightdesk.ToolCallRequest{{ID: "call_9", Name: "get_all_flights", Arguments: "{}"}},
				},
				info: &flightdesk.GenerationInfo{InputTokens: 50, OutputTokens: 7, TotalTokens: 57},
			},
		},
		{
			name:     "no choices",
			input:    &llms.ContentResponse{},
			expected: expected{err: flightdesk.ErrEmptyResponse},
		},
		{
			name:     "provider error",
			llmErr:   errors.New("503 service unavailable"),
			expected: expected{err: errors.New("generate content: 503 service unavailable")},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := tt.NewFakeLLM()
			if tc.llmErr != nil {
				fake.AddError(tc.llmErr)
			} else {
				fake.AddResponse(tc.input)
			}

			resp, err := NewLCGWrapper(fake).WithModelName("gpt-test").
				GenerateContent(context.Background(), &flightdesk.Request{})

			if tc.expected.err != nil {
				require.Error(t, err)
				assert.EqualError(t, err, tc.expected.err.Error())
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "gpt-test", resp.Model)
			assert.Equal(t, tc.expected.result, resp.Result)
			assert.Equal(t, tc.expected.info.InputTokens, resp.Info.InputTokens)
			assert.Equal(t, tc.expected.info.OutputTokens, resp.Info.OutputTokens)
			assert.Equal(t, tc.expected.info.TotalTokens, resp.Info.TotalTokens)
			assert.Equal(t, tc.expected.info.CachedInputTokens, resp.Info.CachedInputTokens)
		})
	}
}

func TestLCGWrapper_LiveOpenAI(t *testing.T) {
	apiKey := os.Getenv("FLIGHTDESK_TEST_OPENAI_KEY")
	if apiKey == "" {
		t.Skip("FLIGHTDESK_TEST_OPENAI_KEY not set")
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(flightdesk.ModelOpenAIGPT4oMini),
	)
	require.NoError(t, err, "failed to create OpenAI LLM")

	resp, err := NewLCGWrapper(llm).GenerateContent(context.Background(), &flightdesk.Request{
		Messages:   []flightdesk.Message{flightdesk.UserMessage("What is the status of flight AA123?")},
		Tools:      []flightdesk.ToolDescriptor{flightInfoTool},
		ToolChoice: flightdesk.ForceTool("get_flight_info"),
		MaxTokens:  100,
	})
	require.NoError(t, err)

	calls, ok := resp.Result.(*flightdesk.ToolCallsRequested)
	require.True(t, ok, "expected a tool call, got %T", resp.Result)
	assert.Equal(t, "get_flight_info", calls.Calls[0].Name)
	assert.Greater(t, resp.Info.InputTokens, 0)
}
