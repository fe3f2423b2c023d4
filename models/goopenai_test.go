package models

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rickchristie/flightdesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatServer serves one canned chat completion body and records the decoded
// request.
func chatServer(t *testing.T, status int, body string, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClient_ToolCalls(t *testing.T) {
	var captured map[string]any
	srv := chatServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"model": "gpt-3.5-turbo-0125",
		"choices": [{
			"index": 0,
			"finish_reason": "tool_calls",
			"message": {
				"role": "assistant",
				"content": "",
				"tool_calls": [{
					"id": "call_abc",
					"type": "function",
					"function": {"name": "get_flight_info", "arguments": "{\"flight_number\":\"AA123\"}"}
				}]
			}
		}],
		"usage": {"prompt_tokens": 90, "completion_tokens": 15, "total_tokens": 105}
	}`, &captured)

	client := NewOpenAIClient("test-key", srv.URL, "gpt-3.5-turbo")
	resp, err := client.GenerateContent(context.Background(), &flightdesk.Request{
		Messages:    []flightdesk.Message{flightdesk.SystemMessage("sys"), flightdesk.UserMessage("AA123?")},
		Tools:       []flightdesk.ToolDescriptor{flightInfoTool},
		ToolChoice:  flightdesk.AutoToolChoice(),
		MaxTokens:   500,
		Temperature: 0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, &flightdesk.ToolCallsRequested{
		Calls: []flightdesk.ToolCallRequest{{
			ID:        "call_abc",
			Name:      "get_flight_info",
			Arguments: `{"flight_number":"AA123"}`,
		}},
	}, resp.Result)
	assert.Equal(t, "gpt-3.5-turbo-0125", resp.Model)
	assert.Equal(t, "tool_calls", resp.StopReason)
	assert.Equal(t, 90, resp.Info.InputTokens)
	assert.Equal(t, 15, resp.Info.OutputTokens)
	assert.Equal(t, 105, resp.Info.TotalTokens)

	assert.Equal(t, "gpt-3.5-turbo", captured["model"])
	assert.Equal(t, "auto", captured["tool_choice"])
	assert.EqualValues(t, 500, captured["max_tokens"])
	assert.InDelta(t, 0.5, captured["temperature"], 1e-6)
	assert.Len(t, captured["messages"], 2)
	assert.Len(t, captured["tools"], 1)
}

func TestOpenAIClient_SecondRoundMessages(t *testing.T) {
	var captured map[string]any
	srv := chatServer(t, http.StatusOK, `{
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "AA123 is on time."}}],
		"usage": {"prompt_tokens": 120, "completion_tokens": 8}
	}`, &captured)

	call := flightdesk.ToolCallRequest{ID: "call_abc", Name: "get_flight_info", Arguments: `{"flight_number":"AA123"}`}
	client := NewOpenAIClient("test-key", srv.URL, "gpt-3.5-turbo")
	resp, err := client.GenerateContent(context.Background(), &flightdesk.Request{
		Messages: []flightdesk.Message{
			flightdesk.UserMessage("AA123?"),
			(&flightdesk.ToolCallsRequested{Calls: []flightdesk.ToolCallRequest{call}}).Message(),
			flightdesk.ToolResultMessage(call, "Flight AA123: On Time"),
		},
		MaxTokens: 500,
	})
	require.NoError(t, err)

	assert.Equal(t, &flightdesk.Final{Content: "AA123 is on time."}, resp.Result)
	assert.Equal(t, "gpt-3.5-turbo", resp.Model)
	assert.Equal(t, 128, resp.Info.TotalTokens)
	assert.NotContains(t, captured, "tools")
	assert.NotContains(t, captured, "tool_choice")

	msgs := captured["messages"].([]any)
	require.Len(t, msgs, 3)
	assistant := msgs[1].(map[string]any)
	assert.Equal(t, "assistant", assistant["role"])
	assert.Len(t, assistant["tool_calls"], 1)
	tool := msgs[2].(map[string]any)
	assert.Equal(t, "tool", tool["role"])
	assert.Equal(t, "call_abc", tool["tool_call_id"])
	assert.Equal(t, "Flight AA123: On Time", tool["content"])
}

func TestOpenAIClient_ForcedTool(t *testing.T) {
	var captured map[string]any
	srv := chatServer(t, http.StatusOK, `{"choices": [{"message": {"role": "assistant", "content": "ok"}}]}`, &captured)

	_, err := NewOpenAIClient("test-key", srv.URL, "gpt-4o").GenerateContent(context.Background(), &flightdesk.Request{
		Messages:   []flightdesk.Message{flightdesk.UserMessage("rate it")},
		Tools:      []flightdesk.ToolDescriptor{flightInfoTool},
		ToolChoice: flightdesk.ForceTool("get_flight_info"),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"type":     "function",
		"function": map[string]any{"name": "get_flight_info"},
	}, captured["tool_choice"])
}

func TestOpenAIClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{"error": {"message": "Rate limit reached", "type": "requests"}}`,
			expected: "Rate limit reached",
		},
		{
			name:     "empty choices",
			status:   http.StatusOK,
			body:     `{"choices": []}`,
			expected: flightdesk.ErrEmptyResponse.Error(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := chatServer(t, tc.status, tc.body, nil)
			resp, err := NewOpenAIClient("test-key", srv.URL, "gpt-3.5-turbo").
				GenerateContent(context.Background(), &flightdesk.Request{
					Messages: []flightdesk.Message{flightdesk.UserMessage("hi")},
				})
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, err.Error(), tc.expected)
		})
	}
}
