// Package testutil provides shared infrastructure for the end-to-end
// scenarios: a live model gated on the environment, a scripted
// OpenAI-compatible server, and an assistant wired to a YAML transcript.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rickchristie/flightdesk"
	"github.com/rickchristie/flightdesk/assistant"
	"github.com/rickchristie/flightdesk/events"
	"github.com/rickchristie/flightdesk/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Environment variables read by live scenarios.
const (
	EnvOpenAIKey = "FLIGHTDESK_TEST_OPENAI_KEY"
	EnvModel     = "FLIGHTDESK_TEST_MODEL"
)

// LiveModel returns an OpenAI model, or skips the test when EnvOpenAIKey is
// not set. EnvModel overrides the default gpt-4o-mini.
func LiveModel(t *testing.T) flightdesk.Model {
	t.Helper()
	key := os.Getenv(EnvOpenAIKey)
	if key == "" {
		t.Skip(EnvOpenAIKey + " not set, skipping live scenario")
	}
	name := os.Getenv(EnvModel)
	if name == "" {
		name = flightdesk.ModelOpenAIGPT4oMini
	}
	model, err := models.New(models.Settings{
		Provider: models.ProviderOpenAI,
		APIKey:   key,
		Model:    name,
	})
	require.NoError(t, err)
	return model
}

// NewAssistant builds an assistant that logs events to the test log and,
// when w is not nil, writes a YAML transcript to w.
func NewAssistant(t *testing.T, model flightdesk.Model, w io.Writer) *assistant.Assistant {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).With().Timestamp().Logger()

	registry := events.NewRegistry()
	if w != nil {
		registry.Subscribe(events.NewTranscript(w))
	}
	return assistant.New(model).
		WithEvents(registry).
		WithLogger(logger).
		WithRequestTimeout(60 * time.Second)
}

// ContainsIgnoreCase reports whether substr is within s, case-insensitively.
func ContainsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// -----------------------------------------------------------------------------
// ChatServer
// -----------------------------------------------------------------------------

// ChatServer is an OpenAI-compatible chat completions endpoint that replies
// with queued bodies in order and records every decoded request. When the
// queue is empty it answers 500.
type ChatServer struct {
	*httptest.Server

	mu       sync.Mutex
	bodies   []string
	requests []map[string]any
}

// NewChatServer starts a ChatServer closed at the end of the test.
func NewChatServer(t *testing.T, bodies ...string) *ChatServer {
	t.Helper()
	s := &ChatServer{bodies: bodies}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *ChatServer) serve(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	s.requests = append(s.requests, req)
	var body string
	ok := len(s.bodies) > 0
	if ok {
		body, s.bodies = s.bodies[0], s.bodies[1:]
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"no scripted response","type":"server_error"}}`))
		return
	}
	_, _ = w.Write([]byte(body))
}

// Requests returns the decoded requests received so far.
func (s *ChatServer) Requests() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.requests...)
}

type completion struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   usage    `json:"usage"`
}

type choice struct {
	Index        int     `json:"index"`
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type message struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []toolCall `json:"tool_calls,omitempty"`
}

type toolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func marshalCompletion(msg message, finish string) string {
	data, err := json.Marshal(completion{
		ID:      "chatcmpl-test",
		Object:  "chat.completion",
		Created: 1700000000,
		Model:   "gpt-test",
		Choices: []choice{{Message: msg, FinishReason: finish}},
		Usage:   usage{PromptTokens: 40, CompletionTokens: 10, TotalTokens: 50},
	})
	if err != nil {
		panic(err)
	}
	return string(data)
}

// TextBody is a completion answering with content.
func TextBody(content string) string {
	return marshalCompletion(message{Role: "assistant", Content: content}, "stop")
}

// ToolCallBody is a completion requesting one tool call.
func ToolCallBody(id, name, arguments string) string {
	tc := toolCall{ID: id, Type: "function"}
	tc.Function.Name = name
	tc.Function.Arguments = arguments
	return marshalCompletion(message{Role: "assistant", ToolCalls: []toolCall{tc}}, "tool_calls")
}
