package tt

import (
	"context"
	"sync"

	"github.com/rickchristie/flightdesk"
	"github.com/tmc/langchaingo/llms"
)

// -----------------------------------------------------------------------------
// MockModel - implements flightdesk.Model
// -----------------------------------------------------------------------------

// MockModel is a configurable mock that implements flightdesk.Model.
// Responses and errors are returned in the order they were queued; once the
// queue is exhausted every call returns a default Final "done".
type MockModel struct {
	mu        sync.Mutex
	name      string
	responses []*flightdesk.ContentResponse
	errors    []error
	callCount int

	// CapturedRequests stores the request passed to each GenerateContent
	// call. Populated automatically on every call.
	CapturedRequests []*flightdesk.Request
}

// NewMockModel creates a new MockModel with the default name "test-model".
func NewMockModel() *MockModel {
	return &MockModel{name: "test-model"}
}

// WithName sets the model name reported in ContentResponse.Model.
func (m *MockModel) WithName(name string) *MockModel {
	m.name = name
	return m
}

// AddFinal queues a plain text response with the specified token counts.
func (m *MockModel) AddFinal(content string, inputTokens, outputTokens int) *MockModel {
	return m.AddRawResponse(&flightdesk.ContentResponse{
		Result:     &flightdesk.Final{Content: content},
		StopReason: "stop",
		Info: &flightdesk.GenerationInfo{
			InputTokens:  inputTokens,
			OutputTokens: outputTokens,
			TotalTokens:  inputTokens + outputTokens,
		},
	})
}

// AddToolCalls queues a response requesting the given tool calls.
func (m *MockModel) AddToolCalls(content string, calls ...flightdesk.ToolCallRequest) *MockModel {
	return m.AddRawResponse(&flightdesk.ContentResponse{
		Result:     &flightdesk.ToolCallsRequested{Content: content, Calls: calls},
		StopReason: "tool_calls",
		Info:       &flightdesk.GenerationInfo{InputTokens: 20, OutputTokens: 10, TotalTokens: 30},
	})
}

// AddRawResponse queues a raw ContentResponse.
// Use this when you need full control over the response structure.
func (m *MockModel) AddRawResponse(resp *flightdesk.ContentResponse) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
	m.errors = append(m.errors, nil)
	return m
}

// AddError queues an error for the next call.
func (m *MockModel) AddError(err error) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, nil)
	m.errors = append(m.errors, err)
	return m
}

// CallCount returns the number of times GenerateContent has been called.
func (m *MockModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastRequest returns the most recent captured request, or nil.
func (m *MockModel) LastRequest() *flightdesk.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.CapturedRequests) == 0 {
		return nil
	}
	return m.CapturedRequests[len(m.CapturedRequests)-1]
}

// GenerateContent implements flightdesk.Model.
func (m *MockModel) GenerateContent(
	ctx context.Context,
	req *flightdesk.Request,
) (*flightdesk.ContentResponse, error) {
	m.mu.Lock()
	idx := m.callCount
	m.callCount++

	// Copy so later mutation by the caller does not leak into assertions.
	captured := *req
	captured.Messages = append([]flightdesk.Message(nil), req.Messages...)
	m.CapturedRequests = append(m.CapturedRequests, &captured)

	var (
		resp *flightdesk.ContentResponse
		err  error
	)
	if idx < len(m.errors) {
		resp, err = m.responses[idx], m.errors[idx]
	} else {
		resp = &flightdesk.ContentResponse{
			Result: &flightdesk.Final{Content: "done"},
			Info:   &flightdesk.GenerationInfo{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
		}
	}
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if resp != nil && resp.Model == "" {
		out := *resp
		out.Model = m.name
		resp = &out
	}
	return resp, nil
}

// BlockingModel blocks until the request context is done and returns its
// error. Used to exercise request timeouts.
type BlockingModel struct{}

// GenerateContent implements flightdesk.Model.
func (BlockingModel) GenerateContent(
	ctx context.Context,
	_ *flightdesk.Request,
) (*flightdesk.ContentResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// -----------------------------------------------------------------------------
// FakeLLM - implements langchaingo llms.Model
// -----------------------------------------------------------------------------

// FakeLLM is a langchaingo llms.Model returning queued responses. It records
// the messages and resolved call options of every call so adapters can be
// tested without a network.
type FakeLLM struct {
	mu        sync.Mutex
	responses []*llms.ContentResponse
	errors    []error

	// Messages stores the messages of each call.
	Messages [][]llms.MessageContent

	// Options stores the resolved call options of each call.
	Options []llms.CallOptions
}

// NewFakeLLM creates an empty FakeLLM.
func NewFakeLLM() *FakeLLM {
	return &FakeLLM{}
}

// AddResponse queues a raw langchaingo response.
func (f *FakeLLM) AddResponse(resp *llms.ContentResponse) *FakeLLM {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	f.errors = append(f.errors, nil)
	return f
}

// AddText queues a single-choice text response with token usage.
func (f *FakeLLM) AddText(content string, promptTokens, completionTokens int) *FakeLLM {
	return f.AddResponse(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			Content:    content,
			StopReason: "stop",
			GenerationInfo: map[string]any{
				"PromptTokens":     promptTokens,
				"CompletionTokens": completionTokens,
				"TotalTokens":      promptTokens + completionTokens,
			},
		}},
	})
}

// AddError queues an error.
func (f *FakeLLM) AddError(err error) *FakeLLM {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, nil)
	f.errors = append(f.errors, err)
	return f
}

// GenerateContent implements llms.Model.
func (f *FakeLLM) GenerateContent(
	ctx context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	idx := len(f.Messages)
	f.Messages = append(f.Messages, messages)
	f.Options = append(f.Options, opts)

	if idx >= len(f.responses) {
		return &llms.ContentResponse{
			Choices: []*llms.ContentChoice{{Content: "done", StopReason: "stop"}},
		}, nil
	}
	if f.errors[idx] != nil {
		return nil, f.errors[idx]
	}
	return f.responses[idx], nil
}

// Call implements llms.Model.
func (f *FakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

// Compile-time checks.
var (
	_ flightdesk.Model = (*MockModel)(nil)
	_ flightdesk.Model = BlockingModel{}
	_ llms.Model       = (*FakeLLM)(nil)
)
