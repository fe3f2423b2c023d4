package assistant

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rickchristie/flightdesk"
	"github.com/rs/zerolog"
)

// exchange is the state of one ProcessMessage call.
type exchange struct {
	*Assistant

	requestID  string
	logger     zerolog.Logger
	userText   string
	modelCalls int
	toolCalls  int
}

// run performs the one or two model calls and returns the final text.
func (ex *exchange) run(ctx context.Context) (string, error) {
	recent := ex.history.RecentWindow(ex.window - 1)
	messages := make([]flightdesk.Message, 0, len(recent)+2)
	messages = append(messages, flightdesk.SystemMessage(ex.systemPrompt))
	messages = append(messages, recent...)
	messages = append(messages, flightdesk.UserMessage(ex.userText))

	first, err := ex.call(ctx, 1, &flightdesk.Request{
		Messages:    messages,
		Tools:       ex.tools.Descriptors(),
		ToolChoice:  flightdesk.AutoToolChoice(),
		MaxTokens:   ex.maxTokens,
		Temperature: ex.temperature,
	})
	if err != nil {
		return "", err
	}

	var requested *flightdesk.ToolCallsRequested
	switch r := first.(type) {
	case *flightdesk.Final:
		return r.Content, nil
	case *flightdesk.ToolCallsRequested:
		requested = r
	default:
		return "", errors.Errorf("unexpected response type %T", first)
	}

	messages = append(messages, requested.Message())
	for _, call := range requested.Calls {
		messages = append(messages, flightdesk.ToolResultMessage(call, ex.dispatch(ctx, call)))
	}

	second, err := ex.call(ctx, 2, &flightdesk.Request{
		Messages:    messages,
		MaxTokens:   ex.maxTokens,
		Temperature: ex.temperature,
	})
	if err != nil {
		return "", err
	}

	switch r := second.(type) {
	case *flightdesk.Final:
		return r.Content, nil
	case *flightdesk.ToolCallsRequested:
		// No tools were offered; whatever text came with the calls is the reply.
		ex.logger.Warn().
			Int("tool_calls", len(r.Calls)).
			Msg("model requested tools on follow-up call, using its text")
		return r.Content, nil
	default:
		return "", errors.Errorf("unexpected response type %T", second)
	}
}

// call performs one remote model call and publishes its events.
func (ex *exchange) call(ctx context.Context, round int, req *flightdesk.Request) (flightdesk.Response, error) {
	ex.modelCalls++
	ex.events.Publish(&flightdesk.BeforeModelCallEvent{
		Base:    ex.base(ex.requestID),
		Round:   round,
		Request: req,
	})

	start := ex.timeProvider.Now()
	resp, err := ex.model.GenerateContent(ctx, req)
	duration := ex.timeProvider.Now().Sub(start)
	if err == nil && (resp == nil || resp.Result == nil) {
		err = flightdesk.ErrEmptyResponse
	}

	ex.events.Publish(&flightdesk.AfterModelCallEvent{
		Base:     ex.base(ex.requestID),
		Round:    round,
		Request:  req,
		Response: resp,
		Duration: duration,
		Error:    err,
	})
	if err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// dispatch runs one requested tool and publishes its event. It never fails.
func (ex *exchange) dispatch(ctx context.Context, call flightdesk.ToolCallRequest) string {
	ex.toolCalls++
	start := ex.timeProvider.Now()
	result := ex.tools.DispatchCall(ctx, call)
	duration := ex.timeProvider.Now().Sub(start)

	ex.events.Publish(&flightdesk.AfterToolCallEvent{
		Base:     ex.base(ex.requestID),
		Call:     call,
		Result:   result,
		Duration: duration,
	})
	return result
}
