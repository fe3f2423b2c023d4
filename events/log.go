package events

import (
	"github.com/rickchristie/flightdesk"
	"github.com/rickchristie/flightdesk/toolchain"
	"github.com/rs/zerolog"
)

// LogSubscriber writes one structured log line per event. Model and tool
// traffic is logged at debug level; replies at info; failures at warn.
//
// It is the only place model and tool traffic is logged. An Assistant
// subscribes its own LogSubscriber, bound to the logger given to
// Assistant.WithLogger.
type LogSubscriber struct {
	logger zerolog.Logger
}

// NewLogSubscriber creates a LogSubscriber writing to logger.
func NewLogSubscriber(logger zerolog.Logger) *LogSubscriber {
	return &LogSubscriber{logger: logger}
}

// WithLogger switches the logger subsequent events are written to.
func (s *LogSubscriber) WithLogger(logger zerolog.Logger) *LogSubscriber {
	s.logger = logger
	return s
}

// OnBeforeModelCall implements flightdesk.BeforeModelCallSubscriber.
func (s *LogSubscriber) OnBeforeModelCall(e *flightdesk.BeforeModelCallEvent) {
	ev := s.logger.Debug().
		Str("request_id", e.RequestID).
		Int("round", e.Round)
	if e.Request != nil {
		ev = ev.Int("messages", len(e.Request.Messages)).
			Int("tools", len(e.Request.Tools))
	}
	ev.Msg("model call")
}

// OnAfterModelCall implements flightdesk.AfterModelCallSubscriber.
func (s *LogSubscriber) OnAfterModelCall(e *flightdesk.AfterModelCallEvent) {
	if e.Error != nil {
		s.logger.Warn().
			Str("request_id", e.RequestID).
			Int("round", e.Round).
			Dur("duration", e.Duration).
			Err(e.Error).
			Msg("model call failed")
		return
	}

	ev := s.logger.Debug().
		Str("request_id", e.RequestID).
		Int("round", e.Round).
		Dur("duration", e.Duration)
	if e.Response != nil {
		if calls, ok := e.Response.Result.(*flightdesk.ToolCallsRequested); ok {
			ev = ev.Int("tool_calls", len(calls.Calls))
		}
		if e.Response.Info != nil {
			ev = ev.Int("input_tokens", e.Response.Info.InputTokens).
				Int("output_tokens", e.Response.Info.OutputTokens)
		}
	}
	ev.Msg("model call done")
}

// OnAfterToolCall implements flightdesk.AfterToolCallSubscriber.
func (s *LogSubscriber) OnAfterToolCall(e *flightdesk.AfterToolCallEvent) {
	if toolchain.IsFailure(e.Result) {
		s.logger.Warn().
			Str("request_id", e.RequestID).
			Str("tool", e.Call.Name).
			Str("call_id", e.Call.ID).
			Str("arguments", e.Call.Arguments).
			Str("result", e.Result).
			Msg("tool call failed")
		return
	}
	s.logger.Debug().
		Str("request_id", e.RequestID).
		Str("tool", e.Call.Name).
		Str("call_id", e.Call.ID).
		Str("arguments", e.Call.Arguments).
		Dur("duration", e.Duration).
		Int("result_len", len(e.Result)).
		Msg("tool call")
}

// OnReply implements flightdesk.ReplySubscriber.
func (s *LogSubscriber) OnReply(e *flightdesk.ReplyEvent) {
	if e.Error != nil {
		s.logger.Warn().
			Str("request_id", e.RequestID).
			Int("model_calls", e.ModelCalls).
			Err(e.Error).
			Msg("replied with apology")
		return
	}
	s.logger.Info().
		Str("request_id", e.RequestID).
		Int("model_calls", e.ModelCalls).
		Int("tool_calls", e.ToolCalls).
		Int("reply_len", len(e.Reply)).
		Msg("replied")
}

// OnReset implements flightdesk.ResetSubscriber.
func (s *LogSubscriber) OnReset(e *flightdesk.ResetEvent) {
	s.logger.Info().Int("cleared", e.Cleared).Msg("conversation reset")
}
