package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rickchristie/flightdesk"
	"github.com/rickchristie/flightdesk/airline"
	"github.com/rickchristie/flightdesk/catalog"
	"github.com/rickchristie/flightdesk/events"
	"github.com/rickchristie/flightdesk/history"
	"github.com/rickchristie/flightdesk/toolchain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ApologyPrefix starts every reply produced when a remote model call fails.
// The error detail follows it.
const ApologyPrefix = "I apologize, but I'm experiencing technical difficulties. " +
	"Please try again later or contact customer service directly. Error: "

// ApologyText returns the reply used when a remote call fails with err.
func ApologyText(err error) string {
	return ApologyPrefix + err.Error()
}

// Assistant is the customer-support conversation loop. It keeps the durable
// history of one conversation and answers each user message with at most two
// remote model calls: one with the tool schema, and, when the model asked for
// tools, a follow-up carrying the tool results without tools.
//
// An Assistant serves a single caller. ProcessMessage must not be called
// concurrently.
type Assistant struct {
	model        flightdesk.Model
	catalog      *catalog.Catalog
	tools        *toolchain.Registry
	history      *history.History
	systemPrompt string
	window       int
	maxTokens    int
	temperature  float64
	timeout      time.Duration
	events       *events.Registry
	stats        *flightdesk.Stats
	logs         *events.LogSubscriber
	logger       zerolog.Logger
	timeProvider flightdesk.TimeProvider
}

// New creates an Assistant over the default sample catalog.
// Defaults:
//   - SystemPrompt: airline.SystemPrompt
//   - HistoryWindow: flightdesk.DefaultHistoryWindow
//   - MaxTokens: flightdesk.DefaultMaxTokens
//   - Temperature: flightdesk.DefaultTemperature
//   - Logger: the global zerolog logger
//
// Model calls, tool calls, replies and resets are logged through an
// events.LogSubscriber that the assistant keeps subscribed to its registry.
func New(model flightdesk.Model) *Assistant {
	c := catalog.Default()
	stats := flightdesk.NewStats()
	logs := events.NewLogSubscriber(log.Logger)
	return &Assistant{
		model:        model,
		catalog:      c,
		tools:        airline.MustNewRegistry(c),
		history:      history.New(),
		systemPrompt: airline.SystemPrompt,
		window:       flightdesk.DefaultHistoryWindow,
		maxTokens:    flightdesk.DefaultMaxTokens,
		temperature:  flightdesk.DefaultTemperature,
		events:       events.NewRegistry().Subscribe(stats).Subscribe(logs),
		stats:        stats,
		logs:         logs,
		logger:       log.Logger,
		timeProvider: flightdesk.NewDefaultTimeProvider(),
	}
}

// WithCatalog replaces the flight catalog and rebuilds the airline tools over it.
func (a *Assistant) WithCatalog(c *catalog.Catalog) *Assistant {
	a.catalog = c
	a.tools = airline.MustNewRegistry(c)
	return a
}

// WithTools replaces the tool registry. The catalog is still used by
// AvailableFlights and SearchFlightsByRoute.
func (a *Assistant) WithTools(r *toolchain.Registry) *Assistant {
	a.tools = r
	return a
}

// WithSystemPrompt sets the system instruction sent first on every request.
func (a *Assistant) WithSystemPrompt(prompt string) *Assistant {
	a.systemPrompt = prompt
	return a
}

// WithHistoryWindow sets how many messages are sent per request, counting the
// new user message. Panics if n < 1 or if a history capacity below n is set.
func (a *Assistant) WithHistoryWindow(n int) *Assistant {
	if n < 1 {
		panic(fmt.Sprintf("assistant: history window must be at least 1, got %d", n))
	}
	a.window = n
	a.checkCapacity()
	return a
}

// WithHistoryCapacity caps the number of messages kept in durable history.
// Zero disables the cap. A non-zero cap must be at least the history window
// so the most recent window is always available; otherwise it panics.
func (a *Assistant) WithHistoryCapacity(n int) *Assistant {
	if n < 0 {
		panic(fmt.Sprintf("assistant: history capacity must not be negative, got %d", n))
	}
	if n > 0 {
		a.history.WithCapacity(n)
	}
	a.checkCapacity()
	return a
}

func (a *Assistant) checkCapacity() {
	if c := a.history.Capacity(); c > 0 && c < a.window {
		panic(fmt.Sprintf(
			"assistant: history capacity %d is smaller than history window %d", c, a.window,
		))
	}
}

// WithMaxTokens bounds each completion.
func (a *Assistant) WithMaxTokens(n int) *Assistant {
	a.maxTokens = n
	return a
}

// WithTemperature sets the sampling temperature.
func (a *Assistant) WithTemperature(t float64) *Assistant {
	a.temperature = t
	return a
}

// WithRequestTimeout bounds a whole ProcessMessage call, both model calls
// included. Zero means no timeout beyond the caller's context.
func (a *Assistant) WithRequestTimeout(d time.Duration) *Assistant {
	a.timeout = d
	return a
}

// WithEvents replaces the event registry. The assistant's Stats and its log
// subscriber are subscribed to the new registry, once, however many times
// the same registry is passed.
func (a *Assistant) WithEvents(r *events.Registry) *Assistant {
	a.events = r.Subscribe(a.stats).Subscribe(a.logs)
	return a
}

// WithLogger sets the logger that model calls, tool calls, replies and
// resets are written to.
func (a *Assistant) WithLogger(logger zerolog.Logger) *Assistant {
	a.logger = logger
	a.logs.WithLogger(logger)
	return a
}

// WithTimeProvider sets the clock used for event timestamps and durations.
func (a *Assistant) WithTimeProvider(tp flightdesk.TimeProvider) *Assistant {
	a.timeProvider = tp
	return a
}

// History returns a copy of the durable conversation history.
func (a *Assistant) History() []flightdesk.Message {
	return a.history.Messages()
}

// Tools returns the descriptors advertised on first-round requests.
func (a *Assistant) Tools() []flightdesk.ToolDescriptor {
	return a.tools.Descriptors()
}

// Stats returns the usage counters fed by this assistant's events.
func (a *Assistant) Stats() *flightdesk.Stats {
	return a.stats
}

// AvailableFlights returns every flight in catalog order.
func (a *Assistant) AvailableFlights() []catalog.FlightRecord {
	return a.catalog.All()
}

// SearchFlightsByRoute returns the flights whose origin and destination contain
// the given substrings, case-insensitively.
func (a *Assistant) SearchFlightsByRoute(origin, dest string) []catalog.FlightRecord {
	return a.catalog.Search(origin, dest)
}

// ResetConversation clears the durable history.
func (a *Assistant) ResetConversation() {
	cleared := a.history.Clear()
	a.events.Publish(&flightdesk.ResetEvent{
		Base:    a.base(uuid.NewString()),
		Cleared: cleared,
	})
}

// ProcessMessage answers one user message. It never returns an error: remote
// failures produce ApologyText and leave the history exactly as it was.
//
// On success the user message and the final reply are appended to history.
// Tool-call messages and tool results are sent to the model but not kept.
func (a *Assistant) ProcessMessage(ctx context.Context, text string) string {
	requestID := uuid.NewString()
	logger := a.logger.With().Str("request_id", requestID).Logger()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	ex := &exchange{
		Assistant: a,
		requestID: requestID,
		logger:    logger,
		userText:  text,
	}
	reply, err := ex.run(ctx)
	if err != nil {
		reply = ApologyText(err)
	} else {
		a.history.Append(flightdesk.UserMessage(text), flightdesk.AssistantMessage(reply))
	}

	a.events.Publish(&flightdesk.ReplyEvent{
		Base:       a.base(requestID),
		UserText:   text,
		Reply:      reply,
		ModelCalls: ex.modelCalls,
		ToolCalls:  ex.toolCalls,
		Error:      err,
	})
	return reply
}

func (a *Assistant) base(requestID string) flightdesk.Base {
	return flightdesk.Base{RequestID: requestID, Timestamp: a.timeProvider.Now()}
}
