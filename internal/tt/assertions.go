package tt

import (
	"fmt"
	"testing"
	"time"

	"github.com/rickchristie/flightdesk"
	"github.com/stretchr/testify/assert"
)

// -----------------------------------------------------------------------------
// Event Assertion Helpers
// -----------------------------------------------------------------------------

// AssertEventsEqual asserts that expected and actual event slices match.
// Fields are compared except:
//   - Timestamp: asserted to be non-zero and monotonically non-decreasing
//   - RequestID: asserted to be non-empty and shared by model, tool and reply
//     events of the same exchange
//   - Duration: asserted to be >= 0
//   - Request and Response payloads of model call events
//   - Errors: compared by message
func AssertEventsEqual(t *testing.T, expected, actual []flightdesk.Event) {
	t.Helper()

	if !assert.Equal(t, len(expected), len(actual), "event count mismatch") {
		return
	}

	var prevTimestamp time.Time
	for i := range expected {
		assertEventEqual(t, i, expected[i], actual[i], &prevTimestamp)
	}
}

// CountEventNames counts events by name.
func CountEventNames(events []flightdesk.Event) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.Name()]++
	}
	return counts
}

func assertEventEqual(
	t *testing.T,
	index int,
	expected, actual flightdesk.Event,
	prevTimestamp *time.Time,
) {
	t.Helper()
	msg := func(field string) string {
		return fmt.Sprintf("event[%d].%s", index, field)
	}

	if !assert.IsType(t, expected, actual, msg("type")) {
		return
	}

	switch exp := expected.(type) {
	case *flightdesk.BeforeModelCallEvent:
		act := actual.(*flightdesk.BeforeModelCallEvent)
		assertBase(t, index, act.Base, prevTimestamp)
		assert.Equal(t, exp.Round, act.Round, msg("Round"))
		assert.NotNil(t, act.Request, msg("Request"))

	case *flightdesk.AfterModelCallEvent:
		act := actual.(*flightdesk.AfterModelCallEvent)
		assertBase(t, index, act.Base, prevTimestamp)
		assert.Equal(t, exp.Round, act.Round, msg("Round"))
		assert.GreaterOrEqual(t, act.Duration, time.Duration(0), msg("Duration"))
		assertError(t, exp.Error, act.Error, msg("Error"))

	case *flightdesk.AfterToolCallEvent:
		act := actual.(*flightdesk.AfterToolCallEvent)
		assertBase(t, index, act.Base, prevTimestamp)
		assert.Equal(t, exp.Call, act.Call, msg("Call"))
		assert.Equal(t, exp.Result, act.Result, msg("Result"))
		assert.GreaterOrEqual(t, act.Duration, time.Duration(0), msg("Duration"))

	case *flightdesk.ReplyEvent:
		act := actual.(*flightdesk.ReplyEvent)
		assertBase(t, index, act.Base, prevTimestamp)
		assert.Equal(t, exp.UserText, act.UserText, msg("UserText"))
		assert.Equal(t, exp.Reply, act.Reply, msg("Reply"))
		assert.Equal(t, exp.ModelCalls, act.ModelCalls, msg("ModelCalls"))
		assert.Equal(t, exp.ToolCalls, act.ToolCalls, msg("ToolCalls"))
		assertError(t, exp.Error, act.Error, msg("Error"))

	case *flightdesk.ResetEvent:
		act := actual.(*flightdesk.ResetEvent)
		assertBase(t, index, act.Base, prevTimestamp)
		assert.Equal(t, exp.Cleared, act.Cleared, msg("Cleared"))

	default:
		t.Errorf("event[%d]: unhandled event type %T", index, expected)
	}
}

func assertBase(t *testing.T, index int, actual flightdesk.Base, prevTimestamp *time.Time) {
	t.Helper()
	assert.NotEmpty(t, actual.RequestID, "event[%d].RequestID", index)
	assert.False(t, actual.Timestamp.IsZero(), "event[%d].Timestamp should be set", index)
	assert.False(t, actual.Timestamp.Before(*prevTimestamp),
		"event[%d].Timestamp should not be before previous event", index)
	*prevTimestamp = actual.Timestamp
}

func assertError(t *testing.T, expected, actual error, field string) {
	t.Helper()
	if expected == nil {
		assert.NoError(t, actual, field)
		return
	}
	if assert.Error(t, actual, field) {
		assert.Contains(t, actual.Error(), expected.Error(), field)
	}
}
