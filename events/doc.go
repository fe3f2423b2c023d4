// Package events provides the event subscription registry used by the
// assistant, plus two ready-made subscribers.
//
// # Event Types
//
// Published by assistant.ProcessMessage and ResetConversation:
//   - BeforeModelCallEvent, AfterModelCallEvent: remote model calls (round 1 or 2)
//   - AfterToolCallEvent: one per dispatched tool call
//   - ReplyEvent: once per ProcessMessage, including apology replies
//   - ResetEvent: when the history is cleared
//
// # Subscribers
//
//   - Transcript: writes every event as a YAML document, for replaying a
//     session or attaching it to a bug report
//   - LogSubscriber: writes one structured zerolog line per event
//   - flightdesk.Stats: usage counters
//
// The assistant registers its own Stats and LogSubscriber. Subscribing the
// same value twice is a no-op.
package events
