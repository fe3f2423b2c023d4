// Package flightdesk provides the building blocks of an airline customer-support
// assistant that delegates language understanding to a hosted chat model and
// answers factual questions through local flight lookup tools.
//
// The root package holds the shared vocabulary: [Message], [ToolCallRequest],
// [ToolDescriptor], the [Model] interface with its tagged [Response] variant,
// typed tools ([ToolFunc]), lifecycle events and usage [Stats]. The components live
// in sub-packages:
//
//   - catalog: the static flight dataset
//   - toolchain: name-keyed tool registry and dispatch
//   - airline: the built-in flight tools and system prompt
//   - history: the durable conversation history
//   - assistant: the two-call orchestration loop
//   - models: adapters for langchaingo, go-openai and GitHub Models
//   - events: subscriber registry and transcript/log subscribers
//   - evaluation: LLM-as-judge conversation scoring
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/rickchristie/flightdesk/assistant"
//	    "github.com/rickchristie/flightdesk/models"
//	)
//
//	func main() {
//	    // 1. Build a model client. Credential resolution is the caller's job.
//	    model, err := models.New(models.Settings{
//	        Provider: models.ProviderOpenAI,
//	        APIKey:   apiKey,
//	        Model:    "gpt-3.5-turbo",
//	    })
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    // 2. Build the assistant over the default catalog.
//	    bot := assistant.New(model)
//
//	    // 3. Relay a message. Failures come back as an apology text.
//	    reply := bot.ProcessMessage(context.Background(), "What's the status of AA123?")
//	    fmt.Println(reply)
//	}
//
// # Response Variant
//
// Every model call resolves to exactly one of two responses:
//
//	switch r := resp.Result.(type) {
//	case *flightdesk.Final:
//	    // plain text answer
//	case *flightdesk.ToolCallsRequested:
//	    // r.Calls must each be answered by a tool message
//	}
package flightdesk
