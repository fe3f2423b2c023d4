// Package assistant implements the airline support conversation loop.
//
// Each call to ProcessMessage sends the system prompt, the recent history
// window and the new user message to the model together with the airline tool
// schema. A plain answer is returned as is. When the model asks for tools,
// every call is dispatched locally, in order, and the results go back in a
// single follow-up request made without tools; that answer is the reply.
// At most two remote calls are made per message.
//
//	model, _ := models.New(models.Settings{APIKey: key})
//	bot := assistant.New(model).
//	    WithHistoryWindow(10).
//	    WithRequestTimeout(30 * time.Second)
//
//	reply := bot.ProcessMessage(ctx, "Is flight DL456 delayed?")
//
// Remote failures never surface as errors. The reply becomes an apology that
// names the failure and the history is left as it was before the call.
package assistant
