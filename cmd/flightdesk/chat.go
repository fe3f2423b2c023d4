package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/rickchristie/flightdesk"
	"github.com/rickchristie/flightdesk/airline"
	"github.com/rickchristie/flightdesk/assistant"
	"github.com/rickchristie/flightdesk/catalog"
	"github.com/spf13/cobra"
)

const farewell = "Thank you for using Airline Support Bot! Have a great flight!"

type lineReader interface {
	Readline() (string, error)
	Close() error
}

func newReadline(prompt string) (lineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create readline")
	}
	return rl, nil
}

func (a *app) chatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the support assistant",
		Long: "Start an interactive conversation. Type 'help' for sample flights, 'clear' to\n" +
			"reset the conversation, 'stats' for usage and 'quit', 'exit' or 'bye' to leave.",
		Args: cobra.NoArgs,
		RunE: a.runChat,
	}
}

func (a *app) runChat(cmd *cobra.Command, _ []string) error {
	bot, err := a.assistant()
	if err != nil {
		return err
	}

	rl, err := a.newReader(colorCyan + colorBold + "You: " + colorReset)
	if err != nil {
		return err
	}
	defer rl.Close()

	a.printWelcome()

	for {
		input, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Fprintf(a.out, "\n%s%s%s\n", colorGreen, farewell, colorReset)
				return nil
			}
			return errors.Wrap(err, "failed to read input")
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit", "bye":
			fmt.Fprintf(a.out, "\n%s%s%s\n", colorGreen, farewell, colorReset)
			return nil
		case "help":
			a.printHelp(bot.AvailableFlights())
			continue
		case "clear":
			bot.ResetConversation()
			fmt.Fprintf(a.out, "%sConversation history cleared!%s\n", colorYellow, colorReset)
			continue
		case "stats":
			a.printStats(bot)
			continue
		}

		// Ctrl-C while waiting for the model cancels only this message.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		reply := bot.ProcessMessage(ctx, input)
		stop()

		fmt.Fprintf(a.out, "\n%s%sBot:%s %s\n\n", colorBold, colorGreen, colorReset, reply)
	}
}

func (a *app) printWelcome() {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(a.out, "\n%s%s%s\n", colorYellow, rule, colorReset)
	fmt.Fprintf(a.out, "%s%sWelcome to the Airline Support Bot!%s\n", colorBold, colorYellow, colorReset)
	fmt.Fprintln(a.out, "I can help you with flight information, bookings, and general travel questions.")
	fmt.Fprintln(a.out, "Type 'quit', 'exit', or 'bye' to end the conversation.")
	fmt.Fprintln(a.out, "Type 'help' to see available sample flight numbers.")
	fmt.Fprintf(a.out, "%s%s%s\n\n", colorYellow, rule, colorReset)
}

func (a *app) printHelp(flights []catalog.FlightRecord) {
	fmt.Fprintf(a.out, "\n%s%sHelp Information:%s\n", colorBold, colorYellow, colorReset)
	fmt.Fprintln(a.out, "• Ask about specific flights using flight numbers")
	fmt.Fprintln(a.out, "• Inquire about baggage policies, check-in procedures, etc.")
	fmt.Fprintln(a.out, "• Request general travel information")
	fmt.Fprintln(a.out, "• Type 'clear' to reset conversation history")
	fmt.Fprintln(a.out, "• Type 'stats' to show usage so far")

	fmt.Fprintf(a.out, "\n%s%sSample Flight Numbers to try:%s\n", colorBold, colorYellow, colorReset)
	for _, f := range flights {
		fmt.Fprintf(a.out, "• %s - %s → %s %s\n",
			f.ID, f.Origin, f.Destination, statusMarker(catalog.Classify(f)))
	}

	fmt.Fprintf(a.out, "\n%s%sExample questions:%s\n", colorBold, colorYellow, colorReset)
	for _, q := range airline.ExampleQuestions {
		fmt.Fprintf(a.out, "• '%s'\n", q)
	}
	fmt.Fprintln(a.out)
}

func (a *app) printStats(bot *assistant.Assistant) {
	stats := bot.Stats()
	fmt.Fprintf(a.out, "%s[Stats: replies=%d model_calls=%d tool_calls=%d input_tokens=%d output_tokens=%d remote_errors=%d]%s\n",
		colorDim,
		stats.GetCounter(flightdesk.KeyReplies),
		stats.GetModelCallCount(),
		stats.GetToolCallCount(),
		stats.GetTotalInputTokens(),
		stats.GetTotalOutputTokens(),
		stats.GetCounter(flightdesk.KeyRemoteErrors),
		colorReset)

	var perTool []string
	for _, k := range stats.Keys() {
		if name, ok := strings.CutPrefix(k, flightdesk.KeyToolCallsFor); ok {
			perTool = append(perTool, fmt.Sprintf("%s=%d", name, stats.GetCounter(k)))
		}
	}
	if len(perTool) > 0 {
		sort.Strings(perTool)
		fmt.Fprintf(a.out, "%s[Tools: %s]%s\n", colorDim, strings.Join(perTool, " "), colorReset)
	}
	fmt.Fprintf(a.out, "%s[History: %d messages]%s\n", colorDim, len(bot.History()), colorReset)
}

func statusMarker(c catalog.StatusClass) string {
	switch c {
	case catalog.StatusOnTime:
		return "🟢"
	case catalog.StatusDelayed:
		return "🟡"
	case catalog.StatusCancelled:
		return "🔴"
	default:
		return "🔵"
	}
}
