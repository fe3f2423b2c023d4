package main

import (
	"fmt"
	"strings"

	"github.com/rickchristie/flightdesk"
	"github.com/rickchristie/flightdesk/airline"
	"github.com/spf13/cobra"
)

func (a *app) askCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question and print the answer",
		Example: `  flightdesk ask "Is flight DL456 delayed?"
  flightdesk ask --provider github --model openai/gpt-4o-mini "Flights from Chicago?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bot, err := a.assistant()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, bot.ProcessMessage(cmd.Context(), strings.Join(args, " ")))
			return nil
		},
	}
}

func (a *app) demoCommand() *cobra.Command {
	var tour bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a short scripted conversation",
		Long: "Ask a few canned questions in one conversation. With --tour, walk through a\n" +
			"question per tool and then list the tools and flights.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bot, err := a.assistant()
			if err != nil {
				return err
			}

			if !tour {
				fmt.Fprintf(a.out, "%sRunning Airline Support Bot Demo...%s\n\n", colorBold, colorReset)
				for _, q := range airline.DemoQuestions {
					fmt.Fprintf(a.out, "%sCustomer:%s %s\n", colorCyan, colorReset, q)
					fmt.Fprintf(a.out, "%sBot:%s %s\n\n", colorGreen, colorReset, bot.ProcessMessage(cmd.Context(), q))
					fmt.Fprintf(a.out, "%s%s%s\n\n", colorDim, strings.Repeat("-", 50), colorReset)
				}
				return nil
			}

			rule := strings.Repeat("=", 60)
			fmt.Fprintf(a.out, "%s%s\nCustomer Service Simulation with AI Tool Calling\n%s%s\n",
				colorYellow, rule, rule, colorReset)

			stats := bot.Stats()
			for i, step := range airline.ToolTour {
				before := stats.GetToolCallCount()
				var expectedBefore int64
				if step.ExpectedTool != "" {
					expectedBefore = stats.GetCounter(flightdesk.KeyToolCallsFor + step.ExpectedTool)
				}

				fmt.Fprintf(a.out, "\n%sCustomer %d:%s %s\n", colorCyan, i+1, colorReset, step.Question)
				reply := bot.ProcessMessage(cmd.Context(), step.Question)
				fmt.Fprintf(a.out, "%sSupport Bot:%s %s\n", colorGreen, colorReset, reply)

				switch {
				case step.ExpectedTool == "":
					fmt.Fprintf(a.out, "%s[Tools used: %d, none expected]%s\n",
						colorDim, stats.GetToolCallCount()-before, colorReset)
				case stats.GetCounter(flightdesk.KeyToolCallsFor+step.ExpectedTool) > expectedBefore:
					fmt.Fprintf(a.out, "%s[Tool: %s used as expected]%s\n",
						colorBlue, step.ExpectedTool, colorReset)
				default:
					fmt.Fprintf(a.out, "%s[Tool: %s expected but not used]%s\n",
						colorYellow, step.ExpectedTool, colorReset)
				}
				fmt.Fprintf(a.out, "%s%s%s\n", colorDim, strings.Repeat("-", 50), colorReset)
			}

			fmt.Fprintf(a.out, "\n%sTool calling demonstration completed!%s\n", colorGreen, colorReset)

			fmt.Fprintf(a.out, "\n%s%sAvailable AI Tools:%s\n", colorBold, colorYellow, colorReset)
			for _, d := range bot.Tools() {
				fmt.Fprintf(a.out, "• %s: %s\n", d.Name, d.Description)
			}

			fmt.Fprintf(a.out, "\n%s%sAvailable Flight Information:%s\n", colorBold, colorYellow, colorReset)
			for _, f := range bot.AvailableFlights() {
				fmt.Fprintf(a.out, "• %s: %s → %s (%s)\n", f.ID, f.Origin, f.Destination, f.Status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tour, "tour", false, "Walk through every tool, then list tools and flights")
	return cmd
}
