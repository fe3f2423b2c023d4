package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rickchristie/flightdesk"
	"github.com/rickchristie/flightdesk/airline"
	"github.com/rickchristie/flightdesk/evaluation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ErrEvaluationFailed is returned by eval --strict when a criterion fails.
var ErrEvaluationFailed = errors.New("evaluation below threshold")

type evalOutput struct {
	Transcript []flightdesk.Message `json:"transcript" yaml:"transcript"`
	Results    []evaluation.Result  `json:"results" yaml:"results"`
	Mean       float64              `json:"mean" yaml:"mean"`
	Passed     bool                 `json:"passed" yaml:"passed"`
}

func (a *app) evalCommand() *cobra.Command {
	var (
		judgeModel string
		format     string
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "eval [question...]",
		Short: "Run a conversation and have a judge model score it",
		Long: "Ask the demo questions (or the given ones) in one conversation, then rate the\n" +
			"transcript on helpfulness, accuracy, professionalism, problem resolution and\n" +
			"communication clarity. A criterion passes at a score of 0.75 or more.",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "yaml", "json":
			default:
				return errors.Errorf("unknown format %q (want text, yaml or json)", format)
			}

			bot, err := a.assistant()
			if err != nil {
				return err
			}

			judge, err := a.judgeModel(judgeModel)
			if err != nil {
				return err
			}

			questions := airline.DemoQuestions
			if len(args) > 0 {
				questions = args
			}
			for _, q := range questions {
				bot.ProcessMessage(cmd.Context(), q)
			}
			transcript := bot.History()

			report := evaluation.NewJudge(judge).
				WithLogger(log.Logger).
				Evaluate(cmd.Context(), transcript)

			if err := a.writeReport(format, transcript, report); err != nil {
				return err
			}
			if strict && !report.Passed() {
				return ErrEvaluationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&judgeModel, "judge-model", flightdesk.ModelOpenAIGPT4oMini,
		"Model for the judge; empty means the chat model")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, yaml or json")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when any criterion fails")
	return cmd
}

func (a *app) judgeModel(name string) (flightdesk.Model, error) {
	settings, err := a.cfg.ModelSettings()
	if err != nil {
		return nil, err
	}
	if name != "" {
		settings.Model = name
	}
	return a.newModel(settings)
}

func (a *app) writeReport(format string, transcript []flightdesk.Message, report evaluation.Report) error {
	out := evalOutput{
		Transcript: transcript,
		Results:    report.Results,
		Mean:       report.Mean(),
		Passed:     report.Passed(),
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return errors.Wrap(err, "encode report")
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(out), "encode report")
	}

	fmt.Fprintf(a.out, "%s%sConversation:%s\n", colorBold, colorYellow, colorReset)
	fmt.Fprint(a.out, evaluation.RenderTranscript(transcript))

	fmt.Fprintf(a.out, "\n%s%sEvaluation:%s\n", colorBold, colorYellow, colorReset)
	for _, r := range report.Results {
		color, mark := colorGreen, "PASS"
		if !r.Passed() {
			color, mark = colorRed, "FAIL"
		}
		rating := string(r.Rating)
		if rating == "" {
			rating = "-"
		}
		fmt.Fprintf(a.out, "%s%-4s%s %-22s %-9s %.2f  %s\n",
			color, mark, colorReset, r.Criterion, rating, r.Score, r.Reason)
	}
	fmt.Fprintf(a.out, "%s\n", strings.Repeat("-", 50))

	color := colorGreen
	if !report.Passed() {
		color = colorRed
	}
	fmt.Fprintf(a.out, "%sMean score: %.2f (threshold %.2f)%s\n",
		color, report.Mean(), evaluation.Threshold, colorReset)
	return nil
}
