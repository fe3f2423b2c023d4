// Package evaluation scores support conversations with a model acting as a
// judge. Each criterion is rated poor, fair, good or excellent through a
// forced tool call; ratings map to scores and a score of at least Threshold
// passes.
package evaluation

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rickchristie/flightdesk"
	"github.com/rickchristie/flightdesk/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Threshold is the minimum passing score.
const Threshold = 0.75

// DefaultTemperature keeps judge ratings close to deterministic.
const DefaultTemperature = 0.1

// Rating is the judge's verdict on one criterion.
type Rating string

const (
	RatingPoor      Rating = "poor"
	RatingFair      Rating = "fair"
	RatingGood      Rating = "good"
	RatingExcellent Rating = "excellent"
)

// Ratings lists the allowed ratings, worst first.
var Ratings = []Rating{RatingPoor, RatingFair, RatingGood, RatingExcellent}

// Score returns the numeric score of r. Unknown ratings score 0.
func (r Rating) Score() float64 {
	switch r {
	case RatingFair:
		return 0.25
	case RatingGood:
		return 0.75
	case RatingExcellent:
		return 1
	default:
		return 0
	}
}

// Criterion is one aspect of a conversation the judge rates.
type Criterion struct {
	Key         string
	Description string
}

var (
	Helpfulness = Criterion{
		Key:         "helpfulness",
		Description: "How helpful was the bot in providing useful information and assistance?",
	}
	Accuracy = Criterion{
		Key:         "accuracy",
		Description: "Were the responses factually correct and relevant?",
	}
	Professionalism = Criterion{
		Key:         "professionalism",
		Description: "Was the tone appropriate and professional?",
	}
	ProblemResolution = Criterion{
		Key:         "problem_resolution",
		Description: "Did the bot effectively address the customer's concerns?",
	}
	CommunicationClarity = Criterion{
		Key:         "communication_clarity",
		Description: "Were the responses clear and easy to understand?",
	}
)

// Criteria returns the five standard criteria.
func Criteria() []Criterion {
	return []Criterion{Helpfulness, Accuracy, Professionalism, ProblemResolution, CommunicationClarity}
}

// ToolName is the name of the verdict tool the judge is forced to call.
func (c Criterion) ToolName() string {
	return "evaluate_" + c.Key
}

// verdictArgs declares the verdict tool's arguments. The rating property is
// renamed to the criterion key when the tool is built, so the judge answers
// with {"<key>": "good", "reason": "..."}.
type verdictArgs struct {
	Rating Rating `json:"rating" jsonschema:"enum=poor,enum=fair,enum=good,enum=excellent"`
	Reason string `json:"reason" jsonschema:"minLength=1"`
}

const ratingProperty = "rating"

// verdictParams is the reflected verdictArgs schema, shared read-only by
// every criterion.
var verdictParams = schema.MustReflect(verdictArgs{})

// Tool returns the verdict tool descriptor for c.
func (c Criterion) Tool() flightdesk.ToolDescriptor {
	props := verdictParams["properties"].(map[string]any)

	rating := copyMap(props[ratingProperty].(map[string]any))
	rating["description"] = c.Description

	reason := copyMap(props["reason"].(map[string]any))
	reason["description"] = fmt.Sprintf(
		"Provide a brief explanation for why you rated %s as you did, "+
			"including specific examples from the conversation", c.Key)

	params := copyMap(verdictParams)
	params["properties"] = map[string]any{c.Key: rating, "reason": reason}

	var required []any
	for _, name := range verdictParams["required"].([]any) {
		if name == ratingProperty {
			name = c.Key
		}
		required = append(required, name)
	}
	params["required"] = required

	return flightdesk.ToolDescriptor{
		Name:        c.ToolName(),
		Description: fmt.Sprintf("Evaluate %s in an airline customer support conversation", c.Key),
		Parameters:  params,
	}
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Prompt returns the judge instruction for c over a rendered transcript.
func (c Criterion) Prompt(transcript string) string {
	return fmt.Sprintf(`
You are an expert evaluator of airline customer support conversations.
Please evaluate the following conversation focusing specifically on %s.

Criterion: %s

Conversation:
%s

Please evaluate this specific criterion and call the evaluation function with your assessment.
`, c.Key, c.Description, transcript)
}

// Result is the outcome of rating one criterion.
type Result struct {
	Criterion string  `json:"criterion" yaml:"criterion"`
	Rating    Rating  `json:"rating,omitempty" yaml:"rating,omitempty"`
	Score     float64 `json:"score" yaml:"score"`
	Reason    string  `json:"reason" yaml:"reason"`
}

// Passed reports whether the score meets Threshold.
func (r Result) Passed() bool {
	return r.Score >= Threshold
}

// Report is the outcome of rating every criterion of a judge.
type Report struct {
	Results []Result `json:"results" yaml:"results"`
}

// Passed reports whether every criterion passed.
func (r Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed() {
			return false
		}
	}
	return len(r.Results) > 0
}

// Mean returns the average score, 0 for an empty report.
func (r Report) Mean() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	var sum float64
	for _, res := range r.Results {
		sum += res.Score
	}
	return sum / float64(len(r.Results))
}

// RenderTranscript renders messages as "ROLE: content" lines.
func RenderTranscript(messages []flightdesk.Message) string {
	var b strings.Builder
	for _, m := range messages {
		role := string(m.Role)
		if role == "" {
			role = "unknown"
		}
		b.WriteString(strings.ToUpper(role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// Judge rates conversations with a model.
type Judge struct {
	model       flightdesk.Model
	criteria    []Criterion
	temperature float64
	logger      zerolog.Logger
}

// NewJudge creates a Judge rating the five standard criteria.
func NewJudge(model flightdesk.Model) *Judge {
	return &Judge{
		model:       model,
		criteria:    Criteria(),
		temperature: DefaultTemperature,
		logger:      log.Logger,
	}
}

// WithCriteria replaces the rated criteria.
func (j *Judge) WithCriteria(criteria ...Criterion) *Judge {
	j.criteria = criteria
	return j
}

// WithTemperature sets the judge's sampling temperature.
func (j *Judge) WithTemperature(t float64) *Judge {
	j.temperature = t
	return j
}

// WithLogger sets the logger.
func (j *Judge) WithLogger(logger zerolog.Logger) *Judge {
	j.logger = logger
	return j
}

// Evaluate rates every criterion, in order, one model call each.
func (j *Judge) Evaluate(ctx context.Context, messages []flightdesk.Message) Report {
	transcript := RenderTranscript(messages)
	report := Report{Results: make([]Result, 0, len(j.criteria))}
	for _, c := range j.criteria {
		report.Results = append(report.Results, j.rate(ctx, c, transcript))
	}
	return report
}

// EvaluateCriterion rates one criterion. Judge failures are not returned:
// they score 0 with the failure as the reason.
func (j *Judge) EvaluateCriterion(ctx context.Context, c Criterion, messages []flightdesk.Message) Result {
	return j.rate(ctx, c, RenderTranscript(messages))
}

func (j *Judge) rate(ctx context.Context, c Criterion, transcript string) Result {
	res, err := j.verdict(ctx, c, transcript)
	if err != nil {
		j.logger.Warn().Str("criterion", c.Key).Err(err).Msg("evaluation failed")
		return Result{
			Criterion: c.Key,
			Score:     0,
			Reason:    "Evaluation failed: " + err.Error(),
		}
	}
	j.logger.Debug().
		Str("criterion", c.Key).
		Str("rating", string(res.Rating)).
		Float64("score", res.Score).
		Msg("criterion rated")
	return res
}

func (j *Judge) verdict(ctx context.Context, c Criterion, transcript string) (Result, error) {
	resp, err := j.model.GenerateContent(ctx, &flightdesk.Request{
		Messages:    []flightdesk.Message{flightdesk.UserMessage(c.Prompt(transcript))},
		Tools:       []flightdesk.ToolDescriptor{c.Tool()},
		ToolChoice:  flightdesk.ForceTool(c.ToolName()),
		Temperature: j.temperature,
	})
	if err != nil {
		return Result{}, err
	}
	if resp == nil || resp.Result == nil {
		return Result{}, flightdesk.ErrEmptyResponse
	}

	requested, ok := resp.Result.(*flightdesk.ToolCallsRequested)
	if !ok || len(requested.Calls) == 0 {
		return Result{}, errors.Errorf("judge answered without calling %s", c.ToolName())
	}

	args, err := requested.Calls[0].Args()
	if err != nil {
		return Result{}, err
	}

	rating := RatingFair
	if v, ok := args[c.Key].(string); ok {
		rating = Rating(v)
	}
	reason := "No reason provided"
	if v, ok := args["reason"].(string); ok {
		reason = v
	}

	return Result{
		Criterion: c.Key,
		Rating:    rating,
		Score:     rating.Score(),
		Reason:    reason,
	}, nil
}
