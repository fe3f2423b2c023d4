package models

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms/openai"
)

// GitHubModelsBaseURL serves OpenAI-compatible chat completions at
// {baseURL}/chat/completions.
const GitHubModelsBaseURL = "https://models.github.ai/inference"

// gitHubAPIVersion is sent as X-GitHub-Api-Version on every request.
const gitHubAPIVersion = "2022-11-28"

// ErrMissingGitHubToken is returned by NewGitHubModel without a token.
var ErrMissingGitHubToken = errors.New(
	"github token is required: create a fine-grained PAT with models:read " +
		"at https://github.com/settings/personal-access-tokens/new",
)

// versionedClient is the langchaingo openai.Doer used for GitHub Models.
type versionedClient struct {
	next http.RoundTripper
}

func (c versionedClient) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-GitHub-Api-Version", gitHubAPIVersion)
	return c.next.RoundTrip(req)
}

// GitHubModelName maps the configured model name onto a GitHub Models ID.
// IDs carry a publisher prefix ("openai/gpt-4o-mini"); a bare OpenAI name
// such as the flightdesk default "gpt-3.5-turbo" is not served there, so it
// falls back to DefaultGitHubModel.
func GitHubModelName(model string) string {
	if strings.Contains(model, "/") {
		return model
	}
	return DefaultGitHubModel
}

// NewGitHubModel backs the github provider: the assistant and the judge talk
// to GitHub Models with a personal access token in place of an OpenAI key
// (FLIGHTDESK_API_KEY or --api-key). The token needs the models:read
// permission. Tool calling works as with OpenAI, so the airline tools and the
// forced verdict tool are unchanged.
//
// opts are applied after the GitHub defaults; tests use openai.WithBaseURL to
// point it at a local server.
func NewGitHubModel(model, token string, opts ...openai.Option) (*LCGWrapper, error) {
	if token == "" {
		return nil, ErrMissingGitHubToken
	}
	model = GitHubModelName(model)

	llm, err := openai.New(append([]openai.Option{
		openai.WithBaseURL(GitHubModelsBaseURL),
		openai.WithToken(token),
		openai.WithModel(model),
		openai.WithHTTPClient(versionedClient{next: http.DefaultTransport}),
	}, opts...)...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GitHub Models client")
	}
	return NewLCGWrapper(llm).WithModelName(model), nil
}
