package models

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rickchristie/flightdesk"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider selects the remote model adapter.
type Provider string

const (
	// ProviderOpenAI uses langchaingo's OpenAI client behind LCGWrapper.
	ProviderOpenAI Provider = "openai"

	// ProviderOpenAINative uses the go-openai client directly.
	ProviderOpenAINative Provider = "openai-native"

	// ProviderGitHub uses the GitHub Models endpoint.
	ProviderGitHub Provider = "github"
)

// Providers lists the supported providers.
var Providers = []Provider{ProviderOpenAI, ProviderOpenAINative, ProviderGitHub}

var (
	// ErrUnknownProvider is returned by New for an unsupported provider.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrMissingAPIKey is returned by New without credentials.
	ErrMissingAPIKey = errors.New("api key is required")
)

// Settings selects and configures a model adapter.
type Settings struct {
	Provider Provider
	APIKey   string

	// BaseURL overrides the provider endpoint. Empty keeps the default.
	BaseURL string

	// Model is the model name. Empty means flightdesk.DefaultModel, or
	// DefaultGitHubModel for the github provider.
	Model string
}

// ParseProvider returns the provider named s, case-insensitively. An empty
// string selects ProviderOpenAI.
func ParseProvider(s string) (Provider, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ProviderOpenAI, nil
	}
	for _, p := range Providers {
		if string(p) == s {
			return p, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownProvider, "%q", s)
}

// New creates the model adapter described by settings.
func New(settings Settings) (flightdesk.Model, error) {
	if settings.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	provider := settings.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}

	model := settings.Model
	if model == "" {
		model = flightdesk.DefaultModel
	}

	switch provider {
	case ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(settings.APIKey),
			openai.WithModel(model),
		}
		if settings.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(settings.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create OpenAI client")
		}
		return NewLCGWrapper(llm).WithModelName(model), nil

	case ProviderOpenAINative:
		return NewOpenAIClient(settings.APIKey, settings.BaseURL, model), nil

	case ProviderGitHub:
		var opts []openai.Option
		if settings.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(settings.BaseURL))
		}
		return NewGitHubModel(model, settings.APIKey, opts...)

	default:
		return nil, errors.Wrapf(ErrUnknownProvider, "%q", provider)
	}
}
