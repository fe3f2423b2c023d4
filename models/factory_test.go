package models

import (
	"testing"

	"github.com/rickchristie/flightdesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		input    string
		expected Provider
		err      bool
	}{
		{input: "", expected: ProviderOpenAI},
		{input: "openai", expected: ProviderOpenAI},
		{input: " OpenAI-Native ", expected: ProviderOpenAINative},
		{input: "github", expected: ProviderGitHub},
		{input: "anthropic", err: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			p, err := ParseProvider(tc.input)
			if tc.err {
				assert.ErrorIs(t, err, ErrUnknownProvider)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestNew(t *testing.T) {
	type expected struct {
		lcgModel    string
		nativeModel string
		err         error
	}

	tests := []struct {
		name     string
		input    Settings
		expected expected
	}{
		{
			name:     "default provider and model",
			input:    Settings{APIKey: "sk-test"},
			expected: expected{lcgModel: flightdesk.DefaultModel},
		},
		{
			name:     "openai with base url",
			input:    Settings{Provider: ProviderOpenAI, APIKey: "sk-test", BaseURL: "http://localhost:8080/v1", Model: "gpt-4o"},
			expected: expected{lcgModel: "gpt-4o"},
		},
		{
			name:     "native",
			input:    Settings{Provider: ProviderOpenAINative, APIKey: "sk-test", Model: "gpt-4o-mini"},
			expected: expected{nativeModel: "gpt-4o-mini"},
		},
		{
			name:     "github keeps publisher model",
			input:    Settings{Provider: ProviderGitHub, APIKey: "ghp_test", Model: GitHubLlama33},
			expected: expected{lcgModel: GitHubLlama33},
		},
		{
			name:     "github maps bare openai name to default",
			input:    Settings{Provider: ProviderGitHub, APIKey: "ghp_test", Model: "gpt-3.5-turbo"},
			expected: expected{lcgModel: DefaultGitHubModel},
		},
		{
			name:     "missing key",
			input:    Settings{Provider: ProviderOpenAI},
			expected: expected{err: ErrMissingAPIKey},
		},
		{
			name:     "unknown provider",
			input:    Settings{Provider: "bedrock", APIKey: "k"},
			expected: expected{err: ErrUnknownProvider},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model, err := New(tc.input)
			if tc.expected.err != nil {
				assert.ErrorIs(t, err, tc.expected.err)
				assert.Nil(t, model)
				return
			}
			require.NoError(t, err)

			switch m := model.(type) {
			case *LCGWrapper:
				assert.Equal(t, tc.expected.lcgModel, m.modelName)
			case *OpenAIClient:
				assert.Equal(t, tc.expected.nativeModel, m.Model())
			default:
				t.Fatalf("unexpected model type %T", model)
			}
		})
	}
}
