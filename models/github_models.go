package models

// GitHubModel is a model ID string for the GitHub Models API.
// Model IDs use the format "publisher/model-name".
//
// Only models that support tool calling are listed. To get the full catalog,
// query the GitHub Models REST API:
//
//	curl -H "Authorization: Bearer $GITHUB_TOKEN" \
//	  https://models.github.ai/catalog/models
type GitHubModel = string

const (
	GitHubGPT4oMini GitHubModel = "openai/gpt-4o-mini"
	GitHubGPT4o     GitHubModel = "openai/gpt-4o"
	GitHubGPT41Mini GitHubModel = "openai/gpt-4.1-mini"
	GitHubGPT41Nano GitHubModel = "openai/gpt-4.1-nano"

	GitHubLlama33      GitHubModel = "meta/Llama-3.3-70B-Instruct"
	GitHubMistralSmall GitHubModel = "mistral-ai/mistral-small-2503"
)

// DefaultGitHubModel is used by the github provider when the configured model
// is an OpenAI name without a publisher prefix.
const DefaultGitHubModel = GitHubGPT4oMini
