package llm

import (
	"fmt"
	"strings"
)

// Supported providers.
const (
	ProviderCopilot  = "copilot"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
	ProviderOpenAI   = "openai"
)

// Providers lists the accepted provider names.
func Providers() []string {
	return []string{ProviderCopilot, ProviderOllama, ProviderLMStudio, ProviderOpenAI}
}

// NormalizeProvider maps aliases to a canonical provider name.
func NormalizeProvider(provider string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderCopilot:
		return ProviderCopilot, nil
	case ProviderOllama:
		return ProviderOllama, nil
	case ProviderLMStudio, "lm-studio", "llmstudio":
		return ProviderLMStudio, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// NewClient creates an LLM client based on provider configuration.
func NewClient(provider, model, baseURL string) (Client, error) {
	name, err := NormalizeProvider(provider)
	if err != nil {
		return nil, err
	}
	switch name {
	case ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio:
		return NewLMStudioClient(model, baseURL)
	case ProviderOpenAI:
		if baseURL == "" {
			baseURL = defaultOpenAIBaseURL
		}
		if model == "" {
			model = DefaultModel
		}
		return NewLMStudioClient(model, baseURL)
	default:
		return NewCopilotClient(model)
	}
}

const defaultOpenAIBaseURL = "https://api.openai.com/v1"
