package llm

import (
	"errors"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultLMStudioBaseURL = "http://localhost:1234/v1"

// LMStudioClient talks to LM Studio or any other OpenAI-compatible endpoint.
type LMStudioClient struct {
	openAIChat
	baseURL string
}

// NewLMStudioClient creates a client for an OpenAI-compatible server.
// The API key comes from LMSTUDIO_API_KEY or OPENAI_API_KEY; local servers
// accept any placeholder.
func NewLMStudioClient(model, baseURL string) (*LMStudioClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("lm studio model is required")
	}
	if baseURL == "" {
		baseURL = defaultLMStudioBaseURL
	}

	apiKey := os.Getenv("LMSTUDIO_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		apiKey = "lm-studio"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &LMStudioClient{
		openAIChat: openAIChat{client: client, model: model, name: ProviderLMStudio},
		baseURL:    baseURL,
	}, nil
}
