package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/llm"
	"github.com/javiermolinar/rocinante/internal/logging"
)

// Defaults for Generator options.
const (
	DefaultMaxRetries        = 2
	DefaultPromptTokenBudget = 1000
)

var (
	// ErrEmptyPrompt is returned when the request has no prompt text.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrMaxRetriesExceeded is returned when no attempt produced usable JSON.
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded, response still not usable")

	errNoEvents = errors.New(`the JSON document has no "events" array`)
)

// Generator produces schedules from natural language with an LLM.
type Generator struct {
	client      llm.Client
	maxRetries  int
	tokenBudget int
	logger      *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxRetries sets how many times a malformed answer is retried.
func WithMaxRetries(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.maxRetries = n
		}
	}
}

// WithTokenBudget caps the user prompt length in tokens. Zero disables the cap.
func WithTokenBudget(tokens int) Option {
	return func(g *Generator) {
		if tokens >= 0 {
			g.tokenBudget = tokens
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logging.Component(l, "generate")
	}
}

// NewGenerator creates a Generator backed by client.
func NewGenerator(client llm.Client, opts ...Option) *Generator {
	g := &Generator{
		client:      client,
		maxRetries:  DefaultMaxRetries,
		tokenBudget: DefaultPromptTokenBudget,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromConfig creates a Generator for the configured LLM provider.
func FromConfig(cfg config.LLMConfig, logger *slog.Logger) (*Generator, error) {
	client, err := llm.NewClient(cfg.Provider, cfg.Model, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}
	return NewGenerator(client,
		WithMaxRetries(cfg.MaxRetries),
		WithTokenBudget(cfg.PromptTokenBudget),
		WithLogger(logger),
	), nil
}

// Generate asks the model for a week of events and returns the validated,
// overlap-free result. Answers that cannot be decoded are retried with the
// decode error as feedback; transport errors are returned immediately.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if g.tokenBudget > 0 {
		if n := llm.CountTokens(prompt); n > g.tokenBudget {
			g.logger.Warn("prompt truncated", "tokens", n, "budget", g.tokenBudget)
			prompt = llm.TruncateToTokens(prompt, g.tokenBudget)
		}
	}
	req.Prompt = prompt

	messages := BuildMessages(req)
	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		content, err := g.client.Chat(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("generating schedule (attempt %d): %w", attempt+1, err)
		}

		resp, err := decodeResponse(content)
		if err == nil {
			result := Sanitize(resp, req.WeekStart, req.Settings)
			result.Attempts = attempt + 1
			g.logger.Debug("generation done",
				"attempt", attempt+1,
				"candidates", len(resp.Events),
				"events", len(result.Events),
				"dropped", result.Dropped,
			)
			return &result, nil
		}

		lastErr = err
		g.logger.Debug("generation attempt failed", "attempt", attempt+1, "error", err)
		messages = append(messages, llm.Assistant(content), feedbackMessage(err))
	}

	return nil, fmt.Errorf("%w: %v", ErrMaxRetriesExceeded, lastErr)
}

func decodeResponse(content string) (Response, error) {
	var resp Response
	if err := llm.DecodeJSON(content, &resp); err != nil {
		return Response{}, err
	}
	if resp.Events == nil {
		return Response{}, errNoEvents
	}
	return resp, nil
}
