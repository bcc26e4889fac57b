// Package llm wraps the language-model calls the planner depends on.
// The rest of the system only sees the Client interface, so tests
// substitute a stub and never touch a live model.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Client issues a single prompt and returns the raw model output. The
// output is untrusted text; callers needing structure run it through
// ExtractJSON.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds the connection settings for the chat-completion API.
// Groq exposes an OpenAI-compatible endpoint, which is what the
// defaults target.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GroqClient is a Client backed by Groq's OpenAI-compatible API.
type GroqClient struct {
	llm     *openai.LLM
	timeout time.Duration
}

// NewGroqClient creates a GroqClient. The API key is required.
func NewGroqClient(cfg Config) (*GroqClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: API key is required")
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &GroqClient{llm: client, timeout: timeout}, nil
}

// Complete sends the prompt and returns the model's text response.
func (c *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("llm: completion failed: %w", err)
	}
	return text, nil
}
