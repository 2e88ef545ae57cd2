// Package llm wraps the external text-completion service behind a small
// request/response interface.
package llm

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// requestTimeout bounds a single completion call regardless of the caller's
// context.
const requestTimeout = 60 * time.Second

// Oracle is the completion interface the assistant depends on. It takes a
// fully composed prompt and returns the completion text; no streaming.
type Oracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client talks to an OpenAI-compatible completion endpoint.
type Client struct {
	llm llms.Model
}

// New creates a completion client for the given endpoint. baseURL may point
// at any OpenAI-compatible server (hosted or local).
func New(baseURL, token, model string) (*Client, error) {
	llm, err := openai.New(
		openai.WithToken(token),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create completion client")
	}
	return &Client{llm: llm}, nil
}

// Generate submits the prompt and returns the completion text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	completion, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt)
	if err != nil {
		return "", errors.Wrap(err, "generate completion")
	}
	return completion, nil
}
