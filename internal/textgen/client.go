// Package textgen turns prompts into plain text through an LLM provider.
package textgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/careercoach/internal/llm"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("text generator returned no content")

// Config controls generation parameters.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig leaves room for a ten-question quiz or a full resume.
func DefaultConfig() Config {
	return Config{MaxTokens: 4096, Temperature: 0.7}
}

// Client sends a single user prompt and returns the raw text.
type Client struct {
	provider llm.Provider
	config   Config
}

// New creates a Client.
func New(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, config: cfg}
}

// Generate sends prompt and returns the trimmed model output. The purpose
// label on ctx, if any, is kept.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := llm.UserPrompt(prompt)
	req.MaxTokens = c.config.MaxTokens
	req.Temperature = c.config.Temperature

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// CoverLetter writes a cover letter for in.
func (c *Client) CoverLetter(ctx context.Context, in CoverLetterInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	return c.Generate(llm.WithPurpose(ctx, llm.PurposeCoverLetter), CoverLetterPrompt(in))
}

// Resume writes a resume for in.
func (c *Client) Resume(ctx context.Context, in ResumeInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	return c.Generate(llm.WithPurpose(ctx, llm.PurposeResume), ResumePrompt(in))
}
