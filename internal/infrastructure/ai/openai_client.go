// Package ai provides the text-generation provider adapter.
package ai

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// Temperature keeps output varied without drifting off the prompt.
	Temperature = 0.8

	// MaxOutputTokens bounds the response; fortunes are 1-2 short lines.
	MaxOutputTokens = 80
)

// Generator produces fortune text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient implements Generator against the OpenAI chat completions API.
// No timeout is enforced here; the SDK client's defaults apply.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

var _ Generator = (*OpenAIClient)(nil)

// NewOpenAIClient creates a provider client. An empty API key is allowed at
// construction time so the service can boot without one; calls will fail and
// degrade to fallback text.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	c := &OpenAIClient{model: model}
	if apiKey != "" {
		c.client = openai.NewClient(apiKey)
	}
	return c
}

// Configured reports whether a provider credential is available.
func (c *OpenAIClient) Configured() bool {
	return c.client != nil
}

// Generate runs one chat completion and returns the first choice's text.
// A response with no choices yields empty text with a nil error; deciding
// whether empty output is an error belongs to the caller.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "", errors.New("OpenAI API key not configured")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: Temperature,
		MaxTokens:   MaxOutputTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// LibraryVersion reports the go-openai module version from build info, for
// the diagnostics endpoint.
func LibraryVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if strings.HasSuffix(dep.Path, "sashabaranov/go-openai") {
			return dep.Version
		}
	}
	return "unknown"
}
