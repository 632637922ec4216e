package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agent-os/agentos/internal/build"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// GeminiBaseURL is Google's OpenAI-compatible endpoint.
const GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// OpenAI completes prompts through the Chat Completions API. It serves both
// OpenAI and Gemini, which exposes a compatible endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAI creates a client for api.openai.com, or for baseURL when set.
func NewOpenAI(apiKey, baseURL, model string, opts ...option.RequestOption) *OpenAI {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHeader("User-Agent", build.UserAgent()),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)
	client := openai.NewClient(reqOpts...)
	return &OpenAI{client: &client, model: orDefault(model, DefaultOpenAIModel), name: "OpenAI"}
}

// NewGemini creates an OpenAI-compatible client for the Gemini API.
func NewGemini(apiKey, model string, opts ...option.RequestOption) *OpenAI {
	c := NewOpenAI(apiKey, GeminiBaseURL, orDefault(model, DefaultGeminiModel), opts...)
	c.name = "Gemini"
	return c
}

// Model returns the model requests are sent to.
func (c *OpenAI) Model() string {
	return c.model
}

// Complete implements Completer.
func (c *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               c.model,
		Messages:            []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		MaxCompletionTokens: openai.Int(maxTokens),
		Temperature:         openai.Float(0.7),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%s API request failed (status=%d): %s",
				c.name, apiErr.StatusCode, strings.TrimSpace(apiErr.Message))
		}
		return "", fmt.Errorf("%s API request failed: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s API returned no choices", c.name)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
