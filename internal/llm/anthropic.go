package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agent-os/agentos/internal/build"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic completes prompts through the Messages API.
type Anthropic struct {
	client *anthropic.Client
	model  string
}

// NewAnthropic creates a Messages API client.
func NewAnthropic(apiKey, model string, opts ...option.RequestOption) *Anthropic {
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHeader("User-Agent", build.UserAgent()),
	}, opts...)
	client := anthropic.NewClient(reqOpts...)
	return &Anthropic{client: &client, model: orDefault(model, DefaultAnthropicModel)}
}

// Model returns the model requests are sent to.
func (c *Anthropic) Model() string {
	return c.model
}

// Complete implements Completer.
func (c *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(0.7),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.AsText().Text)
		}
	}
	return strings.TrimSpace(b.String()), nil
}
