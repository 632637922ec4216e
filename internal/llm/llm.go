// Package llm implements the text-completion provider artifacts. Each
// artifact is a small executable that prints one short completion message
// for --completion, or answers a free-form prompt given as arguments.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Completer sends a single-turn prompt to a model and returns its text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Default models per provider.
const (
	DefaultOpenAIModel    = "gpt-4.1-nano"
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
)

// maxTokens bounds every completion; the messages are a sentence at most.
const maxTokens = 100

// CompletionPrompt builds the prompt asking for a short completion message.
// A non-empty engineerName lets the model address the engineer some of the
// time.
func CompletionPrompt(engineerName string) string {
	var nameInstruction string
	if name := strings.TrimSpace(engineerName); name != "" {
		nameInstruction = fmt.Sprintf(
			"Sometimes (about 30%% of the time) include the engineer's name '%s' in a natural way.\n", name)
	}

	return `Generate a short, friendly completion message for when an AI coding assistant finishes a task.

Requirements:
- Keep it under 10 words
- Make it positive and future focused
- Use natural, conversational language
- Focus on completion or readiness
- Do NOT include quotes, formatting, or explanations
- Return ONLY the completion message text
` + nameInstruction + `
Examples of good messages:
- "Work complete!"
- "All done!"
- "Task finished!"
- "Ready for your next move!"

Generate ONE completion message:`
}

// CleanMessage reduces model output to a single speakable line: surrounding
// whitespace and quotes are removed and only the first line is kept.
func CleanMessage(raw string) string {
	msg := strings.TrimSpace(raw)
	if i := strings.IndexAny(msg, "\r\n"); i >= 0 {
		msg = strings.TrimSpace(msg[:i])
	}
	return strings.TrimSpace(strings.Trim(msg, `"'`+"`"))
}

// CompletionMessage asks c for a completion message and cleans it.
func CompletionMessage(ctx context.Context, c Completer, engineerName string) (string, error) {
	raw, err := c.Complete(ctx, CompletionPrompt(engineerName))
	if err != nil {
		return "", err
	}
	msg := CleanMessage(raw)
	if msg == "" {
		return "", fmt.Errorf("model returned an empty message")
	}
	return msg, nil
}
