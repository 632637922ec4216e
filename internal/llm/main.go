package llm

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agent-os/agentos/internal/config"
)

// CompletionFlag selects completion-message mode.
const CompletionFlag = "--completion"

// RequestTimeout bounds one artifact run. The hook's own timeout is the
// outer bound; this one keeps a stray manual run from hanging.
const RequestTimeout = 20 * time.Second

// Artifact describes one text-completion executable.
type Artifact struct {
	// Name is used in usage and error messages.
	Name string
	// CredentialEnvVars are checked in order; the first non-empty one is used.
	CredentialEnvVars []string
	// ModelEnvVar optionally overrides the default model.
	ModelEnvVar string
	// New builds the completer from the credential and model.
	New func(apiKey, model string) Completer
}

// Main runs an artifact with args (without the program name) and returns
// the process exit code. Output goes to stdout only on success, so the
// caller can treat any stdout as the message.
func (a Artifact) Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Credentials may live in the dotenv file the hooks use.
	_ = config.LoadDotenv()

	if len(args) == 0 {
		fmt.Fprintf(stderr, "Usage: %s 'your prompt here' or %s %s\n", a.Name, a.Name, CompletionFlag)
		return 2
	}

	apiKey := a.credential()
	if apiKey == "" {
		fmt.Fprintf(stderr, "%s: none of %s is set\n", a.Name, strings.Join(a.CredentialEnvVars, ", "))
		return 1
	}
	var model string
	if a.ModelEnvVar != "" {
		model = os.Getenv(a.ModelEnvVar)
	}
	c := a.New(apiKey, model)

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	var (
		out string
		err error
	)
	if args[0] == CompletionFlag {
		out, err = CompletionMessage(ctx, c, os.Getenv("ENGINEER_NAME"))
	} else {
		out, err = c.Complete(ctx, strings.Join(args, " "))
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", a.Name, err)
		return 1
	}
	fmt.Fprintln(stdout, out)
	return 0
}

func (a Artifact) credential() string {
	for _, name := range a.CredentialEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Artifacts for the three built-in providers.
var (
	GeminiArtifact = Artifact{
		Name:              "gemini-llm",
		CredentialEnvVars: []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"},
		ModelEnvVar:       "GEMINI_MODEL",
		New:               func(key, model string) Completer { return NewGemini(key, model) },
	}
	OpenAIArtifact = Artifact{
		Name:              "openai-llm",
		CredentialEnvVars: []string{"OPENAI_API_KEY"},
		ModelEnvVar:       "OPENAI_MODEL",
		New:               func(key, model string) Completer { return NewOpenAI(key, "", model) },
	}
	AnthropicArtifact = Artifact{
		Name:              "anthropic-llm",
		CredentialEnvVars: []string{"ANTHROPIC_API_KEY"},
		ModelEnvVar:       "ANTHROPIC_MODEL",
		New:               func(key, model string) Completer { return NewAnthropic(key, model) },
	}
)
