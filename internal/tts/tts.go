// Package tts implements the speech provider artifacts. Each artifact is a
// small executable that speaks its arguments aloud, or a default phrase when
// run without arguments.
package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agent-os/agentos/internal/config"
)

// DefaultText is spoken when an artifact runs without arguments.
const DefaultText = "Today is a wonderful day to build something people love!"

// RequestTimeout bounds one artifact run, synthesis and playback included.
const RequestTimeout = 30 * time.Second

// ErrUnavailable reports that the platform has no usable speech or audio tool.
var ErrUnavailable = errors.New("no speech or audio playback tool available")

// Speaker turns text into audible speech.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Artifact describes one speech executable.
type Artifact struct {
	Name string
	// CredentialEnvVars are checked in order. Empty means no credential is needed.
	CredentialEnvVars []string
	// New builds the speaker from the credential (empty for keyless engines).
	New func(apiKey string) Speaker
}

// Main runs the artifact with args (without the program name) and returns
// the process exit code.
func (a Artifact) Main(ctx context.Context, args []string, stderr io.Writer) int {
	_ = config.LoadDotenv()

	var apiKey string
	if len(a.CredentialEnvVars) > 0 {
		apiKey = a.credential()
		if apiKey == "" {
			fmt.Fprintf(stderr, "%s: none of %s is set\n", a.Name, strings.Join(a.CredentialEnvVars, ", "))
			return 1
		}
	}

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		text = DefaultText
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if err := a.New(apiKey).Speak(ctx, text); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", a.Name, err)
		return 1
	}
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
		Name:              "gemini-tts",
		CredentialEnvVars: []string{"GOOGLE_API_KEY"},
		New:               func(key string) Speaker { return NewGemini(key, NewPlayer()) },
	}
	OpenAIArtifact = Artifact{
		Name:              "openai-tts",
		CredentialEnvVars: []string{"OPENAI_API_KEY"},
		New:               func(key string) Speaker { return NewOpenAI(key, NewPlayer()) },
	}
	LocalArtifact = Artifact{
		Name: "local-tts",
		New:  func(string) Speaker { return NewLocal() },
	}
)
