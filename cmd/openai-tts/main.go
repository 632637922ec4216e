// Command openai-tts is the openai speech provider artifact.
package main

import (
	"context"
	"os"

	"github.com/agent-os/agentos/internal/tts"
)

func main() {
	os.Exit(tts.OpenAIArtifact.Main(context.Background(), os.Args[1:], os.Stderr))
}
