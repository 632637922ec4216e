// Command gemini-tts is the gemini speech provider artifact.
package main

import (
	"context"
	"os"

	"github.com/agent-os/agentos/internal/tts"
)

func main() {
	os.Exit(tts.GeminiArtifact.Main(context.Background(), os.Args[1:], os.Stderr))
}
