// Command gemini-llm is the gemini text-completion provider artifact.
package main

import (
	"context"
	"os"

	"github.com/agent-os/agentos/internal/llm"
)

func main() {
	os.Exit(llm.GeminiArtifact.Main(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
