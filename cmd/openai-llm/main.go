// Command openai-llm is the openai text-completion provider artifact.
package main

import (
	"context"
	"os"

	"github.com/agent-os/agentos/internal/llm"
)

func main() {
	os.Exit(llm.OpenAIArtifact.Main(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
