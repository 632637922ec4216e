// Command anthropic-llm is the anthropic text-completion provider artifact.
package main

import (
	"context"
	"os"

	"github.com/agent-os/agentos/internal/llm"
)

func main() {
	os.Exit(llm.AnthropicArtifact.Main(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
