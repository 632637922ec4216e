// Command local-tts is the keyless speech provider artifact backed by the OS speech engine.
package main

import (
	"context"
	"os"

	"github.com/agent-os/agentos/internal/tts"
)

func main() {
	os.Exit(tts.LocalArtifact.Main(context.Background(), os.Args[1:], os.Stderr))
}
