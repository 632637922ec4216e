// agentos - Lifecycle Hooks and Extension Tooling for Claude Code
// Source: https://github.com/agent-os/agentos

package main

import (
	"os"

	"github.com/agent-os/agentos/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
