package cli

import (
	"github.com/agent-os/agentos/internal/cli/shared"
)

// Exit codes for the agentos CLI (re-exported from shared).
// Hook commands always exit ExitSuccess.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitFailure indicates a general failure, including no provider found
	ExitFailure = shared.ExitFailure

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitMissingDependencies indicates a required directory or tool is missing
	ExitMissingDependencies = shared.ExitMissingDependency

	// ExitTimeout indicates a provider or installer timed out
	ExitTimeout = shared.ExitTimeout
)

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
