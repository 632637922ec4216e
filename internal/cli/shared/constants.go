// Package shared provides constants and types used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"

	apperrors "github.com/agent-os/agentos/internal/errors"
)

// Command group IDs for organizing help output
const (
	GroupHooks         = "hooks"
	GroupProviders     = "providers"
	GroupExtensions    = "extensions"
	GroupConfiguration = "configuration"
)

// Exit codes for CLI commands. Hook commands always exit ExitSuccess.
const (
	ExitSuccess           = 0
	ExitFailure           = 1
	ExitInvalidArguments  = 3
	ExitMissingDependency = 4
	ExitTimeout           = 5
)

// exitError is a custom error type that carries an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// WithExitCode attaches an exit code to err while keeping it reachable
// through errors.As and errors.Is.
func WithExitCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// IsBareExit reports whether err carries only an exit code and no message
// worth printing.
func IsBareExit(err error) bool {
	var e *exitError
	return errors.As(err, &e) && e.err == nil
}

// ExitCode returns the exit code from an error. Categorized CLI errors map
// argument problems to ExitInvalidArguments and missing prerequisites to
// ExitMissingDependency.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case apperrors.Argument:
			return ExitInvalidArguments
		case apperrors.Prerequisite:
			return ExitMissingDependency
		}
	}
	return ExitFailure
}
