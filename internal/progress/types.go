// Package progress shows per-step progress for multi-step commands such as
// extension installation: a spinner on terminals, plain lines otherwise.
package progress

import apperrors "github.com/agent-os/agentos/internal/errors"

// StepStatus represents the execution state of a step
type StepStatus int

const (
	// StepPending indicates the step has not started yet
	StepPending StepStatus = iota
	// StepInProgress indicates the step is currently running
	StepInProgress
	// StepCompleted indicates the step finished successfully
	StepCompleted
	// StepFailed indicates the step failed with an error
	StepFailed
	// StepSkipped indicates the step was not applicable
	StepSkipped
)

// String returns the string representation of StepStatus
func (s StepStatus) String() string {
	switch s {
	case StepPending:
		return "pending"
	case StepInProgress:
		return "in_progress"
	case StepCompleted:
		return "completed"
	case StepFailed:
		return "failed"
	case StepSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// StepInfo describes one step for progress display
type StepInfo struct {
	// Name is the subject of the step (e.g., an extension name)
	Name string
	// Action is the verb shown while the step runs (e.g., "Installing")
	Action string
	// Number is the current step number (1-based index)
	Number int
	// Total is the number of steps
	Total int
	// Status is the current execution status
	Status StepStatus
}

// Validate checks that all StepInfo fields meet validation requirements
func (s StepInfo) Validate() error {
	if s.Name == "" {
		return apperrors.NewArgumentError("step name cannot be empty")
	}
	if s.Number <= 0 {
		return apperrors.NewArgumentError("step number must be > 0")
	}
	if s.Total <= 0 {
		return apperrors.NewArgumentError("total steps must be > 0")
	}
	if s.Number > s.Total {
		return apperrors.NewArgumentError("step number cannot exceed total steps")
	}
	return nil
}

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether stdout is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// ProgressSymbols defines the character set for visual indicators
type ProgressSymbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// Skip is the skipped indicator ("⏭" or "[SKIP]")
	Skip string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}
