// Package invoke runs provider artifacts as bounded child processes and
// classifies how they ended.
//
// Invoke never returns an error: every way a run can end is reported as an
// Outcome, and only a Success with non-blank output is usable. Retrying or
// moving to another provider is the caller's decision.
package invoke

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// OutcomeKind classifies how an invocation ended.
type OutcomeKind int

const (
	// Success means exit status zero with non-blank stdout.
	Success OutcomeKind = iota
	// EmptyOutput means exit status zero with blank stdout.
	EmptyOutput
	// NonZeroExit means the process exited with a non-zero status.
	NonZeroExit
	// Timeout means the deadline expired and the process was killed.
	Timeout
	// ProcessError means the process could not be started or waited on.
	ProcessError
)

// String returns a human-readable representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case EmptyOutput:
		return "empty_output"
	case NonZeroExit:
		return "non_zero_exit"
	case Timeout:
		return "timeout"
	case ProcessError:
		return "process_error"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one invocation.
type Outcome struct {
	Kind OutcomeKind
	// Text is the trimmed stdout, set only for Success.
	Text string
	// ExitCode is the process exit status, -1 when it never exited normally.
	ExitCode int
	// Stderr holds captured standard error for diagnostics.
	Stderr string
	// Err carries the underlying cause for Timeout and ProcessError.
	Err      error
	Duration time.Duration
}

// Usable reports whether the outcome carries text the caller may use.
func (o Outcome) Usable() bool {
	return o.Kind == Success && o.Text != ""
}

// waitDelay bounds how long Wait blocks on inherited pipes after the child is killed.
const waitDelay = 2 * time.Second

// Invoker spawns provider artifacts.
type Invoker struct {
	logger zerolog.Logger
	// env, when non-nil, replaces the child's environment.
	env []string
}

// New creates an Invoker. A nil env inherits the parent environment.
func New(logger zerolog.Logger, env []string) *Invoker {
	return &Invoker{logger: logger, env: env}
}

// Invoke runs path with args, bounded by timeout (zero or negative means no
// bound other than ctx), and classifies the result.
func (i *Invoker) Invoke(ctx context.Context, path string, args []string, timeout time.Duration) Outcome {
	runCtx, cancel := applyTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if i.env != nil {
		cmd.Env = i.env
	}
	isolate(cmd)
	cmd.Cancel = func() error { return killTree(cmd) }
	cmd.WaitDelay = waitDelay

	start := time.Now()
	if err := cmd.Start(); err != nil {
		out := Outcome{Kind: ProcessError, ExitCode: -1, Err: err, Duration: time.Since(start)}
		i.log(path, out)
		return out
	}

	err := cmd.Wait()
	out := classify(runCtx, cmd, err, stdout.String())
	out.Stderr = stderr.String()
	out.Duration = time.Since(start)
	i.log(path, out)
	return out
}

func classify(ctx context.Context, cmd *exec.Cmd, err error, stdout string) Outcome {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return Outcome{Kind: Timeout, ExitCode: -1, Err: ctxErr}
		}
		return Outcome{Kind: ProcessError, ExitCode: -1, Err: ctxErr}
	}

	// A grandchild holding stdout open past our exit is not a failure of the child itself.
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		err = nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Outcome{Kind: NonZeroExit, ExitCode: exitErr.ExitCode()}
		}
		return Outcome{Kind: ProcessError, ExitCode: -1, Err: err}
	}

	text := strings.TrimSpace(stdout)
	if text == "" {
		return Outcome{Kind: EmptyOutput}
	}
	return Outcome{Kind: Success, Text: text}
}

func (i *Invoker) log(path string, out Outcome) {
	ev := i.logger.Debug()
	if out.Kind != Success {
		ev = i.logger.Warn()
	}
	ev = ev.Str("artifact", path).
		Str("outcome", out.Kind.String()).
		Int("exit_code", out.ExitCode).
		Dur("duration", out.Duration)
	if out.Err != nil {
		ev = ev.Err(out.Err)
	}
	if s := strings.TrimSpace(out.Stderr); s != "" && out.Kind != Success {
		ev = ev.Str("stderr", truncate(s, 512))
	}
	ev.Msg("provider invocation finished")
}

// applyTimeout returns a context with timeout if timeout is positive.
func applyTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
