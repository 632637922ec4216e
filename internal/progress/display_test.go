// Package progress_test tests progress display rendering, step counters and symbols.
// Related: internal/progress/display.go
// Tags: progress, display, rendering, steps, spinner, tty
package progress_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/agent-os/agentos/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var plainCaps = progress.TerminalCapabilities{IsTTY: false, SupportsColor: false, SupportsUnicode: false}

func TestProgressDisplay_StartStep(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		step         progress.StepInfo
		wantContains string
		wantErr      bool
	}{
		"first of three": {
			step:         progress.StepInfo{Name: "hooks", Action: "Installing", Number: 1, Total: 3},
			wantContains: "[1/3] Installing hooks",
		},
		"default action": {
			step:         progress.StepInfo{Name: "peer", Number: 2, Total: 2},
			wantContains: "[2/2] Running peer",
		},
		"empty name": {
			step:    progress.StepInfo{Number: 1, Total: 1},
			wantErr: true,
		},
		"number exceeds total": {
			step:    progress.StepInfo{Name: "x", Number: 3, Total: 2},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			d := progress.NewProgressDisplay(plainCaps, &buf)
			err := d.StartStep(tt.step)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, buf.String())
				return
			}
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.wantContains)
		})
	}
}

func TestProgressDisplay_Outcomes(t *testing.T) {
	t.Parallel()

	step := progress.StepInfo{Name: "sandbox", Action: "Installing", Number: 2, Total: 3}

	tests := map[string]struct {
		run  func(d *progress.ProgressDisplay)
		want string
	}{
		"complete": {
			run:  func(d *progress.ProgressDisplay) { d.CompleteStep(step) },
			want: "[OK] [2/3] sandbox done\n",
		},
		"fail": {
			run:  func(d *progress.ProgressDisplay) { d.FailStep(step, errors.New("exit 1")) },
			want: "[FAIL] [2/3] sandbox failed: exit 1\n",
		},
		"skip": {
			run:  func(d *progress.ProgressDisplay) { d.SkipStep(step, "disabled in configuration") },
			want: "[SKIP] [2/3] sandbox skipped (disabled in configuration)\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.run(progress.NewProgressDisplay(plainCaps, &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestProgressDisplay_ColorAndUnicode(t *testing.T) {
	t.Parallel()

	caps := progress.TerminalCapabilities{IsTTY: false, SupportsColor: true, SupportsUnicode: true}
	var buf bytes.Buffer
	progress.NewProgressDisplay(caps, &buf).CompleteStep(progress.StepInfo{Name: "hooks", Number: 1, Total: 1})

	assert.Contains(t, buf.String(), "✓")
	assert.Contains(t, buf.String(), "\x1b[32m")
}

func TestStopSpinner_Idempotent(t *testing.T) {
	t.Parallel()

	d := progress.NewProgressDisplay(plainCaps, &bytes.Buffer{})
	assert.NotPanics(t, func() {
		d.StopSpinner()
		d.StopSpinner()
	})
}

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	unicode := progress.SelectSymbols(progress.TerminalCapabilities{SupportsUnicode: true})
	assert.Equal(t, "✓", unicode.Checkmark)
	assert.Equal(t, 14, unicode.SpinnerSet)

	ascii := progress.SelectSymbols(progress.TerminalCapabilities{})
	assert.Equal(t, "[OK]", ascii.Checkmark)
	assert.Equal(t, "[SKIP]", ascii.Skip)
	assert.Equal(t, 9, ascii.SpinnerSet)
}

func TestDetectTerminalCapabilities_NonTTY(t *testing.T) {
	// Under go test stdout is not a terminal.
	caps := progress.DetectTerminalCapabilities()
	if caps.IsTTY {
		t.Skip("stdout is a terminal")
	}
	assert.False(t, caps.SupportsColor)
	assert.False(t, caps.SupportsUnicode)
	assert.Zero(t, caps.Width)
}

func TestStepStatus_String(t *testing.T) {
	t.Parallel()

	tests := map[progress.StepStatus]string{
		progress.StepPending:    "pending",
		progress.StepInProgress: "in_progress",
		progress.StepCompleted:  "completed",
		progress.StepFailed:     "failed",
		progress.StepSkipped:    "skipped",
		progress.StepStatus(99): "unknown",
	}
	for status, want := range tests {
		assert.Equal(t, want, status.String())
	}
}
