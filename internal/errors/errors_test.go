// Package errors tests CLI error categories, constructors and wrapping.
// Related: internal/errors/errors.go
// Tags: errors, cli, categories

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[ErrorCategory]string{
		Argument:          "Argument Error",
		Configuration:     "Configuration Error",
		Prerequisite:      "Prerequisite Error",
		Runtime:           "Runtime Error",
		ErrorCategory(42): "Error",
	}
	for cat, want := range tests {
		assert.Equal(t, want, cat.String())
	}
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantUsage    string
		wantSteps    []string
	}{
		"argument": {
			err:          NewArgumentError("unknown provider kind \"video\"", "Use tts or llm"),
			wantCategory: Argument,
			wantSteps:    []string{"Use tts or llm"},
		},
		"argument with usage": {
			err:          NewArgumentErrorWithUsage("no text to speak", "agentos speak <text>"),
			wantCategory: Argument,
			wantUsage:    "agentos speak <text>",
		},
		"config": {
			err:          NewConfigError("hooks.speech_timeout must be positive"),
			wantCategory: Configuration,
		},
		"prerequisite": {
			err:          NewPrerequisiteError("no tts provider available", "Set OPENAI_API_KEY", "Install openai-tts"),
			wantCategory: Prerequisite,
			wantSteps:    []string{"Set OPENAI_API_KEY", "Install openai-tts"},
		},
		"runtime": {
			err:          NewRuntimeError("speech provider exited 1"),
			wantCategory: Runtime,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Equal(t, tt.err.Message, tt.err.Error())
			assert.Equal(t, tt.wantUsage, tt.err.Usage)
			assert.Equal(t, tt.wantSteps, tt.err.Remediation)
			assert.Nil(t, tt.err.Unwrap())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("reading settings.json: %w", stderrors.New("permission denied"))

	wrapped := Wrap(cause, Configuration, "Check file permissions")
	require.NotNil(t, wrapped)
	assert.Equal(t, Configuration, wrapped.Category)
	assert.Equal(t, cause.Error(), wrapped.Message)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, []string{"Check file permissions"}, wrapped.Remediation)

	prefixed := WrapWithMessage(cause, Runtime, "installing hooks")
	require.NotNil(t, prefixed)
	assert.Equal(t, "installing hooks: "+cause.Error(), prefixed.Message)
	assert.ErrorIs(t, prefixed, cause)

	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "ignored"))
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	cliErr := NewPrerequisiteError("no llm provider available")

	tests := map[string]struct {
		err  error
		want *CLIError
	}{
		"nil":          {err: nil},
		"plain error":  {err: stderrors.New("boom")},
		"direct":       {err: cliErr, want: cliErr},
		"wrapped once": {err: fmt.Errorf("resolve: %w", cliErr), want: cliErr},
		"wrapped twice": {
			err:  fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", cliErr)),
			want: cliErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Same(t, tt.want, AsCLIError(tt.err))
			assert.Equal(t, tt.want != nil, IsCLIError(tt.err))
		})
	}
}
