// Package errors_test tests structured CLI error message generation and remediation steps.
// Related: internal/errors/messages.go
// Tags: errors, cli-errors, messages, remediation, error-categories
package errors

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessages(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("boom")

	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantContains string
		wantUsage    bool
	}{
		"invalid provider kind": {
			err:          InvalidProviderKind("video"),
			wantCategory: Argument,
			wantContains: "video",
			wantUsage:    true,
		},
		"no provider": {
			err:          NoProviderAvailable("llm", "/u", []string{"OPENAI_API_KEY"}),
			wantCategory: Prerequisite,
			wantContains: "llm",
		},
		"missing text": {
			err:          MissingText(),
			wantCategory: Argument,
			wantContains: "no text",
			wantUsage:    true,
		},
		"speech failed": {
			err:          SpeechFailed("gemini", "timeout"),
			wantCategory: Runtime,
			wantContains: "timeout",
		},
		"config not found": {
			err:          ConfigFileNotFound("/etc/a.yml"),
			wantCategory: Configuration,
			wantContains: "/etc/a.yml",
		},
		"config parse": {
			err:          ConfigParseError("/etc/a.yml", cause),
			wantCategory: Configuration,
			wantContains: "boom",
		},
		"required disabled": {
			err:          RequiredExtensionsDisabled([]string{"Extension 'hooks' is required but disabled"}),
			wantCategory: Configuration,
			wantContains: "hooks",
		},
		"extensions dir": {
			err:          ExtensionsDirNotFound("/x/extensions"),
			wantCategory: Prerequisite,
			wantContains: "/x/extensions",
		},
		"install failed": {
			err:          ExtensionInstallFailed("sandbox", cause),
			wantCategory: Runtime,
			wantContains: "sandbox",
		},
		"timeout": {
			err:          TimeoutError(5*time.Minute, "installer"),
			wantCategory: Runtime,
			wantContains: "5m0s",
		},
		"directory": {
			err:          DirectoryNotFound("/nope"),
			wantCategory: Prerequisite,
			wantContains: "/nope",
		},
		"not writable": {
			err:          FileNotWritable("/ro"),
			wantCategory: Runtime,
			wantContains: "/ro",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Contains(t, tt.err.Message, tt.wantContains)
			assert.NotEmpty(t, tt.err.Remediation)
			assert.Equal(t, tt.wantUsage, tt.err.Usage != "")
		})
	}
}

func TestWrappedMessagesUnwrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("disk full")
	err := ExtensionInstallFailed("hooks", cause)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCLIError(err))
}
