// Package errors tests rendering of CLI errors for the terminal.
// Related: internal/errors/format.go
// Tags: errors, formatting, colors

package errors

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  *CLIError
		want string
	}{
		"nil": {
			err:  nil,
			want: "",
		},
		"message only": {
			err:  NewRuntimeError("gemini speech provider finished with timeout"),
			want: "Runtime Error: gemini speech provider finished with timeout\n",
		},
		"usage and remediation": {
			err: NewArgumentErrorWithUsage("unknown provider kind \"video\"",
				"agentos resolve <tts|llm>",
				"Use 'tts' for speech synthesis or 'llm' for text completion"),
			want: "Argument Error: unknown provider kind \"video\"\n" +
				"\nUsage: agentos resolve <tts|llm>\n" +
				"\nTo fix this:\n" +
				"  1. Use 'tts' for speech synthesis or 'llm' for text completion\n",
		},
		"numbered steps": {
			err: NewPrerequisiteError("no llm provider available", "Set GOOGLE_API_KEY", "Install gemini-llm"),
			want: "Prerequisite Error: no llm provider available\n" +
				"\nTo fix this:\n" +
				"  1. Set GOOGLE_API_KEY\n" +
				"  2. Install gemini-llm\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatErrorPlain(tt.err))
		})
	}
}

func TestFormatError_ContainsPlainText(t *testing.T) {
	t.Parallel()

	err := NewConfigError("config file not found: /tmp/x.yml", "Check the --config path or create the file")
	out := FormatError(err)

	assert.Contains(t, out, "Configuration Error")
	assert.Contains(t, out, "config file not found: /tmp/x.yml")
	assert.Contains(t, out, "1. Check the --config path or create the file")
	assert.Empty(t, FormatError(nil))
}

func TestFprintError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintError(&buf, NewRuntimeError("openai-tts exited 1"))
	assert.Contains(t, buf.String(), "openai-tts exited 1")

	buf.Reset()
	FprintError(&buf, nil)
	assert.Empty(t, buf.String())
}
