//go:build !windows

// Package providers tests the resolve, speak and complete commands.
// Related: internal/cli/providers/resolve.go, internal/cli/providers/speak.go
// Tags: providers, cli, resolve, speak

package providers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agent-os/agentos/internal/cli/shared"
	"github.com/agent-os/agentos/internal/fallback"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var credentialVars = []string{"GOOGLE_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY"}

// isolate points config at temp directories, clears credentials and returns
// the utilities directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	utils := filepath.Join(dir, "utils")
	t.Chdir(dir)
	t.Setenv("AGENT_OS_HOME", filepath.Join(dir, "home"))
	t.Setenv("AGENT_OS_CONFIG_FILE", filepath.Join(dir, "home", "config.yml"))
	t.Setenv("AGENT_OS_HOOKS_UTILS_DIR", utils)
	t.Setenv("CCAOS_ENV_FILE", filepath.Join(dir, "missing.env"))
	for _, v := range credentialVars {
		t.Setenv(v, "")
	}
	return utils
}

// artifact writes an executable shell script at <utils>/<kind>/<name>.
func artifact(t *testing.T, utils, kind, name, body string) string {
	t.Helper()
	path := filepath.Join(utils, kind, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := &cobra.Command{Use: "agentos", SilenceUsage: true, SilenceErrors: true}
	root.AddGroup(&cobra.Group{ID: shared.GroupProviders, Title: "Providers:"})
	shared.AddConfigFlags(root)
	Register(root)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestResolveCmd(t *testing.T) {
	tests := map[string]struct {
		env       map[string]string
		artifacts []string
		args      []string
		wantPath  string
		wantCode  int
		wantErr   []string
	}{
		"keyed provider preferred": {
			env:       map[string]string{"OPENAI_API_KEY": "sk-test"},
			artifacts: []string{"openai-tts", "local-tts"},
			args:      []string{"resolve", "tts"},
			wantPath:  "tts/openai-tts",
		},
		"keyless local fallback": {
			artifacts: []string{"gemini-tts", "local-tts"},
			args:      []string{"resolve", "tts", "--verbose"},
			wantPath:  "tts/local-tts",
			wantErr:   []string{"gemini: credential missing", "use local via no credential required"},
		},
		"credential without artifact is skipped": {
			env:       map[string]string{"GEMINI_API_KEY": "g-test", "ANTHROPIC_API_KEY": "a-test"},
			artifacts: []string{"anthropic-llm"},
			args:      []string{"resolve", "llm", "-v"},
			wantPath:  "llm/anthropic-llm",
			wantErr:   []string{"gemini: artifact missing", "openai: credential missing"},
		},
		"nothing available": {
			args:     []string{"resolve", "llm"},
			wantCode: shared.ExitFailure,
		},
		"unknown kind": {
			args:     []string{"resolve", "video"},
			wantCode: shared.ExitInvalidArguments,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			utils := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			for _, a := range tt.artifacts {
				kind := a[strings.LastIndex(a, "-")+1:]
				artifact(t, utils, kind, a, "exit 0")
			}

			stdout, stderr, err := run(t, tt.args...)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, shared.ExitCode(err))
				assert.Empty(t, stdout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(utils, tt.wantPath)+"\n", stdout)
			for _, s := range tt.wantErr {
				assert.Contains(t, stderr, s)
			}
		})
	}
}

func TestSpeakCmd(t *testing.T) {
	tests := map[string]struct {
		body     string
		args     []string
		wantOut  string
		wantCode int
	}{
		"text passed as one argument": {
			body:    `echo "said: $1"`,
			args:    []string{"speak", "build", "finished"},
			wantOut: "said: build finished\n",
		},
		"silent provider succeeds": {
			body: "exit 0",
			args: []string{"speak", "hello"},
		},
		"failing provider": {
			body:     "exit 2",
			args:     []string{"speak", "hello"},
			wantCode: shared.ExitFailure,
		},
		"missing text": {
			body:     "exit 0",
			args:     []string{"speak", "  "},
			wantCode: shared.ExitInvalidArguments,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			utils := isolate(t)
			artifact(t, utils, "tts", "local-tts", tt.body)

			stdout, _, err := run(t, tt.args...)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, shared.ExitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, stdout)
		})
	}
}

func TestSpeakCmd_NoProvider(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "speak", "hello")
	require.Error(t, err)
	assert.Equal(t, shared.ExitFailure, shared.ExitCode(err))
	assert.Contains(t, err.Error(), "no tts provider available")
}

func TestCompleteCmd(t *testing.T) {
	t.Run("provider output", func(t *testing.T) {
		utils := isolate(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		artifact(t, utils, "llm", "openai-llm", `echo "Refactor landed, Sam"`)

		stdout, _, err := run(t, "complete")
		require.NoError(t, err)
		assert.Equal(t, "Refactor landed, Sam\n", stdout)
	})

	t.Run("fallback message", func(t *testing.T) {
		isolate(t)

		stdout, _, err := run(t, "complete")
		require.NoError(t, err)
		assert.Contains(t, fallback.CompletionMessages, strings.TrimSuffix(stdout, "\n"))
	})
}
