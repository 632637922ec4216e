//go:build !windows

// Package integration runs the agentos command tree against scripted provider
// artifacts to check hook events from payload to announcement.
// Related: internal/cli/hooks/hook.go, internal/hook/announcer.go
// Tags: integration, hooks, provider, invoke

package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agent-os/agentos/internal/cli"
	"github.com/agent-os/agentos/internal/eventlog"
	"github.com/agent-os/agentos/internal/fallback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	dir      string
	utilsDir string
	logDir   string
	spoken   string
}

func setup(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	e := &env{
		dir:      dir,
		utilsDir: filepath.Join(dir, "utils"),
		logDir:   filepath.Join(dir, "logs"),
		spoken:   filepath.Join(dir, "spoken.txt"),
	}
	t.Chdir(dir)
	t.Setenv("AGENT_OS_HOME", filepath.Join(dir, "home"))
	t.Setenv("AGENT_OS_CONFIG_FILE", filepath.Join(dir, "home", "config.yml"))
	t.Setenv("AGENT_OS_HOOKS_LOG_DIR", e.logDir)
	t.Setenv("AGENT_OS_HOOKS_UTILS_DIR", e.utilsDir)
	t.Setenv("CCAOS_ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("ENGINEER_NAME", "")
	for _, name := range []string{"GOOGLE_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY"} {
		t.Setenv(name, "")
	}
	return e
}

// artifact installs a shell script at <utils>/<kind>/<name>.
func (e *env) artifact(t *testing.T, kind, name, body string) string {
	t.Helper()
	path := filepath.Join(e.utilsDir, kind, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd()
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	err := root.Execute()
	return out.String(), err
}

func TestStopHook_AnnouncesCompletion(t *testing.T) {
	tests := map[string]struct {
		creds     map[string]string
		artifacts func(t *testing.T, e *env)
		want      string
		fallback  bool
	}{
		"llm message spoken by keyed tts": {
			creds: map[string]string{"OPENAI_API_KEY": "sk-test"},
			artifacts: func(t *testing.T, e *env) {
				e.artifact(t, "llm", "openai-llm", `echo "Integration complete!"`)
				e.artifact(t, "tts", "openai-tts", `echo "$1" > `+e.spoken)
			},
			want: "Integration complete!",
		},
		"gemini preferred over openai": {
			creds: map[string]string{"GOOGLE_API_KEY": "g", "OPENAI_API_KEY": "o"},
			artifacts: func(t *testing.T, e *env) {
				e.artifact(t, "llm", "gemini-llm", `echo "From gemini"`)
				e.artifact(t, "llm", "openai-llm", `echo "From openai"`)
				e.artifact(t, "tts", "local-tts", `echo "$1" > `+e.spoken)
			},
			want: "From gemini",
		},
		"failing gemini falls back to a static message": {
			creds: map[string]string{"GOOGLE_API_KEY": "x", "OPENAI_API_KEY": "y"},
			artifacts: func(t *testing.T, e *env) {
				e.artifact(t, "llm", "gemini-llm", `echo "Should not be used"; exit 1`)
				e.artifact(t, "llm", "openai-llm", `echo "Not consulted"`)
				e.artifact(t, "tts", "local-tts", `echo "$1" > `+e.spoken)
			},
			fallback: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := setup(t)
			for k, v := range tt.creds {
				t.Setenv(k, v)
			}
			tt.artifacts(t, e)

			_, err := run(t, `{"session_id":"int-1","stop_hook_active":false}`, "hook", "stop", "--announce")
			require.NoError(t, err)

			entries, err := eventlog.Load(e.logDir, eventlog.EventStop)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "int-1", entries[0].SessionID)

			spoken, err := os.ReadFile(e.spoken)
			require.NoError(t, err)
			got := strings.TrimSpace(string(spoken))
			assert.Equal(t, entries[0].Announced, got)
			if tt.fallback {
				assert.Contains(t, fallback.CompletionMessages, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStopHook_NoProviders(t *testing.T) {
	e := setup(t)

	_, err := run(t, `{"session_id":"quiet"}`, "hook", "stop", "--announce")
	require.NoError(t, err)

	entries, err := eventlog.Load(e.logDir, eventlog.EventStop)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Announced)
}

func TestResolveMatchesHookChoice(t *testing.T) {
	e := setup(t)
	t.Setenv("OPENAI_API_KEY", "o")
	e.artifact(t, "tts", "gemini-tts", "exit 0")
	want := e.artifact(t, "tts", "openai-tts", "exit 0")

	out, err := run(t, "", "resolve", "tts")
	require.NoError(t, err)
	assert.Equal(t, want, strings.TrimSpace(out))

	_, err = run(t, "", "resolve", "llm")
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
}
