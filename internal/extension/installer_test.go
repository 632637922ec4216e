// Package extension_test tests script and native hooks installers.
// Related: internal/extension/installer.go, internal/extension/hooks.go
// Tags: extension, installer, hooks, settings, overwrite

//go:build !windows

package extension

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agent-os/agentos/internal/claude"
	"github.com/agent-os/agentos/internal/invoke"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptInstaller_Command(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		scripts  []string
		req      Request
		wantArgs []string
		wantErr  bool
	}{
		"shell installer with config": {
			scripts: []string{"install.sh"},
			req: Request{
				Name:       "sandbox",
				Mode:       InstallGlobal,
				InstallDir: "/opt/sandbox",
				Config: map[string]any{
					"install_dir": "/ignored",
					"enabled":     true,
					"profiles":    []any{"a", "b"},
				},
				Debug: true,
			},
			wantArgs: []string{
				"install.sh",
				"--mode=global",
				"--extension-name=sandbox",
				"--install-dir=/opt/sandbox",
				"--config-enabled=true",
				"--config-profiles=a,b",
				"--debug",
			},
		},
		"python preferred over shell": {
			scripts: []string{"install.sh", "install.py"},
			req: Request{
				Name:       "peer",
				Mode:       InstallProject,
				ProjectDir: "/work/app",
				Overwrite:  true,
			},
			wantArgs: []string{
				"run",
				"install.py",
				"--mode=project",
				"--extension-name=peer",
				"--project-dir=/work/app",
				"--overwrite",
			},
		},
		"no script": {
			req:     Request{Name: "empty"},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for _, s := range tt.scripts {
				require.NoError(t, os.WriteFile(filepath.Join(dir, s), []byte("#!/bin/sh\n"), 0o755))
			}
			tt.req.SourceDir = dir

			// /bin/sh stands in for both interpreters so the lookup succeeds.
			s := &ScriptInstaller{Python: []string{"sh", "run"}, Shell: []string{"sh"}}
			path, args, err := s.Command(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "sh", filepath.Base(path))

			var got []string
			for _, a := range args {
				if strings.HasPrefix(a, "--source-dir=") {
					assert.Equal(t, "--source-dir="+dir, a)
					continue
				}
				got = append(got, strings.TrimPrefix(a, dir+string(filepath.Separator)))
			}
			assert.Equal(t, tt.wantArgs, got)
		})
	}
}

func TestScriptInstaller_Install(t *testing.T) {
	tests := map[string]struct {
		body    string
		wantErr string
		wantOut string
	}{
		"success prints output": {
			body:    `echo "installed $3"`,
			wantOut: "installed --extension-name=sandbox",
		},
		"silent success": {
			body: `exit 0`,
		},
		"failure includes stderr": {
			body:    "echo 'missing dependency' >&2\nexit 2",
			wantErr: "exited with code 2: missing dependency",
		},
		"timeout": {
			body:    "sleep 10",
			wantErr: "timed out",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "install.sh"), []byte(tt.body+"\n"), 0o755))

			var out bytes.Buffer
			s := &ScriptInstaller{
				Invoker: invoke.New(zerolog.Nop(), nil),
				Timeout: 500 * time.Millisecond,
				Out:     &out,
				Shell:   []string{"sh"},
			}
			err := s.Install(context.Background(), Request{Name: "sandbox", Mode: InstallGlobal, SourceDir: dir})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, strings.TrimSpace(out.String()))
		})
	}
}

// hooksSource builds an extension directory holding provider artifacts.
func hooksSource(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "hooks")
	for _, rel := range []string{
		"utils/llm/gemini-llm",
		"utils/llm/openai-llm",
		"utils/tts/local-tts",
		"instructions/stop.md",
	} {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("new "+rel), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "install.py"), nil, 0o644))
	return dir
}

func readSettings(t *testing.T, claudeDir string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(claudeDir, claude.SettingsFileName))
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestHooksInstaller_FreshInstall(t *testing.T) {
	t.Parallel()

	source := hooksSource(t)
	claudeDir := filepath.Join(t.TempDir(), ".claude")
	h := &HooksInstaller{
		ClaudeDir: claudeDir,
		Binary:    "/usr/local/bin/agentos",
		now:       func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) },
	}

	report, err := h.Run(context.Background(), Request{Name: HooksExtension, Mode: InstallGlobal, SourceDir: source})
	require.NoError(t, err)

	hooksDir := filepath.Join(claudeDir, "hooks")
	assert.Equal(t, hooksDir, report.HooksDir)
	assert.ElementsMatch(t, []string{
		filepath.Join("utils", "llm", "gemini-llm"),
		filepath.Join("utils", "llm", "openai-llm"),
		filepath.Join("utils", "tts", "local-tts"),
		"instructions/",
	}, report.Copied)
	assert.Empty(t, report.Kept)

	info, err := os.Stat(filepath.Join(hooksDir, "utils", "llm", "gemini-llm"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	assert.DirExists(t, filepath.Join(hooksDir, "utils", "tts"))
	assert.FileExists(t, filepath.Join(hooksDir, "instructions", "stop.md"))

	cfg, err := os.ReadFile(filepath.Join(hooksDir, HooksConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "installation_date=2025-01-02T03:04:05Z\n")
	assert.Contains(t, string(cfg), "installation_mode=global\n")
	assert.Contains(t, string(cfg), "hook_count=4\n")
	assert.Contains(t, string(cfg), "update_settings=true\n")

	assert.True(t, report.Settings.Created)
	assert.True(t, report.SettingsUpdated)
	settings := readSettings(t, claudeDir)
	assert.Contains(t, settings, "permissions")
	hooks := settings["hooks"].(map[string]interface{})
	assert.Contains(t, hooks, "Stop")
	assert.Contains(t, hooks, "SubagentStop")
	assert.Contains(t, hooks, "Notification")
	data, _ := json.Marshal(hooks["Stop"])
	assert.Contains(t, string(data), "/usr/local/bin/agentos hook stop --announce")
}

func TestHooksInstaller_OverwriteProtection(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		overwrite    bool
		wantContent  string
		wantSkipped  bool
		wantHookKeys []string
	}{
		"existing files kept without overwrite": {
			wantContent:  "old",
			wantSkipped:  true,
			wantHookKeys: []string{"PreToolUse"},
		},
		"overwrite replaces files and merges hooks": {
			overwrite:    true,
			wantContent:  "new utils/llm/gemini-llm",
			wantHookKeys: []string{"PreToolUse", "Stop", "SubagentStop", "Notification"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			source := hooksSource(t)
			claudeDir := t.TempDir()
			existing := filepath.Join(claudeDir, "hooks", "utils", "llm", "gemini-llm")
			require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0o755))
			require.NoError(t, os.WriteFile(existing, []byte("old"), 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(claudeDir, claude.SettingsFileName),
				[]byte(`{"model":"opus","hooks":{"PreToolUse":[]}}`), 0o644))

			h := &HooksInstaller{ClaudeDir: claudeDir, Binary: "agentos"}
			report, err := h.Run(context.Background(), Request{
				Name: HooksExtension, Mode: InstallGlobal, SourceDir: source, Overwrite: tt.overwrite,
			})
			require.NoError(t, err)

			data, err := os.ReadFile(existing)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(data))
			assert.Equal(t, tt.wantSkipped, report.Settings.Skipped)

			settings := readSettings(t, claudeDir)
			assert.Equal(t, "opus", settings["model"])
			hooks := settings["hooks"].(map[string]interface{})
			for _, k := range tt.wantHookKeys {
				assert.Contains(t, hooks, k)
			}
			assert.Len(t, hooks, len(tt.wantHookKeys))
			if tt.overwrite {
				assert.FileExists(t, filepath.Join(claudeDir, claude.SettingsFileName+claude.BackupSuffix))
			}
		})
	}
}

func TestHooksInstaller_Settings(t *testing.T) {
	t.Parallel()

	t.Run("update_settings false leaves settings alone", func(t *testing.T) {
		t.Parallel()
		claudeDir := t.TempDir()
		h := &HooksInstaller{ClaudeDir: claudeDir, Binary: "agentos"}
		report, err := h.Run(context.Background(), Request{
			Name: HooksExtension, Mode: InstallGlobal, SourceDir: hooksSource(t),
			Config: map[string]any{"update_settings": "false"},
		})
		require.NoError(t, err)
		assert.False(t, report.SettingsUpdated)
		assert.NoFileExists(t, filepath.Join(claudeDir, claude.SettingsFileName))
	})

	t.Run("fragment file in extension wins", func(t *testing.T) {
		t.Parallel()
		source := hooksSource(t)
		require.NoError(t, os.WriteFile(filepath.Join(source, "settings_hooks.yaml"),
			[]byte("hooks:\n  Stop:\n    - matcher: \"\"\n      hooks:\n        - type: command\n          command: custom-stop\n"), 0o644))
		claudeDir := t.TempDir()

		h := &HooksInstaller{ClaudeDir: claudeDir, Binary: "agentos"}
		_, err := h.Run(context.Background(), Request{Name: HooksExtension, Mode: InstallGlobal, SourceDir: source})
		require.NoError(t, err)

		hooks := readSettings(t, claudeDir)["hooks"].(map[string]interface{})
		assert.Len(t, hooks, 1)
		data, _ := json.Marshal(hooks["Stop"])
		assert.Contains(t, string(data), "custom-stop")
	})

	t.Run("malformed settings are reported not replaced", func(t *testing.T) {
		t.Parallel()
		claudeDir := t.TempDir()
		path := filepath.Join(claudeDir, claude.SettingsFileName)
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

		var out bytes.Buffer
		h := &HooksInstaller{ClaudeDir: claudeDir, Binary: "agentos", Out: &out}
		report, err := h.Run(context.Background(), Request{Name: HooksExtension, Mode: InstallGlobal, SourceDir: hooksSource(t)})
		require.NoError(t, err)
		assert.False(t, report.SettingsUpdated)
		assert.Contains(t, out.String(), "hooks are installed but not configured")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{broken", string(data))
	})
}

func TestHooksInstaller_ProjectMode(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	hooksDir := filepath.Join(project, "claude-code", "hooks", "utils", "tts")
	require.NoError(t, os.MkdirAll(hooksDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, "openai-tts"), []byte("tts"), 0o644))

	claudeDir := filepath.Join(project, ".claude")
	h := &HooksInstaller{Binary: "agentos"}
	report, err := h.Run(context.Background(), Request{
		Name:       HooksExtension,
		Mode:       InstallProject,
		SourceDir:  t.TempDir(),
		ProjectDir: project,
		Config:     map[string]any{"claude_dir": "${PROJECT_DIR}/.claude"},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(project, "claude-code", "hooks"), report.SourceDir)
	assert.Equal(t, []string{filepath.Join("utils", "tts", "openai-tts")}, report.Copied)
	assert.FileExists(t, filepath.Join(claudeDir, "hooks", "utils", "tts", "openai-tts"))

	cfg, err := os.ReadFile(filepath.Join(claudeDir, "hooks", HooksConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "source_project="+project)
}

func TestHooksInstaller_MissingSource(t *testing.T) {
	t.Parallel()

	claudeDir := t.TempDir()
	var out bytes.Buffer
	h := &HooksInstaller{ClaudeDir: claudeDir, Binary: "agentos", Out: &out}
	report, err := h.Run(context.Background(), Request{
		Name: HooksExtension, Mode: InstallGlobal, SourceDir: filepath.Join(t.TempDir(), "absent"),
	})
	require.NoError(t, err)

	assert.Empty(t, report.Copied)
	assert.Contains(t, out.String(), "Hooks source directory not found")
	assert.DirExists(t, filepath.Join(claudeDir, "hooks", "utils", "llm"))
	assert.FileExists(t, filepath.Join(claudeDir, claude.SettingsFileName))
}
