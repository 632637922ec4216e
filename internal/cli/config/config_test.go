// Package config tests CLI configuration commands.
// Related: internal/cli/config/show.go, internal/cli/config/config_set.go, internal/cli/config/validate.go
// Tags: config, cli, show, set, validate

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/agent-os/agentos/internal/cli/shared"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config at a temp dir and returns the base and project
// config paths.
func isolate(t *testing.T) (base, project string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	base = filepath.Join(dir, "home", "config.yml")
	project = filepath.Join(dir, ".agent-os", "config.yml")
	t.Setenv("AGENT_OS_HOME", filepath.Join(dir, "home"))
	t.Setenv("AGENT_OS_CONFIG_FILE", base)
	t.Setenv("CCAOS_ENV_FILE", filepath.Join(dir, "missing.env"))
	return base, project
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "agentos", SilenceUsage: true, SilenceErrors: true}
	root.AddGroup(&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"})
	shared.AddConfigFlags(root)
	Register(root)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestConfigShow(t *testing.T) {
	tests := map[string]struct {
		args []string
		want []string
	}{
		"yaml by default": {
			args: []string{"config", "show"},
			want: []string{"# Configuration Sources", "# Loaded:", "ENGINEER_NAME: Alex", "EXTENSIONS_HOOKS_ENABLED: true"},
		},
		"json": {
			args: []string{"config", "show", "--json"},
			want: []string{"# Configuration Sources", `"ENGINEER_NAME": "Alex"`},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			base, _ := isolate(t)
			write(t, base, "engineer_name: Alex\nextensions:\n  hooks:\n    enabled: true\n")

			out, err := run(t, tt.args...)
			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestConfigSetGet(t *testing.T) {
	base, project := isolate(t)

	out, err := run(t, "config", "set", "engineer_name", "Alex")
	require.NoError(t, err)
	assert.Contains(t, out, "in base config")
	assert.FileExists(t, base)

	out, err = run(t, "config", "set", "extensions.hooks.enabled", "true", "--project")
	require.NoError(t, err)
	assert.Contains(t, out, "in project config")
	assert.FileExists(t, project)

	out, err = run(t, "config", "get", "engineer_name")
	require.NoError(t, err)
	assert.Equal(t, "engineer_name: Alex (from base)\n", out)

	out, err = run(t, "config", "get", "extensions.hooks.enabled")
	require.NoError(t, err)
	assert.Equal(t, "extensions.hooks.enabled: true (from project)\n", out)

	t.Setenv("AGENT_OS_ENGINEER_NAME", "Env")
	out, err = run(t, "config", "get", "ENGINEER_NAME")
	require.NoError(t, err)
	assert.Equal(t, "ENGINEER_NAME: Env (from env)\n", out)

	out, err = run(t, "config", "get", "extensions.peer.enabled")
	require.NoError(t, err)
	assert.Contains(t, out, "not set")
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]struct {
		base     string
		project  string
		wantErr  bool
		wantCode int
		want     []string
	}{
		"valid": {
			base: "extensions:\n  hooks:\n    enabled: true\n    required: true\n",
			want: []string{"✓", "Extension requirements satisfied"},
		},
		"no files at all": {
			want: []string{"not present", "Extension requirements satisfied"},
		},
		"required but disabled": {
			base:     "extensions:\n  hooks:\n    required: true\n",
			wantErr:  true,
			wantCode: shared.ExitFailure,
			want:     []string{"Extension 'hooks' is required but disabled"},
		},
		"project cannot disable a required extension": {
			base:     "extensions:\n  sandbox:\n    enabled: true\n    required: true\n",
			project:  "extensions:\n  sandbox:\n    enabled: false\n",
			wantErr:  true,
			wantCode: shared.ExitFailure,
			want:     []string{"Extension 'sandbox' is required but disabled"},
		},
		"broken base yaml": {
			base:     "extensions: [hooks\n",
			wantErr:  true,
			wantCode: shared.ExitFailure,
			want:     []string{"✗"},
		},
		"invalid setting": {
			base:     "hooks:\n  speech_timeout: 0s\n",
			wantErr:  true,
			wantCode: shared.ExitFailure,
			want:     []string{"Configuration:"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			base, project := isolate(t)
			if tt.base != "" {
				write(t, base, tt.base)
			}
			if tt.project != "" {
				write(t, project, tt.project)
			}

			out, err := run(t, "config", "validate")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, shared.ExitCode(err))
			} else {
				require.NoError(t, err, out)
			}
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestConfigShow_ExplicitMissingFile(t *testing.T) {
	isolate(t)

	_, err := run(t, "config", "show", "--config", filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
	assert.Equal(t, shared.ExitFailure, shared.ExitCode(err))
}
