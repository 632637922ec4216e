package extension

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agent-os/agentos/internal/invoke"
)

// InstallMode is the mode passed to an extension installer.
type InstallMode string

const (
	InstallGlobal  InstallMode = "global"
	InstallProject InstallMode = "project"
)

// Request carries everything an installer needs for one extension.
type Request struct {
	Name string
	Mode InstallMode
	// SourceDir is the extension directory inside the base checkout.
	SourceDir string
	// InstallDir is the expanded install_dir setting, if any.
	InstallDir string
	ProjectDir string
	// Config holds the schema-validated settings, defaults applied.
	Config    map[string]any
	Overwrite bool
	Debug     bool
}

// Installer performs the extension-specific part of an installation.
type Installer interface {
	Install(ctx context.Context, req Request) error
}

// InstallerFunc adapts a function to Installer.
type InstallerFunc func(ctx context.Context, req Request) error

// Install calls f.
func (f InstallerFunc) Install(ctx context.Context, req Request) error {
	return f(ctx, req)
}

// ScriptInstaller runs an extension's install.py (through uv) or install.sh
// (through bash) as a bounded child process.
type ScriptInstaller struct {
	Invoker *invoke.Invoker
	Timeout time.Duration
	// Out receives the installer's standard output.
	Out io.Writer
	// Python and Shell override the interpreters, mainly for tests.
	Python []string
	Shell  []string
}

// Install runs the extension's script with the standard arguments.
func (s *ScriptInstaller) Install(ctx context.Context, req Request) error {
	path, args, err := s.Command(req)
	if err != nil {
		return err
	}

	out := s.Invoker.Invoke(ctx, path, args, s.Timeout)
	if s.Out != nil && out.Text != "" {
		fmt.Fprintln(s.Out, out.Text)
	}

	switch out.Kind {
	case invoke.Success, invoke.EmptyOutput:
		return nil
	case invoke.NonZeroExit:
		return fmt.Errorf("%s installer exited with code %d%s", req.Name, out.ExitCode, stderrSuffix(out.Stderr))
	case invoke.Timeout:
		return fmt.Errorf("%s installer timed out after %s", req.Name, s.Timeout)
	default:
		return fmt.Errorf("running %s installer: %w", req.Name, out.Err)
	}
}

// Command builds the interpreter path and arguments for req. install.py is
// preferred when both scripts exist.
func (s *ScriptInstaller) Command(req Request) (string, []string, error) {
	var cmd []string
	if script := filepath.Join(req.SourceDir, "install.py"); fileExists(script) {
		cmd = append(orDefault(s.Python, []string{"uv", "run"}), script)
	} else if script := filepath.Join(req.SourceDir, "install.sh"); fileExists(script) {
		cmd = append(orDefault(s.Shell, []string{"bash"}), script)
	} else {
		return "", nil, fmt.Errorf("no install.sh or install.py found for %s", req.Name)
	}

	cmd = append(cmd,
		"--mode="+string(req.Mode),
		"--source-dir="+req.SourceDir,
		"--extension-name="+req.Name,
	)
	if req.InstallDir != "" {
		cmd = append(cmd, "--install-dir="+req.InstallDir)
	}
	if req.Mode == InstallProject && req.ProjectDir != "" {
		cmd = append(cmd, "--project-dir="+req.ProjectDir)
	}
	cmd = append(cmd, configArgs(req.Config)...)
	if req.Debug {
		cmd = append(cmd, "--debug")
	}
	if req.Overwrite {
		cmd = append(cmd, "--overwrite")
	}

	path, err := lookPath(cmd[0])
	if err != nil {
		return "", nil, err
	}
	return path, cmd[1:], nil
}

// configArgs renders settings as sorted --config-<key>=<value> flags.
func configArgs(cfg map[string]any) []string {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		if k == "install_dir" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, fmt.Sprintf("--config-%s=%s", k, formatValue(cfg[k])))
	}
	return args
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "true"
		}
		return "false"
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(t)
	}
}

func orDefault(v, def []string) []string {
	if len(v) > 0 {
		return append([]string(nil), v...)
	}
	return def
}

func stderrSuffix(stderr string) string {
	s := strings.TrimSpace(stderr)
	if s == "" {
		return ""
	}
	if len(s) > 256 {
		s = s[len(s)-256:]
	}
	return ": " + s
}

// lookPath resolves an interpreter name against PATH.
var lookPath = func(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("installer interpreter %q not found: %w", name, err)
	}
	return path, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
