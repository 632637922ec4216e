package extension

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agent-os/agentos/internal/claude"
	"github.com/agent-os/agentos/internal/config"
	"github.com/agent-os/agentos/internal/provider"
	"github.com/rs/zerolog"
)

const (
	// HooksExtension is installed natively rather than through its script.
	HooksExtension = "hooks"
	// HooksConfigFileName records how the hooks were installed.
	HooksConfigFileName = ".hooks-config"
	// InstructionsDir holds instruction files copied alongside the hooks.
	InstructionsDir = "instructions"
)

// fragmentNames are the settings fragments looked up in the extension
// directory, in order.
var fragmentNames = []string{"settings_hooks.json", "settings_hooks.yaml", "settings_hooks.yml"}

// HooksInstaller lays out <claude dir>/hooks with the provider artifacts and
// registers the agentos hook commands in Claude Code's settings.json.
type HooksInstaller struct {
	// ClaudeDir is used unless the extension's claude_dir setting overrides it.
	ClaudeDir string
	// Binary is the agentos executable written into the hook commands.
	Binary string
	Out    io.Writer
	Logger zerolog.Logger
	now    func() time.Time
}

// HooksReport summarizes one hooks installation.
type HooksReport struct {
	HooksDir  string
	SourceDir string
	// Copied lists the files written, relative to HooksDir.
	Copied []string
	// Kept lists existing files left alone because overwrite was off.
	Kept     []string
	Settings claude.UpdateResult
	// SettingsUpdated is false when update_settings is off or merging failed.
	SettingsUpdated bool
}

// Install implements Installer.
func (h *HooksInstaller) Install(ctx context.Context, req Request) error {
	_, err := h.Run(ctx, req)
	return err
}

// Run performs the installation and reports what it did.
func (h *HooksInstaller) Run(_ context.Context, req Request) (*HooksReport, error) {
	vars := Variables{
		AgentOSHome: config.Home(),
		ProjectDir:  req.ProjectDir,
		Extension:   req.Name,
		InstallDir:  req.InstallDir,
	}

	claudeDir := h.ClaudeDir
	if s, ok := req.Config["claude_dir"].(string); ok && s != "" {
		claudeDir = vars.Expand(s)
	}
	if claudeDir == "" {
		return nil, errors.New("no Claude directory configured for hooks")
	}

	report := &HooksReport{
		HooksDir:  filepath.Join(claudeDir, "hooks"),
		SourceDir: h.sourceDir(req, vars),
	}

	for _, dir := range []string{
		filepath.Join(report.HooksDir, "utils", provider.TextCompletion.Dir()),
		filepath.Join(report.HooksDir, "utils", provider.SpeechSynthesis.Dir()),
		filepath.Join(report.HooksDir, InstructionsDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	if info, err := os.Stat(report.SourceDir); err != nil || !info.IsDir() {
		h.printf("  Hooks source directory not found at %s, no artifacts installed\n", report.SourceDir)
	} else if err := h.copyArtifacts(report, req.Overwrite); err != nil {
		return nil, err
	}

	if err := h.writeHooksConfig(report, req); err != nil {
		return nil, err
	}

	if !boolSetting(req.Config, "update_settings", true) {
		h.printf("  Settings update skipped\n")
		return report, nil
	}

	fragment, err := h.fragment(req.SourceDir)
	if err != nil {
		return nil, err
	}
	result, err := claude.UpdateHooks(claudeDir, fragment, req.Overwrite)
	if err != nil {
		// The hook files are in place; only the registration failed.
		h.printf("  Settings update failed, hooks are installed but not configured: %v\n", err)
		h.Logger.Warn().Err(err).Str("claude_dir", claudeDir).Msg("settings update failed")
		return report, nil
	}
	report.Settings = result
	report.SettingsUpdated = !result.Skipped
	switch {
	case result.Skipped:
		h.printf("  Hooks already configured in %s, use --overwrite to update\n", filepath.Join(claudeDir, claude.SettingsFileName))
	case result.Created:
		h.printf("  Created %s with hooks configuration\n", filepath.Join(claudeDir, claude.SettingsFileName))
	default:
		h.printf("  Merged hooks configuration (backup at %s)\n", result.BackupPath)
	}
	return report, nil
}

func (h *HooksInstaller) sourceDir(req Request, vars Variables) string {
	if s, ok := req.Config["source_dir"].(string); ok && s != "" {
		return vars.Expand(s)
	}
	if req.Mode == InstallProject && req.ProjectDir != "" {
		return filepath.Join(req.ProjectDir, "claude-code", "hooks")
	}
	return req.SourceDir
}

// copyArtifacts copies provider artifacts and the instructions directory
// from the source tree.
func (h *HooksInstaller) copyArtifacts(report *HooksReport, overwrite bool) error {
	for _, kind := range []provider.Kind{provider.TextCompletion, provider.SpeechSynthesis} {
		for _, name := range provider.Artifacts(kind) {
			rel := filepath.Join("utils", kind.Dir(), name)
			src := filepath.Join(report.SourceDir, rel)
			if !fileExists(src) {
				continue
			}
			copied, err := copyExecutable(src, filepath.Join(report.HooksDir, rel), overwrite)
			if err != nil {
				return err
			}
			h.record(report, rel, copied)
		}
	}

	src := filepath.Join(report.SourceDir, InstructionsDir)
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return nil
	}
	dst := filepath.Join(report.HooksDir, InstructionsDir)
	if !overwrite && !dirEmpty(dst) {
		h.record(report, InstructionsDir+"/", false)
		return nil
	}
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("removing %s: %w", dst, err)
	}
	if err := CopyTree(src, dst); err != nil {
		return err
	}
	h.record(report, InstructionsDir+"/", true)
	return nil
}

func (h *HooksInstaller) record(report *HooksReport, rel string, copied bool) {
	if copied {
		report.Copied = append(report.Copied, rel)
		h.printf("    ✓ %s\n", rel)
		return
	}
	report.Kept = append(report.Kept, rel)
	h.printf("    %s already exists, skipping\n", rel)
}

func (h *HooksInstaller) writeHooksConfig(report *HooksReport, req Request) error {
	now := time.Now
	if h.now != nil {
		now = h.now
	}

	var b strings.Builder
	b.WriteString("# Hooks Extension Configuration\n")
	fmt.Fprintf(&b, "installation_date=%s\n", now().Format(time.RFC3339))
	fmt.Fprintf(&b, "installation_mode=%s\n", req.Mode)
	fmt.Fprintf(&b, "source_directory=%s\n", report.SourceDir)
	fmt.Fprintf(&b, "hook_count=%d\n", len(report.Copied))
	fmt.Fprintf(&b, "auto_update=%t\n", boolSetting(req.Config, "auto_update", false))
	fmt.Fprintf(&b, "update_settings=%t\n", boolSetting(req.Config, "update_settings", true))
	if req.Mode == InstallProject {
		fmt.Fprintf(&b, "source_project=%s\n", req.ProjectDir)
	}

	path := filepath.Join(report.HooksDir, HooksConfigFileName)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// fragment loads the extension's settings fragment, or builds the default
// one pointing at h.Binary.
func (h *HooksInstaller) fragment(sourceDir string) (map[string]interface{}, error) {
	for _, name := range fragmentNames {
		path := filepath.Join(sourceDir, name)
		if fileExists(path) {
			return claude.LoadFragment(path)
		}
	}
	binary := h.Binary
	if binary == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locating agentos executable: %w", err)
		}
		binary = exe
	}
	return claude.DefaultHooksFragment(binary), nil
}

func (h *HooksInstaller) printf(format string, args ...any) {
	if h.Out != nil {
		fmt.Fprintf(h.Out, format, args...)
	}
}

func boolSetting(cfg map[string]any, key string, def bool) bool {
	switch v := cfg[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return def
}
