package extension

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	apperrors "github.com/agent-os/agentos/internal/errors"
	"github.com/agent-os/agentos/internal/progress"
	"github.com/rs/zerolog"
)

// ExtensionsDirName is the directory holding extensions, both in a base
// checkout and in an install directory.
const ExtensionsDirName = "extensions"

// Mode selects which extensions apply.
type Mode string

const (
	// ModeBase installs global and both-type extensions.
	ModeBase Mode = "base"
	// ModeProject installs project-type extensions, and both-type extensions
	// that are not already installed globally.
	ModeProject Mode = "project"
)

// ParseMode converts a --mode flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBase, ModeProject:
		return Mode(s), nil
	case "global":
		return ModeBase, nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be base or project", s)
	}
}

// InstallMode maps the manager mode to the mode installers receive.
func (m Mode) InstallMode() InstallMode {
	if m == ModeProject {
		return InstallProject
	}
	return InstallGlobal
}

// Discover lists extension names under <baseDir>/extensions that carry an
// install.sh or install.py, sorted. A missing extensions directory yields nil.
func Discover(baseDir string) ([]string, error) {
	dir := filepath.Join(baseDir, ExtensionsDirName)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		extDir := filepath.Join(dir, e.Name())
		if fileExists(filepath.Join(extDir, "install.sh")) || fileExists(filepath.Join(extDir, "install.py")) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Options configures a Manager.
type Options struct {
	Mode      Mode
	Overwrite bool
	Debug     bool
	// ProjectDir is passed to project-mode installers.
	ProjectDir string
	// GlobalDir is the base install directory checked before installing a
	// both-type extension in project mode.
	GlobalDir string
	// Default runs extensions without a dedicated installer.
	Default Installer
	// Installers maps extension names to dedicated installers.
	Installers map[string]Installer
	Display    *progress.ProgressDisplay
	Out        io.Writer
	Logger     zerolog.Logger
}

// Manager installs discovered extensions according to configuration.
type Manager struct {
	cfg  ConfigView
	opts Options
}

// NewManager creates a Manager reading enabled/required state from cfg.
func NewManager(cfg ConfigView, opts Options) *Manager {
	if opts.Mode == "" {
		opts.Mode = ModeBase
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Display == nil {
		opts.Display = progress.NewProgressDisplay(progress.TerminalCapabilities{}, opts.Out)
	}
	return &Manager{cfg: cfg, opts: opts}
}

// Applicable reports whether the extension in dir should be installed in the
// manager's mode, and why not when it should not.
func (m *Manager) Applicable(name string, md *Metadata) (bool, string) {
	switch m.opts.Mode {
	case ModeProject:
		switch md.Type {
		case TypeProject:
			return true, ""
		case TypeBoth, "":
			if m.installedGlobally(name) {
				return false, "already installed globally"
			}
			return true, ""
		}
	default:
		if md.Type == TypeGlobal || md.Type == TypeBoth || md.Type == "" {
			return true, ""
		}
	}
	return false, fmt.Sprintf("not applicable for %s mode", m.opts.Mode)
}

func (m *Manager) installedGlobally(name string) bool {
	if m.opts.GlobalDir == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(m.opts.GlobalDir, ExtensionsDirName, name))
	return err == nil && info.IsDir()
}

// Process discovers the extensions in baseDir and installs the applicable,
// enabled ones into <installDir>/extensions. It stops with an error as soon
// as a required extension is disabled or fails; other failures are recorded
// in the summary.
func (m *Manager) Process(ctx context.Context, baseDir, installDir string) (*Summary, error) {
	summary := &Summary{Mode: m.opts.Mode, InstallDir: installDir}

	names, err := Discover(baseDir)
	if err != nil {
		return summary, err
	}
	if len(names) == 0 {
		fmt.Fprintln(m.opts.Out, "No extensions found to process")
		return summary, nil
	}

	fmt.Fprintf(m.opts.Out, "Processing %d extension(s)...\n", len(names))

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		step := progress.StepInfo{Name: name, Action: "Installing", Number: i + 1, Total: len(names)}
		source := filepath.Join(baseDir, ExtensionsDirName, name)

		md, err := LoadMetadata(source)
		if err != nil {
			// Unreadable metadata does not block installation.
			m.opts.Logger.Warn().Err(err).Str("extension", name).Msg("could not read extension metadata")
			md = DefaultMetadata(name)
		}

		if ok, reason := m.Applicable(name, md); !ok {
			m.opts.Display.SkipStep(step, reason)
			summary.Skipped = append(summary.Skipped, name)
			continue
		}

		required := m.cfg.ExtensionRequired(name)
		if !m.cfg.ExtensionEnabled(name) {
			m.opts.Display.SkipStep(step, "disabled in configuration")
			summary.Skipped = append(summary.Skipped, name)
			if required {
				return summary, apperrors.RequiredExtensionsDisabled([]string{
					fmt.Sprintf("Extension '%s' is required but disabled", name),
				})
			}
			continue
		}

		if err := m.opts.Display.StartStep(step); err != nil {
			return summary, err
		}
		dest := filepath.Join(installDir, ExtensionsDirName, name)
		if err := m.install(ctx, name, md, source, dest); err != nil {
			m.opts.Display.FailStep(step, err)
			m.opts.Logger.Error().Err(err).Str("extension", name).Msg("extension install failed")
			summary.Failed = append(summary.Failed, name)
			if required {
				return summary, apperrors.ExtensionInstallFailed(name, err)
			}
			continue
		}
		m.opts.Display.CompleteStep(step)
		summary.Installed = append(summary.Installed, name)
	}

	return summary, nil
}

// install copies the extension tree, checks its configuration and runs its
// installer.
func (m *Manager) install(ctx context.Context, name string, md *Metadata, source, dest string) error {
	if err := refreshCopy(source, dest); err != nil {
		return fmt.Errorf("copying %s: %w", name, err)
	}

	mode := m.opts.Mode.InstallMode()
	if !md.Supports(mode) {
		return fmt.Errorf("extension '%s' does not support %s installation (type %s)", name, mode, md.Type)
	}

	optional, err := CheckDependencies(md, m.cfg)
	if err != nil {
		return err
	}
	for _, dep := range optional {
		m.opts.Logger.Debug().Str("extension", name).Str("dependency", dep).Msg("optional dependency not enabled")
	}

	settings, err := ValidateConfig(md, m.cfg)
	if err != nil {
		return err
	}

	vars := Variables{
		ProjectDir: m.opts.ProjectDir,
		Extension:  name,
		InstallDir: dest,
	}
	if m.opts.GlobalDir != "" {
		vars.AgentOSHome = m.opts.GlobalDir
	}
	req := Request{
		Name:       name,
		Mode:       mode,
		SourceDir:  source,
		ProjectDir: m.opts.ProjectDir,
		Config:     settings,
		Overwrite:  m.opts.Overwrite,
		Debug:      m.opts.Debug,
	}
	if dir, ok := settings["install_dir"].(string); ok && dir != "" {
		req.InstallDir = vars.Expand(dir)
	}

	installer := m.opts.Default
	if dedicated, ok := m.opts.Installers[name]; ok {
		installer = dedicated
	}
	if installer == nil {
		return fmt.Errorf("no installer configured for %s", name)
	}
	return installer.Install(ctx, req)
}

// refreshCopy replaces dest with a copy of source. Installing from the
// directory being installed into leaves the tree in place.
func refreshCopy(source, dest string) error {
	if sameDir(source, dest) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("removing previous copy: %w", err)
	}
	return CopyTree(source, dest)
}

func sameDir(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	return err == nil && os.SameFile(ai, bi)
}
