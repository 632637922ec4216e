// Package extensions provides the extensions command group: listing the
// extensions shipped in an Agent OS base directory and installing them.
package extensions

import (
	"os"
	"path/filepath"

	"github.com/agent-os/agentos/internal/cli/shared"
	"github.com/agent-os/agentos/internal/config"
	apperrors "github.com/agent-os/agentos/internal/errors"
	"github.com/agent-os/agentos/internal/extension"
	"github.com/spf13/cobra"
)

// NewExtensionsCmd returns the extensions parent command.
func NewExtensionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "extensions",
		Aliases: []string{"ext"},
		Short:   "List and install Agent OS extensions",
		Long: `Extensions live in <base dir>/extensions/<name>, each with an install.sh or
install.py and an optional extension.yaml describing its type, config schema
and dependencies. Whether an extension is installed is controlled by
extensions.<name>.enabled in the layered configuration.`,
		GroupID: shared.GroupExtensions,
	}
	cmd.PersistentFlags().String("base-dir", "", "Directory containing extensions/ (default: $AGENT_OS_HOME)")
	cmd.PersistentFlags().String("mode", string(extension.ModeBase), "Installation mode: base or project")

	cmd.AddCommand(newListCmd(), newInstallCmd())
	return cmd
}

// target holds the resolved flags shared by list and install.
type target struct {
	mode    extension.Mode
	baseDir string
	// globalDir is where base-mode installs land; project mode checks it
	// for extensions that are already installed globally.
	globalDir string
}

func resolveTarget(cmd *cobra.Command) (*target, error) {
	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := extension.ParseMode(modeFlag)
	if err != nil {
		return nil, apperrors.NewArgumentErrorWithUsage(err.Error(),
			"agentos extensions install --mode <base|project>")
	}

	t := &target{mode: mode, globalDir: config.Home()}
	t.baseDir, _ = cmd.Flags().GetString("base-dir")
	if t.baseDir == "" {
		t.baseDir = t.globalDir
	}
	if abs, err := filepath.Abs(t.baseDir); err == nil {
		t.baseDir = abs
	}

	if info, err := os.Stat(t.baseDir); err != nil || !info.IsDir() {
		return nil, apperrors.DirectoryNotFound(t.baseDir)
	}
	extDir := filepath.Join(t.baseDir, extension.ExtensionsDirName)
	if info, err := os.Stat(extDir); err != nil || !info.IsDir() {
		return nil, apperrors.ExtensionsDirNotFound(extDir)
	}
	return t, nil
}

// installDir returns the directory extensions are installed into: the
// global Agent OS home in base mode, <project>/.agent-os in project mode.
func (t *target) installDir(rt *shared.Runtime, override string) string {
	if override != "" {
		return override
	}
	if t.mode == extension.ModeProject {
		return filepath.Join(rt.Project.Root, config.ProjectDirName)
	}
	return t.globalDir
}
