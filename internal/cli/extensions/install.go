package extensions

import (
	"fmt"
	"os"
	"time"

	"github.com/agent-os/agentos/internal/cli/shared"
	apperrors "github.com/agent-os/agentos/internal/errors"
	"github.com/agent-os/agentos/internal/extension"
	"github.com/agent-os/agentos/internal/invoke"
	"github.com/agent-os/agentos/internal/progress"
	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	var (
		installDir string
		overwrite  bool
	)
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install enabled extensions",
		Long: `Install every enabled extension applicable to the selected mode.

Base mode installs global and both-type extensions into $AGENT_OS_HOME.
Project mode installs project and both-type extensions into
<project>/.agent-os, skipping both-type extensions already installed
globally. The hooks extension is installed natively into <claude dir>/hooks
and registered in settings.json; other extensions run their install.py
(through uv) or install.sh (through bash).

A required extension that is disabled or fails to install stops the run.`,
		Example: `  agentos extensions install
  agentos extensions install --mode project --overwrite
  AGENT_OS_EXTENSIONS_PEER_ENABLED=true agentos extensions install`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := shared.LoadRuntime(cmd)
			if err != nil {
				return err
			}
			t, err := resolveTarget(cmd)
			if err != nil {
				return err
			}
			if problems := rt.Config.Requirements(); len(problems) > 0 {
				return apperrors.RequiredExtensionsDisabled(problems)
			}

			out := cmd.OutOrStdout()
			logger := rt.Logger()
			binary, err := os.Executable()
			if err != nil {
				binary = "agentos"
			}

			dest := t.installDir(rt, installDir)
			m := extension.NewManager(rt.Config, extension.Options{
				Mode:       t.mode,
				Overwrite:  overwrite,
				Debug:      rt.Debug,
				ProjectDir: rt.Project.Root,
				GlobalDir:  t.globalDir,
				Default: &extension.ScriptInstaller{
					Invoker: invoke.New(logger, nil),
					Timeout: rt.Settings.InstallTimeout,
					Out:     out,
				},
				Installers: map[string]extension.Installer{
					extension.HooksExtension: &extension.HooksInstaller{
						ClaudeDir: rt.Settings.ClaudeDir,
						Binary:    binary,
						Out:       out,
						Logger:    logger,
					},
				},
				Display: progress.NewProgressDisplay(progress.DetectTerminalCapabilities(), out),
				Out:     out,
				Logger:  logger,
			})

			shared.PrintBanner(out)
			fmt.Fprintf(out, "Installing extensions from %s into %s (%s mode)\n", t.baseDir, dest, t.mode)
			summary, procErr := m.Process(cmd.Context(), t.baseDir, dest)
			summary.Print(out)
			if summary.Total() > 0 {
				if path, err := summary.WriteLog(time.Now()); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not write installation log: %v\n", err)
				} else {
					fmt.Fprintf(out, "Installation log: %s\n", path)
				}
			}
			return procErr
		},
	}
	cmd.Flags().StringVar(&installDir, "install-dir", "", "Install into this directory instead of the mode's default")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "Overwrite existing hook files and settings")
	return cmd
}
