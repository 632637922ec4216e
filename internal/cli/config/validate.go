package config

import (
	"fmt"
	"io"
	"os"

	"github.com/agent-os/agentos/internal/cli/shared"
	cfgpkg "github.com/agent-os/agentos/internal/config"
	apperrors "github.com/agent-os/agentos/internal/errors"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		Aliases: []string{"check"},
		Short:   "Validate config files and extension requirements",
		Long: `Check that the base and project config files parse, that the runtime
settings are valid, and that every extension required by the base config is
enabled.

Each check displays a checkmark if it passed or an X with the problem.`,
		Example: `  agentos config validate
  agentos config validate && agentos extensions install`,
		Args: cobra.NoArgs,
		RunE: runConfigValidate,
	}
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	colors := shared.NewColors()

	base := basePath(cmd)
	if err := checkFile(out, colors, base); err != nil {
		return apperrors.ConfigParseError(base, err)
	}

	rt, err := shared.LoadRuntime(cmd)
	if err != nil {
		fmt.Fprintf(out, "%s Configuration: %v\n", colors.Red("✗"), err)
		return apperrors.Wrap(err, apperrors.Configuration, "Fix the reported setting and re-run 'agentos config validate'")
	}
	projectPath := cfgpkg.ProjectConfigPath(rt.Project.Root)
	if err := checkFile(out, colors, projectPath); err != nil {
		return apperrors.ConfigParseError(projectPath, err)
	}
	fmt.Fprintf(out, "%s Settings: valid (claude dir %s)\n", colors.Green("✓"), rt.Settings.ClaudeDir)

	if problems := rt.Config.Requirements(); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(out, "%s %s\n", colors.Red("✗"), p)
		}
		return apperrors.RequiredExtensionsDisabled(problems)
	}
	fmt.Fprintf(out, "%s Extension requirements satisfied\n", colors.Green("✓"))
	return nil
}

// checkFile prints the status of one config file. A missing file is fine.
func checkFile(w io.Writer, colors *shared.Colors, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "%s %s: not present\n", colors.Dim("-"), path)
		return nil
	}
	if err := cfgpkg.ValidateYAMLSyntax(path); err != nil {
		fmt.Fprintf(w, "%s %s: %v\n", colors.Red("✗"), path, err)
		return err
	}
	fmt.Fprintf(w, "%s %s\n", colors.Green("✓"), path)
	return nil
}
