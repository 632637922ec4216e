package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agent-os/agentos/internal/cli/shared"
	cfgpkg "github.com/agent-os/agentos/internal/config"
	apperrors "github.com/agent-os/agentos/internal/errors"
	"github.com/agent-os/agentos/internal/project"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the base or project config file.

By default, sets the value in the base config. Use --project to set it in
<project>/.agent-os/config.yml. true and false are written as booleans and
whole numbers as integers; everything else is written as a string.

Extension requirements (extensions.<name>.required) are only honored in the
base config.`,
		Example: `  agentos config set engineer_name Alex
  agentos config set hooks.speech_timeout 45s
  agentos config set extensions.hooks.enabled true --project`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}
	cmd.Flags().Bool("project", false, "Set in project-level config")
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long:  `Show the effective value of a key and the layer it came from.`,
		Example: `  agentos config get extensions.hooks.enabled
  agentos config get CLAUDE_DIR`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := shared.LoadRuntime(cmd)
			if err != nil {
				return err
			}
			key := args[0]
			v, ok := rt.Config.Get(key)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not set\n", key)
				return nil
			}
			layer, _ := rt.Config.Layer(key)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v (from %s)\n", key, v, layer)
			return nil
		},
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	filePath, scope, err := resolveConfigPath(cmd)
	if err != nil {
		return err
	}
	if err := cfgpkg.SetValue(filePath, key, value); err != nil {
		if errors.Is(err, cfgpkg.ErrEmptyKeyPath) {
			return apperrors.NewArgumentError("configuration key must not be empty")
		}
		if errors.Is(err, fs.ErrPermission) {
			return apperrors.FileNotWritable(filePath)
		}
		return fmt.Errorf("setting config value: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s config (%s)\n", key, value, scope, filePath)
	return nil
}

func resolveConfigPath(cmd *cobra.Command) (filePath, scope string, err error) {
	useProject, _ := cmd.Flags().GetBool("project")
	if !useProject {
		return basePath(cmd), "base", nil
	}

	dir, _ := cmd.Flags().GetString("project-dir")
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return "", "", fmt.Errorf("getting working directory: %w", err)
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return cfgpkg.ProjectConfigPath(project.Root(dir)), "project", nil
}
