// Package config provides CLI commands for Agent OS configuration management.
// Includes: config show, get, set, validate
package config

import (
	"github.com/agent-os/agentos/internal/cli/shared"
	"github.com/spf13/cobra"
)

// Register adds all configuration commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(NewConfigCmd())
}

// NewConfigCmd returns the config command with its subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit Agent OS configuration",
		Long: `Inspect and edit Agent OS configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (AGENT_OS_*)
  2. Project config (<project>/.agent-os/config.yml)
  3. Base config ($AGENT_OS_CONFIG_FILE or ~/.agent-os/config.yml)
  4. Built-in defaults

Nested keys are flattened, so extensions.hooks.enabled in YAML and
AGENT_OS_EXTENSIONS_HOOKS_ENABLED in the environment are the same key.`,
		Example: `  # Show the effective configuration
  agentos config show

  # Check config files and extension requirements
  agentos config validate

  # Enable the hooks extension for this project
  agentos config set extensions.hooks.enabled true --project`,
		GroupID: shared.GroupConfiguration,
	}
	cmd.AddCommand(newShowCmd(), newGetCmd(), newSetCmd(), newValidateCmd())
	return cmd
}
