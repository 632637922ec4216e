// agentos - Lifecycle Hooks and Extension Tooling for Claude Code
// Source: https://github.com/agent-os/agentos

// Package cli provides the Cobra-based command tree for agentos. It wires
// the Claude Code lifecycle hooks (hook stop, subagent-stop, notification),
// the provider diagnostics (resolve, speak, complete), extension
// installation and configuration management into a single binary.
package cli

import (
	"fmt"

	"github.com/agent-os/agentos/internal/cli/config"
	"github.com/agent-os/agentos/internal/cli/extensions"
	"github.com/agent-os/agentos/internal/cli/hooks"
	"github.com/agent-os/agentos/internal/cli/providers"
	"github.com/agent-os/agentos/internal/cli/shared"
	apperrors "github.com/agent-os/agentos/internal/errors"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupHooks         = shared.GroupHooks
	GroupProviders     = shared.GroupProviders
	GroupExtensions    = shared.GroupExtensions
	GroupConfiguration = shared.GroupConfiguration
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agentos",
		Short: "Lifecycle hooks and extensions for Claude Code",
		Long: `agentos - Lifecycle Hooks and Extensions for Claude Code

Runs as Claude Code's Stop, SubagentStop and Notification hooks: records each
event, asks the best available text-completion provider for a short message
and speaks it through the best available speech provider. Providers are
separate executables under <claude dir>/hooks/utils/{llm,tts}, selected by
credential and presence. Hooks never fail the session they observe.

Source: https://github.com/agent-os/agentos`,
		Example: `  # Install the enabled extensions (including the hooks)
  agentos extensions install

  # See which speech provider would be used, and why others were skipped
  agentos resolve tts --verbose

  # Say something through it
  agentos speak "Deployment finished"

  # What Claude Code runs when a session stops
  echo '{"session_id":"abc"}' | agentos hook stop --announce`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddGroup(&cobra.Group{ID: GroupHooks, Title: "Hooks:"})
	cmd.AddGroup(&cobra.Group{ID: GroupProviders, Title: "Providers:"})
	cmd.AddGroup(&cobra.Group{ID: GroupExtensions, Title: "Extensions:"})
	cmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	// Assign built-in help and completion to configuration group
	cmd.SetHelpCommandGroupID(GroupConfiguration)
	cmd.SetCompletionCommandGroupID(GroupConfiguration)

	shared.AddConfigFlags(cmd)

	// Register commands from subpackages
	hooks.Register(cmd)
	providers.Register(cmd)
	extensions.Register(cmd)
	config.Register(cmd)
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command and prints any error to stderr. The
// returned error maps to a process exit code through ExitCode.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	out := rootCmd.ErrOrStderr()
	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		apperrors.FprintError(out, cliErr)
	} else if !shared.IsBareExit(err) {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return err
}
