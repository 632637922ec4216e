package providers

import (
	"github.com/agent-os/agentos/internal/cli/shared"
	"github.com/spf13/cobra"
)

// Register adds the provider commands to the root command.
func Register(rootCmd *cobra.Command) {
	for _, cmd := range []*cobra.Command{newResolveCmd(), newSpeakCmd(), newCompleteCmd()} {
		cmd.GroupID = shared.GroupProviders
		rootCmd.AddCommand(cmd)
	}
}
