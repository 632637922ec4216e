package hooks

import "github.com/spf13/cobra"

// Register adds the hook commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(NewHookCmd())
}
