package extensions

import "github.com/spf13/cobra"

// Register adds the extensions command group to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(NewExtensionsCmd())
}
