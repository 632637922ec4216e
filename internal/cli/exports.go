package cli

import "github.com/spf13/cobra"

// RootCmd returns the root cobra command.
// This accessor allows callers such as documentation generators to walk the
// command tree without exposing the rootCmd variable directly.
func RootCmd() *cobra.Command {
	return rootCmd
}

// NewRootCmd builds a fresh command tree with no flag state from earlier runs.
func NewRootCmd() *cobra.Command {
	return newRootCmd()
}
