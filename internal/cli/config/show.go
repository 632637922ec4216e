package config

import (
	"encoding/json"
	"fmt"

	"github.com/agent-os/agentos/internal/cli/shared"
	cfgpkg "github.com/agent-os/agentos/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current effective configuration",
		Long: `Display the merged configuration with flattened keys, preceded by the
files it was loaded from and the detected project.`,
		Example: `  agentos config show
  agentos config show --json`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	useJSON, _ := cmd.Flags().GetBool("json")

	rt, err := shared.LoadRuntime(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# Configuration Sources\n")
	fmt.Fprintf(out, "# Base config:    %s\n", basePath(cmd))
	fmt.Fprintf(out, "# Project config: %s\n", cfgpkg.ProjectConfigPath(rt.Project.Root))
	for _, src := range rt.Config.Sources() {
		fmt.Fprintf(out, "# Loaded:         %s\n", src)
	}
	fmt.Fprintf(out, "# Project root:   %s", rt.Project.Root)
	if rt.Project.Branch != "" {
		fmt.Fprintf(out, " (branch %s)", rt.Project.Branch)
	}
	fmt.Fprintf(out, "\n\n")

	merged := rt.Config.Merged()
	if useJSON {
		data, err := json.MarshalIndent(merged, "", "  ")
		if err != nil {
			return fmt.Errorf("serializing config: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	data, err := yaml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func basePath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return cfgpkg.BaseConfigPath()
}
