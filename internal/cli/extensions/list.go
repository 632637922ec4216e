package extensions

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/agent-os/agentos/internal/cli/shared"
	"github.com/agent-os/agentos/internal/extension"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available extensions and whether they would be installed",
		Example: `  agentos extensions list
  agentos extensions list --mode project`,
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

			names, err := extension.Discover(t.baseDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintf(out, "No extensions found in %s\n", t.baseDir)
				return nil
			}

			m := extension.NewManager(rt.Config, extension.Options{
				Mode:       t.mode,
				GlobalDir:  t.globalDir,
				ProjectDir: rt.Project.Root,
				Logger:     rt.Logger(),
			})

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tENABLED\tREQUIRED\tSTATUS\tDESCRIPTION")
			for _, name := range names {
				md, err := extension.LoadMetadata(filepath.Join(t.baseDir, extension.ExtensionsDirName, name))
				if err != nil {
					fmt.Fprintf(tw, "%s\t?\t-\t-\t%s\t\n", name, color.RedString("invalid metadata"))
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					name, md.Type,
					yesNo(rt.Config.ExtensionEnabled(name)),
					yesNo(rt.Config.ExtensionRequired(name)),
					status(m, rt, name, md),
					md.Description)
			}
			return tw.Flush()
		},
	}
}

func status(m *extension.Manager, rt *shared.Runtime, name string, md *extension.Metadata) string {
	if ok, reason := m.Applicable(name, md); !ok {
		return color.YellowString("skip: %s", reason)
	}
	if !rt.Config.ExtensionEnabled(name) {
		return color.YellowString("skip: disabled")
	}
	return color.GreenString("install")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
