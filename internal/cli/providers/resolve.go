// Package providers provides diagnostic commands for provider resolution:
// resolve, speak and complete.
package providers

import (
	"fmt"
	"io"

	"github.com/agent-os/agentos/internal/cli/shared"
	apperrors "github.com/agent-os/agentos/internal/errors"
	"github.com/agent-os/agentos/internal/provider"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "resolve <tts|llm>",
		Short: "Print the provider artifact that would be used",
		Long: `Print the artifact path of the highest-ranked provider whose credential is
set and whose executable exists. Exits non-zero when no provider qualifies.`,
		Example: `  agentos resolve tts
  agentos resolve llm --verbose`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := provider.ParseKind(args[0])
			if err != nil {
				return apperrors.InvalidProviderKind(args[0])
			}
			rt, err := shared.LoadRuntime(cmd)
			if err != nil {
				return err
			}

			res := provider.NewResolver(rt.Settings.UtilsDir, rt.Logger()).
				Resolve(kind, provider.OSEnv{}, provider.OSFilesystem{})
			if verbose {
				printSkips(cmd.ErrOrStderr(), res)
			}
			if !res.Found() {
				return noProvider(kind, rt.Settings.UtilsDir)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Explain why higher-ranked providers were skipped")
	return cmd
}

func printSkips(w io.Writer, res provider.Resolution) {
	dim := color.New(color.Faint).SprintFunc()
	for _, s := range res.Skipped {
		fmt.Fprintf(w, "%s %s: %s %s\n", color.YellowString("skip"), s.Provider.Name, s.Reason, dim("("+s.Path+")"))
	}
	if res.Found() {
		via := res.Credential
		if via == "" {
			via = "no credential required"
		}
		fmt.Fprintf(w, "%s %s via %s\n", color.GreenString("use"), res.Provider.Name, via)
	}
}

// noProvider exits with ExitFailure so scripts can test `agentos resolve tts`
// like a lookup.
func noProvider(kind provider.Kind, utilsDir string) error {
	return shared.WithExitCode(shared.ExitFailure,
		apperrors.NoProviderAvailable(kind.String(), utilsDir, credentialNames(kind)))
}

func credentialNames(kind provider.Kind) []string {
	var names []string
	for _, c := range provider.Candidates(kind) {
		names = append(names, c.CredentialEnvVars...)
	}
	return names
}
