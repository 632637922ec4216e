package providers

import (
	"fmt"
	"os"
	"strings"

	"github.com/agent-os/agentos/internal/cli/hooks"
	"github.com/agent-os/agentos/internal/cli/shared"
	apperrors "github.com/agent-os/agentos/internal/errors"
	"github.com/agent-os/agentos/internal/fallback"
	"github.com/agent-os/agentos/internal/hook"
	"github.com/agent-os/agentos/internal/invoke"
	"github.com/agent-os/agentos/internal/provider"
	"github.com/spf13/cobra"
)

// newAnnouncer builds the same announcer the hooks use, logging to stderr.
func newAnnouncer(rt *shared.Runtime) *hook.Announcer {
	return hook.NewAnnouncer(hook.AnnouncerConfig{
		UtilsDir:          rt.Settings.UtilsDir,
		CompletionTimeout: rt.Settings.CompletionTimeout,
		SpeechTimeout:     rt.Settings.SpeechTimeout,
		ChildEnv:          hooks.ChildEnv(os.Environ(), rt.Settings.EngineerName),
		Logger:            rt.Logger(),
	})
}

func newSpeakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "speak <text...>",
		Short: "Speak text through the best available speech provider",
		Example: `  agentos speak "Build finished"
  GOOGLE_API_KEY= agentos speak testing the local engine`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return apperrors.MissingText()
			}
			rt, err := shared.LoadRuntime(cmd)
			if err != nil {
				return err
			}

			a := newAnnouncer(rt)
			res := a.Resolve(provider.SpeechSynthesis)
			out, found := a.Speak(cmd.Context(), text)
			if !found {
				return noProvider(provider.SpeechSynthesis, rt.Settings.UtilsDir)
			}
			if out.Kind == invoke.Timeout {
				return shared.WithExitCode(shared.ExitTimeout,
					apperrors.TimeoutError(rt.Settings.SpeechTimeout, res.Provider.Name+" speech"))
			}
			if out.Kind != invoke.Success && out.Kind != invoke.EmptyOutput {
				return apperrors.SpeechFailed(res.Provider.Name, out.Kind.String())
			}
			if out.Text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			}
			return nil
		},
	}
}

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Print a completion message as the stop hook would announce it",
		Long: `Ask the best text-completion provider for a short completion message and
print it. Falls back to a built-in message when no provider produces one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := shared.LoadRuntime(cmd)
			if err != nil {
				return err
			}
			msg := newAnnouncer(rt).CompletionMessage(cmd.Context(), fallback.CompletionMessages)
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
