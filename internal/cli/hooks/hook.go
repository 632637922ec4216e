// Package hooks provides the hook commands Claude Code runs on lifecycle
// events. They read the event payload from stdin and always exit 0.
package hooks

import (
	"os"
	"strings"

	"github.com/agent-os/agentos/internal/cli/shared"
	"github.com/agent-os/agentos/internal/config"
	"github.com/agent-os/agentos/internal/eventlog"
	"github.com/agent-os/agentos/internal/hook"
	"github.com/agent-os/agentos/internal/logging"
	"github.com/spf13/cobra"
)

// NewHookCmd creates the hook parent command with one subcommand per event.
func NewHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Lifecycle hook handlers for Claude Code",
		Long: `Lifecycle hook handlers for Claude Code.

Each subcommand reads the hook JSON payload from stdin, appends it to
<log dir>/<event>.json and, with --announce, speaks a short message through
the first available speech provider. Hooks never fail: errors are written
to <log dir>/agentos.log and the exit status is always 0.`,
		Args: cobra.NoArgs,
	}
	cmd.GroupID = shared.GroupHooks

	for _, sub := range []struct {
		use, event, short string
	}{
		{"stop", eventlog.EventStop, "Handle the Stop event (agent finished responding)"},
		{"subagent-stop", eventlog.EventSubagentStop, "Handle the SubagentStop event"},
		{"notification", eventlog.EventNotification, "Handle the Notification event (agent needs input)"},
	} {
		cmd.AddCommand(newEventCmd(sub.use, sub.event, sub.short))
	}
	return cmd
}

func newEventCmd(use, event, short string) *cobra.Command {
	var announce bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ArbitraryArgs,
		// Claude Code may pass flags from newer configurations; ignore them.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runEvent(cmd, event, announce)
			return nil
		},
	}
	cmd.Flags().BoolVar(&announce, "announce", false, "Speak a short announcement for the event")
	return cmd
}

// runEvent wires configuration, logging and providers into a hook.Handler
// and runs it. Configuration problems fall back to the built-in defaults.
func runEvent(cmd *cobra.Command, event string, announce bool) int {
	settings := config.DefaultSettings()
	debug, _ := cmd.Flags().GetBool("debug")

	rt, loadErr := shared.LoadRuntime(cmd)
	if loadErr == nil {
		settings = rt.Settings
		debug = rt.Debug
	}

	logger, closeLog := logging.FileOrNop(settings.LogDir, debug)
	defer closeLog()
	logger = logger.With().Str("event", event).Logger()
	if loadErr != nil {
		logger.Warn().Err(loadErr).Msg("configuration unavailable, using defaults")
	}

	h := &hook.Handler{
		Event: event,
		Log:   eventlog.NewWriter(settings.LogDir, settings.LogMaxEntries),
		Announcer: hook.NewAnnouncer(hook.AnnouncerConfig{
			UtilsDir:          settings.UtilsDir,
			CompletionTimeout: settings.CompletionTimeout,
			SpeechTimeout:     settings.SpeechTimeout,
			ChildEnv:          ChildEnv(os.Environ(), settings.EngineerName),
			Logger:            logger,
		}),
		Announce:     announce,
		EngineerName: settings.EngineerName,
		Logger:       logger,
	}
	return hook.Run(cmd.Context(), cmd.InOrStdin(), h, logger)
}

// ChildEnv returns environ with ENGINEER_NAME set to name when the
// environment does not already carry one.
func ChildEnv(environ []string, name string) []string {
	env := append([]string(nil), environ...)
	if name == "" {
		return env
	}
	for _, kv := range env {
		if strings.HasPrefix(kv, "ENGINEER_NAME=") && kv != "ENGINEER_NAME=" {
			return env
		}
	}
	return append(env, "ENGINEER_NAME="+name)
}
