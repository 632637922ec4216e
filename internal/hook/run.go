package hook

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// ExitCode is the only status a hook process ever reports.
const ExitCode = 0

// Run reads the hook payload from stdin and passes it to h. Errors and
// panics are logged and swallowed; the result is always ExitCode.
func Run(ctx context.Context, stdin io.Reader, h *Handler, logger zerolog.Logger) (code int) {
	code = ExitCode
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Str("event", h.Event).
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("hook panicked")
			code = ExitCode
		}
	}()

	in, err := ReadInput(stdin)
	if err != nil {
		// Malformed payloads end the hook quietly.
		logger.Warn().Err(err).Str("event", h.Event).Msg("ignoring hook input")
		return ExitCode
	}

	if err := h.Handle(ctx, in); err != nil {
		logger.Warn().Err(err).Str("event", h.Event).Str("session_id", in.SessionID).Msg("hook finished with errors")
	}
	return ExitCode
}
