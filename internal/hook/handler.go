package hook

import (
	"context"
	"fmt"
	"strings"

	"github.com/agent-os/agentos/internal/eventlog"
	"github.com/agent-os/agentos/internal/fallback"
	"github.com/rs/zerolog"
)

// GenericWaitingMessage is the notification Claude Code sends when idle.
// It is logged but never announced.
const GenericWaitingMessage = "Claude is waiting for your input"

// namePercent is how often announcements include the engineer's name.
const namePercent = 30

// Handler processes one hook event.
type Handler struct {
	// Event is one of the eventlog event names.
	Event     string
	Log       *eventlog.Writer
	Announcer *Announcer
	// Announce enables speech for the event.
	Announce     bool
	EngineerName string
	Logger       zerolog.Logger
}

// Handle records in and, when enabled, announces it.
func (h *Handler) Handle(ctx context.Context, in Input) error {
	entry := eventlog.Entry{SessionID: in.SessionID}
	if h.Event == eventlog.EventNotification {
		entry.Message = in.Message
	}

	var logErr error
	if h.Log != nil {
		stored, err := h.Log.Append(h.Event, entry)
		if err != nil {
			logErr = fmt.Errorf("recording %s event: %w", h.Event, err)
		}
		entry = stored
	}

	if !h.Announce || h.Announcer == nil {
		return logErr
	}

	text := h.announcement(ctx, in)
	if text == "" {
		return logErr
	}

	out, spoken := h.Announcer.Speak(ctx, text)
	h.Logger.Debug().
		Str("event", h.Event).
		Str("text", text).
		Bool("provider_found", spoken).
		Str("outcome", out.Kind.String()).
		Msg("announcement finished")

	if spoken && h.Log != nil && logErr == nil {
		if err := h.Log.Update(h.Event, entry.ID, func(e *eventlog.Entry) { e.Announced = text }); err != nil {
			return fmt.Errorf("recording announcement: %w", err)
		}
	}
	return logErr
}

// announcement chooses what to say for in, or "" when nothing should be said.
func (h *Handler) announcement(ctx context.Context, in Input) string {
	switch h.Event {
	case eventlog.EventStop:
		// Skip the completion request when nothing could speak its result.
		if !h.Announcer.CanSpeak() {
			return ""
		}
		return h.Announcer.CompletionMessage(ctx, fallback.CompletionMessages)
	case eventlog.EventSubagentStop:
		return h.Announcer.Pick(fallback.SubagentMessages)
	case eventlog.EventNotification:
		if strings.TrimSpace(in.Message) == GenericWaitingMessage {
			return ""
		}
		if name := strings.TrimSpace(h.EngineerName); name != "" && h.Announcer.Chance(namePercent) {
			return fmt.Sprintf("%s, your agent needs your input", name)
		}
		return h.Announcer.Pick(fallback.NotificationMessages)
	default:
		return ""
	}
}
