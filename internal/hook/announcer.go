package hook

import (
	"context"
	"time"

	"github.com/agent-os/agentos/internal/fallback"
	"github.com/agent-os/agentos/internal/invoke"
	"github.com/agent-os/agentos/internal/provider"
	"github.com/rs/zerolog"
)

// CompletionFlag asks a text-completion artifact for a short completion message.
const CompletionFlag = "--completion"

// Default per-invocation bounds.
const (
	DefaultCompletionTimeout = 10 * time.Second
	DefaultSpeechTimeout     = 30 * time.Second
)

// AnnouncerConfig configures an Announcer. Zero values fall back to the
// process environment, the real filesystem and the default timeouts.
type AnnouncerConfig struct {
	UtilsDir          string
	Env               provider.Env
	Filesystem        provider.Filesystem
	CompletionTimeout time.Duration
	SpeechTimeout     time.Duration
	// ChildEnv, when non-nil, replaces the environment of provider processes.
	ChildEnv []string
	Picker   *fallback.Picker
	Logger   zerolog.Logger
}

// Announcer composes resolution, invocation and fallback.
type Announcer struct {
	resolver          *provider.Resolver
	invoker           *invoke.Invoker
	env               provider.Env
	fsys              provider.Filesystem
	picker            *fallback.Picker
	completionTimeout time.Duration
	speechTimeout     time.Duration
	logger            zerolog.Logger
}

// NewAnnouncer creates an Announcer from cfg.
func NewAnnouncer(cfg AnnouncerConfig) *Announcer {
	a := &Announcer{
		resolver:          provider.NewResolver(cfg.UtilsDir, cfg.Logger),
		invoker:           invoke.New(cfg.Logger, cfg.ChildEnv),
		env:               cfg.Env,
		fsys:              cfg.Filesystem,
		picker:            cfg.Picker,
		completionTimeout: cfg.CompletionTimeout,
		speechTimeout:     cfg.SpeechTimeout,
		logger:            cfg.Logger,
	}
	if a.env == nil {
		a.env = provider.OSEnv{}
	}
	if a.fsys == nil {
		a.fsys = provider.OSFilesystem{}
	}
	if a.picker == nil {
		a.picker = fallback.NewPicker(nil)
	}
	if a.completionTimeout <= 0 {
		a.completionTimeout = DefaultCompletionTimeout
	}
	if a.speechTimeout <= 0 {
		a.speechTimeout = DefaultSpeechTimeout
	}
	return a
}

// Resolve selects the provider of kind for the announcer's environment.
func (a *Announcer) Resolve(kind provider.Kind) provider.Resolution {
	return a.resolver.Resolve(kind, a.env, a.fsys)
}

// CanSpeak reports whether a speech provider is currently selectable.
func (a *Announcer) CanSpeak() bool {
	return a.Resolve(provider.SpeechSynthesis).Found()
}

// CompletionMessage asks the best text-completion provider for a message
// and returns a random element of fallbacks when none produces usable text.
func (a *Announcer) CompletionMessage(ctx context.Context, fallbacks []string) string {
	res := a.Resolve(provider.TextCompletion)
	if !res.Found() {
		a.logger.Debug().Msg("no text completion provider, using fallback message")
		return a.picker.Pick(fallbacks)
	}

	out := a.invoker.Invoke(ctx, res.Path, []string{CompletionFlag}, a.completionTimeout)
	if out.Usable() {
		return out.Text
	}
	a.logger.Info().
		Str("provider", res.Provider.Name).
		Str("outcome", out.Kind.String()).
		Msg("completion provider unusable, using fallback message")
	return a.picker.Pick(fallbacks)
}

// Speak sends text to the best speech provider. It returns the outcome, or
// false when no provider was selectable.
func (a *Announcer) Speak(ctx context.Context, text string) (invoke.Outcome, bool) {
	res := a.Resolve(provider.SpeechSynthesis)
	if !res.Found() {
		a.logger.Debug().Msg("no speech provider available")
		return invoke.Outcome{}, false
	}
	out := a.invoker.Invoke(ctx, res.Path, []string{text}, a.speechTimeout)
	return out, true
}

// Chance reports true with probability pct/100.
func (a *Announcer) Chance(pct int) bool {
	return a.picker.Chance(pct)
}

// Pick returns a random element of messages.
func (a *Announcer) Pick(messages []string) string {
	return a.picker.Pick(messages)
}
