// Package hook implements the Claude Code lifecycle hooks: stop, subagent
// stop and notification.
//
// Each hook records its event, then optionally announces it:
//
//	resolve TextCompletion -> invoke "--completion" -> usable text or fallback message
//	resolve SpeechSynthesis -> invoke with the message
//
// Run is the only boundary. Whatever happens inside a handler, including a
// panic, the hook process exits 0 so the assistant session is never
// disturbed by a broken announcement.
package hook
