package progress

import (
	"os"

	"golang.org/x/term"
)

// DetectTerminalCapabilities inspects stdout. NO_COLOR disables color and
// AGENT_OS_ASCII=1 forces ASCII symbols.
func DetectTerminalCapabilities() TerminalCapabilities {
	fd := int(os.Stdout.Fd())
	caps := TerminalCapabilities{IsTTY: term.IsTerminal(fd)}
	if !caps.IsTTY {
		return caps
	}
	caps.SupportsColor = os.Getenv("NO_COLOR") == ""
	caps.SupportsUnicode = os.Getenv("AGENT_OS_ASCII") != "1"
	if w, _, err := term.GetSize(fd); err == nil {
		caps.Width = w
	}
	return caps
}

// Spinner charsets from briandowns/spinner.
const (
	brailleSpinner = 14 // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
	asciiSpinner   = 9  // | / - \
)

// SelectSymbols picks Unicode or ASCII step markers.
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if !caps.SupportsUnicode {
		return ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", Skip: "[SKIP]", SpinnerSet: asciiSpinner}
	}
	return ProgressSymbols{Checkmark: "✓", Failure: "✗", Skip: "⏭", SpinnerSet: brailleSpinner}
}
