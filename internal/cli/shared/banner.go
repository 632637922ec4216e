package shared

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Logo is the two-line block logo printed by version and install.
var Logo = []string{
	"▄▀█ █▀▀ █▀▀ █▄ █ ▀█▀   █▀█ █▀",
	"█▀█ █▄█ ██▄ █ ▀█  █    █▄█ ▄█",
}

// LogoDisplayWidth is the number of terminal cells one logo line occupies.
const LogoDisplayWidth = 29

// Tagline follows the logo.
const Tagline = "Lifecycle Hooks and Extensions for Claude Code"

// Rounded box edges for the version summary.
const (
	BoxTopLeft     = "╭"
	BoxTopRight    = "╮"
	BoxBottomLeft  = "╰"
	BoxBottomRight = "╯"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

// GetTerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// CenterText left-pads text so it sits in the middle of width cells.
func CenterText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// PrintBanner writes the logo in cyan followed by the dimmed tagline.
func PrintBanner(out io.Writer) {
	logo := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(out)
	for _, line := range Logo {
		logo.Fprintln(out, line)
	}
	fmt.Fprintf(out, "\n%s\n\n", color.New(color.Faint).Sprint(Tagline))
}

// Colors holds the status colors used by check-style output.
type Colors struct {
	Green func(a ...interface{}) string
	Red   func(a ...interface{}) string
	Dim   func(a ...interface{}) string
}

// NewColors returns the standard status colors. They render plain text when
// stdout is not a terminal.
func NewColors() *Colors {
	return &Colors{
		Green: color.New(color.FgGreen).SprintFunc(),
		Red:   color.New(color.FgRed).SprintFunc(),
		Dim:   color.New(color.Faint).SprintFunc(),
	}
}
