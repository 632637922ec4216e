package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgRed, color.Bold)
	labelColor  = color.New(color.FgYellow)
)

// FormatError renders err with colored headings.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return render(err, headerColor.Sprint, labelColor.Sprint)
}

// FormatErrorPlain renders err without ANSI escapes.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return render(err, fmt.Sprint, fmt.Sprint)
}

func render(err *CLIError, header, label func(...interface{}) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", header(err.Category.String()), err.Message)
	if err.Usage != "" {
		fmt.Fprintf(&b, "\n%s %s\n", label("Usage:"), err.Usage)
	}
	if len(err.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", label("To fix this:"))
		for i, step := range err.Remediation {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	}
	return b.String()
}

// FprintError writes err to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
