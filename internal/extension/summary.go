package extension

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
)

// LogFileName is written to <install dir>/extensions after processing.
const LogFileName = "installation.log"

// Summary records the outcome of Manager.Process.
type Summary struct {
	Mode       Mode
	InstallDir string
	Installed  []string
	Failed     []string
	Skipped    []string
}

// Total is the number of extensions that were considered.
func (s *Summary) Total() int {
	return len(s.Installed) + len(s.Failed) + len(s.Skipped)
}

// Print writes the per-outcome lists to w.
func (s *Summary) Print(w io.Writer) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w)
	bold.Fprintf(w, "Extension Installation Summary (%s mode)\n", s.Mode)
	fmt.Fprintln(w, strings.Repeat("=", 50))

	section(w, color.New(color.FgGreen), "Successfully installed", s.Installed)
	section(w, color.New(color.FgRed), "Failed to install", s.Failed)
	section(w, color.New(color.FgYellow), "Skipped", s.Skipped)

	fmt.Fprintf(w, "\nTotal processed: %d extension(s)\n", s.Total())
}

func section(w io.Writer, c *color.Color, title string, names []string) {
	if len(names) == 0 {
		c.Fprintf(w, "%s: 0\n", title)
		return
	}
	c.Fprintf(w, "%s (%d):\n", title, len(names))
	for _, n := range names {
		fmt.Fprintf(w, "   • %s\n", n)
	}
}

// WriteLog writes installation.log under <InstallDir>/extensions and returns
// its path.
func (s *Summary) WriteLog(now time.Time) (string, error) {
	dir := filepath.Join(s.InstallDir, ExtensionsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	var b strings.Builder
	b.WriteString("=== Agent OS Extensions Installation Log ===\n")
	fmt.Fprintf(&b, "Date: %s\n", now.Format(time.RFC1123))
	fmt.Fprintf(&b, "Mode: %s\n", s.Mode)
	fmt.Fprintf(&b, "Installation Directory: %s\n", s.InstallDir)
	b.WriteString("\nInstalled Extensions:\n")
	if len(s.Installed) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, n := range s.Installed {
		fmt.Fprintf(&b, "  - %s\n", n)
	}
	b.WriteString("\n=== End of Log ===\n")

	path := filepath.Join(dir, LogFileName)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
