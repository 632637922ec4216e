// Package logging builds the zerolog loggers used by hooks and CLI commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// LogFileName is the hook diagnostic log inside the log directory.
const LogFileName = "agentos.log"

// Level returns DebugLevel when debug is set, InfoLevel otherwise.
func Level(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// Console returns a human-readable logger writing to w.
func Console(w io.Writer, debug bool) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	if f, ok := w.(*os.File); !ok || f != os.Stderr {
		cw.NoColor = true
	}
	return zerolog.New(cw).Level(Level(debug)).With().Timestamp().Logger()
}

// File opens <logDir>/agentos.log for appending and returns a JSON logger on it.
// The returned closer must be called when the process is done logging.
func File(logDir string, debug bool) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}
	path := filepath.Join(logDir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := zerolog.New(f).Level(Level(debug)).With().Timestamp().Logger()
	return logger, f, nil
}

// FileOrNop is File without the error: hooks must never fail because the
// log directory is unwritable.
func FileOrNop(logDir string, debug bool) (zerolog.Logger, func()) {
	logger, closer, err := File(logDir, debug)
	if err != nil {
		return zerolog.Nop(), func() {}
	}
	return logger, func() { _ = closer.Close() }
}
