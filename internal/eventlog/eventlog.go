// Package eventlog records hook events as JSON arrays, one file per event type.
package eventlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Event names map to <name>.json files in the log directory.
const (
	EventStop         = "stop"
	EventSubagentStop = "subagent_stop"
	EventNotification = "notification"
)

const (
	// DefaultLogDir is relative to the hook's working directory.
	DefaultLogDir = "logs"
	// BackupSuffix is the suffix for backup files when corruption is detected.
	BackupSuffix = ".backup"
)

// Entry is a single recorded hook invocation.
type Entry struct {
	ID        string    `json:"id,omitempty"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	// Message is the notification text, when the event carried one.
	Message string `json:"message,omitempty"`
	// Announced is the text spoken for this event, if any.
	Announced string `json:"announced,omitempty"`
}

// FileName returns the log file name for an event.
func FileName(event string) string {
	return event + ".json"
}

// Load reads all entries for event from logDir.
// Returns an empty list if the file doesn't exist.
// A corrupted file is backed up and treated as empty.
func Load(logDir, event string) ([]Entry, error) {
	path := filepath.Join(logDir, FileName(event))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("reading event log: %w", err)
	}
	if len(data) == 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		if backupErr := os.Rename(path, path+BackupSuffix); backupErr != nil {
			return nil, fmt.Errorf("backing up corrupted event log: %w", backupErr)
		}
		return []Entry{}, nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Save writes entries for event atomically, creating logDir if needed.
func Save(logDir, event string, entries []Entry) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling event log: %w", err)
	}

	// Each writer gets its own temp file so concurrent hooks never rename
	// each other's half-written data.
	tmp, err := os.CreateTemp(logDir, FileName(event)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp event log: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp event log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp event log: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting event log permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(logDir, FileName(event))); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp event log: %w", err)
	}
	return nil
}
