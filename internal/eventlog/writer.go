package eventlog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Writer appends entries to per-event logs with optional pruning.
type Writer struct {
	// LogDir is the directory holding the <event>.json files.
	LogDir string
	// MaxEntries is the maximum number of entries kept per event; 0 keeps all.
	MaxEntries int

	now func() time.Time
}

// NewWriter creates a new event log writer.
func NewWriter(logDir string, maxEntries int) *Writer {
	return &Writer{LogDir: logDir, MaxEntries: maxEntries, now: time.Now}
}

// Append records entry under event, filling in ID and Timestamp when unset.
// It returns the stored entry.
func (w *Writer) Append(event string, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = w.now()
	}
	if entry.SessionID == "" {
		entry.SessionID = "unknown"
	}

	entries, err := Load(w.LogDir, event)
	if err != nil {
		return entry, fmt.Errorf("loading %s log: %w", event, err)
	}

	entries = append(entries, entry)
	if w.MaxEntries > 0 && len(entries) > w.MaxEntries {
		entries = entries[len(entries)-w.MaxEntries:]
	}

	if err := Save(w.LogDir, event, entries); err != nil {
		return entry, fmt.Errorf("saving %s log: %w", event, err)
	}
	return entry, nil
}

// Update rewrites the entry with the given ID using fn.
func (w *Writer) Update(event, id string, fn func(*Entry)) error {
	entries, err := Load(w.LogDir, event)
	if err != nil {
		return fmt.Errorf("loading %s log for update: %w", event, err)
	}
	for i := range entries {
		if entries[i].ID == id {
			fn(&entries[i])
			return Save(w.LogDir, event, entries)
		}
	}
	return fmt.Errorf("entry not found with ID: %s", id)
}
