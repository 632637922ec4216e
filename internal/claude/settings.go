package claude

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is the name of the Claude settings file.
const SettingsFileName = "settings.json"

// BackupSuffix is appended to the settings path when backing it up.
const BackupSuffix = ".backup"

// Settings represents a Claude settings file with flexible JSON structure.
// Uses map[string]interface{} to preserve unknown fields during modification.
type Settings struct {
	data     map[string]interface{}
	filePath string
}

// NewInitialSettings returns the settings written when none exist yet.
func NewInitialSettings(filePath string) *Settings {
	return &Settings{
		data: map[string]interface{}{
			"permissions": map[string]interface{}{"allow": []interface{}{}},
			"hooks":       map[string]interface{}{},
		},
		filePath: filePath,
	}
}

// Load reads settings.json from a Claude directory (for example ~/.claude).
func Load(claudeDir string) (*Settings, error) {
	return LoadFile(filepath.Join(claudeDir, SettingsFileName))
}

// LoadFile reads and parses a settings file.
// Returns a Settings instance even if the file doesn't exist (with empty data).
// Returns an error only for actual failures like permission errors or malformed JSON.
func LoadFile(settingsPath string) (*Settings, error) {
	s := &Settings{
		data:     make(map[string]interface{}),
		filePath: settingsPath,
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}

	// Numbers stay json.Number so large integers are written back unchanged.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&s.data); err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", settingsPath, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parsing settings file %s: unexpected data after top-level object", settingsPath)
	}
	if s.data == nil {
		s.data = make(map[string]interface{})
	}

	return s, nil
}

// FilePath returns the path to the settings file.
func (s *Settings) FilePath() string {
	return s.filePath
}

// Exists returns true if the settings file exists on disk.
func (s *Settings) Exists() bool {
	_, err := os.Stat(s.filePath)
	return err == nil
}

// Data returns the raw settings tree.
func (s *Settings) Data() map[string]interface{} {
	return s.data
}

// HasHooks reports whether a non-empty hooks object is configured.
func (s *Settings) HasHooks() bool {
	hooks, ok := s.data["hooks"].(map[string]interface{})
	return ok && len(hooks) > 0
}

// HookEvents returns the configured hook event names, sorted.
func (s *Settings) HookEvents() []string {
	hooks, ok := s.data["hooks"].(map[string]interface{})
	if !ok {
		return nil
	}
	events := make([]string, 0, len(hooks))
	for name := range hooks {
		events = append(events, name)
	}
	sort.Strings(events)
	return events
}

// MergeHooks deep-merges the "hooks" object of fragment into the settings.
// Objects merge key by key; any other value in fragment replaces the existing one.
func (s *Settings) MergeHooks(fragment map[string]interface{}) error {
	hooks, ok := fragment["hooks"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("hooks fragment has no \"hooks\" object")
	}
	s.data = deepMerge(s.data, map[string]interface{}{"hooks": hooks})
	return nil
}

// deepMerge returns dst with src merged in recursively. Neither input is modified.
func deepMerge(dst, src map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, sv := range src {
		sm, srcIsMap := sv.(map[string]interface{})
		dm, dstIsMap := out[k].(map[string]interface{})
		if srcIsMap && dstIsMap {
			out[k] = deepMerge(dm, sm)
			continue
		}
		out[k] = sv
	}
	return out
}

// LoadFragment reads a hooks fragment from a JSON or YAML file.
func LoadFragment(path string) (map[string]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening hooks fragment: %w", err)
	}
	defer f.Close()
	return ParseFragment(f, filepath.Ext(path))
}

// ParseFragment decodes a hooks fragment. ext selects YAML for ".yaml"/".yml";
// anything else is parsed as JSON.
func ParseFragment(r io.Reader, ext string) (map[string]interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading hooks fragment: %w", err)
	}

	var out map[string]interface{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("parsing YAML hooks fragment: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("parsing JSON hooks fragment: %w", err)
		}
	}
	if out == nil {
		return nil, fmt.Errorf("hooks fragment is empty")
	}
	return out, nil
}

// DefaultHooksFragment registers the agentos hook commands for the stop,
// subagent stop and notification events.
func DefaultHooksFragment(binary string) map[string]interface{} {
	entry := func(args string) []interface{} {
		return []interface{}{
			map[string]interface{}{
				"matcher": "",
				"hooks": []interface{}{
					map[string]interface{}{"type": "command", "command": binary + " " + args},
				},
			},
		}
	}
	return map[string]interface{}{
		"hooks": map[string]interface{}{
			"Stop":         entry("hook stop --announce"),
			"SubagentStop": entry("hook subagent-stop --announce"),
			"Notification": entry("hook notification --announce"),
		},
	}
}

// Backup copies the current settings file to <path>.backup and returns the
// backup path.
func (s *Settings) Backup() (string, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return "", fmt.Errorf("reading settings for backup: %w", err)
	}
	backupPath := s.filePath + BackupSuffix
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing settings backup: %w", err)
	}
	return backupPath, nil
}

// Save writes the settings to disk using atomic write (temp file + rename).
// Creates the parent directory if it doesn't exist.
// Written JSON is pretty-printed with indentation for human readability.
func (s *Settings) Save() error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing settings: %w", err)
	}

	// Add trailing newline for POSIX compliance
	data = append(data, '\n')

	return atomicWrite(s.filePath, data)
}

// atomicWrite writes data to a file atomically using temp file + rename.
func atomicWrite(filePath string, data []byte) error {
	dir := filepath.Dir(filePath)
	tmpFile, err := os.CreateTemp(dir, ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", filePath, err)
	}

	tmpPath = ""
	return nil
}
