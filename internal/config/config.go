// Package config loads Agent OS configuration from layered sources.
//
// Layers, lowest to highest priority: built-in defaults, the base config
// (~/.agent-os/config.yml), the project config (<root>/.agent-os/config.yml)
// and AGENT_OS_* environment variables. Nested keys are flattened to upper
// case with underscores, so extensions.hooks.enabled in YAML and
// AGENT_OS_EXTENSIONS_HOOKS_ENABLED in the environment address the same key.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix marks environment variables that override configuration.
	EnvPrefix = "AGENT_OS_"
	// ConfigFileName is the config file inside an Agent OS directory.
	ConfigFileName = "config.yml"
	// ProjectDirName holds project-level Agent OS files.
	ProjectDirName = ".agent-os"
)

// KnownExtensions are checked by Requirements.
var KnownExtensions = []string{"sandbox", "hooks", "peer"}

// Settings are the typed runtime options used by hooks and the CLI.
type Settings struct {
	Debug             bool          `koanf:"DEBUG"`
	EngineerName      string        `koanf:"ENGINEER_NAME"`
	ClaudeDir         string        `koanf:"CLAUDE_DIR" validate:"required"`
	UtilsDir          string        `koanf:"HOOKS_UTILS_DIR"`
	LogDir            string        `koanf:"HOOKS_LOG_DIR" validate:"required"`
	LogMaxEntries     int           `koanf:"HOOKS_LOG_MAX_ENTRIES" validate:"gte=0"`
	// Bare integers decode as nanoseconds; the floor rejects "timeout: 10".
	CompletionTimeout time.Duration `koanf:"HOOKS_COMPLETION_TIMEOUT" validate:"gte=100ms"`
	SpeechTimeout     time.Duration `koanf:"HOOKS_SPEECH_TIMEOUT" validate:"gte=100ms"`
	InstallTimeout    time.Duration `koanf:"EXTENSIONS_INSTALL_TIMEOUT" validate:"gte=100ms"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})
	return v
}

// Manager holds each configuration layer and their merge.
type Manager struct {
	base    map[string]any
	project map[string]any
	env     map[string]any
	merged  map[string]any
	sources []string
}

// NewManager creates an empty Manager. Call Load before reading values.
func NewManager() *Manager {
	return &Manager{
		base:    map[string]any{},
		project: map[string]any{},
		env:     map[string]any{},
		merged:  map[string]any{},
	}
}

// Load reads the base and project config files (either may be empty or
// missing) and the AGENT_OS_* environment, then merges them.
func (m *Manager) Load(basePath, projectPath string) error {
	var err error
	m.sources = nil

	if m.base, err = m.loadFile(basePath); err != nil {
		return fmt.Errorf("loading base config: %w", err)
	}
	if m.project, err = m.loadFile(projectPath); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	if m.env, err = loadEnv(); err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}

	m.merged = make(map[string]any)
	for _, layer := range []map[string]any{GetDefaults(), m.base, m.project, m.env} {
		for k, v := range layer {
			m.merged[k] = v
		}
	}
	return nil
}

// loadFile loads and flattens a YAML or JSON file. Missing files yield an empty map.
func (m *Manager) loadFile(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	if !isJSON(path) {
		if err := ValidateYAMLSyntax(path); err != nil {
			return nil, err
		}
	}

	k := koanf.New(".")
	var parser koanf.Parser = yaml.Parser()
	if isJSON(path) {
		parser = json.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	m.sources = append(m.sources, path)
	return flatten(k), nil
}

func loadEnv() (map[string]any, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, err
	}
	return flatten(k), nil
}

// envTransform converts environment variable names to config keys
// Example: AGENT_OS_EXTENSIONS_HOOKS_ENABLED -> EXTENSIONS_HOOKS_ENABLED
func envTransform(s string) string {
	return strings.TrimPrefix(s, EnvPrefix)
}

var keyReplacer = strings.NewReplacer(".", "_", "-", "_")

// FlatKey converts a nested key path to its flattened form.
func FlatKey(path string) string {
	return strings.ToUpper(keyReplacer.Replace(path))
}

func flatten(k *koanf.Koanf) map[string]any {
	all := k.All()
	out := make(map[string]any, len(all))
	for key, v := range all {
		out[FlatKey(key)] = v
	}
	return out
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Sources lists the config files that were loaded, lowest priority first.
func (m *Manager) Sources() []string {
	return append([]string(nil), m.sources...)
}

// Get returns a merged value.
func (m *Manager) Get(key string) (any, bool) {
	v, ok := m.merged[FlatKey(key)]
	return v, ok
}

// String returns a merged value as a string, or def when unset.
func (m *Manager) String(key, def string) string {
	v, ok := m.Get(key)
	if !ok || v == nil {
		return def
	}
	return fmt.Sprint(v)
}

// Bool interprets a merged value as a boolean; unset or unparsable is false.
func (m *Manager) Bool(key string) bool {
	return truthy(m.merged[FlatKey(key)])
}

// Layer names the highest-priority layer that sets key: "env", "project",
// "base" or "default". ok is false when no layer sets it.
func (m *Manager) Layer(key string) (layer string, ok bool) {
	k := FlatKey(key)
	for _, l := range []struct {
		name   string
		values map[string]any
	}{
		{"env", m.env},
		{"project", m.project},
		{"base", m.base},
		{"default", GetDefaults()},
	} {
		if _, ok := l.values[k]; ok {
			return l.name, true
		}
	}
	return "", false
}

// Merged returns a copy of the merged flattened configuration.
func (m *Manager) Merged() map[string]any {
	out := make(map[string]any, len(m.merged))
	for k, v := range m.merged {
		out[k] = v
	}
	return out
}

// Keys returns the merged keys in sorted order.
func (m *Manager) Keys() []string {
	keys := make([]string, 0, len(m.merged))
	for k := range m.merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExtensionEnabled reports whether extension name is enabled in the merged config.
func (m *Manager) ExtensionEnabled(name string) bool {
	return truthy(m.merged[extensionKey(name, "ENABLED")])
}

// ExtensionRequired reports whether extension name is required. Only the
// base config can require an extension; project and env layers cannot
// change it.
func (m *Manager) ExtensionRequired(name string) bool {
	return truthy(m.base[extensionKey(name, "REQUIRED")])
}

// Requirements returns one message per required extension that is disabled.
func (m *Manager) Requirements() []string {
	var problems []string
	for _, name := range KnownExtensions {
		if m.ExtensionRequired(name) && !m.ExtensionEnabled(name) {
			problems = append(problems, fmt.Sprintf("Extension '%s' is required but disabled", name))
		}
	}
	return problems
}

func extensionKey(name, field string) string {
	return FlatKey("extensions." + name + "." + field)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	default:
		b, err := strconv.ParseBool(strings.TrimSpace(fmt.Sprint(t)))
		return err == nil && b
	}
}

// Settings decodes and validates the typed runtime settings.
func (m *Manager) Settings() (*Settings, error) {
	k := koanf.New(".")
	for key, v := range m.merged {
		if err := k.Set(key, v); err != nil {
			return nil, fmt.Errorf("setting %s: %w", key, err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	s.ClaudeDir = expandHomePath(s.ClaudeDir)
	s.LogDir = expandHomePath(s.LogDir)
	if s.UtilsDir == "" {
		s.UtilsDir = filepath.Join(s.ClaudeDir, "hooks", "utils")
	}
	s.UtilsDir = expandHomePath(s.UtilsDir)
	if s.EngineerName == "" {
		s.EngineerName = os.Getenv("ENGINEER_NAME")
	}

	if err := ValidateSettings(&s, "merged config"); err != nil {
		return nil, err
	}
	return &s, nil
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}

// DefaultSettings returns the built-in settings without reading any file or
// environment layer.
func DefaultSettings() *Settings {
	m := NewManager()
	m.merged = GetDefaults()
	if s, err := m.Settings(); err == nil {
		return s
	}
	claudeDir := expandHomePath("~/.claude")
	return &Settings{
		ClaudeDir:         claudeDir,
		UtilsDir:          filepath.Join(claudeDir, "hooks", "utils"),
		LogDir:            "logs",
		CompletionTimeout: 10 * time.Second,
		SpeechTimeout:     30 * time.Second,
		InstallTimeout:    5 * time.Minute,
	}
}
