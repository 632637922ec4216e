package extension

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ConfigView is the configuration an extension install reads from.
// *config.Manager satisfies it.
type ConfigView interface {
	// Get looks up a dotted or flattened key in the merged configuration.
	Get(key string) (any, bool)
	ExtensionEnabled(name string) bool
	ExtensionRequired(name string) bool
}

// configKey addresses an extension setting, e.g. extensions.hooks.install_dir.
func configKey(extension, field string) string {
	return "extensions." + extension + "." + field
}

// ValidateConfig extracts the extension's settings from cfg according to the
// schema, applying defaults and checking types and enums.
func ValidateConfig(md *Metadata, cfg ConfigView) (map[string]any, error) {
	out := make(map[string]any, len(md.ConfigSchema))

	for _, key := range sortedKeys(md.ConfigSchema) {
		field := md.ConfigSchema[key]

		value, ok := cfg.Get(configKey(md.Name, key))
		if !ok || value == nil {
			if field.Default != nil {
				value = field.Default
			} else if field.Required {
				return nil, fmt.Errorf("required config '%s' not provided for %s", key, md.Name)
			}
		}

		if value != nil {
			if !matchesType(value, field.Type) {
				return nil, fmt.Errorf("config '%s' has invalid type: expected %s, got %T", key, typeOrDefault(field.Type), value)
			}
			if len(field.Enum) > 0 && !inEnum(value, field.Enum) {
				return nil, fmt.Errorf("config '%s' value '%v' not in allowed values %v", key, value, field.Enum)
			}
		}
		out[key] = value
	}
	return out, nil
}

// CheckDependencies verifies that every non-optional dependency is enabled.
// Disabled optional dependencies are returned for reporting.
func CheckDependencies(md *Metadata, cfg ConfigView) (missingOptional []string, err error) {
	for _, dep := range md.Dependencies.Extensions {
		if cfg.ExtensionEnabled(dep.Name) {
			continue
		}
		if !dep.Optional {
			return nil, fmt.Errorf("required dependency '%s' is not enabled", dep.Name)
		}
		missingOptional = append(missingOptional, dep.Name)
	}
	return missingOptional, nil
}

func typeOrDefault(t string) string {
	if t == "" {
		return "string"
	}
	return t
}

func matchesType(value any, t string) bool {
	switch typeOrDefault(t) {
	case "boolean":
		switch v := value.(type) {
		case bool:
			return true
		case string:
			l := strings.ToLower(strings.TrimSpace(v))
			return l == "true" || l == "false"
		}
		return false
	case "integer":
		switch v := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case float64:
			return v == float64(int64(v))
		case string:
			_, err := strconv.Atoi(strings.TrimSpace(v))
			return err == nil
		}
		return false
	case "array":
		k := reflect.ValueOf(value).Kind()
		return k == reflect.Slice || k == reflect.Array
	case "object":
		return reflect.ValueOf(value).Kind() == reflect.Map
	default:
		_, ok := value.(string)
		return ok
	}
}

func inEnum(value any, enum []any) bool {
	for _, e := range enum {
		if fmt.Sprint(e) == fmt.Sprint(value) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]SchemaField) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Variables are substituted into string settings as ${NAME} or $NAME.
type Variables struct {
	Home        string
	AgentOSHome string
	ProjectDir  string
	Extension   string
	InstallDir  string
}

// Expand substitutes the known variables in s.
func (v Variables) Expand(s string) string {
	home := v.Home
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	projectDir := v.ProjectDir
	if projectDir == "" {
		projectDir, _ = os.Getwd()
	}
	pairs := []struct{ name, value string }{
		{"AGENT_OS_HOME", v.AgentOSHome},
		{"HOME", home},
		{"PROJECT_DIR", projectDir},
		{"EXTENSION_NAME", v.Extension},
		{"INSTALL_DIR", v.InstallDir},
	}
	for _, p := range pairs {
		s = strings.ReplaceAll(s, "${"+p.name+"}", p.value)
		s = strings.ReplaceAll(s, "$"+p.name, p.value)
	}
	if s == "~" || strings.HasPrefix(s, "~/") {
		s = filepath.Join(home, strings.TrimPrefix(s[1:], "/"))
	}
	return s
}
