package config

// GetDefaults returns the default configuration values, keyed by flattened name.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"DEBUG":                      false,
		"ENGINEER_NAME":              "",
		"CLAUDE_DIR":                 "~/.claude",
		"HOOKS_UTILS_DIR":            "",
		"HOOKS_LOG_DIR":              "logs",
		"HOOKS_LOG_MAX_ENTRIES":      0,
		"HOOKS_COMPLETION_TIMEOUT":   "10s",
		"HOOKS_SPEECH_TIMEOUT":       "30s",
		"EXTENSIONS_INSTALL_TIMEOUT": "5m",
	}
}
