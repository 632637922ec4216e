// Package claude manages the Claude Code user settings file (settings.json)
// for the hooks extension.
//
// The package supports:
//   - Loading settings while preserving unknown fields
//   - Detecting whether hooks are already configured
//   - Deep-merging a hooks fragment (JSON or YAML) into the settings
//   - Backing up the previous file before it is replaced
//   - Atomic file writes to prevent corruption
package claude
