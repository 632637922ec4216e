package errors

import (
	"fmt"
	"strings"
	"time"
)

// InvalidProviderKind reports an unknown capability kind argument.
func InvalidProviderKind(kind string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown provider kind %q", kind),
		"agentos resolve <tts|llm>",
		"Use 'tts' for speech synthesis or 'llm' for text completion",
	)
}

// NoProviderAvailable reports that no provider of kind passed both gates.
func NoProviderAvailable(kind, utilsDir string, credentials []string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("no %s provider available", kind),
		fmt.Sprintf("Set one of: %s", strings.Join(credentials, ", ")),
		fmt.Sprintf("Install provider executables under %s", utilsDir),
		"Run 'agentos resolve "+kind+" --verbose' to see why each provider was skipped",
	)
}

// MissingText reports that speak was called without text.
func MissingText() *CLIError {
	return NewArgumentErrorWithUsage(
		"no text to speak",
		"agentos speak <text>",
		"Pass the text to speak as arguments",
	)
}

// SpeechFailed reports an unusable speech provider outcome.
func SpeechFailed(provider, outcome string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("%s speech provider finished with %s", provider, outcome),
		"Re-run with --debug to see the provider's stderr",
	)
}

// ConfigFileNotFound reports a missing explicitly named config file.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Check the --config path or create the file",
	)
}

// ConfigParseError reports a config file that could not be parsed.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config %s", path),
		"Check the YAML syntax",
		"Run 'agentos config validate' for details",
	)
}

// RequiredExtensionsDisabled reports extensions that are required but disabled.
func RequiredExtensionsDisabled(problems []string) *CLIError {
	return NewConfigError(
		"configuration validation failed: "+strings.Join(problems, "; "),
		"Enable the extensions in your project config or AGENT_OS_EXTENSIONS_<NAME>_ENABLED",
		"Or remove 'required: true' from the base config",
	)
}

// ExtensionsDirNotFound reports a base directory without extensions.
func ExtensionsDirNotFound(dir string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("extensions directory not found: %s", dir),
		"Pass --base-dir pointing at an Agent OS checkout",
	)
}

// ExtensionInstallFailed reports a failed required extension.
func ExtensionInstallFailed(name string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("required extension '%s' failed to install", name),
		"Re-run with --debug for installer output",
	)
}

// TimeoutError reports an operation that exceeded its bound.
func TimeoutError(timeout time.Duration, operation string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("%s timed out after %s", operation, timeout),
		"Increase the timeout in config",
	)
}

// DirectoryNotFound reports a missing directory.
func DirectoryNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("directory not found: %s", path),
		"Create the directory or check the path",
	)
}

// FileNotWritable reports a file that cannot be written.
func FileNotWritable(path string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("cannot write file: %s", path),
		"Check file permissions",
	)
}
