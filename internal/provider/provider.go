package provider

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Kind identifies the capability a provider implements.
type Kind int

const (
	// SpeechSynthesis providers speak a message aloud.
	SpeechSynthesis Kind = iota
	// TextCompletion providers print a short generated message on stdout.
	TextCompletion
)

// String returns the short name used on the command line and in logs.
func (k Kind) String() string {
	switch k {
	case SpeechSynthesis:
		return "tts"
	case TextCompletion:
		return "llm"
	default:
		return "unknown"
	}
}

// Dir returns the utilities subdirectory holding this kind's artifacts.
func (k Kind) Dir() string {
	return k.String()
}

// ParseKind converts a command-line name into a Kind.
// Accepts "tts"/"speech" and "llm"/"text" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tts", "speech":
		return SpeechSynthesis, nil
	case "llm", "text":
		return TextCompletion, nil
	default:
		return 0, fmt.Errorf("unknown capability kind %q (expected tts or llm)", s)
	}
}

// Provider is a named implementation of a capability.
type Provider struct {
	// Name identifies the provider (e.g., "gemini", "openai", "local").
	Name string
	// CredentialEnvVars lists environment variables, any one of which
	// satisfies the credential gate. Earlier names take precedence.
	// An empty list marks a keyless provider.
	CredentialEnvVars []string
	// Artifact is the executable file name inside the kind's directory.
	Artifact string
	// Rank orders providers within a kind; lower is preferred.
	Rank int
	// Kind is the capability this provider implements.
	Kind Kind
}

// Keyless reports whether the provider needs no credential.
func (p Provider) Keyless() bool {
	return len(p.CredentialEnvVars) == 0
}

// ArtifactPath returns the artifact location under utilsDir.
func (p Provider) ArtifactPath(utilsDir string) string {
	return filepath.Join(utilsDir, p.Kind.Dir(), executableName(p.Artifact))
}

// Candidates returns the static priority list for kind, ordered by rank.
// A fresh slice is built on every call so callers may not mutate shared state.
func Candidates(kind Kind) []Provider {
	switch kind {
	case TextCompletion:
		return []Provider{
			{Name: "gemini", CredentialEnvVars: []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"}, Artifact: "gemini-llm", Rank: 1, Kind: TextCompletion},
			{Name: "openai", CredentialEnvVars: []string{"OPENAI_API_KEY"}, Artifact: "openai-llm", Rank: 2, Kind: TextCompletion},
			{Name: "anthropic", CredentialEnvVars: []string{"ANTHROPIC_API_KEY"}, Artifact: "anthropic-llm", Rank: 3, Kind: TextCompletion},
		}
	case SpeechSynthesis:
		return []Provider{
			{Name: "gemini", CredentialEnvVars: []string{"GOOGLE_API_KEY"}, Artifact: "gemini-tts", Rank: 1, Kind: SpeechSynthesis},
			{Name: "openai", CredentialEnvVars: []string{"OPENAI_API_KEY"}, Artifact: "openai-tts", Rank: 2, Kind: SpeechSynthesis},
			{Name: "local", Artifact: "local-tts", Rank: 3, Kind: SpeechSynthesis},
		}
	default:
		return nil
	}
}

// Artifacts returns the artifact file names for kind in rank order,
// including the platform executable suffix.
func Artifacts(kind Kind) []string {
	candidates := Candidates(kind)
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, executableName(c.Artifact))
	}
	return names
}

func executableName(name string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(name, ".exe") {
		return name + ".exe"
	}
	return name
}
