package provider

import (
	"github.com/rs/zerolog"
)

// SkipReason explains why a candidate was passed over.
type SkipReason int

const (
	// CredentialMissing means none of the provider's credential variables is set.
	CredentialMissing SkipReason = iota
	// ArtifactMissing means the credential gate passed but the artifact is absent.
	ArtifactMissing
)

// String returns a human-readable representation of the reason.
func (r SkipReason) String() string {
	switch r {
	case CredentialMissing:
		return "credential missing"
	case ArtifactMissing:
		return "artifact missing"
	default:
		return "unknown"
	}
}

// Skip records a candidate that was not selected.
type Skip struct {
	Provider Provider
	Path     string
	Reason   SkipReason
}

// Resolution is the result of a resolve call.
type Resolution struct {
	// Kind is the capability that was resolved.
	Kind Kind
	// Provider is the selected provider, nil when none matched.
	Provider *Provider
	// Path is the selected artifact path, empty when none matched.
	Path string
	// Credential is the variable that satisfied the gate (empty for keyless).
	Credential string
	// Skipped lists higher-ranked candidates passed over, in rank order.
	Skipped []Skip
}

// Found reports whether a provider was selected.
func (r Resolution) Found() bool {
	return r.Provider != nil
}

// Resolver resolves providers relative to a utilities directory.
type Resolver struct {
	utilsDir string
	logger   zerolog.Logger
}

// NewResolver creates a Resolver rooted at utilsDir.
func NewResolver(utilsDir string, logger zerolog.Logger) *Resolver {
	return &Resolver{utilsDir: utilsDir, logger: logger}
}

// UtilsDir returns the utilities directory artifacts are resolved under.
func (r *Resolver) UtilsDir() string {
	return r.utilsDir
}

// Resolve selects the first provider of kind, in rank order, that has a
// credential present in env and an artifact present in fsys.
func (r *Resolver) Resolve(kind Kind, env Env, fsys Filesystem) Resolution {
	res := Resolution{Kind: kind}

	for _, candidate := range Candidates(kind) {
		path := candidate.ArtifactPath(r.utilsDir)

		credential, ok := credentialGate(candidate, env)
		if !ok {
			res.Skipped = append(res.Skipped, Skip{Provider: candidate, Path: path, Reason: CredentialMissing})
			continue
		}

		if !fsys.Exists(path) {
			r.logger.Debug().
				Str("kind", kind.String()).
				Str("provider", candidate.Name).
				Str("path", path).
				Msg("provider credential present but artifact missing")
			res.Skipped = append(res.Skipped, Skip{Provider: candidate, Path: path, Reason: ArtifactMissing})
			continue
		}

		selected := candidate
		res.Provider = &selected
		res.Path = path
		res.Credential = credential
		r.logger.Debug().
			Str("kind", kind.String()).
			Str("provider", candidate.Name).
			Str("path", path).
			Msg("provider resolved")
		return res
	}

	r.logger.Debug().Str("kind", kind.String()).Msg("no provider available")
	return res
}

// Resolve is a convenience wrapper that resolves without logging.
func Resolve(kind Kind, utilsDir string, env Env, fsys Filesystem) Resolution {
	return NewResolver(utilsDir, zerolog.Nop()).Resolve(kind, env, fsys)
}

// credentialGate returns the first credential variable that is set and
// non-empty. Whitespace-only values count as present. Keyless providers
// always pass.
func credentialGate(p Provider, env Env) (string, bool) {
	if p.Keyless() {
		return "", true
	}
	for _, name := range p.CredentialEnvVars {
		if v, ok := env.LookupEnv(name); ok && v != "" {
			return name, true
		}
	}
	return "", false
}
