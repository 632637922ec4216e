package provider

import (
	"os"
	"path/filepath"
)

// Env is a read-only view of environment variables.
type Env interface {
	LookupEnv(key string) (string, bool)
}

// Filesystem is a read-only view answering whether an artifact exists.
type Filesystem interface {
	Exists(path string) bool
}

// OSEnv reads the process environment.
type OSEnv struct{}

// LookupEnv implements Env using os.LookupEnv.
func (OSEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is a fixed environment, mainly for tests and dry runs.
type MapEnv map[string]string

// LookupEnv implements Env.
func (m MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// OSFilesystem checks the real filesystem. Directories do not count as artifacts.
type OSFilesystem struct{}

// Exists implements Filesystem.
func (OSFilesystem) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// SetFilesystem is an in-memory Filesystem holding a fixed set of paths.
type SetFilesystem map[string]bool

// NewSetFilesystem builds a SetFilesystem from the given paths.
func NewSetFilesystem(paths ...string) SetFilesystem {
	s := make(SetFilesystem, len(paths))
	for _, p := range paths {
		s[filepath.Clean(p)] = true
	}
	return s
}

// Exists implements Filesystem.
func (s SetFilesystem) Exists(path string) bool {
	return s[filepath.Clean(path)]
}
