package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Home returns the Agent OS base directory: $AGENT_OS_HOME or ~/.agent-os.
func Home() string {
	if h := os.Getenv("AGENT_OS_HOME"); h != "" {
		return expandHomePath(h)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".agent-os"
	}
	return filepath.Join(homeDir, ".agent-os")
}

// BaseConfigPath returns $AGENT_OS_CONFIG_FILE or <Home>/config.yml.
func BaseConfigPath() string {
	if p := os.Getenv("AGENT_OS_CONFIG_FILE"); p != "" {
		return expandHomePath(p)
	}
	return filepath.Join(Home(), ConfigFileName)
}

// ProjectConfigPath returns the project config path under root.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, ProjectDirName, ConfigFileName)
}

// LoadDotenv loads provider credentials from $CCAOS_ENV_FILE, or from .env
// in the working directory. Existing variables are never overwritten and a
// missing file is not an error.
func LoadDotenv() error {
	path := os.Getenv("CCAOS_ENV_FILE")
	if path == "" {
		path = ".env"
	}
	path = expandHomePath(path)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}
