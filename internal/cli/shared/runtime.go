package shared

import (
	"fmt"
	"os"

	"github.com/agent-os/agentos/internal/config"
	apperrors "github.com/agent-os/agentos/internal/errors"
	"github.com/agent-os/agentos/internal/logging"
	"github.com/agent-os/agentos/internal/project"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Runtime bundles what most commands need: layered configuration, the
// decoded settings and the project they run in.
type Runtime struct {
	Config   *config.Manager
	Settings *config.Settings
	Project  *project.Info
	Debug    bool
}

// AddConfigFlags registers the persistent flags read by LoadRuntime.
func AddConfigFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to base config file (default $AGENT_OS_CONFIG_FILE or ~/.agent-os/config.yml)")
	cmd.PersistentFlags().String("project-dir", "", "Project directory (default: git root of the working directory)")
}

// LoadRuntime loads the .env file, layered configuration and project info.
func LoadRuntime(cmd *cobra.Command) (*Runtime, error) {
	if err := config.LoadDotenv(); err != nil {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	projectDir, _ := cmd.Flags().GetString("project-dir")
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		projectDir = wd
	}
	info, err := project.Detect(project.DefaultOpener{}, projectDir)
	if err != nil {
		return nil, fmt.Errorf("detecting project: %w", err)
	}

	basePath, _ := cmd.Flags().GetString("config")
	if basePath == "" {
		basePath = config.BaseConfigPath()
	} else if _, err := os.Stat(basePath); err != nil {
		return nil, apperrors.ConfigFileNotFound(basePath)
	}

	mgr := config.NewManager()
	if err := mgr.Load(basePath, config.ProjectConfigPath(info.Root)); err != nil {
		return nil, err
	}
	settings, err := mgr.Settings()
	if err != nil {
		return nil, err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	return &Runtime{
		Config:   mgr,
		Settings: settings,
		Project:  info,
		Debug:    debug || settings.Debug,
	}, nil
}

// Logger returns a console logger on stderr at the runtime's level.
func (r *Runtime) Logger() zerolog.Logger {
	return logging.Console(os.Stderr, r.Debug)
}
