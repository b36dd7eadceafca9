package runtimeinit

import (
	"fmt"

	"go.uber.org/zap"

	"translate-tool/src/config"
	"translate-tool/src/logutil"
)

type Options struct {
	LoadOptions config.LoadOptions
	// Quiet discards all log output (CLI without -v).
	Quiet bool

	// LogToStderr keeps stdout free for command output.
	LogToStderr bool

	// InitClipboard prepares the OS clipboard; nil skips it.
	InitClipboard func() error
}

// Runtime is everything a binary needs after startup. Config and Settings are
// read once here and never change afterwards.
type Runtime struct {
	Config   *config.Config
	Settings *config.Settings
	Logger   *zap.SugaredLogger
}

func Bootstrap(opts Options) (*Runtime, error) {
	settings, settingsErr := config.LoadSettings()

	logger := logutil.Nop()
	if !opts.Quiet {
		var err error
		logger, err = logutil.Setup(logutil.Options{
			Level:             settings.LogLevel,
			EnableFileLogging: settings.EnableFileLogging,
			FilePath:          settings.LogFile,
			Stderr:            opts.LogToStderr,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to set up logging: %w", err)
		}
	}
	if settingsErr != nil {
		logger.Warnw("Invalid runtime settings; using defaults", "error", settingsErr)
	}
	if settings.EnvPath != "" {
		logger.Infow("Loaded environment file", "path", settings.EnvPath)
	}

	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Infow("Configuration loaded",
		"path", cfg.Path,
		"api_url", cfg.APIURL,
		"model", cfg.Model,
		"api_key", logutil.RedactKey(cfg.APIKey))

	if opts.InitClipboard != nil {
		if err := opts.InitClipboard(); err != nil {
			return nil, fmt.Errorf("failed to initialize clipboard: %w", err)
		}
	}

	return &Runtime{Config: cfg, Settings: settings, Logger: logger}, nil
}
