package cmd

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/mblarsen/update-notifier-tray/internal/config"
	"github.com/mblarsen/update-notifier-tray/internal/xdgpath"
)

const logLevelEnv = "UPDATE_NOTIFIER_LOG_LEVEL"

// setupLogger installs a tint handler. The environment variable wins over
// the configured level.
func setupLogger(w io.Writer, level slog.Level) {
	if levelStr := os.Getenv(logLevelEnv); levelStr != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(levelStr)); err == nil {
			level = l
		}
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

// loadConfig reads the --config file or the default one under
// $XDG_CONFIG_HOME and sets up logging from it.
func loadConfig(w io.Writer) (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = xdgpath.ConfigPath("config.toml")
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	setupLogger(w, cfg.LogLevel)
	slog.Debug("Loaded config", "path", path)
	return cfg, nil
}
