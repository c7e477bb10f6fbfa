package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mblarsen/update-notifier-tray/internal/notify"
)

// Config represents the structure of the config.toml file.
type Config struct {
	LogLevel slog.Level
	Notifier string
	// NotifyRepeats announces a count again even when it has not changed.
	NotifyRepeats bool
	// ProbeTimeout bounds a single probe. Zero means no limit.
	ProbeTimeout time.Duration
	Terminals    []string
	// Intervals overrides the poll interval per distribution flag name.
	Intervals map[string]time.Duration
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel:  slog.LevelInfo,
		Notifier:  notify.BackendBeeep,
		Intervals: map[string]time.Duration{},
	}
}

// Interval returns the configured interval for a distribution, or zero.
func (c *Config) Interval(distro string) time.Duration {
	return c.Intervals[distro]
}

// Load reads a TOML file from the given path, validates it, and returns a
// Config struct. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var rawConfig struct {
		LogLevel      string            `toml:"log_level"`
		Notifier      string            `toml:"notifier"`
		NotifyRepeats bool              `toml:"notify_repeats"`
		ProbeTimeout  string            `toml:"probe_timeout"`
		Terminals     []string          `toml:"terminals"`
		Intervals     map[string]string `toml:"intervals"`
	}

	config := Default()
	if _, err := toml.DecodeFile(path, &rawConfig); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, err
	}

	if rawConfig.LogLevel != "" {
		if err := config.LogLevel.UnmarshalText([]byte(rawConfig.LogLevel)); err != nil {
			return nil, fmt.Errorf("log_level: %w", err)
		}
	}

	if rawConfig.Notifier != "" {
		notifier := strings.ToLower(rawConfig.Notifier)
		if !slices.Contains(notify.Backends, notifier) {
			return nil, fmt.Errorf("notifier: unknown backend '%s'", rawConfig.Notifier)
		}
		config.Notifier = notifier
	}

	config.NotifyRepeats = rawConfig.NotifyRepeats
	config.Terminals = rawConfig.Terminals

	if rawConfig.ProbeTimeout != "" {
		d, err := time.ParseDuration(rawConfig.ProbeTimeout)
		if err != nil {
			return nil, fmt.Errorf("probe_timeout: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("probe_timeout: must not be negative")
		}
		config.ProbeTimeout = d
	}

	for name, value := range rawConfig.Intervals {
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("intervals.%s: %w", name, err)
		}
		if d < time.Minute {
			return nil, fmt.Errorf("intervals.%s: must be at least 1m, got %s", name, d)
		}
		config.Intervals[name] = d
	}

	return config, nil
}

// WriteTemplate writes a commented configuration file holding the defaults.
func WriteTemplate(w io.Writer) error {
	_, err := io.WriteString(w, configTemplate)
	return err
}

const configTemplate = `# update-notifier-tray configuration

# Log verbosity: debug, info, warn or error.
log_level = "info"

# Notification backend: beeep, dbus or notify-send.
notifier = "beeep"

# Announce the update count again even when it has not changed.
notify_repeats = false

# Give up on a probe after this long. Empty means wait forever.
# probe_timeout = "30m"

# Terminal emulators tried in order to run the interactive upgrade.
terminals = ["konsole", "xterm"]

[intervals]
# gentoo = "5h"
# debian = "12h"
`
