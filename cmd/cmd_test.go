package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mblarsen/update-notifier-tray/internal/config"
	"github.com/mblarsen/update-notifier-tray/internal/distro"
	"github.com/mblarsen/update-notifier-tray/internal/launcher"
	"github.com/mblarsen/update-notifier-tray/internal/poller"
	"github.com/mblarsen/update-notifier-tray/internal/tray"
)

// fakeTools puts shell scripts named after package manager tools first and
// alone on PATH.
func fakeTools(t *testing.T, tools map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, script := range tools {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755))
	}
	t.Setenv("PATH", dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	configPath = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

const emergeTwoUpdates = `printf '[ebuild] a\n[ebuild] b\nsomething else\n'`

func TestCheckCmd(t *testing.T) {
	t.Run("text output", func(t *testing.T) {
		fakeTools(t, map[string]string{"emerge": emergeTwoUpdates})

		out, err := execute(t, "check", "--gentoo")
		require.NoError(t, err)
		assert.Equal(t, "Gentoo: There are 2 updates available\n", out)
	})

	t.Run("json output", func(t *testing.T) {
		fakeTools(t, map[string]string{"emerge": emergeTwoUpdates})

		out, err := execute(t, "check", "--gentoo", "--output", "json")
		require.NoError(t, err)

		var report checkReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, 2, report.Updates)
		assert.Equal(t, "Gentoo", report.Distro)
		assert.Empty(t, report.Error)
	})

	t.Run("yaml output", func(t *testing.T) {
		fakeTools(t, map[string]string{"apt-get": `printf 'Inst libc6 [1] (2)\nConf libc6 (2)\n'`})

		out, err := execute(t, "check", "--debian", "-o", "yaml")
		require.NoError(t, err)

		var report checkReport
		require.NoError(t, yaml.Unmarshal([]byte(out), &report))
		assert.Equal(t, 1, report.Updates)
		assert.Equal(t, "There is 1 update available", report.Message)
	})

	t.Run("toml output", func(t *testing.T) {
		fakeTools(t, map[string]string{"emerge": "true"})

		out, err := execute(t, "check", "--gentoo", "-o", "toml")
		require.NoError(t, err)
		assert.Contains(t, out, `updates = 0`)
		assert.Contains(t, out, `message = "The system is up to date"`)
	})

	t.Run("eix is preferred when installed", func(t *testing.T) {
		fakeTools(t, map[string]string{
			"eix":    `[ "$EIX_LIMIT" = 0 ] && printf 'app-misc/foo\nsys-apps/bar\nx11-libs/baz\n'`,
			"emerge": emergeTwoUpdates,
		})

		out, err := execute(t, "check", "--gentoo")
		require.NoError(t, err)
		assert.Contains(t, out, "There are 3 updates available")
	})

	t.Run("report names the command that ran", func(t *testing.T) {
		fakeTools(t, map[string]string{
			"eix":    `printf 'app-misc/foo\n'`,
			"emerge": emergeTwoUpdates,
		})

		out, err := execute(t, "check", "--gentoo", "-o", "json")
		require.NoError(t, err)

		var report checkReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, "eix --upgrade --only-names", report.Command)
		assert.Equal(t, 1, report.Updates)
	})

	t.Run("failing probe exits with an error", func(t *testing.T) {
		fakeTools(t, map[string]string{"emerge": emergeTwoUpdates + "; exit 1"})

		out, err := execute(t, "check", "--gentoo")
		require.Error(t, err)
		assert.Contains(t, out, "can't check for updates")
	})

	t.Run("unknown output format", func(t *testing.T) {
		fakeTools(t, map[string]string{"emerge": "true"})

		_, err := execute(t, "check", "--gentoo", "-o", "xml")
		assert.ErrorContains(t, err, "unknown output format")
	})

	t.Run("distribution flags are mutually exclusive", func(t *testing.T) {
		fakeTools(t, map[string]string{"emerge": "true"})

		_, err := execute(t, "check", "--gentoo", "--debian")
		assert.Error(t, err)
	})
}

func TestDetectCmd(t *testing.T) {
	t.Run("gentoo", func(t *testing.T) {
		fakeTools(t, map[string]string{"lsb_release": `echo "Distributor ID: Gentoo"`})

		out, err := execute(t, "detect")
		require.NoError(t, err)
		assert.Contains(t, out, "Distribution: Gentoo")
		assert.Contains(t, out, "Interval:     5h0m0s")
	})

	t.Run("configured interval", func(t *testing.T) {
		fakeTools(t, map[string]string{"lsb_release": `echo "Distributor ID: Debian"`})
		cfgFile := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("[intervals]\ndebian = \"3h\"\n"), 0644))

		out, err := execute(t, "detect", "--config", cfgFile)
		require.NoError(t, err)
		assert.Contains(t, out, "Distribution: Debian")
		assert.Contains(t, out, "Interval:     3h0m0s")
	})

	t.Run("flag overrides detection", func(t *testing.T) {
		fakeTools(t, map[string]string{"lsb_release": `echo "Distributor ID: Gentoo"`})

		out, err := execute(t, "detect", "--debian")
		require.NoError(t, err)
		assert.Contains(t, out, "Distribution: Debian")
		assert.Contains(t, out, "Update tool:  Run gpk-update-viewer")
	})

	t.Run("unknown distribution", func(t *testing.T) {
		fakeTools(t, map[string]string{"lsb_release": `echo "Distributor ID: Fedora"`})

		_, err := execute(t, "detect")
		require.Error(t, err)
		assert.True(t, errors.Is(err, distro.ErrUnknownDistro))
		assert.Contains(t, err.Error(), "--gentoo, --debian")
	})
}

func TestRootCmd(t *testing.T) {
	original := runTrayApp
	defer func() { runTrayApp = original }()

	t.Run("no UI when detection fails", func(t *testing.T) {
		started := false
		runTrayApp = func(app *tray.App) { started = true }
		fakeTools(t, map[string]string{"lsb_release": `echo "Distributor ID: Fedora"`})

		_, err := execute(t)
		require.Error(t, err)
		assert.True(t, errors.Is(err, distro.ErrUnknownDistro))
		assert.False(t, started)
	})

	t.Run("invalid config is fatal", func(t *testing.T) {
		started := false
		runTrayApp = func(app *tray.App) { started = true }
		fakeTools(t, map[string]string{})
		cfgFile := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(cfgFile, []byte(`notifier = "pigeon"`), 0644))

		_, err := execute(t, "--gentoo", "--config", cfgFile)
		assert.ErrorContains(t, err, "failed to load config")
		assert.False(t, started)
	})

	t.Run("help lists the distribution flags", func(t *testing.T) {
		out, err := execute(t, "--help")
		require.NoError(t, err)
		assert.Contains(t, out, "--gentoo")
		assert.Contains(t, out, "--debian")
	})
}

func TestConfigCmd(t *testing.T) {
	t.Run("init writes the template", func(t *testing.T) {
		fakeTools(t, map[string]string{})

		out, err := execute(t, "config", "init")
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote configuration to")

		path, err := execute(t, "config", "path")
		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Clean(path[:len(path)-1]))
		require.NoError(t, err)
		assert.Contains(t, string(content), `notifier = "beeep"`)

		_, err = execute(t, "config", "init")
		assert.ErrorContains(t, err, "already exists")

		_, err = execute(t, "config", "init", "--force")
		assert.NoError(t, err)
	})
}

type recordingSurface struct {
	tooltip string
	visible bool
}

func (s *recordingSurface) SetIcon(icon tray.Icon) {}
func (s *recordingSurface) SetTooltip(text string) { s.tooltip = text }
func (s *recordingSurface) Show()                  { s.visible = true }
func (s *recordingSurface) Hide()                  { s.visible = false }

func TestRunTray(t *testing.T) {
	originalNew, originalRun := newTrayApp, runTrayApp
	defer func() { newTrayApp, runTrayApp = originalNew, originalRun }()

	fakeTools(t, map[string]string{
		"emerge":      emergeTwoUpdates,
		"notify-send": `printf '%s\n' "$*" >> "$NOTIFY_LOG"`,
	})
	notifyLog := filepath.Join(t.TempDir(), "notifications")
	t.Setenv("NOTIFY_LOG", notifyLog)
	cfgFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("notifier = \"notify-send\"\nnotify_repeats = true\n"), 0644))

	var (
		worker  *poller.Worker
		policy  tray.NotifyPolicy
		surface = &recordingSurface{}
	)
	newTrayApp = func(w tray.Worker, l tray.Launcher, n tray.Notifier, action launcher.Action, p tray.NotifyPolicy) *tray.App {
		worker = w.(*poller.Worker)
		policy = p
		return tray.NewApp(w, tray.NewPresenter(surface, n, p), l, action, n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runTrayApp = func(app *tray.App) {
		dispatched := make(chan struct{})
		go func() {
			app.Dispatch()
			close(dispatched)
		}()

		assert.Eventually(t, func() bool {
			data, _ := os.ReadFile(notifyLog)
			return len(data) > 0
		}, 5*time.Second, 10*time.Millisecond)

		// Same path as SIGTERM: the command context ends.
		cancel()
		select {
		case <-dispatched:
		case <-time.After(5 * time.Second):
			t.Fatal("dispatch did not finish after shutdown")
		}
	}

	resetFlags(rootCmd)
	configPath = ""
	rootCmd.SetArgs([]string{"--gentoo", "--config", cfgFile})
	require.NoError(t, rootCmd.ExecuteContext(ctx))

	require.NotNil(t, worker)
	select {
	case <-worker.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker was not stopped")
	}
	assert.Equal(t, poller.Stopped, worker.State())
	assert.Equal(t, tray.NotifyEveryTime, policy)
	assert.True(t, surface.visible)
	assert.Equal(t, "There are 2 updates available", surface.tooltip)

	data, err := os.ReadFile(notifyLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Updates available There are 2 updates available")
}

func TestNotifyPolicy(t *testing.T) {
	assert.Equal(t, tray.SuppressRepeats, notifyPolicy(config.Default()))
	assert.Equal(t, tray.NotifyEveryTime, notifyPolicy(&config.Config{NotifyRepeats: true}))
}
