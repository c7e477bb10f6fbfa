package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mblarsen/update-notifier-tray/internal/config"
	"github.com/mblarsen/update-notifier-tray/internal/distro"
	"github.com/mblarsen/update-notifier-tray/internal/launcher"
	"github.com/mblarsen/update-notifier-tray/internal/notify"
	"github.com/mblarsen/update-notifier-tray/internal/poller"
	"github.com/mblarsen/update-notifier-tray/internal/probe"
	"github.com/mblarsen/update-notifier-tray/internal/tray"
)

// Overridable for testing.
var (
	newTrayApp = tray.NewSystrayApp
	runTrayApp = func(app *tray.App) {
		app.Run()
	}
)

// probeCommand builds the policy's probe command with the configured timeout.
func probeCommand(policy distro.Policy, cfg *config.Config) probe.Command {
	c := policy.ProbeCommand()
	c.Timeout = cfg.ProbeTimeout
	return c
}

// probeFunc returns the probe the worker runs. The command is rebuilt every
// time so a freshly installed eix is picked up.
func probeFunc(policy distro.Policy, cfg *config.Config) poller.ProbeFunc {
	return func(ctx context.Context) probe.Result {
		return probe.Run(ctx, probeCommand(policy, cfg))
	}
}

func notifyPolicy(cfg *config.Config) tray.NotifyPolicy {
	if cfg.NotifyRepeats {
		return tray.NotifyEveryTime
	}
	return tray.SuppressRepeats
}

func runTray(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := resolvePolicy(ctx, cfg)
	if err != nil {
		return err
	}
	slog.Info("Starting update notifier", "distro", policy.Label(), "interval", policy.Interval())

	notifier, err := notify.New(cfg.Notifier, notify.DefaultAppName)
	if err != nil {
		return fmt.Errorf("failed to set up notifications: %w", err)
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			slog.Warn("Failed to close notifier", "err", err)
		}
	}()

	worker := poller.NewWorker(probeFunc(policy, cfg), policy.Interval(), &poller.RealClock{})
	app := newTrayApp(worker, launcher.New(cfg.Terminals), notifier, policy.UpdateAction(), notifyPolicy(cfg))

	go func() {
		<-ctx.Done()
		slog.Debug("Shutdown requested")
		app.Exit()
	}()

	worker.Start(ctx)
	runTrayApp(app)
	return nil
}
