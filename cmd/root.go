package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags.
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "update-notifier-tray",
	Short: "Show pending distribution upgrades in the system tray.",
	Long: `update-notifier-tray periodically asks the package manager how many
packages can be upgraded. When there are any, it shows an icon in the system
tray and sends a desktop notification. Clicking the icon opens the
distribution's update tool.

The distribution is detected from lsb_release unless one of the distribution
flags is given.`,
	SilenceUsage: true,
	RunE:         runTray,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file.")
	addDistroFlags(rootCmd)
}

func Execute(ctx context.Context) {
	if err := fang.Execute(ctx, rootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
