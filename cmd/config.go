package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mblarsen/update-notifier-tray/internal/config"
	"github.com/mblarsen/update-notifier-tray/internal/fileutil"
	"github.com/mblarsen/update-notifier-tray/internal/xdgpath"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file.",
	Long:  `Manage the configuration file.`,
}

func targetConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return xdgpath.ConfigPath("config.toml")
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the configuration file.",
	Long:  `Print the path of the configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := targetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults.",
	Long:  `Write a commented configuration file holding the default settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := targetConfigPath()
		if err != nil {
			return err
		}
		if force, _ := cmd.Flags().GetBool("force"); !force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists, use --force to overwrite it", path)
			}
		}

		var buf bytes.Buffer
		if err := config.WriteTemplate(&buf); err != nil {
			return err
		}
		created, err := fileutil.AtomicWriteFile(path, buf.Bytes(), 0644)
		if err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote configuration to %s\n", path)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Overwrote configuration at %s\n", path)
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing configuration file.")
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
