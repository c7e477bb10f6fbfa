package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mblarsen/update-notifier-tray/internal/probe"
	"github.com/mblarsen/update-notifier-tray/internal/tray"
)

// checkReport is the result of a one-shot probe.
type checkReport struct {
	Distro   string `json:"distro" yaml:"distro" toml:"distro"`
	Command  string `json:"command" yaml:"command" toml:"command"`
	Updates  int    `json:"updates" yaml:"updates" toml:"updates"`
	Message  string `json:"message" yaml:"message" toml:"message"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	Interval string `json:"interval" yaml:"interval" toml:"interval"`
}

var checkOutput string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe for pending upgrades once and print the result.",
	Long: `Runs the package manager query of the selected distribution once and
prints the number of pending upgrades. Exits with status 1 if the query fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		policy, err := resolvePolicy(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		probeCmd := probeCommand(policy, cfg)
		res := probe.Run(cmd.Context(), probeCmd)
		report := checkReport{
			Distro:   policy.Label(),
			Command:  probeCmd.String(),
			Updates:  res.Count,
			Interval: policy.Interval().String(),
		}
		if res.OK() {
			report.Message = updatesText(res.Count)
		} else {
			report.Message = "can't check for updates"
			report.Error = res.Err.Error()
		}

		if err := writeReport(cmd.OutOrStdout(), checkOutput, report); err != nil {
			return err
		}
		if !res.OK() {
			return fmt.Errorf("probe failed: %w", res.Err)
		}
		return nil
	},
}

func updatesText(n int) string {
	if n == 0 {
		return "The system is up to date"
	}
	return tray.UpdatesMessage(n)
}

func writeReport(w io.Writer, format string, report checkReport) error {
	switch format {
	case "", "text":
		_, err := fmt.Fprintf(w, "%s: %s\n", report.Distro, report.Message)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(report)
	case "toml":
		return toml.NewEncoder(w).Encode(report)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func init() {
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "text", "Output format: text, json, yaml or toml.")
	rootCmd.AddCommand(checkCmd)
}
