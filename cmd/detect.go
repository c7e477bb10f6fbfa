package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show which distribution policy would be used.",
	Long:  `Detects the running distribution and prints the policy that would be used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		policy, err := resolvePolicy(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		action := policy.UpdateAction()
		fmt.Fprintf(w, "Distribution: %s\n", policy.Label())
		fmt.Fprintf(w, "Probe:        %s\n", policy.ProbeCommand())
		fmt.Fprintf(w, "Interval:     %s\n", policy.Interval())
		fmt.Fprintf(w, "Update tool:  %s\n", action.Label)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
