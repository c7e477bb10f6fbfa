package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mblarsen/update-notifier-tray/internal/config"
	"github.com/mblarsen/update-notifier-tray/internal/distro"
)

// distroFlags holds the value of each distribution flag by flag name.
var distroFlags = map[string]*bool{}

// addDistroFlags registers one mutually exclusive flag per distribution.
func addDistroFlags(cmd *cobra.Command) {
	var names []string
	for _, p := range distro.All() {
		on := new(bool)
		cmd.PersistentFlags().BoolVar(on, p.FlagName(), false, fmt.Sprintf("Force the %s policy instead of detecting it.", p.Label()))
		distroFlags[p.FlagName()] = on
		names = append(names, p.FlagName())
	}
	cmd.MarkFlagsMutuallyExclusive(names...)
}

func distroFlagList() string {
	var flags []string
	for _, p := range distro.All() {
		flags = append(flags, "--"+p.FlagName())
	}
	return strings.Join(flags, ", ")
}

// resolvePolicy picks the forced policy or detects the running distribution,
// then applies the configured interval.
func resolvePolicy(ctx context.Context, cfg *config.Config) (distro.Policy, error) {
	var policy distro.Policy
	forced := ""
	for name, on := range distroFlags {
		if *on {
			forced = name
			break
		}
	}

	if forced != "" {
		p, err := distro.ByFlag(forced)
		if err != nil {
			return distro.Policy{}, err
		}
		policy = p
	} else {
		detected, err := distro.DetectSystem(ctx)
		if err != nil {
			return distro.Policy{}, fmt.Errorf("%w; pass one of %s to choose one", err, distroFlagList())
		}
		policy = detected
	}

	return policy.WithInterval(cfg.Interval(policy.FlagName())), nil
}
