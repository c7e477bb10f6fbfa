package distro

import "github.com/mblarsen/update-notifier-tray/internal/probe"

// aptProbe simulates an upgrade; every package apt would install is printed
// on an "Inst" line.
func aptProbe() probe.Command {
	return probe.Command{
		Name:  "apt-get",
		Args:  []string{"--simulate", "--quiet", "upgrade"},
		Env:   []string{"LANG=C"},
		Match: probe.HasPrefix("Inst "),
	}
}
