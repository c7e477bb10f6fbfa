package distro

import "github.com/mblarsen/update-notifier-tray/internal/probe"

var emergePretendArgs = []string{
	"--ignore-default-opts",
	"--pretend",
	"--verbose", "--color", "n",
	"--complete-graph", "--deep", "--update",
	"@world",
}

var emergeUpdateArgs = []string{
	"emerge",
	"--ask",
	"--verbose", "--tree", "--quiet",
	"--complete-graph", "--deep", "--update",
	"--keep-going",
	"@world",
}

// emergeProbe resolves the world set and counts the ebuilds it would merge.
func emergeProbe() probe.Command {
	return probe.Command{
		Name:  "emerge",
		Args:  emergePretendArgs,
		Match: probe.HasPrefix("[ebuild"),
	}
}

// eixProbe queries the eix cache, which is far cheaper than a dependency
// resolution. EIX_LIMIT=0 lifts the cap on printed matches, and eix exits 1
// when nothing matches.
func eixProbe() probe.Command {
	return probe.Command{
		Name:         "eix",
		Args:         []string{"--upgrade", "--only-names"},
		Env:          []string{"EIX_LIMIT=0"},
		Match:        probe.NonBlank(),
		SuccessCodes: []int{1},
	}
}
