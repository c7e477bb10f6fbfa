// Package distro holds the per-distribution policies: how to count pending
// upgrades, how often, how to open the upgrade tool and how to recognise the
// running system.
package distro

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mblarsen/update-notifier-tray/internal/launcher"
	"github.com/mblarsen/update-notifier-tray/internal/probe"
)

// Kind identifies one of the supported distributions.
type Kind int

const (
	Gentoo Kind = iota
	Debian
)

// ErrUnknownDistro is returned when detection matches no known distribution.
var ErrUnknownDistro = errors.New("could not detect a supported distribution")

// Policy is the distribution-specific behaviour selected once at startup.
type Policy struct {
	kind     Kind
	interval time.Duration
}

// All returns every policy in detection order.
func All() []Policy {
	return []Policy{
		{kind: Gentoo},
		{kind: Debian},
	}
}

// New returns the policy for kind with its default interval.
func New(kind Kind) Policy {
	return Policy{kind: kind}
}

// ByFlag returns the policy whose command-line flag is name.
func ByFlag(name string) (Policy, error) {
	for _, p := range All() {
		if p.FlagName() == name {
			return p, nil
		}
	}
	return Policy{}, fmt.Errorf("unknown distribution: %s", name)
}

// Detect returns the first policy recognising osText, the output of an OS
// identification command.
func Detect(osText string) (Policy, error) {
	for _, p := range All() {
		if p.Detect(osText) {
			return p, nil
		}
	}
	return Policy{}, ErrUnknownDistro
}

// Kind returns the distribution this policy serves.
func (p Policy) Kind() Kind {
	return p.kind
}

// Label is the human readable distribution name.
func (p Policy) Label() string {
	switch p.kind {
	case Debian:
		return "Debian"
	default:
		return "Gentoo"
	}
}

// FlagName is the command-line flag that forces this policy.
func (p Policy) FlagName() string {
	return strings.ToLower(p.Label())
}

// Detect reports whether osText identifies this distribution.
func (p Policy) Detect(osText string) bool {
	switch p.kind {
	case Debian:
		return strings.Contains(osText, "Debian") || strings.Contains(osText, "Ubuntu")
	default:
		return strings.Contains(osText, "Gentoo")
	}
}

// DefaultInterval is the poll interval used when none is configured.
func (p Policy) DefaultInterval() time.Duration {
	switch p.kind {
	case Debian:
		return 12 * time.Hour
	default:
		return 5 * time.Hour
	}
}

// Interval is the time between two probes.
func (p Policy) Interval() time.Duration {
	if p.interval > 0 {
		return p.interval
	}
	return p.DefaultInterval()
}

// WithInterval returns a copy of p polling every d. Non-positive values keep
// the default.
func (p Policy) WithInterval(d time.Duration) Policy {
	p.interval = d
	return p
}

// ProbeCommand returns the query counting pending upgrades.
func (p Policy) ProbeCommand() probe.Command {
	switch p.kind {
	case Debian:
		return aptProbe()
	default:
		if _, err := cmdExecer.LookPath("eix"); err == nil {
			return eixProbe()
		}
		return emergeProbe()
	}
}

// UpdateAction returns how to open the interactive upgrade tool.
func (p Policy) UpdateAction() launcher.Action {
	switch p.kind {
	case Debian:
		return launcher.Action{
			Label: "Run gpk-update-viewer",
			Argv:  []string{"gpk-update-viewer"},
		}
	default:
		return launcher.Action{
			Label: `Run "emerge --ask --update ..."`,
			Shell: fmt.Sprintf("(set -x; sudo %s) ; cd ~; bash -i", strings.Join(emergeUpdateArgs, " ")),
		}
	}
}

func (p Policy) String() string {
	return p.Label()
}
