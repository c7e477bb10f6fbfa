// Package launcher starts the interactive update tool of a distribution,
// either a graphical frontend or a terminal emulator running the upgrade.
package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// DefaultTerminals is the preference-ordered list of terminal emulators.
var DefaultTerminals = []string{"konsole", "xterm"}

// ErrNoTerminal is returned when none of the configured terminals is installed.
var ErrNoTerminal = errors.New("no terminal emulator found")

// Action describes how to open the update tool. Exactly one of Argv and Shell
// is set: Argv starts a graphical frontend directly, Shell is run through
// bash inside a terminal emulator.
type Action struct {
	Label string
	Argv  []string
	Shell string
}

// InTerminal reports whether the action needs a terminal emulator.
func (a Action) InTerminal() bool {
	return a.Shell != ""
}

// Launcher spawns update tools without waiting for them.
type Launcher struct {
	terminals []string
}

// New creates a launcher that tries terminals in order. An empty list selects
// DefaultTerminals.
func New(terminals []string) *Launcher {
	if len(terminals) == 0 {
		terminals = DefaultTerminals
	}
	return &Launcher{terminals: terminals}
}

// Terminal returns the first installed terminal emulator.
func (l *Launcher) Terminal() (string, error) {
	for _, term := range l.terminals {
		if _, err := cmdExecer.LookPath(term); err == nil {
			return term, nil
		}
	}
	return "", fmt.Errorf("%w (tried %v)", ErrNoTerminal, l.terminals)
}

// Launch starts the action as a detached child. The child is reaped in the
// background so it never lingers as a zombie.
func (l *Launcher) Launch(a Action) error {
	var argv []string
	switch {
	case a.InTerminal():
		term, err := l.Terminal()
		if err != nil {
			return err
		}
		argv = []string{term, "-e", "bash", "-c", a.Shell}
	case len(a.Argv) > 0:
		argv = a.Argv
	default:
		return errors.New("update action has no command")
	}

	cmd := cmdExecer.Command(argv[0], argv[1:]...)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start '%s': %w", argv[0], err)
	}
	slog.Info("Started update tool", "command", argv[0], "pid", cmd.Process.Pid)

	go reap(cmd)
	return nil
}

func reap(cmd *exec.Cmd) {
	if err := cmd.Wait(); err != nil {
		slog.Debug("Update tool exited", "command", cmd.Path, "err", err)
	}
}
