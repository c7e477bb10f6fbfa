package distro

import (
	"context"
	"os/exec"
)

// execer is an interface to allow mocking of exec.CommandContext and exec.LookPath.
type execer interface {
	CommandContext(ctx context.Context, name string, arg ...string) *exec.Cmd
	LookPath(file string) (string, error)
}

type realExecer struct{}

func (e *realExecer) CommandContext(ctx context.Context, name string, arg ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, arg...)
}

func (e *realExecer) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Overridable for testing.
var cmdExecer execer = &realExecer{}
