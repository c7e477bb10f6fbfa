package launcher

import "os/exec"

// execer is an interface to allow mocking of exec.Command and exec.LookPath.
type execer interface {
	Command(name string, arg ...string) *exec.Cmd
	LookPath(file string) (string, error)
}

type realExecer struct{}

func (e *realExecer) Command(name string, arg ...string) *exec.Cmd {
	return exec.Command(name, arg...)
}

func (e *realExecer) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Overridable for testing.
var cmdExecer execer = &realExecer{}
