//go:build !linux

package launcher

import "os/exec"

func detach(cmd *exec.Cmd) {}
