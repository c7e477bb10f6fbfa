package distro

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// osReleasePath is read when lsb_release is not installed.
var osReleasePath = "/etc/os-release"

// ReleaseText returns the combined output of `lsb_release -a`, falling back
// to the contents of /etc/os-release.
func ReleaseText(ctx context.Context) (string, error) {
	if _, err := cmdExecer.LookPath("lsb_release"); err == nil {
		out, err := cmdExecer.CommandContext(ctx, "lsb_release", "-a").CombinedOutput()
		if err == nil {
			return string(out), nil
		}
		slog.Warn("lsb_release failed, falling back to os-release", "err", err)
	}

	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: neither lsb_release nor %s is available", ErrUnknownDistro, osReleasePath)
		}
		return "", fmt.Errorf("failed to read %s: %w", osReleasePath, err)
	}
	return string(data), nil
}

// DetectSystem identifies the running distribution.
func DetectSystem(ctx context.Context) (Policy, error) {
	text, err := ReleaseText(ctx)
	if err != nil {
		return Policy{}, err
	}
	p, err := Detect(text)
	if err != nil {
		return Policy{}, err
	}
	slog.Debug("Detected distribution", "distro", p.Label())
	return p, nil
}
