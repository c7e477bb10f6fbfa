// Package probe runs a package manager query and counts the pending upgrades
// it reports.
package probe

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"
)

// LineMatcher reports whether a line of probe output denotes a pending upgrade.
type LineMatcher func(line string) bool

// HasPrefix matches lines starting with marker.
func HasPrefix(marker string) LineMatcher {
	return func(line string) bool {
		return strings.HasPrefix(line, marker)
	}
}

// NonBlank matches every line that is not empty after trimming whitespace.
func NonBlank() LineMatcher {
	return func(line string) bool {
		return strings.TrimSpace(line) != ""
	}
}

// Command describes an external package manager query.
type Command struct {
	Name string
	Args []string
	// Env is appended to the inherited environment of the child only.
	Env []string
	// Match selects the output lines that are counted.
	Match LineMatcher
	// SuccessCodes lists non-zero exit codes that still mean the query ran.
	SuccessCodes []int
	// Timeout bounds the child's runtime. Zero means no limit.
	Timeout time.Duration
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// ExitError is returned when the probe command exits with a non-zero status.
type ExitError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Run executes c with stderr discarded and counts the matching lines of its
// standard output. Any non-zero exit that is not listed in c.SuccessCodes, or
// a failure to start the command, yields an error result regardless of what
// was printed.
func Run(ctx context.Context, c Command) Result {
	if c.Name == "" {
		return Failed(errors.New("probe command is empty"))
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := cmdExecer.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stderr = io.Discard
	if c.Timeout > 0 {
		// Grandchildren may hold stdout open after the kill.
		cmd.WaitDelay = 2 * time.Second
	}
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	slog.Debug("Running probe", "command", c.String())
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Failed(fmt.Errorf("failed to execute '%s': %w", c.Name, err))
		}
		if !slices.Contains(c.SuccessCodes, exitErr.ExitCode()) {
			return Failed(&ExitError{
				Command:  c.Name,
				ExitCode: exitErr.ExitCode(),
				Err:      err,
			})
		}
	}

	match := c.Match
	if match == nil {
		match = NonBlank()
	}
	n, err := countLines(output, match)
	if err != nil {
		return Failed(fmt.Errorf("failed to read output of '%s': %w", c.Name, err))
	}
	return Count(n)
}

func countLines(output []byte, match LineMatcher) (int, error) {
	n := 0
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if match(scanner.Text()) {
			n++
		}
	}
	return n, scanner.Err()
}
