// Package run provides a thin abstraction over host command execution.
//
// Capability providers never call os/exec directly; they go through a
// Runner so tests can substitute a scripted fake and assert on the exact
// commands a provider issues.
package run

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes host commands.
type Runner interface {
	// Run executes a command and returns its combined output.
	// A non-zero exit status is returned as an error wrapping the output.
	Run(ctx context.Context, name string, args ...string) (string, error)

	// LookPath reports the absolute path of a binary, or an error if it
	// is not present on PATH.
	LookPath(name string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner creates a Runner that executes commands on the host.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	// #nosec G204 - command names and arguments come from typed provider
	// code paths, never from raw user input.
	cmd := exec.CommandContext(ctx, name, args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		return buf.String(), fmt.Errorf("%s %s: %w: %s",
			name, strings.Join(args, " "), err, strings.TrimSpace(buf.String()))
	}
	return buf.String(), nil
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
