package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fulkit/fulkit/internal/config"
	"github.com/fulkit/fulkit/internal/provision"
)

// Build fetches the pinned upstream source into a clean working
// directory, compiles it, and installs the binary to its fixed path.
type Build struct {
	opts Options
}

// NewBuild creates the source builder.
func NewBuild(opts Options) *Build {
	return &Build{opts: opts}
}

// pinnedVersion is the version string the installed binary must report.
func pinnedVersion() string {
	return strings.TrimPrefix(config.RepoTag, "v")
}

// Satisfied reports whether the installed binary exists and reports the
// pinned version. An older binary triggers a rebuild, not an error.
func (b *Build) Satisfied(ctx context.Context) (bool, error) {
	binary := b.opts.hostPath(config.BinaryPath)
	if _, err := os.Stat(binary); err != nil {
		return false, nil
	}
	out, err := b.opts.Runner.Run(ctx, binary, "--version")
	if err != nil {
		return false, nil
	}
	return strings.Contains(out, pinnedVersion()), nil
}

// Apply removes any stale checkout, clones the pinned tag, compiles and
// installs. A missing build descriptor after the clone signals a fetch
// or integrity problem and is fatal.
func (b *Build) Apply(ctx context.Context) error {
	buildDir := b.opts.hostPath(config.BuildDir)

	if err := os.RemoveAll(buildDir); err != nil {
		return fmt.Errorf("removing stale checkout: %w", err)
	}

	if _, err := b.opts.Runner.Run(ctx, "git",
		"clone", "--depth", "1", "--branch", config.RepoTag, config.RepoURL, buildDir); err != nil {
		return fmt.Errorf("fetching source: %w", err)
	}

	descriptor := buildDir + "/Fulcrum.pro"
	if _, err := os.Stat(descriptor); err != nil {
		return &provision.PreconditionError{
			Reason: fmt.Sprintf("build descriptor %s missing after fetch", descriptor),
			Hint:   "the checkout is incomplete or the upstream layout changed",
		}
	}

	if _, err := b.opts.Runner.Run(ctx, "qmake",
		"-o", buildDir+"/Makefile", descriptor); err != nil {
		return fmt.Errorf("configuring build: %w", err)
	}

	if _, err := b.opts.Runner.Run(ctx, "make", "-C", buildDir, "-j4"); err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	if _, err := b.opts.Runner.Run(ctx, "install",
		"-m", "0755", buildDir+"/Fulcrum", b.opts.hostPath(config.BinaryPath)); err != nil {
		return fmt.Errorf("installing binary: %w", err)
	}

	return nil
}

// Verify confirms the installed binary reports the pinned version.
func (b *Build) Verify(ctx context.Context) error {
	binary := b.opts.hostPath(config.BinaryPath)
	out, err := b.opts.Runner.Run(ctx, binary, "--version")
	if err != nil {
		return fmt.Errorf("installed binary not runnable: %w", err)
	}
	if !strings.Contains(out, pinnedVersion()) {
		return fmt.Errorf("installed binary reports %q, want %s", strings.TrimSpace(out), pinnedVersion())
	}
	return nil
}
