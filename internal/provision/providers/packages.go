package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/fulkit/fulkit/internal/config"
)

// basePackages are needed on every run: toolchain for the source build,
// certbot for issuance, cron for renewal scheduling.
var basePackages = []string{
	"git",
	"build-essential",
	"pkg-config",
	"qt5-qmake",
	"qtbase5-dev",
	"libzmq3-dev",
	"librocksdb-dev",
	"zlib1g-dev",
	"libbz2-dev",
	"certbot",
	"cron",
}

// Packages ensures a named set of OS packages is present. Already
// installed packages are a no-op, not an error.
type Packages struct {
	opts     Options
	packages []string
}

// NewPackages creates the package installer for a request. The Tor
// daemon is added to the set only when the hidden service is requested.
func NewPackages(req *config.Request, opts Options) *Packages {
	pkgs := make([]string, 0, len(basePackages)+1)
	pkgs = append(pkgs, basePackages...)
	if req.TorEnabled() {
		pkgs = append(pkgs, "tor")
	}
	return &Packages{opts: opts, packages: pkgs}
}

// Satisfied reports whether every package is already installed.
func (p *Packages) Satisfied(ctx context.Context) (bool, error) {
	for _, pkg := range p.packages {
		out, err := p.opts.Runner.Run(ctx, "dpkg", "-s", pkg)
		if err != nil || !strings.Contains(out, "install ok installed") {
			return false, nil
		}
	}
	return true, nil
}

// Apply installs the whole set in one transaction.
func (p *Packages) Apply(ctx context.Context) error {
	args := append([]string{"install", "-y", "--no-install-recommends"}, p.packages...)
	if _, err := p.opts.Runner.Run(ctx, "apt-get", args...); err != nil {
		return fmt.Errorf("package installation failed: %w", err)
	}
	return nil
}

// Verify re-checks every package against the dpkg database.
func (p *Packages) Verify(ctx context.Context) error {
	for _, pkg := range p.packages {
		out, err := p.opts.Runner.Run(ctx, "dpkg", "-s", pkg)
		if err != nil || !strings.Contains(out, "install ok installed") {
			return fmt.Errorf("package %q not installed after apply", pkg)
		}
	}
	return nil
}
