package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/fulkit/fulkit/internal/config"
)

// bindCapability is the single capability granted: binding low-numbered
// ports without running as root.
const bindCapability = "cap_net_bind_service"

// Privilege grants the installed binary the narrow capability needed to
// bind privileged ports.
type Privilege struct {
	opts Options
}

// NewPrivilege creates the privilege grantor.
func NewPrivilege(opts Options) *Privilege {
	return &Privilege{opts: opts}
}

// Satisfied reports whether the capability is already set on the binary.
func (p *Privilege) Satisfied(ctx context.Context) (bool, error) {
	out, err := p.opts.Runner.Run(ctx, "getcap", p.opts.hostPath(config.BinaryPath))
	if err != nil {
		return false, nil
	}
	return strings.Contains(out, bindCapability), nil
}

// Apply sets the capability.
func (p *Privilege) Apply(ctx context.Context) error {
	if _, err := p.opts.Runner.Run(ctx, "setcap",
		bindCapability+"=+ep", p.opts.hostPath(config.BinaryPath)); err != nil {
		return fmt.Errorf("granting bind capability: %w", err)
	}
	return nil
}

// Verify re-reads the capability set.
func (p *Privilege) Verify(ctx context.Context) error {
	out, err := p.opts.Runner.Run(ctx, "getcap", p.opts.hostPath(config.BinaryPath))
	if err != nil {
		return fmt.Errorf("reading capabilities: %w", err)
	}
	if !strings.Contains(out, bindCapability) {
		return fmt.Errorf("binary lacks %s after apply", bindCapability)
	}
	return nil
}
