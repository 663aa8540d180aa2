package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/fulkit/fulkit/internal/config"
	"github.com/fulkit/fulkit/internal/provision"
)

// Firewall opens the listener ports through ufw. A host without ufw is
// treated as satisfied; the operator manages the firewall elsewhere.
type Firewall struct {
	req  *config.Request
	opts Options
}

// NewFirewall creates the firewall provider.
func NewFirewall(req *config.Request, opts Options) *Firewall {
	return &Firewall{req: req, opts: opts}
}

// missingRule returns the first listener port without an allow rule, or
// 0 when every rule is in place. The check reads `ufw show added`,
// which lists staged rules even while the firewall itself is inactive;
// `ufw status` hides them in that state.
func (f *Firewall) missingRule(ctx context.Context) (int, error) {
	out, err := f.opts.Runner.Run(ctx, "ufw", "show", "added")
	if err != nil {
		return 0, err
	}
	for _, port := range f.req.ListenerPorts() {
		if !strings.Contains(out, fmt.Sprintf("%d/tcp", port)) {
			return port, nil
		}
	}
	return 0, nil
}

// Satisfied reports whether every listener port already has an allow
// rule staged. Absence of ufw counts as satisfied, never as an error.
func (f *Firewall) Satisfied(ctx context.Context) (bool, error) {
	if _, err := f.opts.Runner.LookPath("ufw"); err != nil {
		return true, nil
	}
	port, err := f.missingRule(ctx)
	if err != nil {
		return false, nil
	}
	return port == 0, nil
}

// Apply adds an allow rule per listener port. ufw reporting inactive is
// surfaced as a warning: the rules are staged but not enforced.
func (f *Firewall) Apply(ctx context.Context) error {
	for _, port := range f.req.ListenerPorts() {
		if _, err := f.opts.Runner.Run(ctx, "ufw", "allow", fmt.Sprintf("%d/tcp", port)); err != nil {
			return fmt.Errorf("allowing port %d: %w", port, err)
		}
	}

	out, err := f.opts.Runner.Run(ctx, "ufw", "status")
	if err != nil {
		return fmt.Errorf("reading firewall status: %w", err)
	}
	if strings.Contains(out, "inactive") {
		return provision.Warningf("firewall rules added but ufw is inactive; enable it with 'ufw enable'")
	}
	return nil
}

// Verify re-checks that the rules are staged. An inactive firewall
// still passes here: Apply already surfaced that as a warning.
func (f *Firewall) Verify(ctx context.Context) error {
	port, err := f.missingRule(ctx)
	if err != nil {
		return fmt.Errorf("reading firewall rules: %w", err)
	}
	if port != 0 {
		return fmt.Errorf("no allow rule for port %d after apply", port)
	}
	return nil
}
