package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fulkit/fulkit/internal/config"
)

const unitContent = `[Unit]
Description=Fulcrum Electrum server
After=network-online.target
Wants=network-online.target

[Service]
Type=simple
User=` + config.ServiceUser + `
WorkingDirectory=` + config.DataDir + `
ExecStart=` + config.BinaryPath + ` ` + config.ConfPath + `
Restart=always
RestartSec=10
LimitNOFILE=65536
TimeoutStopSec=300

[Install]
WantedBy=multi-user.target
`

// Service installs the systemd unit, reloads the manager, and brings the
// service up. A unit change or a restarted configuration always restarts
// the running service.
type Service struct {
	opts Options
}

// NewService creates the service manager provider.
func NewService(opts Options) *Service {
	return &Service{opts: opts}
}

// Satisfied reports whether the unit file matches and the service is
// enabled and active.
func (s *Service) Satisfied(ctx context.Context) (bool, error) {
	data, err := os.ReadFile(s.opts.hostPath(config.UnitPath))
	if err != nil || string(data) != unitContent {
		return false, nil
	}
	if out, err := s.opts.Runner.Run(ctx, "systemctl", "is-enabled", "fulcrum"); err != nil || strings.TrimSpace(out) != "enabled" {
		return false, nil
	}
	if out, err := s.opts.Runner.Run(ctx, "systemctl", "is-active", "fulcrum"); err != nil || strings.TrimSpace(out) != "active" {
		return false, nil
	}
	return true, nil
}

// Apply writes the unit, reloads systemd, enables the service, and
// restarts it so a new binary or config takes effect.
func (s *Service) Apply(ctx context.Context) error {
	if err := os.WriteFile(s.opts.hostPath(config.UnitPath), []byte(unitContent), 0644); err != nil {
		return fmt.Errorf("writing unit file: %w", err)
	}

	if _, err := s.opts.Runner.Run(ctx, "systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("reloading systemd: %w", err)
	}
	if _, err := s.opts.Runner.Run(ctx, "systemctl", "enable", "fulcrum"); err != nil {
		return fmt.Errorf("enabling service: %w", err)
	}
	if _, err := s.opts.Runner.Run(ctx, "systemctl", "restart", "fulcrum"); err != nil {
		return fmt.Errorf("starting service: %w", err)
	}
	return nil
}

// Verify confirms the service reports active.
func (s *Service) Verify(ctx context.Context) error {
	out, err := s.opts.Runner.Run(ctx, "systemctl", "is-active", "fulcrum")
	if err != nil {
		return fmt.Errorf("service not active: %w", err)
	}
	if strings.TrimSpace(out) != "active" {
		return fmt.Errorf("service state is %q, want active", strings.TrimSpace(out))
	}
	return nil
}
