package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/fulkit/fulkit/internal/config"
)

// Account ensures the dedicated unprivileged run-as user exists and owns
// a tightly-scoped data directory.
type Account struct {
	opts Options
}

// NewAccount creates the account provider.
func NewAccount(opts Options) *Account {
	return &Account{opts: opts}
}

// Satisfied reports whether the user exists and the data directory has
// the expected mode.
func (a *Account) Satisfied(ctx context.Context) (bool, error) {
	if _, err := a.opts.Runner.Run(ctx, "id", "-u", config.ServiceUser); err != nil {
		return false, nil
	}
	info, err := os.Stat(a.opts.hostPath(config.DataDir))
	if err != nil {
		return false, nil
	}
	return info.IsDir() && info.Mode().Perm() == 0750, nil
}

// Apply creates the system account (a no-op if present) and the data
// directory with restricted ownership.
func (a *Account) Apply(ctx context.Context) error {
	if _, err := a.opts.Runner.Run(ctx, "id", "-u", config.ServiceUser); err != nil {
		if _, err := a.opts.Runner.Run(ctx, "useradd",
			"--system",
			"--home-dir", config.DataDir,
			"--shell", "/usr/sbin/nologin",
			config.ServiceUser); err != nil {
			return fmt.Errorf("creating service account: %w", err)
		}
	}

	dataDir := a.opts.hostPath(config.DataDir)
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	// MkdirAll masks the mode with the umask; make it explicit.
	if err := os.Chmod(dataDir, 0750); err != nil {
		return fmt.Errorf("restricting data directory: %w", err)
	}

	if _, err := a.opts.Runner.Run(ctx, "chown", "-R",
		config.ServiceUser+":"+config.ServiceUser, dataDir); err != nil {
		return fmt.Errorf("chowning data directory: %w", err)
	}
	return nil
}

// Verify re-checks account and directory state.
func (a *Account) Verify(ctx context.Context) error {
	if _, err := a.opts.Runner.Run(ctx, "id", "-u", config.ServiceUser); err != nil {
		return fmt.Errorf("service account %q missing after apply: %w", config.ServiceUser, err)
	}
	info, err := os.Stat(a.opts.hostPath(config.DataDir))
	if err != nil {
		return fmt.Errorf("data directory missing after apply: %w", err)
	}
	if info.Mode().Perm() != 0750 {
		return fmt.Errorf("data directory mode is %o, want 0750", info.Mode().Perm())
	}
	return nil
}
