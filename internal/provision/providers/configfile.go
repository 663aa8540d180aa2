package providers

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fulkit/fulkit/internal/config"
	"github.com/fulkit/fulkit/internal/fulcrum"
)

// ConfigFile renders the server configuration to its destination path
// with ownership restricted to the run-as account. Rendering is
// deterministic, so the satisfied check is a byte comparison.
type ConfigFile struct {
	req  *config.Request
	opts Options
}

// NewConfigFile creates the config renderer provider.
func NewConfigFile(req *config.Request, opts Options) *ConfigFile {
	return &ConfigFile{req: req, opts: opts}
}

func (c *ConfigFile) rendered() ([]byte, error) {
	return fulcrum.Render(fulcrum.SettingsFromRequest(c.req))
}

// Satisfied reports whether the on-disk file already matches the
// rendered output byte for byte.
func (c *ConfigFile) Satisfied(_ context.Context) (bool, error) {
	want, err := c.rendered()
	if err != nil {
		return false, err
	}
	got, err := os.ReadFile(c.opts.hostPath(config.ConfPath))
	if err != nil {
		return false, nil
	}
	return bytes.Equal(want, got), nil
}

// Apply writes the rendered config with restricted permissions.
func (c *ConfigFile) Apply(ctx context.Context) error {
	data, err := c.rendered()
	if err != nil {
		return err
	}

	confPath := c.opts.hostPath(config.ConfPath)
	if err := os.MkdirAll(filepath.Dir(confPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(confPath, data, 0640); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// The file carries the RPC credentials; only the service account
	// may read it.
	if _, err := c.opts.Runner.Run(ctx, "chown",
		config.ServiceUser+":"+config.ServiceUser, confPath); err != nil {
		return fmt.Errorf("chowning config: %w", err)
	}
	return nil
}

// Verify re-reads the file and checks content and mode.
func (c *ConfigFile) Verify(_ context.Context) error {
	want, err := c.rendered()
	if err != nil {
		return err
	}
	confPath := c.opts.hostPath(config.ConfPath)
	got, err := os.ReadFile(confPath)
	if err != nil {
		return fmt.Errorf("config unreadable after write: %w", err)
	}
	if !bytes.Equal(want, got) {
		return fmt.Errorf("config on disk differs from rendered output")
	}
	info, err := os.Stat(confPath)
	if err != nil {
		return err
	}
	if info.Mode().Perm() != 0640 {
		return fmt.Errorf("config mode is %o, want 0640", info.Mode().Perm())
	}
	return nil
}
