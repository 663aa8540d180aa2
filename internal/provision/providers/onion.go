package providers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fulkit/fulkit/internal/config"
	"github.com/fulkit/fulkit/internal/provision"
	"github.com/fulkit/fulkit/internal/util/retry"
)

const (
	torrcPath        = "/etc/tor/torrc"
	hiddenServiceDir = "/var/lib/tor/fulcrum/"
)

// Onion publishes the TCP listener as a Tor hidden service by appending
// the service stanza to torrc and reloading tor. Tor generates the onion
// address asynchronously, so the address is polled after the reload; a
// missing address within the poll budget degrades to a warning.
type Onion struct {
	req  *config.Request
	opts Options

	// Poll budget for the generated hostname file. Overridable in tests.
	pollAttempts int
	pollDelay    time.Duration

	address string
}

// NewOnion creates the hidden service provider.
func NewOnion(req *config.Request, opts Options) *Onion {
	return &Onion{
		req:          req,
		opts:         opts,
		pollAttempts: 10,
		pollDelay:    time.Second,
	}
}

// stanza is the torrc fragment mapping the onion port to the local
// cleartext listener.
func (o *Onion) stanza() string {
	return fmt.Sprintf("HiddenServiceDir %s\nHiddenServicePort %d 127.0.0.1:%d\n",
		hiddenServiceDir, o.req.TorPort, o.req.TCPPort)
}

// Address returns the generated onion address, if known.
func (o *Onion) Address() string {
	return o.address
}

// Satisfied reports whether torrc already carries the stanza and the
// onion address has been generated.
func (o *Onion) Satisfied(_ context.Context) (bool, error) {
	data, err := os.ReadFile(o.opts.hostPath(torrcPath))
	if err != nil {
		return false, nil
	}
	if !strings.Contains(string(data), o.stanza()) {
		return false, nil
	}
	addr, err := o.readAddress()
	if err != nil {
		return false, nil
	}
	o.address = addr
	return true, nil
}

// Apply appends the stanza if missing, reloads tor, and waits for the
// generated address.
func (o *Onion) Apply(ctx context.Context) error {
	torrc := o.opts.hostPath(torrcPath)
	data, err := os.ReadFile(torrc)
	if err != nil {
		return fmt.Errorf("reading torrc: %w", err)
	}

	if !strings.Contains(string(data), o.stanza()) {
		f, err := os.OpenFile(torrc, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("opening torrc: %w", err)
		}
		_, werr := f.WriteString("\n" + o.stanza())
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return fmt.Errorf("appending hidden service stanza: %w", werr)
		}
	}

	if _, err := o.opts.Runner.Run(ctx, "systemctl", "reload", "tor"); err != nil {
		return fmt.Errorf("reloading tor: %w", err)
	}

	err = retry.Poll(ctx, func() error {
		addr, err := o.readAddress()
		if err != nil {
			return err
		}
		o.address = addr
		return nil
	},
		retry.WithMaxAttempts(o.pollAttempts),
		retry.WithInitialDelay(o.pollDelay),
		retry.WithMaxDelay(o.pollDelay))
	if err != nil {
		return provision.Warningf("hidden service configured but no onion address appeared yet; check 'ls %shostname' later", hiddenServiceDir)
	}
	return nil
}

// Verify confirms the stanza is in place. The address itself may still
// be pending; Apply already downgraded that case to a warning.
func (o *Onion) Verify(_ context.Context) error {
	data, err := os.ReadFile(o.opts.hostPath(torrcPath))
	if err != nil {
		return fmt.Errorf("torrc unreadable after apply: %w", err)
	}
	if !strings.Contains(string(data), o.stanza()) {
		return fmt.Errorf("hidden service stanza missing from torrc after apply")
	}
	return nil
}

// readAddress reads the tor-generated hostname file.
func (o *Onion) readAddress() (string, error) {
	data, err := os.ReadFile(o.opts.hostPath(hiddenServiceDir + "hostname"))
	if err != nil {
		return "", err
	}
	addr := strings.TrimSpace(string(data))
	if addr == "" {
		return "", fmt.Errorf("onion hostname file is empty")
	}
	return addr, nil
}
