package providers

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	"github.com/fulkit/fulkit/internal/config"
)

// renewalCron is the recurring renewal job; restart picks up the rotated
// key material.
const renewalCron = "0 3 * * * root certbot renew --quiet --deploy-hook \"systemctl restart fulcrum\"\n"

const cronPath = "/etc/cron.d/fulkit-certbot"

// minValidity is how much lifetime an existing certificate must have
// left to be considered satisfied; certbot renews within this window
// anyway.
const minValidity = 30 * 24 * time.Hour

// Certificate requests or renews the TLS certificate for the target
// hostname via a domain-validation challenge and schedules renewal.
type Certificate struct {
	req  *config.Request
	opts Options
}

// NewCertificate creates the certificate issuer.
func NewCertificate(req *config.Request, opts Options) *Certificate {
	return &Certificate{req: req, opts: opts}
}

// Satisfied reports whether a valid, unexpired certificate for the
// hostname is already in place alongside its renewal job.
func (c *Certificate) Satisfied(_ context.Context) (bool, error) {
	cert, err := c.loadCertificate()
	if err != nil {
		return false, nil
	}
	if time.Until(cert.NotAfter) < minValidity {
		return false, nil
	}
	if cert.VerifyHostname(c.req.Hostname) != nil {
		return false, nil
	}
	if _, err := os.Stat(c.opts.hostPath(cronPath)); err != nil {
		return false, nil
	}
	return true, nil
}

// Apply runs the ACME client and installs the renewal cron entry. An
// existing valid certificate is left untouched by certbot itself.
func (c *Certificate) Apply(ctx context.Context) error {
	if _, err := c.opts.Runner.Run(ctx, "certbot",
		"certonly",
		"--standalone",
		"--non-interactive",
		"--agree-tos",
		"--register-unsafely-without-email",
		"-d", c.req.Hostname); err != nil {
		return fmt.Errorf("certificate issuance failed: %w", err)
	}

	if err := os.WriteFile(c.opts.hostPath(cronPath), []byte(renewalCron), 0644); err != nil {
		return fmt.Errorf("installing renewal job: %w", err)
	}
	return nil
}

// Verify confirms the issued certificate parses and covers the hostname.
func (c *Certificate) Verify(_ context.Context) error {
	cert, err := c.loadCertificate()
	if err != nil {
		return fmt.Errorf("certificate unreadable after issuance: %w", err)
	}
	if err := cert.VerifyHostname(c.req.Hostname); err != nil {
		return fmt.Errorf("issued certificate does not cover %s: %w", c.req.Hostname, err)
	}
	return nil
}

// loadCertificate reads and parses the leaf certificate from disk.
func (c *Certificate) loadCertificate() (*x509.Certificate, error) {
	data, err := os.ReadFile(c.opts.hostPath(c.req.CertPath()))
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM data in %s", c.req.CertPath())
	}
	return x509.ParseCertificate(block.Bytes)
}
