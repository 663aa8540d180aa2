package providers

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSelfSigned(t *testing.T, path, hostname string, notAfter time.Time) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: hostname},
		DNSNames:     []string{hostname},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     notAfter,
	}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestCertificateSatisfied(t *testing.T) {
	t.Parallel()

	req := testRequest(t)
	opts, _ := testOptions(t)
	c := NewCertificate(req, opts)
	certPath := opts.hostPath(req.CertPath())

	ok, err := c.Satisfied(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "no certificate on disk")

	writeSelfSigned(t, certPath, req.Hostname, time.Now().Add(90*24*time.Hour))
	ok, err = c.Satisfied(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "renewal job still missing")

	require.NoError(t, os.MkdirAll(filepath.Dir(opts.hostPath(cronPath)), 0755))
	require.NoError(t, os.WriteFile(opts.hostPath(cronPath), []byte(renewalCron), 0644))
	ok, err = c.Satisfied(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCertificateNearExpiryNotSatisfied(t *testing.T) {
	t.Parallel()

	req := testRequest(t)
	opts, _ := testOptions(t)
	writeSelfSigned(t, opts.hostPath(req.CertPath()), req.Hostname, time.Now().Add(10*24*time.Hour))

	ok, err := NewCertificate(req, opts).Satisfied(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "certificate inside the renewal window must be reissued")
}

func TestCertificateWrongHostNotSatisfied(t *testing.T) {
	t.Parallel()

	req := testRequest(t)
	opts, _ := testOptions(t)
	writeSelfSigned(t, opts.hostPath(req.CertPath()), "other.example.org", time.Now().Add(90*24*time.Hour))

	ok, err := NewCertificate(req, opts).Satisfied(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCertificateApply(t *testing.T) {
	t.Parallel()

	req := testRequest(t)
	opts, runner := testOptions(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(opts.hostPath(cronPath)), 0755))

	require.NoError(t, NewCertificate(req, opts).Apply(context.Background()))

	assert.True(t, runner.CalledWith("certbot certonly --standalone"))
	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].String(), "-d "+req.Hostname)

	cron, err := os.ReadFile(opts.hostPath(cronPath))
	require.NoError(t, err)
	assert.Contains(t, string(cron), "certbot renew")
	assert.Contains(t, string(cron), "systemctl restart fulcrum")
}

func TestCertificateVerify(t *testing.T) {
	t.Parallel()

	req := testRequest(t)
	opts, _ := testOptions(t)

	err := NewCertificate(req, opts).Verify(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreadable")

	writeSelfSigned(t, opts.hostPath(req.CertPath()), req.Hostname, time.Now().Add(90*24*time.Hour))
	require.NoError(t, NewCertificate(req, opts).Verify(context.Background()))
}
