package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fulkit.yaml")

	req := &Request{
		Hostname:    "electrum.example.com",
		RPCUser:     "alice",
		RPCPassword: "s3cr3t",
	}
	require.NoError(t, Write(req, path))

	// Written 0600: the file carries credentials.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "electrum.example.com", loaded.Hostname)
	assert.Equal(t, "alice", loaded.RPCUser)
	assert.Equal(t, "s3cr3t", loaded.RPCPassword.Value())
	// Defaults applied on load
	assert.Equal(t, DefaultRPCHost, loaded.RPCHost)
	assert.Equal(t, DefaultRPCPort, loaded.RPCPort)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fulkit.yaml")

	req := &Request{
		Hostname:    "electrum.example.com",
		RPCUser:     "alice",
		RPCPassword: "s3cr3t",
		RPCPort:     8332,
	}
	require.NoError(t, Write(req, path))

	t.Setenv("FULKIT_RPC_PORT", "18443")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 18443, loaded.RPCPort)
}

func TestLoad_InvalidRequestRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fulkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hostname: bad host\nrpc_user: alice\nrpc_password: pw\n"), 0600))

	_, err := Load(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "hostname", verr.Field)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("FULKIT_HOSTNAME", "electrum.example.com")
	t.Setenv("FULKIT_RPC_USER", "bob")
	t.Setenv("FULKIT_RPC_PASSWORD", "pw_123")

	req, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "electrum.example.com", req.Hostname)
	assert.Equal(t, "bob", req.RPCUser)
	assert.Equal(t, DefaultRPCHost, req.RPCHost)
}
