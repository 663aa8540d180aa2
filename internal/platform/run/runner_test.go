package run

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeRunner_RecordsCalls(t *testing.T) {
	t.Parallel()
	f := NewFakeRunner()

	_, err := f.Run(context.Background(), "systemctl", "enable", "--now", "fulcrum")
	require.NoError(t, err)

	calls := f.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "systemctl", calls[0].Name)
	assert.True(t, f.CalledWith("systemctl enable"))
	assert.False(t, f.CalledWith("ufw"))
}

func TestFakeRunner_ScriptedResponse(t *testing.T) {
	t.Parallel()
	f := NewFakeRunner()
	f.Respond("dpkg -s git", "Status: install ok installed", nil)
	f.Respond("dpkg -s tor", "", errors.New("package 'tor' is not installed"))

	out, err := f.Run(context.Background(), "dpkg", "-s", "git")
	require.NoError(t, err)
	assert.Contains(t, out, "install ok installed")

	_, err = f.Run(context.Background(), "dpkg", "-s", "tor")
	require.Error(t, err)
}

func TestFakeRunner_LongestPrefixWins(t *testing.T) {
	t.Parallel()
	f := NewFakeRunner()
	f.Respond("ufw", "generic", nil)
	f.Respond("ufw status", "Status: active", nil)

	out, err := f.Run(context.Background(), "ufw", "status")
	require.NoError(t, err)
	assert.Equal(t, "Status: active", out)
}

func TestFakeRunner_LookPath(t *testing.T) {
	t.Parallel()
	f := NewFakeRunner()
	f.SetMissing("ufw")

	_, err := f.LookPath("ufw")
	assert.Error(t, err)

	path, err := f.LookPath("systemctl")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/systemctl", path)
}

func TestExecRunner_ReportsFailureWithOutput(t *testing.T) {
	t.Parallel()
	r := NewExecRunner()

	_, err := r.Run(context.Background(), "false")
	assert.Error(t, err)
}
