package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVersionInfo(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() {
		SetVersionInfo(origVersion, origCommit, origDate)
	})

	SetVersionInfo("1.2.3", "abc1234", "2026-08-23")
	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "abc1234", commit)
	assert.Equal(t, "2026-08-23", date)
}

func TestVersionCommandOutput(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() {
		SetVersionInfo(origVersion, origCommit, origDate)
	})
	SetVersionInfo("1.2.3", "abc1234", "2026-08-23")

	cmd := Version()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "fulkit 1.2.3")
	assert.Contains(t, out, "commit abc1234")
	assert.Contains(t, out, "built 2026-08-23")
}
