package prerequisites

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withStubbedLookup(t *testing.T, present map[string]bool) {
	t.Helper()
	origLook := lookPath
	origRun := runCommand
	lookPath = func(name string) (string, error) {
		if present[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	runCommand = func(_ string, _ ...string) ([]byte, error) {
		return []byte("stub 1.0\n"), nil
	}
	t.Cleanup(func() {
		lookPath = origLook
		runCommand = origRun
	})
}

func TestCheck_AllPresent(t *testing.T) {
	withStubbedLookup(t, map[string]bool{"apt-get": true, "systemctl": true})

	results := CheckDefault()

	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
	require.Len(t, results.Results, 2)
	for _, r := range results.Results {
		assert.True(t, r.Found)
		assert.Equal(t, "stub 1.0", r.Version)
	}
}

func TestCheck_MissingRequired(t *testing.T) {
	withStubbedLookup(t, map[string]bool{"apt-get": true})

	results := CheckDefault()

	assert.True(t, results.HasErrors())
	err := results.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "systemctl")
	assert.Contains(t, err.Error(), "systemd")
}

func TestCheckAll_MissingOptionalIsNotError(t *testing.T) {
	withStubbedLookup(t, map[string]bool{"apt-get": true, "systemctl": true})

	results := CheckAll()

	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
	// ufw and tor absent, recorded as missing but not errors
	assert.Len(t, results.Missing, 2)
}
