package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulkit/fulkit/internal/config"
)

func TestPrivilegeSatisfied(t *testing.T) {
	t.Parallel()

	opts, runner := testOptions(t)
	p := NewPrivilege(opts)
	binary := opts.hostPath(config.BinaryPath)

	ok, err := p.Satisfied(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "empty getcap output means no capability")

	runner.Respond("getcap "+binary, binary+" cap_net_bind_service=ep", nil)
	ok, err = p.Satisfied(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPrivilegeApply(t *testing.T) {
	t.Parallel()

	opts, runner := testOptions(t)
	require.NoError(t, NewPrivilege(opts).Apply(context.Background()))
	assert.True(t, runner.CalledWith("setcap cap_net_bind_service=+ep"))
}

func TestPrivilegeVerifyFailure(t *testing.T) {
	t.Parallel()

	opts, runner := testOptions(t)
	binary := opts.hostPath(config.BinaryPath)
	runner.Respond("getcap "+binary, "", errors.New("Failed to get capabilities"))

	err := NewPrivilege(opts).Verify(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading capabilities")
}
