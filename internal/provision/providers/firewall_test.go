package providers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulkit/fulkit/internal/platform/run"
	"github.com/fulkit/fulkit/internal/provision"
)

func TestFirewallAbsentUfwIsSatisfied(t *testing.T) {
	t.Parallel()

	opts, runner := testOptions(t)
	runner.SetMissing("ufw")

	ok, err := NewFirewall(testRequest(t), opts).Satisfied(context.Background())
	require.NoError(t, err)
	assert.True(t, ok, "no ufw means nothing to manage")
}

func TestFirewallSatisfiedWhenRulesStaged(t *testing.T) {
	t.Parallel()

	opts, runner := testOptions(t)
	f := NewFirewall(testRequest(t), opts)

	runner.Respond("ufw show added", "ufw allow 50001/tcp\n", nil)
	ok, err := f.Satisfied(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "ssl port rule still missing")

	runner.Respond("ufw show added", "ufw allow 50001/tcp\nufw allow 50002/tcp\n", nil)
	ok, err = f.Satisfied(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFirewallApplyAddsRulePerPort(t *testing.T) {
	t.Parallel()

	opts, runner := testOptions(t)
	runner.Respond("ufw status", "Status: active\n", nil)

	require.NoError(t, NewFirewall(testRequest(t), opts).Apply(context.Background()))

	assert.True(t, runner.CalledWith("ufw allow 50001/tcp"))
	assert.True(t, runner.CalledWith("ufw allow 50002/tcp"))
}

func TestFirewallInactiveIsWarningNotFailure(t *testing.T) {
	t.Parallel()

	opts, runner := testOptions(t)
	runner.Respond("ufw status", "Status: inactive\n", nil)

	err := NewFirewall(testRequest(t), opts).Apply(context.Background())
	require.Error(t, err)
	warn, ok := provision.AsWarning(err)
	require.True(t, ok, "inactive firewall degrades to a warning")
	assert.Contains(t, warn.Reason, "inactive")
}

func TestFirewallVerifyNamesMissingPort(t *testing.T) {
	t.Parallel()

	opts, runner := testOptions(t)
	runner.Respond("ufw show added", "ufw allow 50001/tcp\n", nil)

	err := NewFirewall(testRequest(t), opts).Verify(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "50002")
}

func TestFirewallVerifyReadsStagedRulesNotStatus(t *testing.T) {
	t.Parallel()

	opts, runner := testOptions(t)
	runner.Respond("ufw status", "Status: inactive\n", nil)
	runner.Respond("ufw show added", "ufw allow 50001/tcp\nufw allow 50002/tcp\n", nil)

	err := NewFirewall(testRequest(t), opts).Verify(context.Background())
	assert.NoError(t, err, "staged rules pass verification while ufw is inactive")
}

// ufwHost wraps a FakeRunner so `ufw show added` reflects the rules
// staged by earlier `ufw allow` calls, the way a real inactive ufw does.
type ufwHost struct {
	*run.FakeRunner
	added []string
}

func (u *ufwHost) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := u.FakeRunner.Run(ctx, name, args...)
	if name != "ufw" || len(args) == 0 {
		return out, err
	}
	switch args[0] {
	case "allow":
		u.added = append(u.added, "ufw allow "+args[1])
	case "show":
		return strings.Join(u.added, "\n") + "\n", nil
	}
	return out, err
}

// An inactive ufw warns on apply but must not fail the run: the rules
// are staged and verification reads the staged set, not the live one. A
// second run then finds the step already satisfied.
func TestFirewallInactiveRunSucceedsWithWarning(t *testing.T) {
	t.Parallel()

	opts, fake := testOptions(t)
	fake.Respond("ufw status", "Status: inactive\n", nil)
	host := &ufwHost{FakeRunner: fake}
	opts.Runner = host

	step := provision.Step{
		ID:         "firewall",
		Capability: provision.CapabilityFirewall,
		Summary:    "open listener ports",
		Provider:   NewFirewall(testRequest(t), opts),
	}
	plan, err := provision.NewPlan(step)
	require.NoError(t, err)

	report := provision.NewEngine().Execute(context.Background(), plan)

	require.Len(t, report.Outcomes, 1)
	outcome := report.Outcomes[0]
	assert.Equal(t, provision.StatusSuccess, outcome.Status, "diagnostic: %s", outcome.Diagnostic)
	require.Len(t, outcome.Warnings, 1)
	assert.Contains(t, outcome.Warnings[0], "inactive")
	assert.True(t, report.Success)

	second := provision.NewEngine().Execute(context.Background(), plan)
	require.Len(t, second.Outcomes, 1)
	assert.Equal(t, provision.StatusSkipped, second.Outcomes[0].Status)
}
