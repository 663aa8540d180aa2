package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan_Valid(t *testing.T) {
	t.Parallel()
	plan, err := NewPlan(
		step("packages", &mockProvider{}),
		step("build", &mockProvider{}, "packages"),
	)
	require.NoError(t, err)
	assert.Len(t, plan.Steps, 2)
}

func TestNewPlan_DuplicateID(t *testing.T) {
	t.Parallel()
	_, err := NewPlan(
		step("packages", &mockProvider{}),
		step("packages", &mockProvider{}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate step id")
}

func TestNewPlan_ForwardDependencyRejected(t *testing.T) {
	t.Parallel()
	// A dependency on a later step would break topological order (and a
	// cycle necessarily contains at least one forward edge).
	_, err := NewPlan(
		step("build", &mockProvider{}, "packages"),
		step("packages", &mockProvider{}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an earlier step")
}

func TestNewPlan_SelfDependencyRejected(t *testing.T) {
	t.Parallel()
	_, err := NewPlan(step("build", &mockProvider{}, "build"))
	assert.Error(t, err)
}

func TestNewPlan_MissingProvider(t *testing.T) {
	t.Parallel()
	_, err := NewPlan(Step{ID: "x", Capability: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no provider")
}

func TestPlan_Describe(t *testing.T) {
	t.Parallel()
	plan, err := NewPlan(
		step("packages", &mockProvider{}),
		step("build", &mockProvider{}, "packages"),
	)
	require.NoError(t, err)

	lines := plan.Describe()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "1. [packages]")
	assert.Contains(t, lines[1], "after packages")
}
