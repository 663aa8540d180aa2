// Package provision contains the plan model and the execution engine: an
// ordered, dependency-aware sequence of idempotent capability ensures.
package provision

import (
	"context"
	"fmt"
)

// Capability identifies one category of host-level side effect.
type Capability string

const (
	CapabilityPackages    Capability = "packages"
	CapabilityBuild       Capability = "build"
	CapabilityAccount     Capability = "account"
	CapabilityPrivilege   Capability = "privilege"
	CapabilityCertificate Capability = "certificate"
	CapabilityConfig      Capability = "config"
	CapabilityService     Capability = "service"
	CapabilityFirewall    Capability = "firewall"
	CapabilityOnion       Capability = "onion"
)

// StepID identifies a plan step; dependency edges refer to these.
type StepID string

// Provider is the uniform contract every capability adapter implements.
// All three operations must be safe to call repeatedly.
type Provider interface {
	// Satisfied reports whether the desired state already holds on the
	// host. A true result makes the step a no-op.
	Satisfied(ctx context.Context) (bool, error)

	// Apply brings the host to the desired state.
	Apply(ctx context.Context) error

	// Verify checks the resulting state after Apply.
	Verify(ctx context.Context) error
}

// Step is one unit of provisioning work with declared dependencies.
type Step struct {
	ID         StepID
	Capability Capability
	Summary    string
	DependsOn  []StepID
	Provider   Provider
}

// Plan is a topologically ordered sequence of steps.
type Plan struct {
	Steps []Step
}

// NewPlan validates the step sequence: IDs are unique, every dependency
// names an earlier step, so the graph is acyclic and already in
// topological order.
func NewPlan(steps ...Step) (*Plan, error) {
	seen := make(map[StepID]bool, len(steps))
	for _, step := range steps {
		if step.ID == "" {
			return nil, fmt.Errorf("step with capability %q has no id", step.Capability)
		}
		if seen[step.ID] {
			return nil, fmt.Errorf("duplicate step id %q", step.ID)
		}
		if step.Provider == nil {
			return nil, fmt.Errorf("step %q has no provider", step.ID)
		}
		for _, dep := range step.DependsOn {
			if !seen[dep] {
				return nil, fmt.Errorf("step %q depends on %q which is not an earlier step", step.ID, dep)
			}
		}
		seen[step.ID] = true
	}
	return &Plan{Steps: steps}, nil
}

// Describe returns a human-readable one-line description per step, in
// execution order.
func (p *Plan) Describe() []string {
	out := make([]string, 0, len(p.Steps))
	for i, step := range p.Steps {
		line := fmt.Sprintf("%d. [%s] %s", i+1, step.ID, step.Summary)
		if len(step.DependsOn) > 0 {
			line += fmt.Sprintf(" (after %s)", joinIDs(step.DependsOn))
		}
		out = append(out, line)
	}
	return out
}

func joinIDs(ids []StepID) string {
	s := ""
	for i, id := range ids {
		if i > 0 {
			s += ", "
		}
		s += string(id)
	}
	return s
}
