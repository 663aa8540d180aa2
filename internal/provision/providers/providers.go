// Package providers implements the capability adapters: one per category
// of host-level side effect, each exposing the uniform
// Satisfied/Apply/Verify contract consumed by the execution engine.
package providers

import (
	"path/filepath"
	"strings"

	"github.com/fulkit/fulkit/internal/config"
	"github.com/fulkit/fulkit/internal/platform/run"
	"github.com/fulkit/fulkit/internal/provision"
)

// Options carries the shared provider dependencies.
type Options struct {
	// Runner executes host commands. Tests inject a FakeRunner.
	Runner run.Runner

	// Root is prepended to every absolute host path, so tests can point
	// providers at a scratch directory. Empty or "/" means the real host.
	Root string
}

// hostPath maps an absolute host path under the configured root.
func (o Options) hostPath(abs string) string {
	if o.Root == "" || o.Root == "/" {
		return abs
	}
	return filepath.Join(o.Root, strings.TrimPrefix(abs, "/"))
}

// BuildPlan converts a validated request into the ordered step sequence.
// It is pure and deterministic: the same request always yields the same
// plan. Fixed dependency order: packages → build → account → privilege →
// certificate → config → service → firewall → onion.
func BuildPlan(req *config.Request, opts Options) (*provision.Plan, error) {
	steps := []provision.Step{
		{
			ID:         "packages",
			Capability: provision.CapabilityPackages,
			Summary:    "install build and runtime packages",
			Provider:   NewPackages(req, opts),
		},
		{
			ID:         "build",
			Capability: provision.CapabilityBuild,
			Summary:    "fetch, compile and install " + config.RepoTag,
			DependsOn:  []provision.StepID{"packages"},
			Provider:   NewBuild(opts),
		},
		{
			ID:         "account",
			Capability: provision.CapabilityAccount,
			Summary:    "create service account and data directory",
			Provider:   NewAccount(opts),
		},
		{
			ID:         "privilege",
			Capability: provision.CapabilityPrivilege,
			Summary:    "grant low-port bind capability to the binary",
			DependsOn:  []provision.StepID{"build"},
			Provider:   NewPrivilege(opts),
		},
		{
			ID:         "certificate",
			Capability: provision.CapabilityCertificate,
			Summary:    "issue TLS certificate for " + req.Hostname,
			DependsOn:  []provision.StepID{"packages"},
			Provider:   NewCertificate(req, opts),
		},
		{
			ID:         "config",
			Capability: provision.CapabilityConfig,
			Summary:    "render server configuration",
			DependsOn:  []provision.StepID{"account"},
			Provider:   NewConfigFile(req, opts),
		},
		{
			ID:         "service",
			Capability: provision.CapabilityService,
			Summary:    "register and start the service unit",
			DependsOn:  []provision.StepID{"build", "account", "privilege", "certificate", "config"},
			Provider:   NewService(opts),
		},
	}

	if req.FirewallEnabled() {
		steps = append(steps, provision.Step{
			ID:         "firewall",
			Capability: provision.CapabilityFirewall,
			Summary:    "open inbound listener ports",
			Provider:   NewFirewall(req, opts),
		})
	}

	if req.TorEnabled() {
		steps = append(steps, provision.Step{
			ID:         "onion",
			Capability: provision.CapabilityOnion,
			Summary:    "publish onion service mapping",
			DependsOn:  []provision.StepID{"packages"},
			Provider:   NewOnion(req, opts),
		})
	}

	return provision.NewPlan(steps...)
}
