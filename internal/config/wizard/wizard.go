// Package wizard implements the interactive prompts that collect a
// provisioning request when no config file or environment is supplied.
package wizard

import (
	"context"
	"fmt"

	"github.com/fulkit/fulkit/internal/config"
)

// Result holds all the answers from the interactive wizard.
type Result struct {
	// Host identity
	Hostname string

	// Node RPC connection
	RPCUser     string
	RPCPassword string
	RPCHost     string
	RPCPort     string // kept as string so "leave empty for default" works

	// Tuning
	CacheMB       int
	WorkerThreads int
	MaxClients    int

	// Features
	EnableFirewall bool
	EnableTor      bool
}

// Run walks the user through the provisioning questions, grouped by
// topic. The context is used for cancellation support (Ctrl+C).
func Run(ctx context.Context) (*Result, error) {
	result := &Result{
		EnableFirewall: true,
	}

	if err := runHostGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("host identity: %w", err)
	}

	if err := runNodeGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("node connection: %w", err)
	}

	if err := runTuningGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}

	if err := runFeaturesGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("features: %w", err)
	}

	return result, nil
}

// ToRequest converts wizard answers into a provisioning request with
// defaults applied. Empty answers keep their zero value so ApplyDefaults
// fills them; an explicit answer is never overridden.
func (r *Result) ToRequest() (*config.Request, error) {
	req := &config.Request{
		Hostname:      r.Hostname,
		RPCUser:       r.RPCUser,
		RPCPassword:   config.Secret(r.RPCPassword),
		RPCHost:       r.RPCHost,
		CacheMB:       r.CacheMB,
		WorkerThreads: r.WorkerThreads,
		MaxClients:    r.MaxClients,
	}

	if r.RPCPort != "" {
		port, err := parsePort(r.RPCPort)
		if err != nil {
			return nil, err
		}
		req.RPCPort = port
	}

	firewall := r.EnableFirewall
	tor := r.EnableTor
	req.EnableFirewall = &firewall
	req.EnableTor = &tor

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}
