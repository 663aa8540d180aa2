package handlers

import (
	"context"
	"fmt"

	"github.com/fulkit/fulkit/internal/provision/providers"
)

// Plan resolves the request and prints the ordered step sequence
// without touching the host.
func Plan(ctx context.Context, configPath string) error {
	req, err := resolveRequest(ctx, configPath)
	if err != nil {
		return err
	}

	plan, err := buildPlan(req, providers.Options{Runner: hostRunner()})
	if err != nil {
		return fmt.Errorf("failed to build plan: %w", err)
	}

	fmt.Printf("Provisioning plan for %s (%d steps):\n\n", req.Hostname, len(plan.Steps))
	for _, line := range plan.Describe() {
		fmt.Println("  " + line)
	}
	fmt.Println()
	fmt.Println("Run 'fulkit provision' to execute.")
	return nil
}
