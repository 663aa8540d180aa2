package handlers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fulkit/fulkit/internal/provision/providers"
	"github.com/fulkit/fulkit/internal/util/prerequisites"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	missStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// checkAllTools is replaceable in tests.
var checkAllTools = prerequisites.CheckAll

// Doctor reports host readiness: which tools are present and which
// provisioning steps are already satisfied. It is strictly read-only.
func Doctor(ctx context.Context, configPath string) error {
	results := checkAllTools()

	fmt.Println()
	fmt.Println("Host tools")
	fmt.Println("----------")
	for _, r := range results.Results {
		if r.Found {
			note := r.Version
			if note == "" {
				note = r.Path
			}
			fmt.Printf("  %s %-10s %s\n", okStyle.Render("✓"), r.Tool.Name, note)
			continue
		}
		mark := missStyle.Render("✗")
		if !r.Tool.Required {
			mark = pendingStyle.Render("•")
		}
		fmt.Printf("  %s %-10s missing (install package %q)\n", mark, r.Tool.Name, r.Tool.Package)
	}
	fmt.Println()

	req, err := resolveRequest(ctx, configPath)
	if err != nil {
		// Without a request there is nothing more to probe; tool status
		// alone is still useful.
		fmt.Printf("No request to probe step state for: %v\n", err)
		return results.Error()
	}

	plan, err := buildPlan(req, providers.Options{Runner: hostRunner()})
	if err != nil {
		return fmt.Errorf("failed to build plan: %w", err)
	}

	fmt.Printf("Step state for %s\n", req.Hostname)
	fmt.Println("------------------")
	for _, step := range plan.Steps {
		satisfied, err := step.Provider.Satisfied(ctx)
		switch {
		case err != nil:
			fmt.Printf("  %s %-12s state check failed: %v\n", missStyle.Render("✗"), step.ID, err)
		case satisfied:
			fmt.Printf("  %s %-12s satisfied\n", okStyle.Render("✓"), step.ID)
		default:
			fmt.Printf("  %s %-12s pending\n", pendingStyle.Render("•"), step.ID)
		}
	}
	fmt.Println()

	return results.Error()
}
