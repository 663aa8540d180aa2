// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/fulkit/fulkit/internal/config"
	"github.com/fulkit/fulkit/internal/config/wizard"
	"github.com/fulkit/fulkit/internal/platform/run"
	"github.com/fulkit/fulkit/internal/provision"
	"github.com/fulkit/fulkit/internal/provision/providers"
	"github.com/fulkit/fulkit/internal/util/prerequisites"
)

// DefaultReportPath is where the machine-readable run report lands.
const DefaultReportPath = "fulkit-report.yaml"

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadRequest reads and validates a request file.
	loadRequest = config.Load

	// requestFromEnv builds a request from FULKIT_* variables only.
	requestFromEnv = config.FromEnv

	// runWizard collects a request interactively.
	runWizard = func(ctx context.Context) (*config.Request, error) {
		result, err := wizard.Run(ctx)
		if err != nil {
			return nil, err
		}
		return result.ToRequest()
	}

	// checkPrerequisites verifies the required host tools are present.
	checkPrerequisites = prerequisites.CheckDefault

	// buildPlan converts a request into the ordered step sequence.
	buildPlan = providers.BuildPlan

	// executePlan runs the plan and returns the sealed report.
	executePlan = func(ctx context.Context, plan *provision.Plan) *provision.Report {
		return provision.NewEngine().Execute(ctx, plan)
	}

	// hostRunner executes commands on the real host.
	hostRunner = func() run.Runner {
		return run.NewExecRunner()
	}
)

// Provision resolves a request, checks prerequisites, and runs the full
// plan. The run report is printed and persisted; a run with failed or
// blocked steps returns an error so the process exits non-zero.
func Provision(ctx context.Context, configPath, reportPath string) error {
	req, err := resolveRequest(ctx, configPath)
	if err != nil {
		return err
	}

	if results := checkPrerequisites(); results.HasErrors() {
		return results.Error()
	}

	plan, err := buildPlan(req, providers.Options{Runner: hostRunner()})
	if err != nil {
		return fmt.Errorf("failed to build plan: %w", err)
	}

	report := executePlan(ctx, plan)

	fmt.Print(report.Render())
	if reportPath != "" {
		if err := report.WriteFile(reportPath); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", reportPath)
	}

	if !report.Success {
		return fmt.Errorf("provisioning finished with failures; see the report above")
	}
	return nil
}

// resolveRequest finds the provisioning request, in order: explicit
// file, fulkit.yaml in the working directory, FULKIT_* environment, and
// finally the interactive wizard on a terminal.
func resolveRequest(ctx context.Context, configPath string) (*config.Request, error) {
	if configPath != "" {
		return loadRequest(configPath)
	}
	if config.FileExists(config.DefaultConfigFile) {
		return loadRequest(config.DefaultConfigFile)
	}
	if os.Getenv("FULKIT_HOSTNAME") != "" {
		return requestFromEnv()
	}
	if isInteractiveTTY() {
		return runWizard(ctx)
	}
	return nil, fmt.Errorf("no request found: provide %s, set FULKIT_* variables, or run 'fulkit init' on a terminal", config.DefaultConfigFile)
}

// isInteractiveTTY reports whether stdin is attached to a terminal.
func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
