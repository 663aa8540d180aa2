// Package prerequisites provides utilities for checking required host tools
// before a provisioning run mutates any state.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Function variables for dependency injection in tests.
var (
	lookPath   = exec.LookPath
	runCommand = func(name string, args ...string) ([]byte, error) {
		// #nosec G204 - name comes from trusted Tool definitions, not user input
		return exec.Command(name, args...).Output()
	}
)

// Tool represents a host tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// Package is the OS package that provides the tool, used in
	// remediation hints.
	Package string
}

// DefaultTools returns the tools every provisioning run needs.
// Package installation itself bootstraps the rest, so only the package
// manager and the service manager are hard requirements up front.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "apt-get",
			Required:    true,
			Description: "Installs build dependencies and runtime packages",
			Package:     "apt",
		},
		{
			Name:        "systemctl",
			Required:    true,
			Description: "Registers and starts the managed service unit",
			Package:     "systemd",
		},
	}
}

// OptionalTools returns tools whose absence downgrades a capability to a
// no-op rather than failing the run.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "ufw",
			Required:    false,
			Description: "Opens inbound firewall ports for the listeners",
			Package:     "ufw",
		},
		{
			Name:        "tor",
			Required:    false,
			Description: "Publishes the optional onion service mapping",
			Package:     "tor",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error naming every missing required tool, with the
// package that provides it as the remediation hint.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (install package %q)", tool.Name, tool.Package))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = toolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckDefault checks the default required tools.
func CheckDefault() *CheckResults {
	return Check(DefaultTools())
}

// CheckAll checks all tools (default + optional).
func CheckAll() *CheckResults {
	defaults := DefaultTools()
	optional := OptionalTools()
	all := make([]Tool, 0, len(defaults)+len(optional))
	all = append(all, defaults...)
	all = append(all, optional...)
	return Check(all)
}

// toolVersion attempts to get the version of a tool (best effort).
func toolVersion(name string) string {
	versionFlags := []string{"--version", "version", "-v"}

	for _, flag := range versionFlags {
		output, err := runCommand(name, flag)
		if err == nil {
			lines := strings.Split(string(output), "\n")
			if len(lines) > 0 {
				return strings.TrimSpace(lines[0])
			}
		}
	}

	return ""
}
