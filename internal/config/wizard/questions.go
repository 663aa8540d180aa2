package wizard

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

var (
	hostnameRegex   = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)
	credentialRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// runHostGroup prompts for the public hostname.
func runHostGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Public Hostname").
				Description("DNS name the TLS certificate is issued for").
				Placeholder("electrum.example.com").
				Value(&result.Hostname).
				Validate(validateHostname),
		).Title("Host Identity"),
	).RunWithContext(ctx)
}

// runNodeGroup prompts for the node RPC connection.
func runNodeGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC User").
				Description("Node RPC username").
				Value(&result.RPCUser).
				Validate(validateCredential),
			huh.NewInput().
				Title("RPC Password").
				Description("Node RPC password").
				EchoMode(huh.EchoModePassword).
				Value(&result.RPCPassword).
				Validate(validateCredential),
			huh.NewInput().
				Title("RPC Host (Optional)").
				Description("Node address, leave empty for 127.0.0.1").
				Placeholder("127.0.0.1").
				Value(&result.RPCHost).
				Validate(validateOptionalHost),
			huh.NewInput().
				Title("RPC Port (Optional)").
				Description("Node RPC port, leave empty for 8332").
				Placeholder("8332").
				Value(&result.RPCPort).
				Validate(validateOptionalPort),
		).Title("Node Connection"),
	).RunWithContext(ctx)
}

// runTuningGroup prompts for resource tuning with sensible presets.
func runTuningGroup(ctx context.Context, result *Result) error {
	result.CacheMB = 2000
	result.WorkerThreads = 4
	result.MaxClients = 1000

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Database Cache").
				Description("Memory budget for the index cache").
				Options(
					huh.NewOption("1 GB (small host)", 1000),
					huh.NewOption("2 GB (recommended)", 2000),
					huh.NewOption("4 GB (fast sync)", 4000),
					huh.NewOption("8 GB (large host)", 8000),
				).
				Value(&result.CacheMB),
			huh.NewSelect[int]().
				Title("Worker Threads").
				Options(
					huh.NewOption("2", 2),
					huh.NewOption("4 (recommended)", 4),
					huh.NewOption("8", 8),
				).
				Value(&result.WorkerThreads),
			huh.NewSelect[int]().
				Title("Max Concurrent Clients").
				Options(
					huh.NewOption("200", 200),
					huh.NewOption("1000 (recommended)", 1000),
					huh.NewOption("5000", 5000),
				).
				Value(&result.MaxClients),
		).Title("Resource Tuning"),
	).RunWithContext(ctx)
}

// runFeaturesGroup prompts for optional capabilities.
func runFeaturesGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Open firewall ports?").
				Description("Allows inbound TCP on the listener ports (skipped if no firewall is installed)").
				Value(&result.EnableFirewall),
			huh.NewConfirm().
				Title("Publish a Tor hidden service?").
				Description("Maps an onion address to the local listener").
				Value(&result.EnableTor),
		).Title("Features"),
	).RunWithContext(ctx)
}

func validateHostname(value string) error {
	if value == "" {
		return fmt.Errorf("hostname must not be empty")
	}
	if !hostnameRegex.MatchString(value) {
		return fmt.Errorf("only letters, digits, dots and hyphens are allowed")
	}
	if strings.HasPrefix(value, ".") || strings.HasSuffix(value, ".") {
		return fmt.Errorf("must not start or end with a dot")
	}
	return nil
}

func validateCredential(value string) error {
	if value == "" {
		return fmt.Errorf("must not be empty")
	}
	if !credentialRegex.MatchString(value) {
		return fmt.Errorf("only letters, digits, underscore and hyphen are allowed")
	}
	return nil
}

func validateOptionalHost(value string) error {
	if value == "" {
		return nil
	}
	if ip := net.ParseIP(value); ip != nil && ip.To4() != nil {
		return nil
	}
	return validateHostname(value)
}

func validateOptionalPort(value string) error {
	if value == "" {
		return nil
	}
	_, err := parsePort(value)
	return err
}

func parsePort(value string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("port must be an integer")
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port must be in [1,65535]")
	}
	return port, nil
}
