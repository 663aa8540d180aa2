package handlers

import (
	"context"
	"fmt"

	"github.com/fulkit/fulkit/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = config.FileExists

	// writeRequest writes the request to a file.
	writeRequest = config.Write
)

// Init runs the request wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	req, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := writeRequest(req, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, req)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("fulkit - Fulcrum server provisioning")
	fmt.Println("====================================")
	fmt.Println()
	fmt.Println("This wizard creates a provisioning request with sensible defaults.")
	fmt.Println("The generated YAML is fully expanded and explicit.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, req *config.Request) {
	fmt.Println()
	fmt.Println("Request saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Server Summary")
	fmt.Println("--------------")
	fmt.Printf("  Hostname:     %s\n", req.Hostname)
	fmt.Printf("  Node RPC:     %s:%d\n", req.RPCHost, req.RPCPort)
	fmt.Printf("  Listeners:    tcp %d, ssl %d\n", req.TCPPort, req.SSLPort)
	fmt.Printf("  Cache:        %d MB, %d workers\n", req.CacheMB, req.WorkerThreads)
	fmt.Printf("  Firewall:     %v\n", req.FirewallEnabled())
	fmt.Printf("  Tor service:  %v\n", req.TorEnabled())
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  2. Make sure the hostname resolves to this host, then provision:")
	fmt.Println("     fulkit provision")
	fmt.Println()
}
