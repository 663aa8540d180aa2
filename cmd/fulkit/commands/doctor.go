package commands

import (
	"github.com/spf13/cobra"

	"github.com/fulkit/fulkit/cmd/fulkit/handlers"
)

// Doctor returns the command that diagnoses the host without changing it.
func Doctor() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check host readiness and current provisioning state",
		Long: `Check the host for required tools and report which
provisioning steps are already satisfied.

The command is read-only: it runs the same state checks as provision
but never applies anything.

Examples:
  fulkit doctor
  fulkit doctor -c electrum.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to request file (default: fulkit.yaml)")

	return cmd
}
