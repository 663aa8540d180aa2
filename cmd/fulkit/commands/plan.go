package commands

import (
	"github.com/spf13/cobra"

	"github.com/fulkit/fulkit/cmd/fulkit/handlers"
)

// Plan returns the command that prints the step sequence without
// touching the host.
func Plan() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what provision would do, without doing it",
		Long: `Show the ordered provisioning steps for a request.

Nothing on the host is inspected or changed; the output is purely the
step sequence and its dependency ordering for the given request.

Examples:
  fulkit plan
  fulkit plan -c electrum.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to request file (default: fulkit.yaml)")

	return cmd
}
