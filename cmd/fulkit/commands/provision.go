package commands

import (
	"github.com/spf13/cobra"

	"github.com/fulkit/fulkit/cmd/fulkit/handlers"
)

// Provision returns the command that runs the full provisioning plan.
//
// Optional flags:
//
//	--config, -c: Path to the request YAML file (default: fulkit.yaml)
//	--report:     Where to write the machine-readable run report
//
// Environment variables:
//
//	FULKIT_*: every request field can be supplied via environment,
//	e.g. FULKIT_HOSTNAME and FULKIT_RPC_PASSWORD for unattended runs.
func Provision() *cobra.Command {
	var (
		configPath string
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision or repair the server on this host",
		Long: `Provision the Fulcrum Electrum server on this host.

Every step checks the current host state first and only performs the
work that is missing, so the command is safe to re-run: a second run on
a healthy host changes nothing, and a run after a failure picks up where
the previous one stopped.

If no config file is specified, it looks for fulkit.yaml in the current
directory, then falls back to FULKIT_* environment variables, and
finally to the interactive wizard on a terminal. Use 'fulkit init' to
create a configuration file.

Examples:
  # Provision using fulkit.yaml in the current directory
  fulkit provision

  # Provision using a specific request file
  fulkit provision -c electrum.yaml

  # Re-run after fixing a failure; completed steps are skipped
  fulkit provision`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), configPath, reportPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to request file (default: fulkit.yaml)")
	cmd.Flags().StringVar(&reportPath, "report", handlers.DefaultReportPath, "Path for the YAML run report")

	return cmd
}
