package commands

import (
	"github.com/spf13/cobra"

	"github.com/fulkit/fulkit/cmd/fulkit/handlers"
	"github.com/fulkit/fulkit/internal/config"
)

// Init returns the command that creates a request file interactively.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a provisioning request file interactively",
		Long: `Create a provisioning request file through a short wizard.

The wizard asks for the public hostname, the node RPC connection, and a
handful of tuning choices, then writes a fully expanded YAML file. The
file carries the RPC credentials and is written owner-readable only.

Examples:
  # Create fulkit.yaml in the current directory
  fulkit init

  # Write to a different location
  fulkit init -o /etc/fulkit/request.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFile, "Where to write the request file")

	return cmd
}
