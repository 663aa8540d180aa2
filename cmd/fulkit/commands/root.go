// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated
// to handler functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/fulkit/fulkit/internal/logging"
)

// Root returns the root command for the fulkit CLI.
func Root() *cobra.Command {
	var (
		logFormat string
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "fulkit",
		Short: "Provision a Fulcrum Electrum server on this host",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logging.Init(logFormat, logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.Auto, "Log output format: auto, tint, text or json")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	cmd.AddCommand(Init())
	cmd.AddCommand(Provision())
	cmd.AddCommand(Plan())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())

	return cmd
}
