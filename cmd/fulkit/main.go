// Package main is the entry point for the fulkit CLI.
//
// fulkit provisions a self-hosted Fulcrum Electrum index server on the
// local host: OS packages, a pinned source build, a dedicated service
// account, TLS certificate, rendered configuration, systemd unit,
// firewall rules, and an optional Tor hidden service. Every capability
// is idempotent, so re-running after a failure only performs the work
// that is still missing.
//
// Commands: init, provision, plan, doctor, version.
//
// For detailed usage information, run:
//
//	fulkit --help
package main

import (
	"fmt"
	"os"

	"github.com/fulkit/fulkit/cmd/fulkit/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
