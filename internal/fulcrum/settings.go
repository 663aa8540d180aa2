// Package fulcrum renders and parses the wrapped server's configuration
// file. Rendering is deterministic and driven entirely by typed values; a
// request that validated is the only way to reach the template.
package fulcrum

import (
	"github.com/fulkit/fulkit/internal/config"
)

// Fixed database tuning defaults. Not user-tunable; the engine picks
// values safe for a dedicated host.
const (
	DefaultDBMaxOpenFiles = 200
	DefaultDBMemMB        = 1024
)

// Settings is the typed model of the rendered configuration file. Every
// field originates from a validated request or a fixed default.
type Settings struct {
	// Node connection
	BitcoindHost string
	BitcoindPort int
	RPCUser      string
	RPCPassword  config.Secret

	// Listeners
	TCPPort  int
	SSLPort  int
	CertFile string
	KeyFile  string
	Hostname string

	// Resource tuning
	CacheMB          int
	WorkerThreads    int
	DBShards         int
	MaxClients       int
	ClientTimeoutSec int

	// Storage and database tuning
	DataDir        string
	DBMaxOpenFiles int
	DBMemMB        int
}

// SettingsFromRequest derives the settings for a validated request.
func SettingsFromRequest(req *config.Request) Settings {
	return Settings{
		BitcoindHost: req.RPCHost,
		BitcoindPort: req.RPCPort,
		RPCUser:      req.RPCUser,
		RPCPassword:  req.RPCPassword,

		TCPPort:  req.TCPPort,
		SSLPort:  req.SSLPort,
		CertFile: req.CertPath(),
		KeyFile:  req.KeyPath(),
		Hostname: req.Hostname,

		CacheMB:          req.CacheMB,
		WorkerThreads:    req.WorkerThreads,
		DBShards:         req.DBShards,
		MaxClients:       req.MaxClients,
		ClientTimeoutSec: req.ClientTimeoutSec,

		DataDir:        config.DataDir,
		DBMaxOpenFiles: DefaultDBMaxOpenFiles,
		DBMemMB:        DefaultDBMemMB,
	}
}
