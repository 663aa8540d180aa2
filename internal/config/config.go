// Package config defines the provisioning request model: the validated,
// immutable set of parameters a run is built from.
package config

import (
	"log/slog"
)

// Fixed host paths and identities managed by the engine. These are not
// user-tunable; every provider agrees on them.
const (
	// ServiceUser is the dedicated unprivileged account the server runs as.
	ServiceUser = "fulcrum"

	// DataDir is the server's working and database directory.
	DataDir = "/var/lib/fulcrum"

	// ConfDir holds the rendered configuration file.
	ConfDir  = "/etc/fulcrum"
	ConfPath = "/etc/fulcrum/fulcrum.conf"

	// BinaryPath is where the compiled server binary is installed.
	BinaryPath = "/usr/local/bin/Fulcrum"

	// UnitPath is the systemd service unit location.
	UnitPath = "/etc/systemd/system/fulcrum.service"

	// BuildDir is the scratch checkout used by the source build.
	BuildDir = "/tmp/fulcrum-build"

	// RepoURL and RepoTag pin the upstream source tree.
	RepoURL = "https://github.com/cculianu/Fulcrum.git"
	RepoTag = "v1.11.1"
)

// Secret holds credential material. It renders redacted everywhere except
// explicit YAML round-trips of the request file itself.
type Secret string

// String implements fmt.Stringer; the value never reaches %v/%s output.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[redacted]"
}

// LogValue keeps the value out of structured logs.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// Value returns the raw credential for the one consumer allowed to see
// it: the config renderer.
func (s Secret) Value() string {
	return string(s)
}

// Request is the validated provisioning request. It is constructed once
// per run, from a file, environment, or the interactive wizard, and never
// mutated afterwards.
type Request struct {
	// Hostname is the public DNS name the certificate is issued for and
	// the name announced to Electrum peers.
	Hostname string `yaml:"hostname" env:"FULKIT_HOSTNAME"`

	// Node RPC connection.
	RPCUser     string `yaml:"rpc_user" env:"FULKIT_RPC_USER"`
	RPCPassword Secret `yaml:"rpc_password" env:"FULKIT_RPC_PASSWORD"`
	RPCHost     string `yaml:"rpc_host,omitempty" env:"FULKIT_RPC_HOST"`
	RPCPort     int    `yaml:"rpc_port,omitempty" env:"FULKIT_RPC_PORT"`

	// Listener ports.
	TCPPort int `yaml:"tcp_port,omitempty" env:"FULKIT_TCP_PORT"`
	SSLPort int `yaml:"ssl_port,omitempty" env:"FULKIT_SSL_PORT"`
	TorPort int `yaml:"tor_port,omitempty" env:"FULKIT_TOR_PORT"`

	// Resource tuning. Opaque pass-through values for the wrapped server.
	CacheMB          int `yaml:"cache_mb,omitempty" env:"FULKIT_CACHE_MB"`
	WorkerThreads    int `yaml:"worker_threads,omitempty" env:"FULKIT_WORKER_THREADS"`
	DBShards         int `yaml:"db_shards,omitempty" env:"FULKIT_DB_SHARDS"`
	MaxClients       int `yaml:"max_clients,omitempty" env:"FULKIT_MAX_CLIENTS"`
	ClientTimeoutSec int `yaml:"client_timeout_sec,omitempty" env:"FULKIT_CLIENT_TIMEOUT_SEC"`

	// Feature flags.
	EnableFirewall *bool `yaml:"enable_firewall,omitempty" env:"FULKIT_ENABLE_FIREWALL"`
	EnableTor      *bool `yaml:"enable_tor,omitempty" env:"FULKIT_ENABLE_TOR"`
}

// FirewallEnabled reports the effective firewall flag (default true).
func (r *Request) FirewallEnabled() bool {
	return r.EnableFirewall == nil || *r.EnableFirewall
}

// TorEnabled reports the effective hidden-service flag (default false).
func (r *Request) TorEnabled() bool {
	return r.EnableTor != nil && *r.EnableTor
}

// ListenerPorts returns the inbound TCP ports the firewall must open.
func (r *Request) ListenerPorts() []int {
	return []int{r.TCPPort, r.SSLPort}
}

// CertDir returns the certificate directory for the request's hostname.
func (r *Request) CertDir() string {
	return "/etc/letsencrypt/live/" + r.Hostname
}

// CertPath returns the full-chain certificate path.
func (r *Request) CertPath() string {
	return r.CertDir() + "/fullchain.pem"
}

// KeyPath returns the private key path.
func (r *Request) KeyPath() string {
	return r.CertDir() + "/privkey.pem"
}
