package config

// Default values applied to fields the caller left empty. A default never
// overrides an explicit value.
const (
	DefaultRPCHost = "127.0.0.1"
	DefaultRPCPort = 8332

	DefaultTCPPort = 50001
	DefaultSSLPort = 50002
	DefaultTorPort = 50001

	DefaultCacheMB          = 2000
	DefaultWorkerThreads    = 4
	DefaultDBShards         = 16
	DefaultMaxClients       = 1000
	DefaultClientTimeoutSec = 30
)

// ApplyDefaults fills every unset optional field. Hostname and the RPC
// credentials have no defaults; they must come from the caller.
func (r *Request) ApplyDefaults() {
	if r.RPCHost == "" {
		r.RPCHost = DefaultRPCHost
	}
	if r.RPCPort == 0 {
		r.RPCPort = DefaultRPCPort
	}
	if r.TCPPort == 0 {
		r.TCPPort = DefaultTCPPort
	}
	if r.SSLPort == 0 {
		r.SSLPort = DefaultSSLPort
	}
	if r.TorPort == 0 {
		r.TorPort = DefaultTorPort
	}
	if r.CacheMB == 0 {
		r.CacheMB = DefaultCacheMB
	}
	if r.WorkerThreads == 0 {
		r.WorkerThreads = DefaultWorkerThreads
	}
	if r.DBShards == 0 {
		r.DBShards = DefaultDBShards
	}
	if r.MaxClients == 0 {
		r.MaxClients = DefaultMaxClients
	}
	if r.ClientTimeoutSec == 0 {
		r.ClientTimeoutSec = DefaultClientTimeoutSec
	}
}
