package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"
)

var (
	// hostnameRegex is the strict domain grammar: letters, digits, dots
	// and hyphens only. Leading and trailing dots are rejected separately
	// so the error can say why.
	hostnameRegex = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)

	// credentialRegex covers RPC user and password: no whitespace, no
	// shell metacharacters, ever.
	credentialRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ValidationError reports a single rejected request field. The run aborts
// on the first one; provisioning is meant to be unattended-repeatable, so
// there is no correction loop.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks every request field against its grammar. Defaults must
// already have been applied; empty optional fields fail here.
func (r *Request) Validate() error {
	if err := validateHostname("hostname", r.Hostname); err != nil {
		return err
	}
	if err := validateCredential("rpc_user", r.RPCUser); err != nil {
		return err
	}
	if err := validateCredential("rpc_password", string(r.RPCPassword)); err != nil {
		return err
	}
	if err := validateRPCHost("rpc_host", r.RPCHost); err != nil {
		return err
	}

	ports := map[string]int{
		"rpc_port": r.RPCPort,
		"tcp_port": r.TCPPort,
		"ssl_port": r.SSLPort,
		"tor_port": r.TorPort,
	}
	// Stable iteration so identical requests produce identical errors.
	for _, field := range []string{"rpc_port", "tcp_port", "ssl_port", "tor_port"} {
		if err := validatePort(field, ports[field]); err != nil {
			return err
		}
	}

	tunables := map[string]int{
		"cache_mb":           r.CacheMB,
		"worker_threads":     r.WorkerThreads,
		"db_shards":          r.DBShards,
		"max_clients":        r.MaxClients,
		"client_timeout_sec": r.ClientTimeoutSec,
	}
	for _, field := range []string{"cache_mb", "worker_threads", "db_shards", "max_clients", "client_timeout_sec"} {
		if tunables[field] < 1 {
			return &ValidationError{Field: field, Reason: "must be a positive integer"}
		}
	}

	return nil
}

func validateHostname(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	if !hostnameRegex.MatchString(value) {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("%q contains characters outside [A-Za-z0-9.-]", value)}
	}
	if strings.HasPrefix(value, ".") || strings.HasSuffix(value, ".") {
		return &ValidationError{Field: field, Reason: "must not start or end with a dot"}
	}
	return nil
}

func validateCredential(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	if !credentialRegex.MatchString(value) {
		return &ValidationError{Field: field, Reason: "only letters, digits, underscore and hyphen are allowed"}
	}
	return nil
}

func validateRPCHost(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	// Dotted IPv4 literal is accepted as-is.
	if ip := net.ParseIP(value); ip != nil && ip.To4() != nil {
		return nil
	}
	return validateHostname(field, value)
}

func validatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("%d is outside [1,65535]", port)}
	}
	return nil
}
