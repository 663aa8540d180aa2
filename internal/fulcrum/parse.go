package fulcrum

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/fulkit/fulkit/internal/config"
)

// Parse reads a rendered configuration file back into Settings. Together
// with Render it satisfies the round-trip law: Render(Parse(Render(s)))
// equals Render(s) byte for byte.
func Parse(data []byte) (Settings, error) {
	values := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return Settings{}, fmt.Errorf("malformed line %q", line)
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return Settings{}, fmt.Errorf("reading config: %w", err)
	}

	var s Settings
	var err error

	if s.BitcoindHost, s.BitcoindPort, err = splitHostPort(values, "bitcoind"); err != nil {
		return Settings{}, err
	}
	s.RPCUser = values["rpcuser"]
	s.RPCPassword = config.Secret(values["rpcpassword"])

	if _, s.TCPPort, err = splitHostPort(values, "tcp"); err != nil {
		return Settings{}, err
	}
	if _, s.SSLPort, err = splitHostPort(values, "ssl"); err != nil {
		return Settings{}, err
	}
	s.CertFile = values["cert"]
	s.KeyFile = values["key"]
	s.Hostname = values["hostname"]

	ints := []struct {
		key  string
		dest *int
	}{
		{"cache", &s.CacheMB},
		{"worker_threads", &s.WorkerThreads},
		{"db_shards", &s.DBShards},
		{"max_clients", &s.MaxClients},
		{"client_timeout", &s.ClientTimeoutSec},
		{"db_max_open_files", &s.DBMaxOpenFiles},
		{"db_mem", &s.DBMemMB},
	}
	for _, field := range ints {
		v, ok := values[field.key]
		if !ok {
			return Settings{}, fmt.Errorf("missing key %q", field.key)
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Settings{}, fmt.Errorf("key %q: %w", field.key, err)
		}
		*field.dest = n
	}

	s.DataDir = values["datadir"]

	return s, nil
}

func splitHostPort(values map[string]string, key string) (string, int, error) {
	v, ok := values[key]
	if !ok {
		return "", 0, fmt.Errorf("missing key %q", key)
	}
	host, portStr, err := net.SplitHostPort(v)
	if err != nil {
		return "", 0, fmt.Errorf("key %q: %w", key, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("key %q: %w", key, err)
	}
	return host, port, nil
}
