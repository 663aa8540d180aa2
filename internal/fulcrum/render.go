package fulcrum

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// confTemplate is the fixed configuration template. Values reach it only
// through the typed Settings struct, never raw user input.
const confTemplate = `# Fulcrum configuration
# Rendered by fulkit. Manual edits are overwritten on the next run.

# Node connection
bitcoind = {{ .BitcoindHost }}:{{ .BitcoindPort }}
rpcuser = {{ .RPCUser }}
rpcpassword = {{ .RPCPassword.Value }}

# Listeners
tcp = 0.0.0.0:{{ .TCPPort }}
ssl = 0.0.0.0:{{ .SSLPort }}
cert = {{ .CertFile }}
key = {{ .KeyFile }}
hostname = {{ .Hostname | lower }}
public = {{ .Hostname | lower }}:{{ .SSLPort }}
announce = true
peering = false

# Resource tuning
cache = {{ .CacheMB }}
worker_threads = {{ .WorkerThreads }}
db_shards = {{ .DBShards }}
max_clients = {{ .MaxClients }}
client_timeout = {{ .ClientTimeoutSec }}

# Storage and logging
datadir = {{ .DataDir }}
syslog = true
debug = false

# Database tuning
db_max_open_files = {{ .DBMaxOpenFiles }}
db_mem = {{ .DBMemMB }}
`

var tmpl = template.Must(
	template.New("fulcrum.conf").Funcs(sprig.FuncMap()).Parse(confTemplate))

// Render produces the configuration file bytes. Identical settings always
// produce byte-identical output.
func Render(s Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s); err != nil {
		return nil, fmt.Errorf("rendering config: %w", err)
	}
	return buf.Bytes(), nil
}
