package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the request file looked for when no path is given.
const DefaultConfigFile = "fulkit.yaml"

// Load reads a request from a YAML file, overlays FULKIT_* environment
// variables, applies defaults, and validates. The result is ready for
// plan building.
func Load(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	req := &Request{}
	if err := yaml.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return finalize(req)
}

// FromEnv builds a request purely from environment variables, for
// unattended runs with no config file.
func FromEnv() (*Request, error) {
	return finalize(&Request{})
}

// finalize overlays the environment, applies defaults and validates.
func finalize(req *Request) (*Request, error) {
	// Optional .env in the working directory; absence is not an error.
	_ = godotenv.Load()

	if err := env.Parse(req); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	req.ApplyDefaults()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Write marshals the request to YAML with a descriptive header and writes
// it with owner-only permissions, since it carries the RPC credentials.
func Write(req *Request, path string) error {
	yamlBytes, err := yaml.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(header(path))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// MarshalYAML emits the raw secret so the request file round-trips; the
// file itself is written 0600.
func (s Secret) MarshalYAML() (interface{}, error) {
	return string(s), nil
}

func header(path string) string {
	return fmt.Sprintf(`# fulkit provisioning request
# Generated by: fulkit init
# Generated at: %s
#
# Any field can be overridden with a FULKIT_* environment variable,
# e.g. FULKIT_RPC_PASSWORD for unattended runs.
#
# Usage:
#   fulkit provision -c %s
`, time.Now().Format(time.RFC3339), path)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
