package config

import (
	"time"

	"github.com/spf13/pflag"
)

// RegisterFlags declares the command-line surface of a run on fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("env-file", "", "Source env file (default: <root>/.rendered.env, env ENV_FILE)")
	fs.String("mount", "secret", "Vault KV mount name (env KV_MOUNT)")
	fs.String("path", "core-services/env", "KV path inside mount (env KV_PATH)")
	fs.String("vault-addr", "http://127.0.0.1:8200", "Vault address (env VAULT_ADDR)")
	fs.String("token", "", "Vault token (overrides VAULT_TOKEN and the bootstrap file)")
	fs.String("container", "vault", "Vault container name (env VAULT_CONTAINER)")
	fs.Bool("dry-run", false, "Print what would be imported without writing")
	fs.String("backend", "docker", "Store backend: docker (vault CLI in the container) or api (HTTP API)")
	fs.String("namespace", "", "Vault Enterprise namespace (env VAULT_NAMESPACE)")
	fs.Duration("timeout", 30*time.Second, "Timeout for each external call")
	fs.StringP("format", "f", "plain", "Report format (plain, json, yaml)")
	fs.String("metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	fs.String("root", "", "Project root holding .rendered.env and secrets/ (default: working directory)")
	fs.String("config", "", "Config file path (optional, env VAULT_IMPORT_CONFIG)")
	fs.Bool("debug", false, "Enable debug output")
	fs.Bool("no-color", false, "Disable colored output")
}
