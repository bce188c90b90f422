package config

import "time"

// RunConfig is the resolved, immutable configuration of one import run.
// It is built once at startup and passed by value.
type RunConfig struct {
	EnvFile     string        `mapstructure:"env_file"`
	Mount       string        `mapstructure:"mount"`
	Path        string        `mapstructure:"path"`
	VaultAddr   string        `mapstructure:"vault_addr"`
	Container   string        `mapstructure:"container"`
	Token       string        `mapstructure:"token"`
	DryRun      bool          `mapstructure:"dry_run"`
	Backend     string        `mapstructure:"backend"`
	Namespace   string        `mapstructure:"namespace"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Format      string        `mapstructure:"format"`
	MetricsFile string        `mapstructure:"metrics_file"`
	Root        string        `mapstructure:"root"`
	Debug       bool          `mapstructure:"debug"`
	NoColor     bool          `mapstructure:"no_color"`
}

// Setting ties a config key to its flag and environment variable
type Setting struct {
	Key  string
	Flag string
	Env  string
}

// Settings lists every key that can be overridden from the command line or environment.
// Token is deliberately absent: VAULT_TOKEN is consulted by the token resolver instead.
var Settings = []Setting{
	{Key: "env_file", Flag: "env-file", Env: "ENV_FILE"},
	{Key: "mount", Flag: "mount", Env: "KV_MOUNT"},
	{Key: "path", Flag: "path", Env: "KV_PATH"},
	{Key: "vault_addr", Flag: "vault-addr", Env: "VAULT_ADDR"},
	{Key: "container", Flag: "container", Env: "VAULT_CONTAINER"},
	{Key: "token", Flag: "token"},
	{Key: "dry_run", Flag: "dry-run", Env: "VAULT_IMPORT_DRY_RUN"},
	{Key: "backend", Flag: "backend", Env: "VAULT_IMPORT_BACKEND"},
	{Key: "namespace", Flag: "namespace", Env: "VAULT_NAMESPACE"},
	{Key: "timeout", Flag: "timeout", Env: "VAULT_IMPORT_TIMEOUT"},
	{Key: "format", Flag: "format", Env: "VAULT_IMPORT_FORMAT"},
	{Key: "metrics_file", Flag: "metrics-file", Env: "VAULT_IMPORT_METRICS_FILE"},
	{Key: "root", Flag: "root", Env: "VAULT_IMPORT_ROOT"},
	{Key: "debug", Flag: "debug", Env: "VAULT_IMPORT_DEBUG"},
	{Key: "no_color", Flag: "no-color"},
}
