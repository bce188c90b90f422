package config

import (
	"os"
	"strings"
)

// TokenEnvVar holds the Vault token consulted by the token resolver
const TokenEnvVar = "VAULT_TOKEN"

// ConfigEnvVar points at an explicit config file
const ConfigEnvVar = "VAULT_IMPORT_CONFIG"

// Environment is a snapshot of process environment variables. It is taken once
// in main and threaded through the pipeline so nothing reads os.Getenv ad hoc.
type Environment map[string]string

// EnvironmentFromOS snapshots the current process environment
func EnvironmentFromOS() Environment {
	env := make(Environment)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Get returns the value of key, or "" when unset
func (e Environment) Get(key string) string {
	return e[key]
}

// Lookup returns the value of key and whether it is set to a non-empty value
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
