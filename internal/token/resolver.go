// Package token decides which Vault token a run authenticates with.
package token

import (
	"encoding/json"
	"os"

	"github.com/ylchen07/vault-import/internal/config"
)

// Source names where a token came from
type Source string

const (
	SourceFlag      Source = "flag"
	SourceEnv       Source = "env"
	SourceBootstrap Source = "bootstrap"
	SourceNone      Source = "none"
)

// bootstrapField is the field of the Vault init output holding the root token
const bootstrapField = "root_token"

// Resolve returns the first non-empty token from: the explicit value,
// VAULT_TOKEN in env, the root_token field of the bootstrap file. It never
// fails; an unreadable or malformed bootstrap file counts as "not found".
func Resolve(explicit string, env config.Environment, bootstrapPath string) (string, Source) {
	if explicit != "" {
		return explicit, SourceFlag
	}

	if t, ok := env.Lookup(config.TokenEnvVar); ok {
		return t, SourceEnv
	}

	if t := readBootstrap(bootstrapPath); t != "" {
		return t, SourceBootstrap
	}

	return "", SourceNone
}

func readBootstrap(path string) string {
	if path == "" {
		return ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}

	t, ok := doc[bootstrapField].(string)
	if !ok {
		return ""
	}
	return t
}
