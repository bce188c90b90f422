package docker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ylchen07/vault-import/internal/backend"
	"github.com/ylchen07/vault-import/pkg/models"
)

// Store implements backend.Store by running the vault CLI inside the Vault
// container with docker exec
type Store struct {
	client    *Client
	container string
	address   string
	token     string
	namespace string
}

// NewStore creates a docker-exec backed store
// Configuration options:
//   - Container (required): the running Vault container
//   - Address: VAULT_ADDR as seen from inside the container
//   - Token: passed through the docker process environment, never on the command line
//   - Namespace: VAULT_NAMESPACE (optional, Vault Enterprise)
func NewStore(cfg *backend.Config) (backend.Store, error) {
	return NewStoreWithClient(NewClient(cfg.Timeout), cfg)
}

// NewStoreWithClient creates a store using an existing client
func NewStoreWithClient(client *Client, cfg *backend.Config) (*Store, error) {
	if cfg == nil || cfg.Container == "" {
		return nil, fmt.Errorf("container is required for the docker backend")
	}

	return &Store{
		client:    client,
		container: cfg.Container,
		address:   cfg.Address,
		token:     cfg.Token,
		namespace: cfg.Namespace,
	}, nil
}

// Name returns the backend name
func (s *Store) Name() string {
	return "docker"
}

// Status runs `vault status` and verifies the token with `vault token lookup`
func (s *Store) Status(ctx context.Context) error {
	if _, err := s.vault(ctx, nil, "status"); err != nil {
		return fmt.Errorf("vault status: %w", err)
	}
	if _, err := s.vault(ctx, nil, "token", "lookup", "-format=json"); err != nil {
		return fmt.Errorf("vault token lookup: %w", err)
	}
	return nil
}

// ListMounts runs `vault secrets list -format=json`
func (s *Store) ListMounts(ctx context.Context) (map[string]*models.Mount, error) {
	out, err := s.vault(ctx, nil, "secrets", "list", "-format=json")
	if err != nil {
		return nil, fmt.Errorf("failed to list secrets engines: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse secrets list output: %w", err)
	}

	mounts := make(map[string]*models.Mount, len(raw))
	for path, data := range raw {
		// one odd entry must not hide the others
		m, ok := decodeMount(data)
		if !ok {
			continue
		}
		m.Path = path
		mounts[path] = m
	}
	return mounts, nil
}

// mountEntry is one value of `vault secrets list -format=json`. Options may
// hold non-string values on some engines.
type mountEntry struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description"`
	Options     map[string]interface{} `json:"options"`
}

func decodeMount(data json.RawMessage) (*models.Mount, bool) {
	var e *mountEntry
	if err := json.Unmarshal(data, &e); err != nil || e == nil {
		return nil, false
	}

	m := &models.Mount{Type: e.Type, Description: e.Description}
	if len(e.Options) > 0 {
		m.Options = make(map[string]string, len(e.Options))
		for k, v := range e.Options {
			if v == nil {
				continue
			}
			m.Options[k] = fmt.Sprint(v)
		}
	}
	return m, true
}

// Patch runs `vault kv patch -mount=<mount> <path> <key>=-` with the value on stdin
func (s *Store) Patch(ctx context.Context, mount, path, key, value string) error {
	_, err := s.vault(ctx, []byte(value), "kv", "patch", "-mount="+strings.Trim(mount, "/"), path, key+"=-")
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("vault kv patch: %w", backend.ErrPathNotFound)
		}
		return fmt.Errorf("vault kv patch: %w", err)
	}
	return nil
}

// Put runs `vault kv put -mount=<mount> <path> <key>=-` with the value on stdin
func (s *Store) Put(ctx context.Context, mount, path, key, value string) error {
	_, err := s.vault(ctx, []byte(value), "kv", "put", "-mount="+strings.Trim(mount, "/"), path, key+"=-")
	if err != nil {
		return fmt.Errorf("vault kv put: %w", err)
	}
	return nil
}

// vault runs a vault subcommand inside the container
func (s *Store) vault(ctx context.Context, stdin []byte, args ...string) ([]byte, error) {
	execArgs := []string{"exec"}
	if stdin != nil {
		execArgs = append(execArgs, "-i")
	}

	// VAULT_TOKEN without a value makes docker copy it from our own environment.
	execArgs = append(execArgs, "-e", "VAULT_ADDR="+s.address, "-e", "VAULT_TOKEN")
	if s.namespace != "" {
		execArgs = append(execArgs, "-e", "VAULT_NAMESPACE="+s.namespace)
	}
	execArgs = append(execArgs, s.container, "vault")
	execArgs = append(execArgs, args...)

	return s.client.Execute(ctx, stdin, []string{"VAULT_TOKEN=" + s.token}, execArgs...)
}

// isNotFound recognises the vault CLI's answer for a patch against a path with no data
func isNotFound(err error) bool {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	msg := strings.ToLower(cmdErr.Stderr)
	return strings.Contains(msg, "no value found") || strings.Contains(msg, "not found")
}
