// Package hashicorp implements the store backend on top of Vault's HTTP API.
package hashicorp

import (
	"context"
	"fmt"

	"github.com/ylchen07/vault-import/internal/backend"
	"github.com/ylchen07/vault-import/pkg/models"
)

// Store implements backend.Store against the Vault HTTP API
type Store struct {
	client *Client
}

// NewStore creates a new HashiCorp Vault API store
// Configuration options:
//   - Address: Vault server address
//   - Token: Vault authentication token
//   - Namespace: Vault namespace (optional, for Enterprise)
//   - Timeout: per-request timeout
func NewStore(cfg *backend.Config) (backend.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("backend config is required")
	}

	client, err := NewClient(cfg.Address, cfg.Token, cfg.Namespace, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Store{
		client: client,
	}, nil
}

// Name returns the backend name
func (s *Store) Name() string {
	return "api"
}

// Status checks seal state and that the token is accepted
func (s *Store) Status(ctx context.Context) error {
	if err := s.client.Health(ctx); err != nil {
		return err
	}
	return s.client.LookupSelf(ctx)
}

// ListMounts returns all secret engine mounts keyed by path
func (s *Store) ListMounts(ctx context.Context) (map[string]*models.Mount, error) {
	mounts, err := s.client.ListMounts(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*models.Mount, len(mounts))
	for path, mount := range mounts {
		if mount == nil {
			continue
		}
		out[path] = &models.Mount{
			Path:        path,
			Type:        mount.Type,
			Description: mount.Description,
			Options:     mount.Options,
		}
	}
	return out, nil
}

// Patch merges one key into a KV v2 secret
func (s *Store) Patch(ctx context.Context, mount, path, key, value string) error {
	err := s.client.PatchSecret(ctx, mount, path, map[string]interface{}{key: value})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %v", backend.ErrPathNotFound, err)
		}
		return err
	}
	return nil
}

// Put creates a KV v2 secret holding one key
func (s *Store) Put(ctx context.Context, mount, path, key, value string) error {
	return s.client.PutSecret(ctx, mount, path, map[string]interface{}{key: value})
}
