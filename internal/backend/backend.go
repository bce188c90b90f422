// Package backend defines the capabilities the import pipeline needs from the
// container runtime and the secret store.
package backend

import (
	"context"
	"errors"
	"time"

	"github.com/ylchen07/vault-import/pkg/models"
)

// ErrPathNotFound is returned by Store.Patch when the destination path holds no data yet
var ErrPathNotFound = errors.New("no existing data at path")

// Runtime lists running containers
type Runtime interface {
	// RunningContainers returns the names of all running containers
	RunningContainers(ctx context.Context) ([]string, error)
}

// Store is the administrative surface of the secret store
type Store interface {
	// Name returns the backend name (e.g., "docker", "api")
	Name() string

	// Status probes the store with the configured token
	Status(ctx context.Context) error

	// ListMounts returns all secret engine mounts keyed by path (with trailing slash)
	ListMounts(ctx context.Context) (map[string]*models.Mount, error)

	// Patch merges one key into the data at path within a KV v2 mount
	Patch(ctx context.Context, mount, path, key, value string) error

	// Put creates the data at path within a KV v2 mount with a single key
	Put(ctx context.Context, mount, path, key, value string) error
}

// Config holds what a Store needs to reach and authenticate to Vault
type Config struct {
	Address   string
	Token     string
	Namespace string
	Container string
	Timeout   time.Duration
}
