// Package mount checks that the import destination is a KV v2 secrets engine.
package mount

import (
	"context"
	"fmt"
	"strings"

	"github.com/ylchen07/vault-import/internal/backend"
	"github.com/ylchen07/vault-import/internal/config"
	vierrors "github.com/ylchen07/vault-import/internal/errors"
	"github.com/ylchen07/vault-import/pkg/models"
)

// Lister is the part of backend.Store the validator needs
type Lister interface {
	ListMounts(ctx context.Context) (map[string]*models.Mount, error)
}

var _ Lister = backend.Store(nil)

// EnsureKVv2 fails with StoreUnreachable when the mount listing cannot be
// obtained or decoded, and with MountInvalid when mountName is missing or is
// not a version 2 kv engine.
func EnsureKVv2(ctx context.Context, store Lister, mountName string) (*models.Mount, error) {
	mounts, err := store.ListMounts(ctx)
	if err != nil {
		return nil, vierrors.Wrap(vierrors.KindStoreUnreachable, err, "Unable to list Vault secrets engines").
			WithDetails(err.Error())
	}

	key := config.NormalizeMount(mountName)
	entry, ok := mounts[key]
	if !ok || entry == nil || !entry.IsKVv2() {
		e := vierrors.New(vierrors.KindMountInvalid, "Mount '%s' is not an existing KV v2 engine", mountName).
			WithSuggestion(fmt.Sprintf("vault secrets enable -path=%s kv-v2", strings.TrimRight(mountName, "/")))
		if ok && entry != nil {
			e.WithDetails(fmt.Sprintf("found type %q version %q", entry.Type, entry.Version()))
		}
		return nil, e
	}

	return entry, nil
}
