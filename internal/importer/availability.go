package importer

import (
	"context"

	"github.com/ylchen07/vault-import/internal/backend"
	vierrors "github.com/ylchen07/vault-import/internal/errors"
)

// StartHint is shown when the Vault container is not running
const StartHint = "Start core services first: ./scripts/start.sh"

// EnsureRunning fails with ContainerNotRunning unless container is among the
// running containers. A failed listing counts as not running.
func EnsureRunning(ctx context.Context, runtime backend.Runtime, container string) error {
	names, err := runtime.RunningContainers(ctx)
	if err != nil {
		return vierrors.Wrap(vierrors.KindContainerNotRunning, err, "Vault container '%s' is not running", container).
			WithDetails(err.Error()).
			WithSuggestion(StartHint)
	}

	for _, name := range names {
		if name == container {
			return nil
		}
	}

	return vierrors.New(vierrors.KindContainerNotRunning, "Vault container '%s' is not running", container).
		WithSuggestion(StartHint)
}
