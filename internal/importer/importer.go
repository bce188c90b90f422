// Package importer runs one import: it checks the environment, parses the env
// file and writes every sensitive key into the KV v2 destination.
package importer

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ylchen07/vault-import/internal/backend"
	"github.com/ylchen07/vault-import/internal/config"
	"github.com/ylchen07/vault-import/internal/envfile"
	vierrors "github.com/ylchen07/vault-import/internal/errors"
	"github.com/ylchen07/vault-import/internal/logging"
	"github.com/ylchen07/vault-import/internal/metrics"
	"github.com/ylchen07/vault-import/internal/mount"
	"github.com/ylchen07/vault-import/internal/token"
	"github.com/ylchen07/vault-import/pkg/models"
)

// Importer drives a single run. It is not safe for concurrent use.
type Importer struct {
	cfg      config.RunConfig
	env      config.Environment
	runtime  backend.Runtime
	newStore backend.Factory

	log     *logging.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// Option configures an Importer
type Option func(*Importer)

// WithLogger sets the status line logger
func WithLogger(l *logging.Logger) Option {
	return func(im *Importer) { im.log = l }
}

// WithMetrics records every finished run on r
func WithMetrics(r *metrics.Recorder) Option {
	return func(im *Importer) { im.metrics = r }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(im *Importer) { im.now = now }
}

// New creates an importer. newStore is only called once the run has passed
// every local check and is not a dry run.
func New(cfg config.RunConfig, env config.Environment, runtime backend.Runtime, newStore backend.Factory, opts ...Option) *Importer {
	im := &Importer{
		cfg:      cfg,
		env:      env,
		runtime:  runtime,
		newStore: newStore,
		log:      logging.NewWithWriter(io.Discard, false, true),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Run executes the pipeline. The returned report is never nil; on a terminal
// error its status is aborted and the error is returned alongside it.
func (im *Importer) Run(ctx context.Context) (*models.RunReport, error) {
	started := im.now()
	report := &models.RunReport{
		RunID:       uuid.NewString(),
		Source:      im.cfg.EnvFile,
		Destination: im.cfg.Destination(),
	}

	err := im.run(ctx, report)
	if err != nil {
		report.Status = models.StatusAborted
		report.Error = errorMessage(err)
	}

	if im.metrics != nil {
		finished := im.now()
		im.metrics.Observe(report, abortReason(err), finished.Sub(started), finished)
	}

	return report, err
}

func (im *Importer) run(ctx context.Context, report *models.RunReport) error {
	cfg := im.cfg
	im.log.Debug("run %s: %s -> %s via %s backend", report.RunID, cfg.EnvFile, report.Destination, cfg.Backend)

	if _, err := os.Stat(cfg.EnvFile); err != nil {
		return vierrors.Wrap(vierrors.KindFileNotFound, err, "Env file not found: %s", cfg.EnvFile)
	}

	if err := EnsureRunning(ctx, im.runtime, cfg.Container); err != nil {
		return err
	}

	tok, source := token.Resolve(cfg.Token, im.env, cfg.BootstrapTokenPath())
	im.log.Debug("token source: %s", source)
	if tok == "" && !cfg.DryRun {
		return vierrors.New(vierrors.KindMissingToken, "Vault token not found").
			WithSuggestion("Provide --token or set VAULT_TOKEN")
	}
	im.log.Track(tok)

	secrets, err := envfile.Parse(cfg.EnvFile)
	if err != nil {
		return vierrors.Wrap(vierrors.KindEnvFileInvalid, err, "Unable to parse env file: %s", cfg.EnvFile).
			WithDetails(err.Error())
	}
	report.Discovered = secrets.Len()
	report.Keys = secrets.SortedKeys()

	if secrets.Len() == 0 {
		im.log.Warn("No keys matching SECRET/PASSWORD/API_KEY found in %s", cfg.EnvFile)
		report.Status = models.StatusEmpty
		return nil
	}

	if cfg.DryRun {
		report.Status = models.StatusDryRun
		return nil
	}

	store, err := im.newStore(&backend.Config{
		Address:   cfg.VaultAddr,
		Token:     tok,
		Namespace: cfg.Namespace,
		Container: cfg.Container,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return vierrors.Wrap(vierrors.KindConfig, err, "Unable to set up the %s backend", cfg.Backend).
			WithDetails(err.Error())
	}

	if err := store.Status(ctx); err != nil {
		return vierrors.Wrap(vierrors.KindStoreUnreachable, err,
			"Unable to reach/unlock Vault at %s with provided token", cfg.VaultAddr).
			WithDetails(err.Error())
	}

	if _, err := mount.EnsureKVv2(ctx, store, cfg.Mount); err != nil {
		return err
	}

	im.log.Info("Importing %d keys to Vault KV v2 path %s...", secrets.Len(), report.Destination)
	for _, entry := range secrets.Entries() {
		if err := im.write(ctx, store, entry); err != nil {
			report.FailedKey = entry.Key
			return vierrors.Wrap(vierrors.KindImportFailed, err, "Failed importing key: %s", entry.Key).
				WithDetails(err.Error())
		}
		report.Imported++
		im.log.Debug("imported %s", entry.Key)
	}

	report.Status = models.StatusSuccess
	return nil
}

// write patches one key, creating the path when it holds no data yet
func (im *Importer) write(ctx context.Context, store backend.Store, entry *envfile.Entry) error {
	return entry.Value.Use(func(b []byte) error {
		value := string(b)
		im.log.Track(value)

		err := store.Patch(ctx, im.cfg.Mount, im.cfg.Path, entry.Key, value)
		if errors.Is(err, backend.ErrPathNotFound) {
			im.log.Debug("%s has no data yet, creating it", im.cfg.Destination())
			err = store.Put(ctx, im.cfg.Mount, im.cfg.Path, entry.Key, value)
		}
		return err
	})
}

func errorMessage(err error) string {
	var e *vierrors.Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}

// abortReason is the metrics label for err, empty on success
func abortReason(err error) string {
	if err == nil {
		return ""
	}
	return strings.ReplaceAll(vierrors.KindOf(err).String(), " ", "_")
}
