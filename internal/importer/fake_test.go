package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ylchen07/vault-import/internal/backend"
	"github.com/ylchen07/vault-import/pkg/models"
)

type fakeRuntime struct {
	names []string
	err   error
	calls int
}

func (f *fakeRuntime) RunningContainers(ctx context.Context) ([]string, error) {
	f.calls++
	return f.names, f.err
}

type write struct {
	Op    string
	Mount string
	Path  string
	Key   string
	Value string
}

// fakeStore keeps written data in memory. A path only accepts patches once it
// has been created by a put or seeded by the test.
type fakeStore struct {
	statusErr error
	listErr   error
	mounts    map[string]*models.Mount
	failKeys  map[string]error

	data   map[string]map[string]string
	writes []write
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		mounts: map[string]*models.Mount{
			"secret/": {Path: "secret/", Type: "kv", Options: map[string]string{"version": "2"}},
			"sys/":    {Path: "sys/", Type: "system"},
		},
		failKeys: make(map[string]error),
		data:     make(map[string]map[string]string),
	}
}

// seed marks mount/path as existing
func (f *fakeStore) seed(mount, path string) {
	f.data[mount+"|"+path] = map[string]string{}
}

func (f *fakeStore) Name() string { return "fake" }

func (f *fakeStore) Status(ctx context.Context) error { return f.statusErr }

func (f *fakeStore) ListMounts(ctx context.Context) (map[string]*models.Mount, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.mounts, nil
}

func (f *fakeStore) Patch(ctx context.Context, mount, path, key, value string) error {
	f.writes = append(f.writes, write{Op: "patch", Mount: mount, Path: path, Key: key, Value: value})
	if err := f.failKeys[key]; err != nil {
		return err
	}
	kv, ok := f.data[mount+"|"+path]
	if !ok {
		return fmt.Errorf("patch: %w", backend.ErrPathNotFound)
	}
	kv[key] = value
	return nil
}

func (f *fakeStore) Put(ctx context.Context, mount, path, key, value string) error {
	f.writes = append(f.writes, write{Op: "put", Mount: mount, Path: path, Key: key, Value: value})
	if err := f.failKeys[key]; err != nil {
		return err
	}
	f.data[mount+"|"+path] = map[string]string{key: value}
	return nil
}

func (f *fakeStore) stored(mount, path string) map[string]string {
	return f.data[mount+"|"+path]
}

// factory returns a backend.Factory serving store and counting constructions
func factory(store *fakeStore, calls *int, cfgs *[]backend.Config) backend.Factory {
	return func(cfg *backend.Config) (backend.Store, error) {
		*calls++
		if cfgs != nil {
			*cfgs = append(*cfgs, *cfg)
		}
		if store == nil {
			return nil, errors.New("no store")
		}
		return store, nil
	}
}
