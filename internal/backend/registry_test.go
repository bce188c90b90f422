package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ylchen07/vault-import/pkg/models"
)

type nopStore struct{ cfg *Config }

func (s *nopStore) Name() string { return "nop" }
func (s *nopStore) Status(ctx context.Context) error { return nil }
func (s *nopStore) ListMounts(ctx context.Context) (map[string]*models.Mount, error) {
	return nil, nil
}
func (s *nopStore) Patch(ctx context.Context, mount, path, key, value string) error { return nil }
func (s *nopStore) Put(ctx context.Context, mount, path, key, value string) error { return nil }

func TestRegistry_New(t *testing.T) {
	r := NewRegistry()
	r.Register("nop", "does nothing", func(cfg *Config) (Store, error) {
		return &nopStore{cfg: cfg}, nil
	})

	cfg := &Config{Address: "http://127.0.0.1:8200", Token: "s.x"}
	s, err := r.New("nop", cfg)
	require.NoError(t, err)
	assert.Equal(t, "nop", s.Name())
	assert.Same(t, cfg, s.(*nopStore).cfg)
}

func TestRegistry_UnknownBackend(t *testing.T) {
	r := NewRegistry()

	_, err := r.New("missing", &Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend not found: missing")
	assert.False(t, r.IsRegistered("missing"))
}

func TestRegistry_ListIsSorted(t *testing.T) {
	r := NewRegistry()
	factory := func(cfg *Config) (Store, error) { return &nopStore{}, nil }
	r.Register("docker", "vault CLI", factory)
	r.Register("api", "HTTP API", factory)

	assert.Equal(t, []models.BackendInfo{
		{Name: "api", Description: "HTTP API"},
		{Name: "docker", Description: "vault CLI"},
	}, r.List())
	assert.True(t, r.IsRegistered("api"))
}
