package hashicorp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ylchen07/vault-import/internal/backend"
)

const testToken = "s.test-root"

// fakeVault serves the handful of endpoints the store uses
type fakeVault struct {
	mu      sync.Mutex
	sealed  bool
	data    map[string]map[string]interface{}
	writes  []string
	denyKey string
}

func newFakeVault() *fakeVault {
	return &fakeVault{data: make(map[string]map[string]interface{})}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

var writeResponse = map[string]interface{}{
	"data": map[string]interface{}{
		"created_time":    "2018-03-22T02:24:06.945319214Z",
		"custom_metadata": nil,
		"deletion_time":   "",
		"destroyed":       false,
		"version":         1,
	},
}

func (f *fakeVault) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/sys/health", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]interface{}{"initialized": true, "sealed": f.sealed})
	})

	mux.HandleFunc("/v1/auth/token/lookup-self", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Vault-Token") != testToken {
			writeJSON(w, http.StatusForbidden, map[string]interface{}{"errors": []string{"permission denied"}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": map[string]interface{}{"id": testToken}})
	})

	mux.HandleFunc("/v1/sys/mounts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": map[string]interface{}{
				"secret/": map[string]interface{}{"type": "kv", "description": "kv store", "options": map[string]string{"version": "2"}},
				"legacy/": map[string]interface{}{"type": "kv", "options": map[string]string{"version": "1"}},
				"sys/":    map[string]interface{}{"type": "system"},
			},
		})
	})

	mux.HandleFunc("/v1/secret/data/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		path := r.URL.Path[len("/v1/secret/data/"):]
		var body struct {
			Data map[string]interface{} `json:"data"`
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)

		for k := range body.Data {
			if k == f.denyKey {
				writeJSON(w, http.StatusForbidden, map[string]interface{}{"errors": []string{"permission denied"}})
				return
			}
		}

		switch r.Method {
		case http.MethodPatch:
			existing, ok := f.data[path]
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]interface{}{"errors": []string{}})
				return
			}
			for k, v := range body.Data {
				existing[k] = v
			}
		case http.MethodPut, http.MethodPost:
			f.data[path] = body.Data
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]interface{}{"errors": []string{"unsupported"}})
			return
		}
		f.writes = append(f.writes, r.Method+" "+path)
		writeJSON(w, http.StatusOK, writeResponse)
	})

	return mux
}

func newTestStore(t *testing.T, f *fakeVault, token string) backend.Store {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	s, err := NewStore(&backend.Config{Address: srv.URL, Token: token, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return s
}

func TestNewStore_RequiresAddress(t *testing.T) {
	_, err := NewStore(&backend.Config{Token: testToken})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vault address is required")
}

func TestStore_Status(t *testing.T) {
	s := newTestStore(t, newFakeVault(), testToken)
	assert.Equal(t, "api", s.Name())
	require.NoError(t, s.Status(context.Background()))
}

func TestStore_StatusSealed(t *testing.T) {
	f := newFakeVault()
	f.sealed = true
	s := newTestStore(t, f, testToken)

	err := s.Status(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vault is sealed")
}

func TestStore_StatusInvalidToken(t *testing.T) {
	s := newTestStore(t, newFakeVault(), "s.wrong")

	err := s.Status(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token lookup failed")
}

func TestStore_ListMounts(t *testing.T) {
	s := newTestStore(t, newFakeVault(), testToken)

	mounts, err := s.ListMounts(context.Background())
	require.NoError(t, err)

	require.Contains(t, mounts, "secret/")
	assert.True(t, mounts["secret/"].IsKVv2())
	assert.Equal(t, "secret/", mounts["secret/"].Path)
	require.Contains(t, mounts, "legacy/")
	assert.False(t, mounts["legacy/"].IsKVv2())
}

func TestStore_PatchMissingSecret(t *testing.T) {
	s := newTestStore(t, newFakeVault(), testToken)

	err := s.Patch(context.Background(), "secret/", "core-services/env", "A_SECRET", "1")
	assert.ErrorIs(t, err, backend.ErrPathNotFound)
}

func TestStore_PutThenPatch(t *testing.T) {
	f := newFakeVault()
	s := newTestStore(t, f, testToken)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "secret", "core-services/env", "A_SECRET", "1"))
	require.NoError(t, s.Patch(ctx, "secret", "core-services/env", "B_PASSWORD", "2"))
	require.NoError(t, s.Patch(ctx, "secret", "core-services/env", "A_SECRET", "3"))

	assert.Equal(t, map[string]interface{}{"A_SECRET": "3", "B_PASSWORD": "2"}, f.data["core-services/env"])
	assert.Equal(t, []string{
		"PUT core-services/env",
		"PATCH core-services/env",
		"PATCH core-services/env",
	}, f.writes)
}

func TestStore_PatchDenied(t *testing.T) {
	f := newFakeVault()
	f.data["core-services/env"] = map[string]interface{}{}
	f.denyKey = "C_SECRET"
	s := newTestStore(t, f, testToken)

	err := s.Patch(context.Background(), "secret", "core-services/env", "C_SECRET", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, backend.ErrPathNotFound)
}
