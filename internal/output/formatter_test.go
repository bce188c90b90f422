package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ylchen07/vault-import/pkg/models"
	"gopkg.in/yaml.v3"
)

func sampleReport(status models.RunStatus) *models.RunReport {
	return &models.RunReport{
		RunID:       "3f0c8a52-1d7e-4c1b-9a5e-0f4f8e2b6c11",
		Status:      status,
		Source:      "/srv/app/.rendered.env",
		Destination: "secret/core-services/env",
		Discovered:  2,
		Imported:    2,
		Keys:        []string{"A_SECRET", "DB_PASSWORD"},
	}
}

func TestGetFormatter(t *testing.T) {
	tests := []struct {
		format  Format
		want    Formatter
		wantErr bool
	}{
		{format: FormatPlain, want: &PlainFormatter{}},
		{format: "", want: &PlainFormatter{}},
		{format: FormatJSON, want: &JSONFormatter{}},
		{format: FormatYAML, want: &YAMLFormatter{}},
		{format: "table", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := GetFormatter(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}
}

func TestPlainFormatter_FormatReport(t *testing.T) {
	f := NewPlainFormatter()

	t.Run("success", func(t *testing.T) {
		out, err := f.FormatReport(sampleReport(models.StatusSuccess))
		require.NoError(t, err)
		assert.Equal(t, "Vault import complete\nPath: secret/core-services/env\nImported keys: 2", out)
	})

	t.Run("dry run lists keys", func(t *testing.T) {
		r := sampleReport(models.StatusDryRun)
		r.Imported = 0
		out, err := f.FormatReport(r)
		require.NoError(t, err)
		assert.Equal(t, "Dry run: would import 2 keys into secret/core-services/env\n  - A_SECRET\n  - DB_PASSWORD", out)
	})

	t.Run("empty", func(t *testing.T) {
		r := sampleReport(models.StatusEmpty)
		r.Discovered, r.Imported, r.Keys = 0, 0, nil
		out, err := f.FormatReport(r)
		require.NoError(t, err)
		assert.Equal(t, "Imported keys: 0", out)
	})

	t.Run("aborted", func(t *testing.T) {
		r := sampleReport(models.StatusAborted)
		r.Discovered, r.Imported, r.FailedKey = 5, 2, "C_SECRET"
		out, err := f.FormatReport(r)
		require.NoError(t, err)
		assert.Contains(t, out, "Imported keys: 2 of 5")
		assert.Contains(t, out, "Failed key: C_SECRET")
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := f.FormatReport(sampleReport("weird"))
		assert.Error(t, err)
	})
}

func TestJSONFormatter_FormatReport(t *testing.T) {
	out, err := NewJSONFormatter().FormatReport(sampleReport(models.StatusSuccess))
	require.NoError(t, err)

	var got models.RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, *sampleReport(models.StatusSuccess), got)
	assert.NotContains(t, out, "failed_key")
}

func TestYAMLFormatter_FormatReport(t *testing.T) {
	out, err := NewYAMLFormatter().FormatReport(sampleReport(models.StatusSuccess))
	require.NoError(t, err)
	assert.Contains(t, out, "status: success")
	assert.Contains(t, out, "destination: secret/core-services/env")

	var got models.RunReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"A_SECRET", "DB_PASSWORD"}, got.Keys)
}

func TestFormatBackends(t *testing.T) {
	backends := []models.BackendInfo{
		{Name: "api", Description: "Vault HTTP API"},
		{Name: "docker", Description: "vault CLI via docker exec"},
	}

	plain, err := NewPlainFormatter().FormatBackends(backends)
	require.NoError(t, err)
	assert.Equal(t, "api      Vault HTTP API\ndocker   vault CLI via docker exec", plain)

	empty, err := NewPlainFormatter().FormatBackends(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	js, err := NewJSONFormatter().FormatBackends(backends)
	require.NoError(t, err)
	assert.Contains(t, js, `"name": "docker"`)

	y, err := NewYAMLFormatter().FormatBackends(backends)
	require.NoError(t, err)
	assert.Contains(t, y, "- name: api")
}
