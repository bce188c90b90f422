package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		secrets  []string
		expected string
	}{
		{
			name:     "replaces every occurrence",
			input:    "error writing hunter22 and hunter22",
			secrets:  []string{"hunter22"},
			expected: "error writing [REDACTED] and [REDACTED]",
		},
		{
			name:     "short values are redacted too",
			input:    "rejected value abc for DB_PASSWORD",
			secrets:  []string{"abc"},
			expected: "rejected value [REDACTED] for DB_PASSWORD",
		},
		{
			name:     "empty tracked value is ignored",
			input:    "value abc",
			secrets:  []string{""},
			expected: "value abc",
		},
		{
			name:     "empty secret list",
			input:    "nothing to hide",
			expected: "nothing to hide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Redact(tt.input, tt.secrets))
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false, true)

	logger.Info("imported %d keys", 3)
	logger.Warn("no keys found")
	logger.Error("failed importing key: %s", "DB_PASSWORD")
	logger.Debug("hidden")

	assert.Equal(t, "✓ imported 3 keys\n⚠ no keys found\n✗ failed importing key: DB_PASSWORD\n", buf.String())
}

func TestLogger_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, true, true)

	logger.Debug("token source: %s", "env")

	assert.Equal(t, "[DEBUG] token source: env\n", buf.String())
}

func TestLogger_TrackedValuesAreRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false, true)
	logger.Track("s3cr3t-value")

	logger.Error("vault said: invalid value s3cr3t-value")

	assert.Equal(t, "✗ vault said: invalid value [REDACTED]\n", buf.String())
}
