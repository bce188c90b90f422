package output

import (
	"github.com/ylchen07/vault-import/pkg/models"
)

// Format represents the output format type
type Format string

const (
	// FormatPlain is human-readable status text
	FormatPlain Format = "plain"
	// FormatJSON is JSON format
	FormatJSON Format = "json"
	// FormatYAML is YAML format
	FormatYAML Format = "yaml"
)

// Formatter formats data for output. Implementations must never render secret values;
// RunReport only carries key names.
type Formatter interface {
	FormatReport(report *models.RunReport) (string, error)
	FormatBackends(backends []models.BackendInfo) (string, error)
}
