package output

import (
	"encoding/json"

	"github.com/ylchen07/vault-import/pkg/models"
)

// JSONFormatter outputs JSON format
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatReport formats a run report as JSON
func (f *JSONFormatter) FormatReport(report *models.RunReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatBackends formats backend descriptions as JSON
func (f *JSONFormatter) FormatBackends(backends []models.BackendInfo) (string, error) {
	data, err := json.MarshalIndent(backends, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
