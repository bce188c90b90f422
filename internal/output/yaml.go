package output

import (
	"strings"

	"github.com/ylchen07/vault-import/pkg/models"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter outputs YAML format
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// FormatReport formats a run report as YAML
func (f *YAMLFormatter) FormatReport(report *models.RunReport) (string, error) {
	return marshalYAML(report)
}

// FormatBackends formats backend descriptions as YAML
func (f *YAMLFormatter) FormatBackends(backends []models.BackendInfo) (string, error) {
	return marshalYAML(backends)
}

func marshalYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}
