package output

import (
	"fmt"
	"strings"

	"github.com/ylchen07/vault-import/pkg/models"
)

// PlainFormatter outputs human-readable status lines
type PlainFormatter struct{}

// NewPlainFormatter creates a new plain text formatter
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{}
}

// FormatReport formats a run report as status lines
func (f *PlainFormatter) FormatReport(report *models.RunReport) (string, error) {
	var lines []string

	switch report.Status {
	case models.StatusEmpty:
		// the run already warned on stderr which file had no matching keys
		lines = append(lines, "Imported keys: 0")
	case models.StatusDryRun:
		lines = append(lines, fmt.Sprintf("Dry run: would import %d keys into %s", report.Discovered, report.Destination))
		for _, k := range report.Keys {
			lines = append(lines, "  - "+k)
		}
	case models.StatusSuccess:
		lines = append(lines,
			"Vault import complete",
			"Path: "+report.Destination,
			fmt.Sprintf("Imported keys: %d", report.Imported),
		)
	case models.StatusAborted:
		lines = append(lines,
			"Vault import aborted",
			"Path: "+report.Destination,
			fmt.Sprintf("Imported keys: %d of %d", report.Imported, report.Discovered),
		)
		if report.FailedKey != "" {
			lines = append(lines, "Failed key: "+report.FailedKey)
		}
	default:
		return "", fmt.Errorf("unknown run status: %s", report.Status)
	}

	return strings.Join(lines, "\n"), nil
}

// FormatBackends formats backends as plain text (one per line)
func (f *PlainFormatter) FormatBackends(backends []models.BackendInfo) (string, error) {
	if len(backends) == 0 {
		return "", nil
	}

	lines := make([]string, len(backends))
	for i, b := range backends {
		lines[i] = fmt.Sprintf("%-8s %s", b.Name, b.Description)
	}

	return strings.Join(lines, "\n"), nil
}
