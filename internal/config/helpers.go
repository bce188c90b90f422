package config

import (
	"path/filepath"
	"strings"
)

// Destination returns the human-readable mount/path target
func (c RunConfig) Destination() string {
	return strings.TrimSuffix(c.Mount, "/") + "/" + strings.TrimPrefix(c.Path, "/")
}

// BootstrapTokenPath returns the location of the Vault init output
func (c RunConfig) BootstrapTokenPath() string {
	return filepath.Join(c.Root, BootstrapTokenFile)
}

// MetricsEnabled reports whether a metrics textfile was requested
func (c RunConfig) MetricsEnabled() bool {
	return c.MetricsFile != ""
}

// NormalizeMount trims trailing separators and appends exactly one
func NormalizeMount(mount string) string {
	return strings.TrimRight(mount, "/") + "/"
}
