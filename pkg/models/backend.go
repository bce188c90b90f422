package models

// BackendInfo holds metadata about a store backend
type BackendInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}
