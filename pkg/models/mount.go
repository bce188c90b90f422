package models

// Mount describes a secrets engine as listed by sys/mounts
type Mount struct {
	Path        string            `json:"path,omitempty" yaml:"path,omitempty"`
	Type        string            `json:"type" yaml:"type"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Options     map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Version returns the engine version option, "1" when unset
func (m *Mount) Version() string {
	if m.Options != nil {
		if v, ok := m.Options["version"]; ok && v != "" {
			return v
		}
	}
	return "1"
}

// IsKVv2 reports whether the mount is a versioned key-value engine
func (m *Mount) IsKVv2() bool {
	return m.Type == "kv" && m.Options["version"] == "2"
}
