package models

// RunStatus is the terminal status of an import run
type RunStatus string

const (
	// StatusSuccess means every discovered key was written
	StatusSuccess RunStatus = "success"
	// StatusEmpty means no sensitive keys were found; nothing was written
	StatusEmpty RunStatus = "empty"
	// StatusDryRun means keys were discovered but the store was never contacted
	StatusDryRun RunStatus = "dry-run"
	// StatusAborted means the run stopped at a terminal error
	StatusAborted RunStatus = "aborted"
)

// RunReport summarises one invocation. It carries key names only, never values.
type RunReport struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	Status      RunStatus `json:"status" yaml:"status"`
	Source      string    `json:"source" yaml:"source"`
	Destination string    `json:"destination" yaml:"destination"`
	Discovered  int       `json:"discovered" yaml:"discovered"`
	Imported    int       `json:"imported" yaml:"imported"`
	Keys        []string  `json:"keys,omitempty" yaml:"keys,omitempty"`
	FailedKey   string    `json:"failed_key,omitempty" yaml:"failed_key,omitempty"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Succeeded reports whether the run ended in a non-error state
func (r *RunReport) Succeeded() bool {
	return r.Status != StatusAborted
}
