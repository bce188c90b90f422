package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ylchen07/vault-import/pkg/models"
)

// Factory creates a new store instance
type Factory func(cfg *Config) (Store, error)

type registration struct {
	description string
	factory     Factory
}

// Registry manages available store backends
type Registry struct {
	mu        sync.RWMutex
	factories map[string]registration
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]registration)}
}

var defaultRegistry = NewRegistry()

// Register adds a backend factory to the registry
func (r *Registry) Register(name, description string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = registration{description: description, factory: factory}
}

// New creates a store instance by name
func (r *Registry) New(name string, cfg *Config) (Store, error) {
	r.mu.RLock()
	reg, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("backend not found: %s", name)
	}

	return reg.factory(cfg)
}

// List returns all registered backends sorted by name
func (r *Registry) List() []models.BackendInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]models.BackendInfo, 0, len(r.factories))
	for name, reg := range r.factories {
		infos = append(infos, models.BackendInfo{Name: name, Description: reg.description})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// IsRegistered checks if a backend is registered
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.factories[name]
	return exists
}

// Register adds a backend factory to the default registry
func Register(name, description string, factory Factory) {
	defaultRegistry.Register(name, description, factory)
}

// New creates a store from the default registry
func New(name string, cfg *Config) (Store, error) {
	return defaultRegistry.New(name, cfg)
}

// List returns the backends of the default registry
func List() []models.BackendInfo {
	return defaultRegistry.List()
}

// IsRegistered checks the default registry
func IsRegistered(name string) bool {
	return defaultRegistry.IsRegistered(name)
}
