package engine

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Engine)
)

// Register adds an engine factory under the given name. Engine packages
// call this from init, so importing an engine package is what makes its
// name available.
func Register(name string, factory func() Engine) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves an engine factory by name.
func Get(name string) (func() Engine, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// New creates an engine instance for the config's type.
func New(cfg TargetConfig) (Engine, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("engine type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownEngineError{
			Type:      cfg.Type,
			Available: ListEngines(),
		}
	}
	return factory(), nil
}

// ListEngines returns all registered engine names, sorted.
func ListEngines() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}

// IsRegistered reports whether an engine type is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// UnknownEngineError is returned when a target names an engine type no
// imported package has registered.
type UnknownEngineError struct {
	Type      string
	Available []string
}

func (e *UnknownEngineError) Error() string {
	return fmt.Sprintf("unknown engine type %q\nAvailable engines: %v\nHint: Check your target.type in sqlparity.yaml", e.Type, e.Available)
}
