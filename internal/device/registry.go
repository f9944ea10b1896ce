package device

import (
	"fmt"
	"sort"
	"sync"
)

// Auto resolves to whichever executor was registered as the default.
const Auto = "auto"

// Info pairs an executor name with its capabilities.
type Info struct {
	Name         string       `json:"name"`
	Capabilities Capabilities `json:"capabilities"`
}

// Registry holds registered executors and resolves which one runs the device
// portion of a split.
type Registry struct {
	mu        sync.RWMutex
	executors map[string]Executor
	def       string
}

// NewRegistry creates an empty executor registry.
func NewRegistry() *Registry {
	return &Registry{
		executors: make(map[string]Executor),
	}
}

// Register adds an executor under the given name. The first registration
// becomes the default for "auto" resolution.
func (r *Registry) Register(name string, e Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.def == "" {
		r.def = name
	}
	r.executors[name] = e
}

// SetDefault overrides which executor "auto" resolves to.
func (r *Registry) SetDefault(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.def = name
}

// Resolve returns the executor registered under name. "auto" resolves to the
// default. Returns an error if nothing matches.
func (r *Registry) Resolve(name string) (Executor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	target := name
	if target == Auto {
		if r.def == "" {
			return nil, fmt.Errorf("no default device registered")
		}
		target = r.def
	}

	e, ok := r.executors[target]
	if !ok {
		return nil, fmt.Errorf("device %q is not registered", target)
	}
	return e, nil
}

// List returns information about all registered executors, sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.executors))
	for name, e := range r.executors {
		infos = append(infos, Info{
			Name:         name,
			Capabilities: e.Capabilities(),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Close closes every registered executor, returning the first error.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for name, e := range r.executors {
		if err := e.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close device %s: %w", name, err)
		}
	}
	return firstErr
}
