package backend

import (
	"sync"

	"github.com/gogpu/atlas"
)

// BackendFactory creates a new backend instance.
type BackendFactory func() TextureBackend

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{BackendWGPU, BackendSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) TextureBackend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// candidates returns one instance of every registered backend, priority
// names first.
func candidates() []TextureBackend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var out []TextureBackend
	seen := make(map[string]bool, len(backends))
	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			seen[name] = true
			if b := factory(); b != nil {
				out = append(out, b)
			}
		}
	}
	for name, factory := range backends {
		if seen[name] {
			continue
		}
		if b := factory(); b != nil {
			out = append(out, b)
		}
	}
	return out
}

// Default returns the highest-priority registered backend without
// initializing it. Priority order: wgpu > software.
// Returns nil if no backends are registered.
func Default() TextureBackend {
	if c := candidates(); len(c) > 0 {
		return c[0]
	}
	return nil
}

// MustDefault returns the default backend or panics.
func MustDefault() TextureBackend {
	b := Default()
	if b == nil {
		panic("backend: no backend available")
	}
	return b
}

// InitDefault initializes backends in priority order and returns the first
// one whose Init succeeds. A GPU backend that fails to initialize (no
// adapter, headless machine) falls through to the next candidate.
func InitDefault() (TextureBackend, error) {
	for _, b := range candidates() {
		if err := b.Init(); err != nil {
			atlas.Logger().Warn("backend: init failed, trying next", "backend", b.Name(), "err", err)
			continue
		}
		atlas.Logger().Info("backend: selected", "backend", b.Name())
		return b, nil
	}
	return nil, ErrBackendNotAvailable
}
