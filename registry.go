package qop

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"
)

// knownProviders are the provider names the layer recognizes out of the
// box. Registered backends extend this set at runtime.
var knownProviders = []string{"local", "tencent"}

var registry = struct {
	mu       sync.RWMutex
	backends map[string]Backend
}{backends: make(map[string]Backend)}

// Register adds a backend to the dispatch table under its canonical
// provider name, replacing any previous backend with the same name.
// Backend packages call it from init, so importing a backend package is
// enough to make its provider dispatchable.
func Register(b Backend) {
	if b == nil {
		panic("qop: Register called with nil backend")
	}
	p, err := ParseProvider(b.Name())
	if err != nil {
		panic(fmt.Sprintf("qop: Register: bad backend name %q: %v", b.Name(), err))
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.backends[p.Name()] = b
}

// Lookup returns the backend registered for the provider, or false when
// none is registered.
func Lookup(p Provider) (Backend, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	b, ok := registry.backends[p.Name()]
	return b, ok
}

// Backends returns all registered backends.
func Backends() []Backend {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	result := make([]Backend, 0, len(registry.backends))
	for _, b := range registry.backends {
		result = append(result, b)
	}
	return result
}

// ListProviders returns the sorted union of the built-in provider names
// and the names of all registered backends.
func ListProviders() []string {
	registry.mu.RLock()
	seen := make(map[string]bool, len(registry.backends)+len(knownProviders))
	for name := range registry.backends {
		seen[name] = true
	}
	registry.mu.RUnlock()
	for _, name := range knownProviders {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all registered backends. For testing only.
func Clear() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.backends = make(map[string]Backend)
}

// backendFor resolves the backend for a provider, or fails with
// ErrUnsupportedProvider. The error carries a nearest-name suggestion when
// the provider looks like a typo for a known one.
func backendFor(p Provider) (Backend, error) {
	if b, ok := Lookup(p); ok {
		return b, nil
	}
	if s := nearestProvider(p.Name()); s != "" {
		return nil, fmt.Errorf("%w: %s (did you mean %q?)", ErrUnsupportedProvider, p.Name(), s)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, p.Name())
}

// nearestProvider returns the known provider name closest to name, or ""
// when nothing is plausibly close.
func nearestProvider(name string) string {
	const maxDistance = 2
	best, bestDist := "", maxDistance+1
	for _, candidate := range ListProviders() {
		if candidate == name {
			continue
		}
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
