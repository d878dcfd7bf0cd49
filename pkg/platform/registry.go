package platform

import (
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[Platform]Formatter)
)

// Register adds a formatter to the registry.
// Called by platform implementations in their init() functions.
func Register(p Platform, f Formatter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[p] = f
}

// Get retrieves the formatter for a platform.
func Get(p Platform) (Formatter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[p]
	return f, ok
}

// Lookup is like Get but returns UnsupportedPlatformError for an unknown platform.
func Lookup(p Platform) (Formatter, error) {
	f, ok := Get(p)
	if !ok {
		return nil, &UnsupportedPlatformError{
			Platform:  string(p),
			Available: List(),
		}
	}
	return f, nil
}

// List returns all registered platform names (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for p := range registry {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}

// Platforms returns all registered platforms (sorted).
func Platforms() []Platform {
	names := List()
	out := make([]Platform, len(names))
	for i, n := range names {
		out[i] = Platform(n)
	}
	return out
}

// IsRegistered checks if a platform is registered.
func IsRegistered(p Platform) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[p]
	return ok
}
