package theme

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/leapstack-labs/leaptoken/pkg/token"
)

// ErrUnknownTheme is matched by UnknownThemeError.
var ErrUnknownTheme = errors.New("unknown theme")

// UnknownThemeError is returned when a theme name is not in a Catalog.
type UnknownThemeError struct {
	Name      string
	Available []string
}

func (e *UnknownThemeError) Error() string {
	return fmt.Sprintf("unknown theme %q (available: %v)", e.Name, e.Available)
}

// Is reports whether target is ErrUnknownTheme.
func (e *UnknownThemeError) Is(target error) bool { return target == ErrUnknownTheme }

// Catalog holds named overrides.
type Catalog struct {
	mu     sync.RWMutex
	themes map[string]Override
}

// NewCatalog creates a catalog holding overrides.
// A later override with the same name replaces an earlier one.
func NewCatalog(overrides ...Override) *Catalog {
	c := &Catalog{themes: make(map[string]Override, len(overrides))}
	for _, o := range overrides {
		c.themes[o.Name] = o
	}
	return c
}

// Add registers o under its name, replacing any existing entry.
func (c *Catalog) Add(o Override) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.themes[o.Name] = o
}

// Get returns the named override.
func (c *Catalog) Get(name string) (Override, error) {
	c.mu.RLock()
	o, ok := c.themes[name]
	c.mu.RUnlock()
	if !ok {
		return Override{}, &UnknownThemeError{Name: name, Available: c.Names()}
	}
	return o, nil
}

// Has reports whether name is in the catalog.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.themes[name]
	return ok
}

// Names returns all theme names (sorted).
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.themes))
	for name := range c.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of themes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.themes)
}

// Overrides looks up names in order.
func (c *Catalog) Overrides(names ...string) ([]Override, error) {
	out := make([]Override, 0, len(names))
	for _, name := range names {
		o, err := c.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// Compose composes base with the named overrides in order.
func (c *Catalog) Compose(base *token.Set, names ...string) (*Resolved, error) {
	overrides, err := c.Overrides(names...)
	if err != nil {
		return nil, err
	}
	return Compose(base, overrides...)
}
