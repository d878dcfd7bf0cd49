package theme

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/resolve"
	"github.com/leapstack-labs/leaptoken/pkg/token"
)

// Resolved is a composed, immutable theme.
type Resolved struct {
	set         *token.Set
	overrides   []string
	fingerprint string
	resolver    *resolve.Resolver
}

// FromSet wraps a token set as a theme with no overrides. The set is not
// validated; use Compose for that.
func FromSet(set *token.Set) *Resolved {
	return newResolved(set, nil)
}

func newResolved(set *token.Set, overrides []string) *Resolved {
	return &Resolved{
		set:         set,
		overrides:   overrides,
		fingerprint: fingerprint(set),
		resolver:    resolve.New(set),
	}
}

// Set returns the flattened token set.
func (r *Resolved) Set() *token.Set { return r.set }

// Overrides returns the names of the applied overrides in order.
func (r *Resolved) Overrides() []string { return slices.Clone(r.overrides) }

// Fingerprint identifies the theme's token content. Two themes with equal
// content have equal fingerprints regardless of how they were composed.
func (r *Resolved) Fingerprint() string { return r.fingerprint }

// Resolve resolves name for platform p with default options.
func (r *Resolved) Resolve(name string, p platform.Platform) (platform.Value, error) {
	return r.resolver.Resolve(name, p)
}

// ResolveAll resolves every token for p with default options.
func (r *Resolved) ResolveAll(p platform.Platform) ([]resolve.Entry, error) {
	return r.resolver.ResolveAll(p)
}

// Resolver returns a resolver over the theme with the given options.
func (r *Resolved) Resolver(opts ...resolve.Option) *resolve.Resolver {
	if len(opts) == 0 {
		return r.resolver
	}
	return resolve.New(r.set, opts...)
}

// Equal reports whether r and o hold the same token content.
func (r *Resolved) Equal(o *Resolved) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.set.Equal(o.set)
}

// String returns a short description for logs.
func (r *Resolved) String() string {
	return fmt.Sprintf("theme(%d tokens, overrides=%v, fingerprint=%s)", r.set.Len(), r.overrides, r.fingerprint)
}

func fingerprint(set *token.Set) string {
	h := xxhash.New()
	for _, t := range set.Tokens() {
		_, _ = h.WriteString(t.Name)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(string(t.Category))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(t.Description)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(t.Value.String())
		for _, p := range t.DefinedPlatforms() {
			_, _ = h.WriteString("\x00")
			_, _ = h.WriteString(p)
			_, _ = h.WriteString("=")
			_, _ = h.WriteString(t.Platforms[p].String())
		}
		_, _ = h.WriteString("\n")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
