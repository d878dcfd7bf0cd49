// Package resolve turns semantic token names into platform-shaped values.
//
// A Resolver is bound to one token.Set. Resolution looks up the token,
// picks the value for the requested platform, follows aliases and shapes
// the result with the platform's formatter. It has no side effects, so a
// Resolver is safe for concurrent use.
package resolve

import (
	"io"
	"log/slog"
	"slices"

	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/token"

	// Built-in platforms.
	_ "github.com/leapstack-labs/leaptoken/pkg/platform/native"
	_ "github.com/leapstack-labs/leaptoken/pkg/platform/web"
)

// Resolver resolves tokens from a single set.
type Resolver struct {
	set    *token.Set
	opts   platform.Options
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRemBase sets the number of pixels in one rem when converting
// relative lengths for platforms that need absolute ones.
func WithRemBase(px float64) Option {
	return func(r *Resolver) { r.opts.RemBase = px }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver over set. A nil set resolves nothing.
func New(set *token.Set, opts ...Option) *Resolver {
	r := &Resolver{
		set:    set,
		opts:   platform.DefaultOptions(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.opts = r.opts.Normalize()
	return r
}

// Set returns the token set the resolver reads from.
func (r *Resolver) Set() *token.Set { return r.set }

// Entry is one resolved token.
type Entry struct {
	Name     string
	Category token.Category
	Value    platform.Value
}

// Resolve returns the value of name shaped for platform p.
//
// Errors:
//   - *platform.UnsupportedPlatformError if p is not registered
//   - *token.UnknownTokenError if name (or an alias target) is not defined
//   - *token.MissingPlatformValueError if the token has no value for p
//   - *token.AliasCycleError if aliases loop
//   - *platform.FormatError if the value cannot be shaped for p
func (r *Resolver) Resolve(name string, p platform.Platform) (platform.Value, error) {
	f, err := platform.Lookup(p)
	if err != nil {
		return nil, err
	}
	tok, err := r.set.Lookup(name)
	if err != nil {
		return nil, err
	}
	return r.resolveToken(f, tok, p)
}

// Primitive returns the dereferenced, unshaped value of name for p.
// Aliases inside shadow colours are substituted.
func (r *Resolver) Primitive(name string, p platform.Platform) (token.Primitive, error) {
	if _, err := platform.Lookup(p); err != nil {
		return token.Primitive{}, err
	}
	tok, err := r.set.Lookup(name)
	if err != nil {
		return token.Primitive{}, err
	}
	return r.deref(tok, p, []string{tok.Name})
}

// ResolveAll resolves every token for p in name order.
// It stops at the first error.
func (r *Resolver) ResolveAll(p platform.Platform) ([]Entry, error) {
	f, err := platform.Lookup(p)
	if err != nil {
		return nil, err
	}
	tokens := r.set.Tokens()
	entries := make([]Entry, 0, len(tokens))
	for _, tok := range tokens {
		v, err := r.resolveToken(f, tok, p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: tok.Name, Category: tok.Category, Value: v})
	}
	return entries, nil
}

func (r *Resolver) resolveToken(f platform.Formatter, tok token.Token, p platform.Platform) (platform.Value, error) {
	prim, err := r.deref(tok, p, []string{tok.Name})
	if err != nil {
		return nil, err
	}
	v, err := f.Format(tok.Category, prim, r.opts)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("resolved token",
		slog.String("name", tok.Name),
		slog.String("platform", string(p)),
		slog.String("value", prim.String()),
	)
	return v, nil
}

// deref follows aliases from cur until it reaches a concrete value.
// path holds the names visited so far, starting with the requested token.
func (r *Resolver) deref(cur token.Token, p platform.Platform, path []string) (token.Primitive, error) {
	for {
		v, ok := cur.ValueFor(string(p))
		if !ok {
			return token.Primitive{}, &token.MissingPlatformValueError{
				Name:     cur.Name,
				Platform: string(p),
				Defined:  cur.DefinedPlatforms(),
			}
		}

		ref, isRef := v.AsRef()
		if !isRef {
			if v.Kind() == token.KindShadow {
				return r.substituteShadow(cur, v, p, path)
			}
			return v, nil
		}

		next, err := r.follow(cur.Name, ref, path)
		if err != nil {
			return token.Primitive{}, err
		}
		path = append(path, ref)
		cur = next
	}
}

func (r *Resolver) follow(from, ref string, path []string) (token.Token, error) {
	if i := slices.Index(path, ref); i >= 0 {
		cycle := append(slices.Clone(path[i:]), ref)
		return token.Token{}, &token.AliasCycleError{Path: cycle}
	}
	next, ok := r.set.Get(ref)
	if !ok {
		return token.Token{}, &token.UnknownTokenError{Name: ref, Referrer: from}
	}
	return next, nil
}

// substituteShadow replaces aliased layer colours with the colour strings
// they resolve to for p.
func (r *Resolver) substituteShadow(owner token.Token, v token.Primitive, p platform.Platform, path []string) (token.Primitive, error) {
	layers, _ := v.AsShadow()
	changed := false
	for i, l := range layers {
		ref, ok := token.ParseRef(l.Color)
		if !ok {
			continue
		}
		target, err := r.follow(owner.Name, ref, path)
		if err != nil {
			return token.Primitive{}, err
		}
		c, err := r.deref(target, p, append(slices.Clone(path), ref))
		if err != nil {
			return token.Primitive{}, err
		}
		s, ok := c.AsString()
		if !ok {
			return token.Primitive{}, platform.NewFormatError(p, token.CategoryShadow, c,
				"shadow colour "+token.FormatRef(ref)+" does not resolve to a colour string")
		}
		layers[i].Color = s
		changed = true
	}
	if !changed {
		return v, nil
	}
	return token.Shadow(layers...), nil
}
