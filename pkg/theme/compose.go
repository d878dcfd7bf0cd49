// Package theme composes a base token set with ordered overrides into an
// immutable resolved theme, and publishes the active theme to readers.
package theme

import (
	"fmt"
	"maps"
	"slices"

	"github.com/leapstack-labs/leaptoken/pkg/resolve"
	"github.com/leapstack-labs/leaptoken/pkg/token"
)

// Override is a partial token mapping applied on top of a base set.
// A token with a shared value replaces the base token's value wholesale,
// platform values included. A token with only platform values keeps the
// base shared value and replaces just the platforms it names. Category and
// Description may be left empty to inherit the base token's.
type Override struct {
	Name        string
	Description string
	Tokens      []token.Token
}

// Keys returns the token names the override sets, sorted.
func (o Override) Keys() []string {
	keys := make([]string, 0, len(o.Tokens))
	for _, t := range o.Tokens {
		keys = append(keys, t.Name)
	}
	slices.Sort(keys)
	return keys
}

// Validate checks o against base. Every key must exist in base, appear
// once, carry a value and keep the base category.
func (o Override) Validate(base *token.Set) error {
	var unknown []string
	seen := make(map[string]bool, len(o.Tokens))
	for _, t := range o.Tokens {
		if !base.Has(t.Name) {
			unknown = append(unknown, t.Name)
			continue
		}
		if seen[t.Name] {
			return &token.InvalidOverrideKeyError{Override: o.Name, Keys: []string{t.Name}, Reason: "set more than once"}
		}
		seen[t.Name] = true
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return &token.InvalidOverrideKeyError{Override: o.Name, Keys: slices.Compact(unknown)}
	}

	for _, t := range o.Tokens {
		b, _ := base.Get(t.Name)
		if t.Category != "" && t.Category != b.Category {
			return &token.InvalidOverrideKeyError{
				Override: o.Name,
				Keys:     []string{t.Name},
				Reason:   fmt.Sprintf("category %s does not match base category %s", t.Category, b.Category),
			}
		}
		if !t.HasValue() {
			return &token.InvalidOverrideKeyError{Override: o.Name, Keys: []string{t.Name}, Reason: "no value"}
		}
	}
	return nil
}

// Compose applies overrides to base in order, last write wins, and returns
// the resolved theme. Every base token is present in the result. After
// merging, aliases are checked: a dangling one is an UnknownTokenError and
// a loop is an AliasCycleError.
//
// Compose(base) has the same content as base, and repeating the last
// override does not change the result.
func Compose(base *token.Set, overrides ...Override) (*Resolved, error) {
	merged := make(map[string]token.Token, base.Len())
	for _, t := range base.Tokens() {
		merged[t.Name] = t
	}

	applied := make([]string, 0, len(overrides))
	for _, o := range overrides {
		if err := o.Validate(base); err != nil {
			return nil, err
		}
		for _, t := range o.Tokens {
			merged[t.Name] = apply(merged[t.Name], t)
		}
		applied = append(applied, o.Name)
	}

	set, err := token.NewSet(slices.Collect(maps.Values(merged))...)
	if err != nil {
		return nil, err
	}
	if err := resolve.Validate(set); err != nil {
		return nil, err
	}
	return newResolved(set, applied), nil
}

func apply(base, o token.Token) token.Token {
	out := base
	if o.Value.IsZero() {
		out.Platforms = maps.Clone(base.Platforms)
		if out.Platforms == nil {
			out.Platforms = make(map[string]token.Primitive, len(o.Platforms))
		}
		maps.Copy(out.Platforms, o.Platforms)
	} else {
		out.Value = o.Value
		out.Platforms = maps.Clone(o.Platforms)
	}
	if o.Description != "" {
		out.Description = o.Description
	}
	return out
}
