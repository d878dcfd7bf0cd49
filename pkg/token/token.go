package token

import (
	"maps"
	"slices"
)

// Token is a named design value.
type Token struct {
	// Name is the dot-path identifier, e.g. "color.surface.base".
	Name string
	// Category classifies the token; it drives platform shaping.
	Category Category
	// Description is free-form documentation.
	Description string
	// Value is shared by every platform without an entry in Platforms.
	Value Primitive
	// Platforms holds platform-specific values keyed by platform name.
	Platforms map[string]Primitive
}

// ValueFor returns the value to use for platform.
// A platform-specific value wins over the shared one.
func (t Token) ValueFor(platform string) (Primitive, bool) {
	if v, ok := t.Platforms[platform]; ok {
		return v, true
	}
	if !t.Value.IsZero() {
		return t.Value, true
	}
	return Primitive{}, false
}

// DefinedPlatforms returns the sorted platform names with explicit values.
func (t Token) DefinedPlatforms() []string {
	return slices.Sorted(maps.Keys(t.Platforms))
}

// References returns the sorted, de-duplicated names t aliases.
func (t Token) References() []string {
	seen := make(map[string]struct{})
	for _, ref := range t.Value.References() {
		seen[ref] = struct{}{}
	}
	for _, v := range t.Platforms {
		for _, ref := range v.References() {
			seen[ref] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// HasValue reports whether t carries any value at all.
func (t Token) HasValue() bool {
	return !t.Value.IsZero() || len(t.Platforms) > 0
}

// Clone returns a deep copy of t.
func (t Token) Clone() Token {
	c := t
	if t.Platforms != nil {
		c.Platforms = maps.Clone(t.Platforms)
	}
	return c
}

// Equal reports whether t and o are identical.
func (t Token) Equal(o Token) bool {
	if t.Name != o.Name || t.Category != o.Category || t.Description != o.Description {
		return false
	}
	if !t.Value.Equal(o.Value) {
		return false
	}
	return maps.EqualFunc(t.Platforms, o.Platforms, Primitive.Equal)
}

// Validate checks the token's structure: name, category and value.
func (t Token) Validate() error {
	if err := ValidateName(t.Name); err != nil {
		return &InvalidTokenError{Name: t.Name, Reason: err.Error()}
	}
	if !t.Category.Valid() {
		return &InvalidTokenError{Name: t.Name, Reason: "unknown category " + string(t.Category)}
	}
	if !t.HasValue() {
		return &InvalidTokenError{Name: t.Name, Reason: "no value"}
	}
	for p, v := range t.Platforms {
		if p == "" {
			return &InvalidTokenError{Name: t.Name, Reason: "empty platform name"}
		}
		if v.IsZero() {
			return &InvalidTokenError{Name: t.Name, Reason: "empty value for platform " + p}
		}
	}
	return nil
}
