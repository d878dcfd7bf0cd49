// Package platform shapes token primitives for a rendering target.
//
// Each target (web DOM/CSS, native view primitives) registers a Formatter
// under its Platform name. The built-in targets live in the web and native
// subpackages and register themselves in init().
package platform

import (
	"strings"

	"github.com/leapstack-labs/leaptoken/pkg/token"
)

// Platform names a rendering target.
type Platform string

// Built-in platforms.
const (
	Web    Platform = "web"
	Native Platform = "native"
)

// String returns the platform name.
func (p Platform) String() string { return string(p) }

// Value is a primitive or structured value already shaped for a platform's
// styling model, e.g. "16px" on web or float64(16) on native.
type Value = any

// Options tunes how primitives are shaped.
type Options struct {
	// RemBase is the number of pixels in one rem/em.
	RemBase float64
}

// DefaultRemBase is the rem size used when Options.RemBase is unset.
const DefaultRemBase = 16

// DefaultOptions returns the default shaping options.
func DefaultOptions() Options {
	return Options{RemBase: DefaultRemBase}
}

// Normalize fills unset fields with defaults.
func (o Options) Normalize() Options {
	if o.RemBase <= 0 {
		o.RemBase = DefaultRemBase
	}
	return o
}

// Formatter converts a dereferenced primitive of the given category.
// References never reach a Formatter; the resolver follows them first.
type Formatter interface {
	Format(category token.Category, p token.Primitive, opts Options) (Value, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(category token.Category, p token.Primitive, opts Options) (Value, error)

// Format calls f.
func (f FormatterFunc) Format(category token.Category, p token.Primitive, opts Options) (Value, error) {
	return f(category, p, opts)
}

// Parse converts a user-supplied name to a registered Platform.
func Parse(name string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(name)))
	if !IsRegistered(p) {
		return "", &UnsupportedPlatformError{Platform: name, Available: List()}
	}
	return p, nil
}
