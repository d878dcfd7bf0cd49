// Package export renders a resolved theme as a stylesheet or data file.
package export

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/resolve"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
)

// Exporter writes a resolved theme in one format.
type Exporter interface {
	// Format is the registry name, e.g. "css".
	Format() string
	// Extension is the conventional file extension, with the dot.
	Extension() string
	Export(w io.Writer, r *theme.Resolved, opts Options) error
}

// Options tune an export.
type Options struct {
	// Selector wraps CSS custom properties. Defaults to ":root".
	Selector string
	// RemBase is the px value of 1rem for native output.
	RemBase float64
}

func (o Options) normalize() Options {
	if o.Selector == "" {
		o.Selector = ":root"
	}
	if o.RemBase <= 0 {
		o.RemBase = platform.DefaultRemBase
	}
	return o
}

// ErrUnknownFormat is matched by UnknownFormatError.
var ErrUnknownFormat = errors.New("unknown export format")

// UnknownFormatError is returned when an unregistered format is requested.
type UnknownFormatError struct {
	Format    string
	Available []string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown export format %q (available: %s)", e.Format, strings.Join(e.Available, ", "))
}

// Is reports whether target is ErrUnknownFormat.
func (e *UnknownFormatError) Is(target error) bool { return target == ErrUnknownFormat }

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Exporter)
)

// Register adds an exporter to the registry.
func Register(e Exporter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[e.Format()] = e
}

// Lookup returns the exporter for format.
func Lookup(format string) (Exporter, error) {
	registryMu.RLock()
	e, ok := registry[strings.ToLower(format)]
	registryMu.RUnlock()
	if !ok {
		return nil, &UnknownFormatError{Format: format, Available: Formats()}
	}
	return e, nil
}

// Formats returns all registered format names (sorted).
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Export writes r in the named format.
func Export(w io.Writer, format string, r *theme.Resolved, opts Options) error {
	e, err := Lookup(format)
	if err != nil {
		return err
	}
	if err := e.Export(w, r, opts.normalize()); err != nil {
		return fmt.Errorf("export %s: %w", e.Format(), err)
	}
	return nil
}

func resolveAll(r *theme.Resolved, p platform.Platform, opts Options) ([]resolve.Entry, error) {
	return r.Resolver(resolve.WithRemBase(opts.RemBase)).ResolveAll(p)
}

// kebab converts a token name to a kebab-case identifier:
// "zIndex.modal" becomes "z-index-modal".
func kebab(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		switch {
		case r == '.' || r == '_':
			b.WriteByte('-')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return b.String()
}

// VarName returns the CSS custom property name for a token.
func VarName(name string) string { return "--" + kebab(name) }

// header lists the applied overrides, if any.
func header(r *theme.Resolved) string {
	if o := r.Overrides(); len(o) > 0 {
		return "theme: " + strings.Join(o, ", ")
	}
	return ""
}
