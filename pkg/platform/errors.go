package platform

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leaptoken/pkg/token"
)

// Sentinel errors matched with errors.Is.
var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrFormat              = errors.New("cannot format value")
)

// UnsupportedPlatformError is returned when a platform is not registered.
type UnsupportedPlatformError struct {
	Platform  string
	Available []string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %q (available: %v)", e.Platform, e.Available)
}

// Is reports whether target is ErrUnsupportedPlatform.
func (e *UnsupportedPlatformError) Is(target error) bool { return target == ErrUnsupportedPlatform }

// FormatError is returned when a primitive cannot be shaped for a platform.
type FormatError struct {
	Platform Platform
	Category token.Category
	Kind     token.Kind
	Reason   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: cannot format %s %s value: %s", e.Platform, e.Category, e.Kind, e.Reason)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// NewFormatError builds a FormatError for primitive p.
func NewFormatError(p Platform, category token.Category, prim token.Primitive, reason string) *FormatError {
	return &FormatError{Platform: p, Category: category, Kind: prim.Kind(), Reason: reason}
}
