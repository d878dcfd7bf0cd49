package token

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched with errors.Is against the typed errors below.
var (
	ErrUnknownToken         = errors.New("unknown token")
	ErrInvalidOverrideKey   = errors.New("invalid override key")
	ErrDuplicateToken       = errors.New("duplicate token")
	ErrInvalidToken         = errors.New("invalid token")
	ErrMissingPlatformValue = errors.New("missing platform value")
	ErrAliasCycle           = errors.New("alias cycle")
)

// UnknownTokenError is returned when a name has no entry in the token set.
// Referrer is set when the name was reached through an alias.
type UnknownTokenError struct {
	Name     string
	Referrer string
}

func (e *UnknownTokenError) Error() string {
	if e.Referrer != "" {
		return fmt.Sprintf("unknown token %q (referenced by %q)", e.Name, e.Referrer)
	}
	return fmt.Sprintf("unknown token %q", e.Name)
}

// Is reports whether target is ErrUnknownToken.
func (e *UnknownTokenError) Is(target error) bool { return target == ErrUnknownToken }

// InvalidOverrideKeyError is returned when a theme override names tokens
// the base set does not define, or redefines a token's category.
type InvalidOverrideKeyError struct {
	Override string
	Keys     []string
	Reason   string
}

func (e *InvalidOverrideKeyError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "not defined in base token set"
	}
	return fmt.Sprintf("override %q: invalid key(s) %s: %s", e.Override, strings.Join(e.Keys, ", "), reason)
}

// Is reports whether target is ErrInvalidOverrideKey.
func (e *InvalidOverrideKeyError) Is(target error) bool { return target == ErrInvalidOverrideKey }

// DuplicateTokenError is returned when a name is defined twice.
type DuplicateTokenError struct {
	Name string
}

func (e *DuplicateTokenError) Error() string {
	return fmt.Sprintf("duplicate token %q", e.Name)
}

// Is reports whether target is ErrDuplicateToken.
func (e *DuplicateTokenError) Is(target error) bool { return target == ErrDuplicateToken }

// InvalidTokenError is returned when a token fails structural validation.
type InvalidTokenError struct {
	Name   string
	Reason string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token %q: %s", e.Name, e.Reason)
}

// Is reports whether target is ErrInvalidToken.
func (e *InvalidTokenError) Is(target error) bool { return target == ErrInvalidToken }

// MissingPlatformValueError is returned when a token defines only
// platform-specific values and none for the requested platform.
type MissingPlatformValueError struct {
	Name     string
	Platform string
	Defined  []string
}

func (e *MissingPlatformValueError) Error() string {
	return fmt.Sprintf("token %q has no value for platform %q (defined for: %s)",
		e.Name, e.Platform, strings.Join(e.Defined, ", "))
}

// Is reports whether target is ErrMissingPlatformValue.
func (e *MissingPlatformValueError) Is(target error) bool { return target == ErrMissingPlatformValue }

// AliasCycleError is returned when aliases form a loop.
// Path starts and ends with the same name.
type AliasCycleError struct {
	Path []string
}

func (e *AliasCycleError) Error() string {
	return fmt.Sprintf("alias cycle detected: %s", strings.Join(e.Path, " -> "))
}

// Is reports whether target is ErrAliasCycle.
func (e *AliasCycleError) Is(target error) bool { return target == ErrAliasCycle }
