// Package token defines the design-token data model shared by every
// leaptoken package.
//
// A Token maps a dot-path name (for example "color.surface.base") to a
// Primitive value, optionally refined per rendering platform. Tokens are
// grouped into an immutable Set, which is built once from definition data
// and never mutated afterwards.
//
// The Golden Rule: pkg/token imports ONLY stdlib. Platform shaping,
// resolution and theming depend on token, not the reverse.
package token
