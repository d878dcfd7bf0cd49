package token

import (
	"fmt"
	"strings"
)

// Separator joins the segments of a token name.
const Separator = "."

// ValidateName checks that name is a well-formed dot path.
// Each segment must be non-empty and contain only letters, digits, '-' or '_'.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("token name is empty")
	}
	for i, seg := range strings.Split(name, Separator) {
		if seg == "" {
			return fmt.Errorf("token name %q has an empty segment at position %d", name, i)
		}
		for _, r := range seg {
			if !isNameRune(r) {
				return fmt.Errorf("token name %q contains invalid character %q", name, r)
			}
		}
	}
	return nil
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_':
		return true
	}
	return false
}

// Segments splits a token name into its path segments.
func Segments(name string) []string {
	return strings.Split(name, Separator)
}

// Join builds a token name from path segments.
func Join(segments ...string) string {
	return strings.Join(segments, Separator)
}

// CategoryFromName infers a category from the first segment of name.
// It returns false when the first segment is not a category name.
func CategoryFromName(name string) (Category, bool) {
	first, _, _ := strings.Cut(name, Separator)
	c, err := ParseCategory(first)
	if err != nil {
		return "", false
	}
	return c, true
}

// ParseRef reports whether s is an alias of the form "{color.primary.500}"
// and returns the referenced token name.
func ParseRef(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 3 || s[0] != '{' || s[len(s)-1] != '}' {
		return "", false
	}
	name := strings.TrimSpace(s[1 : len(s)-1])
	if ValidateName(name) != nil {
		return "", false
	}
	return name, true
}

// FormatRef renders name as an alias string.
func FormatRef(name string) string {
	return "{" + name + "}"
}
