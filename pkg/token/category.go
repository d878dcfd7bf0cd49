package token

import (
	"fmt"
	"slices"
	"strings"
)

// Category classifies a token by the kind of design decision it encodes.
type Category string

// Token categories.
const (
	CategoryColor      Category = "color"
	CategorySpacing    Category = "spacing"
	CategoryTypography Category = "typography"
	CategoryRadius     Category = "radius"
	CategoryShadow     Category = "shadow"
	CategoryBreakpoint Category = "breakpoint"
	CategoryZIndex     Category = "zIndex"
	CategoryAnimation  Category = "animation"
)

var allCategories = []Category{
	CategoryColor,
	CategorySpacing,
	CategoryTypography,
	CategoryRadius,
	CategoryShadow,
	CategoryBreakpoint,
	CategoryZIndex,
	CategoryAnimation,
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	return slices.Clone(allCategories)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(allCategories, c)
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a string to a Category.
// Matching ignores case, '-' and '_', so "z-index" and "ZINDEX" both parse.
func ParseCategory(s string) (Category, error) {
	normalized := normalizeCategory(s)
	for _, c := range allCategories {
		if normalizeCategory(string(c)) == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown token category %q", s)
}

func normalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}
