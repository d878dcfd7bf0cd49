package token

import (
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which variant a Primitive holds.
type Kind int

// Primitive kinds.
const (
	KindInvalid Kind = iota
	KindNumber
	KindString
	KindReference
	KindShadow
	KindTypography
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindReference:
		return "reference"
	case KindShadow:
		return "shadow"
	case KindTypography:
		return "typography"
	default:
		return "invalid"
	}
}

// ShadowLayer is one layer of a shadow value. Lengths are in pixels.
// Color may be a colour string or an alias ("{color.black}").
type ShadowLayer struct {
	OffsetX float64
	OffsetY float64
	Blur    float64
	Spread  float64
	Color   string
	Inset   bool
}

// LineHeightMultiplierLimit separates relative line heights (1.5) from
// absolute ones (24).
const LineHeightMultiplierLimit = 4

// Typography is a composite text style. Zero fields are unset.
// LineHeight below LineHeightMultiplierLimit is a multiplier of FontSize.
type Typography struct {
	FontFamily    string
	FontSize      float64
	FontWeight    string
	LineHeight    float64
	LetterSpacing float64
}

// Primitive is a raw token value as it appears in definition data.
// The zero value is invalid. Primitives are immutable; accessors copy.
type Primitive struct {
	kind   Kind
	num    float64
	str    string
	shadow []ShadowLayer
	typo   Typography
}

// Number returns a numeric primitive.
func Number(v float64) Primitive {
	return Primitive{kind: KindNumber, num: v}
}

// String returns a string primitive. Alias syntax is not interpreted;
// use Parse for that.
func String(s string) Primitive {
	return Primitive{kind: KindString, str: s}
}

// Ref returns an alias to the named token.
func Ref(name string) Primitive {
	return Primitive{kind: KindReference, str: name}
}

// Shadow returns a shadow primitive with the given layers.
func Shadow(layers ...ShadowLayer) Primitive {
	return Primitive{kind: KindShadow, shadow: slices.Clone(layers)}
}

// Typo returns a composite typography primitive.
func Typo(t Typography) Primitive {
	return Primitive{kind: KindTypography, typo: t}
}

// Parse turns a string from definition data into a Primitive,
// recognising "{a.b}" as an alias.
func Parse(s string) Primitive {
	if name, ok := ParseRef(s); ok {
		return Ref(name)
	}
	return String(s)
}

// Kind returns the variant held by p.
func (p Primitive) Kind() Kind { return p.kind }

// IsZero reports whether p holds no value.
func (p Primitive) IsZero() bool { return p.kind == KindInvalid }

// AsNumber returns the numeric value.
func (p Primitive) AsNumber() (float64, bool) {
	return p.num, p.kind == KindNumber
}

// AsString returns the string value.
func (p Primitive) AsString() (string, bool) {
	return p.str, p.kind == KindString
}

// AsRef returns the referenced token name.
func (p Primitive) AsRef() (string, bool) {
	return p.str, p.kind == KindReference
}

// AsShadow returns a copy of the shadow layers.
func (p Primitive) AsShadow() ([]ShadowLayer, bool) {
	if p.kind != KindShadow {
		return nil, false
	}
	return slices.Clone(p.shadow), true
}

// AsTypography returns the typography composite.
func (p Primitive) AsTypography() (Typography, bool) {
	return p.typo, p.kind == KindTypography
}

// References returns every token name p refers to, including aliases
// nested inside shadow colours.
func (p Primitive) References() []string {
	switch p.kind {
	case KindReference:
		return []string{p.str}
	case KindShadow:
		var refs []string
		for _, l := range p.shadow {
			if name, ok := ParseRef(l.Color); ok {
				refs = append(refs, name)
			}
		}
		return refs
	}
	return nil
}

// Equal reports whether p and o hold the same value.
func (p Primitive) Equal(o Primitive) bool {
	if p.kind != o.kind {
		return false
	}
	switch p.kind {
	case KindNumber:
		return p.num == o.num
	case KindString, KindReference:
		return p.str == o.str
	case KindShadow:
		return slices.Equal(p.shadow, o.shadow)
	case KindTypography:
		return p.typo == o.typo
	}
	return true
}

// String returns a canonical, deterministic rendering of p.
func (p Primitive) String() string {
	switch p.kind {
	case KindNumber:
		return formatFloat(p.num)
	case KindString:
		return strconv.Quote(p.str)
	case KindReference:
		return FormatRef(p.str)
	case KindShadow:
		parts := make([]string, len(p.shadow))
		for i, l := range p.shadow {
			parts[i] = l.String()
		}
		return "shadow(" + strings.Join(parts, ", ") + ")"
	case KindTypography:
		return p.typo.String()
	}
	return "<invalid>"
}

// String renders the layer in a CSS-like form.
func (l ShadowLayer) String() string {
	var b strings.Builder
	if l.Inset {
		b.WriteString("inset ")
	}
	b.WriteString(formatFloat(l.OffsetX))
	b.WriteByte(' ')
	b.WriteString(formatFloat(l.OffsetY))
	b.WriteByte(' ')
	b.WriteString(formatFloat(l.Blur))
	b.WriteByte(' ')
	b.WriteString(formatFloat(l.Spread))
	b.WriteByte(' ')
	b.WriteString(l.Color)
	return b.String()
}

// String renders the set fields of t.
func (t Typography) String() string {
	var parts []string
	if t.FontFamily != "" {
		parts = append(parts, "family="+strconv.Quote(t.FontFamily))
	}
	if t.FontSize != 0 {
		parts = append(parts, "size="+formatFloat(t.FontSize))
	}
	if t.FontWeight != "" {
		parts = append(parts, "weight="+t.FontWeight)
	}
	if t.LineHeight != 0 {
		parts = append(parts, "lineHeight="+formatFloat(t.LineHeight))
	}
	if t.LetterSpacing != 0 {
		parts = append(parts, "letterSpacing="+formatFloat(t.LetterSpacing))
	}
	return "typography(" + strings.Join(parts, " ") + ")"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
