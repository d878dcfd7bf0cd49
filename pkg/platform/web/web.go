// Package web shapes token primitives for the DOM/CSS styling model.
// Every value becomes a CSS string, except composite typography which
// becomes a map of CSS property names to values.
package web

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/leaptoken/pkg/color"
	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/token"
)

func init() {
	platform.Register(platform.Web, Formatter{})
}

// Formatter implements platform.Formatter for web.
type Formatter struct{}

// Format shapes p as a CSS value.
func (Formatter) Format(category token.Category, p token.Primitive, opts platform.Options) (platform.Value, error) {
	fail := func(reason string) (platform.Value, error) {
		return nil, platform.NewFormatError(platform.Web, category, p, reason)
	}

	switch category {
	case token.CategoryColor:
		s, ok := p.AsString()
		if !ok {
			return fail("colour must be a string")
		}
		return Color(s)

	case token.CategorySpacing, token.CategoryRadius, token.CategoryBreakpoint:
		if n, ok := p.AsNumber(); ok {
			return Pixels(n), nil
		}
		if s, ok := p.AsString(); ok {
			if _, err := platform.ParseDimension(s); err != nil {
				return fail(err.Error())
			}
			return strings.TrimSpace(s), nil
		}
		return fail("expected a number or dimension")

	case token.CategoryTypography:
		if n, ok := p.AsNumber(); ok {
			return platform.FormatNumber(n), nil
		}
		if s, ok := p.AsString(); ok {
			return s, nil
		}
		if t, ok := p.AsTypography(); ok {
			return Typography(t), nil
		}
		return fail("expected a number, string or typography composite")

	case token.CategoryShadow:
		if s, ok := p.AsString(); ok {
			return s, nil
		}
		if layers, ok := p.AsShadow(); ok {
			css, err := BoxShadow(layers)
			if err != nil {
				return fail(err.Error())
			}
			return css, nil
		}
		return fail("expected a shadow or CSS string")

	case token.CategoryZIndex:
		if n, ok := p.AsNumber(); ok {
			z, ok := platform.ZIndex(n)
			if !ok {
				return fail("z-index must be a 32-bit integer")
			}
			return strconv.Itoa(z), nil
		}
		if s, ok := p.AsString(); ok && s == "auto" {
			return s, nil
		}
		return fail("expected an integer")

	case token.CategoryAnimation:
		if n, ok := p.AsNumber(); ok {
			return platform.FormatNumber(n) + "ms", nil
		}
		if s, ok := p.AsString(); ok {
			if ms, err := platform.ParseDuration(s); err == nil {
				return platform.FormatNumber(ms) + "ms", nil
			}
			return s, nil
		}
		return fail("expected a duration or easing string")
	}
	return fail("unknown category")
}

// Color validates s and normalises hex notation to upper case.
// Functional notation (rgb(), hsl()) is kept as written.
func Color(s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := color.Parse(s); err != nil {
		return "", err
	}
	if color.IsHex(s) {
		return strings.ToUpper(s), nil
	}
	return s, nil
}

// Pixels renders n as a CSS pixel length; zero is unitless.
func Pixels(n float64) string {
	if n == 0 {
		return "0"
	}
	return platform.FormatNumber(n) + "px"
}

// BoxShadow renders shadow layers as a CSS box-shadow value.
func BoxShadow(layers []token.ShadowLayer) (string, error) {
	parts := make([]string, 0, len(layers))
	for _, l := range layers {
		c, err := Color(l.Color)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		if l.Inset {
			b.WriteString("inset ")
		}
		b.WriteString(strings.Join([]string{
			Pixels(l.OffsetX), Pixels(l.OffsetY), Pixels(l.Blur), Pixels(l.Spread), c,
		}, " "))
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ", "), nil
}

// Typography renders a composite as CSS properties. Unset fields are omitted.
func Typography(t token.Typography) map[string]string {
	props := make(map[string]string)
	if t.FontFamily != "" {
		props["font-family"] = t.FontFamily
	}
	if t.FontSize != 0 {
		props["font-size"] = Pixels(t.FontSize)
	}
	if t.FontWeight != "" {
		props["font-weight"] = t.FontWeight
	}
	switch {
	case t.LineHeight == 0:
	case t.LineHeight < token.LineHeightMultiplierLimit:
		props["line-height"] = platform.FormatNumber(t.LineHeight)
	default:
		props["line-height"] = Pixels(t.LineHeight)
	}
	if t.LetterSpacing != 0 {
		props["letter-spacing"] = Pixels(t.LetterSpacing)
	}
	return props
}
