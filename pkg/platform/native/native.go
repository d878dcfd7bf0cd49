// Package native shapes token primitives for native view styling:
// lengths become plain numbers of points, colours become hex strings and
// composites become structs.
package native

import (
	"math"
	"strings"

	"github.com/leapstack-labs/leaptoken/pkg/color"
	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/token"
)

func init() {
	platform.Register(platform.Native, Formatter{})
}

// Offset is a shadow offset in points.
type Offset struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Shadow is the flattened single-layer shadow native views accept.
type Shadow struct {
	Color     string  `json:"shadowColor"`
	Offset    Offset  `json:"shadowOffset"`
	Opacity   float64 `json:"shadowOpacity"`
	Radius    float64 `json:"shadowRadius"`
	Elevation int     `json:"elevation"`
}

// Typography is a composite text style with lengths in points.
type Typography struct {
	FontFamily    string  `json:"fontFamily,omitempty"`
	FontSize      float64 `json:"fontSize,omitempty"`
	FontWeight    string  `json:"fontWeight,omitempty"`
	LineHeight    float64 `json:"lineHeight,omitempty"`
	LetterSpacing float64 `json:"letterSpacing,omitempty"`
}

// Formatter implements platform.Formatter for native.
type Formatter struct{}

// Format shapes p as a native style value.
func (Formatter) Format(category token.Category, p token.Primitive, opts platform.Options) (platform.Value, error) {
	opts = opts.Normalize()
	fail := func(reason string) (platform.Value, error) {
		return nil, platform.NewFormatError(platform.Native, category, p, reason)
	}

	switch category {
	case token.CategoryColor:
		s, ok := p.AsString()
		if !ok {
			return fail("colour must be a string")
		}
		c, err := color.Parse(s)
		if err != nil {
			return fail(err.Error())
		}
		return c.Hex(), nil

	case token.CategorySpacing, token.CategoryRadius, token.CategoryBreakpoint:
		if n, ok := p.AsNumber(); ok {
			return n, nil
		}
		if s, ok := p.AsString(); ok {
			d, err := platform.ParseDimension(s)
			if err != nil {
				return fail(err.Error())
			}
			if d.Unit == "%" {
				return strings.TrimSpace(s), nil
			}
			pts, ok := d.Points(opts.RemBase)
			if !ok {
				return fail("unit " + d.Unit + " has no native equivalent")
			}
			return pts, nil
		}
		return fail("expected a number or dimension")

	case token.CategoryTypography:
		if n, ok := p.AsNumber(); ok {
			return n, nil
		}
		if s, ok := p.AsString(); ok {
			return s, nil
		}
		if t, ok := p.AsTypography(); ok {
			return TypographyFrom(t), nil
		}
		return fail("expected a number, string or typography composite")

	case token.CategoryShadow:
		layers, ok := p.AsShadow()
		if !ok {
			return fail("native shadows must be structured")
		}
		sh, err := ShadowFrom(layers)
		if err != nil {
			return fail(err.Error())
		}
		return sh, nil

	case token.CategoryZIndex:
		n, ok := p.AsNumber()
		if !ok {
			return fail("z-index must be an integer")
		}
		z, ok := platform.ZIndex(n)
		if !ok {
			return fail("z-index must be a 32-bit integer")
		}
		return z, nil

	case token.CategoryAnimation:
		if n, ok := p.AsNumber(); ok {
			return int(math.Round(n)), nil
		}
		if s, ok := p.AsString(); ok {
			if ms, err := platform.ParseDuration(s); err == nil {
				return int(math.Round(ms)), nil
			}
			return s, nil
		}
		return fail("expected a duration or easing string")
	}
	return fail("unknown category")
}

// ShadowFrom flattens the first layer into a native shadow. Additional
// layers are dropped; inset shadows have no native equivalent.
func ShadowFrom(layers []token.ShadowLayer) (Shadow, error) {
	if len(layers) == 0 {
		return Shadow{}, errEmptyShadow
	}
	l := layers[0]
	if l.Inset {
		return Shadow{}, errInsetShadow
	}
	c, err := color.Parse(l.Color)
	if err != nil {
		return Shadow{}, err
	}
	return Shadow{
		Color:     c.OpaqueHex(),
		Offset:    Offset{Width: l.OffsetX, Height: l.OffsetY},
		Opacity:   c.Alpha,
		Radius:    l.Blur / 2,
		Elevation: int(math.Round(l.Blur / 2)),
	}, nil
}

// TypographyFrom converts a composite to points. A relative line height
// is multiplied by the font size when one is set.
func TypographyFrom(t token.Typography) Typography {
	out := Typography{
		FontFamily:    t.FontFamily,
		FontSize:      t.FontSize,
		FontWeight:    t.FontWeight,
		LineHeight:    t.LineHeight,
		LetterSpacing: t.LetterSpacing,
	}
	if t.LineHeight > 0 && t.LineHeight < token.LineHeightMultiplierLimit && t.FontSize > 0 {
		out.LineHeight = t.LineHeight * t.FontSize
	}
	return out
}
