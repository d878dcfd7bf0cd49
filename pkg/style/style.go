// Package style maps component style slots to token names and builds
// platform property lists from them. Each slot is a typed field, so a
// component can only ask for style keys its platform knows how to apply.
package style

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/platform/native"
)

// Resolver resolves a token name for a platform.
// *theme.Resolved and *resolve.Resolver both satisfy it.
type Resolver interface {
	Resolve(name string, p platform.Platform) (platform.Value, error)
}

// Prop is one style property in platform naming.
type Prop struct {
	Name  string
	Value platform.Value
}

// Style is an ordered list of properties.
type Style struct {
	Props []Prop
}

// Get returns the value of the named property.
func (s Style) Get(name string) (platform.Value, bool) {
	for _, p := range s.Props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Names returns the property names in order.
func (s Style) Names() []string {
	names := make([]string, len(s.Props))
	for i, p := range s.Props {
		names[i] = p.Name
	}
	return names
}

// Box holds the token names for a container's surface.
type Box struct {
	Background string
	Border     string
	Padding    string
	Radius     string
	Shadow     string
}

// Text holds the token names for a text run.
type Text struct {
	Color         string
	Typography    string
	LetterSpacing string
}

type slot struct {
	web, native string
	token       string
}

// Build resolves the box's tokens for p. Empty fields are skipped.
func (b Box) Build(r Resolver, p platform.Platform) (Style, error) {
	return build(r, p, []slot{
		{"background-color", "backgroundColor", b.Background},
		{"border-color", "borderColor", b.Border},
		{"padding", "padding", b.Padding},
		{"border-radius", "borderRadius", b.Radius},
		{"box-shadow", "shadow", b.Shadow},
	})
}

// Build resolves the text's tokens for p. Empty fields are skipped.
func (t Text) Build(r Resolver, p platform.Platform) (Style, error) {
	return build(r, p, []slot{
		{"color", "color", t.Color},
		{"font", "font", t.Typography},
		{"letter-spacing", "letterSpacing", t.LetterSpacing},
	})
}

func build(r Resolver, p platform.Platform, slots []slot) (Style, error) {
	var s Style
	for _, sl := range slots {
		if sl.token == "" {
			continue
		}
		v, err := r.Resolve(sl.token, p)
		if err != nil {
			return Style{}, fmt.Errorf("style %s: %w", sl.web, err)
		}
		name := sl.web
		if p == platform.Native {
			name = sl.native
		}
		s.Props = append(s.Props, expand(p, name, v)...)
	}
	return s, nil
}

// expand flattens composite values into their individual properties.
// A scalar typography token names the font family, or the font size on
// native when it is numeric.
func expand(p platform.Platform, name string, v platform.Value) []Prop {
	switch val := v.(type) {
	case native.Shadow:
		return []Prop{
			{"shadowColor", val.Color},
			{"shadowOffset", val.Offset},
			{"shadowOpacity", val.Opacity},
			{"shadowRadius", val.Radius},
			{"elevation", val.Elevation},
		}
	case native.Typography:
		var props []Prop
		if val.FontFamily != "" {
			props = append(props, Prop{"fontFamily", val.FontFamily})
		}
		if val.FontSize != 0 {
			props = append(props, Prop{"fontSize", val.FontSize})
		}
		if val.FontWeight != "" {
			props = append(props, Prop{"fontWeight", val.FontWeight})
		}
		if val.LineHeight != 0 {
			props = append(props, Prop{"lineHeight", val.LineHeight})
		}
		if val.LetterSpacing != 0 {
			props = append(props, Prop{"letterSpacing", val.LetterSpacing})
		}
		return props
	case map[string]string:
		props := make([]Prop, 0, len(val))
		for _, k := range slices.Sorted(maps.Keys(val)) {
			props = append(props, Prop{k, val[k]})
		}
		return props
	case string:
		if name == "font" && p == platform.Native {
			return []Prop{{"fontFamily", val}}
		}
		if name == "font" {
			return []Prop{{"font-family", val}}
		}
	case float64:
		if name == "font" {
			return []Prop{{"fontSize", val}}
		}
	}
	return []Prop{{name, v}}
}

// CSS renders a web style as a declaration block body.
func (s Style) CSS() string {
	decls := make([]string, len(s.Props))
	for i, p := range s.Props {
		decls[i] = fmt.Sprintf("%s: %v;", p.Name, p.Value)
	}
	return strings.Join(decls, " ")
}
