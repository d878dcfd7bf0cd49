// Package color parses the colour notations accepted in token definitions
// and converts them between the forms each platform expects.
package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB colour with an alpha channel in [0, 1].
type Color struct {
	colorful.Color
	Alpha float64
}

var functionalRe = regexp.MustCompile(`^(rgba?|hsla?)\(\s*([^)]*)\)$`)

// Parse accepts #RGB, #RGBA, #RRGGBB, #RRGGBBAA, rgb()/rgba() and
// hsl()/hsla(), with comma- or space-separated arguments.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	m := functionalRe.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return Color{}, fmt.Errorf("unrecognised colour %q", s)
	}
	args := splitArgs(m[2])
	if strings.HasPrefix(m[1], "rgb") {
		return parseRGB(s, args)
	}
	return parseHSL(s, args)
}

// IsHex reports whether s is written in hex notation.
func IsHex(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "#")
}

// Hex returns "#RRGGBB", or "#RRGGBBAA" when the colour is translucent.
func (c Color) Hex() string {
	r, g, b := c.Clamped().RGB255()
	if c.Alpha >= 1 {
		return fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, alpha255(c.Alpha))
}

// OpaqueHex returns "#RRGGBB", dropping the alpha channel.
func (c Color) OpaqueHex() string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// CSS returns the colour as "rgba(r, g, b, a)".
func (c Color) CSS() string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(c.Alpha, 'f', -1, 64))
}

func alpha255(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
}

func parseHex(s string) (Color, error) {
	digits := s[1:]
	switch len(digits) {
	case 3, 6:
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
		}
		return Color{Color: c, Alpha: 1}, nil
	case 4, 8:
		split := len(digits) * 3 / 4
		c, err := colorful.Hex("#" + digits[:split])
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
		}
		a := digits[split:]
		if len(a) == 1 {
			a += a
		}
		v, err := strconv.ParseUint(a, 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in hex colour %q", s)
		}
		return Color{Color: c, Alpha: float64(v) / 255}, nil
	}
	return Color{}, fmt.Errorf("invalid hex colour %q: expected 3, 4, 6 or 8 digits", s)
}

func splitArgs(s string) []string {
	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, ",", " ")
	return strings.Fields(s)
}

func parseRGB(src string, args []string) (Color, error) {
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("invalid colour %q: expected 3 or 4 components", src)
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, pct, err := parseComponent(args[i])
		if err != nil {
			return Color{}, fmt.Errorf("invalid colour %q: %w", src, err)
		}
		if pct {
			ch[i] = v / 100
		} else {
			ch[i] = v / 255
		}
	}
	alpha, err := parseAlpha(src, args)
	if err != nil {
		return Color{}, err
	}
	return Color{Color: colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, Alpha: alpha}, nil
}

func parseHSL(src string, args []string) (Color, error) {
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("invalid colour %q: expected 3 or 4 components", src)
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: bad hue %q", src, args[0])
	}
	sat, _, err := parseComponent(args[1])
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", src, err)
	}
	light, _, err := parseComponent(args[2])
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", src, err)
	}
	alpha, err := parseAlpha(src, args)
	if err != nil {
		return Color{}, err
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return Color{Color: colorful.Hsl(h, sat/100, light/100), Alpha: alpha}, nil
}

func parseAlpha(src string, args []string) (float64, error) {
	if len(args) < 4 {
		return 1, nil
	}
	v, pct, err := parseComponent(args[3])
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q: %w", src, err)
	}
	if pct {
		v /= 100
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("invalid colour %q: alpha out of range", src)
	}
	return v, nil
}

func parseComponent(s string) (float64, bool, error) {
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false, fmt.Errorf("bad component %q", s)
	}
	return v, pct, nil
}
