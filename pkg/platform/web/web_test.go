package web

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Registered(t *testing.T) {
	f, ok := platform.Get(platform.Web)
	require.True(t, ok)
	assert.IsType(t, Formatter{}, f)
}

func TestFormatter_Format(t *testing.T) {
	tests := []struct {
		name     string
		category token.Category
		input    token.Primitive
		want     platform.Value
	}{
		{"hex colour upper-cased", token.CategoryColor, token.String("#3b82f6"), "#3B82F6"},
		{"functional colour kept", token.CategoryColor, token.String("rgb(0 0 0 / 50%)"), "rgb(0 0 0 / 50%)"},
		{"spacing number", token.CategorySpacing, token.Number(16), "16px"},
		{"spacing zero", token.CategorySpacing, token.Number(0), "0"},
		{"spacing rem kept", token.CategorySpacing, token.String("1.5rem"), "1.5rem"},
		{"radius percent", token.CategoryRadius, token.String("50%"), "50%"},
		{"breakpoint", token.CategoryBreakpoint, token.Number(768), "768px"},
		{"line height", token.CategoryTypography, token.Number(1.5), "1.5"},
		{"font family", token.CategoryTypography, token.String("Inter, sans-serif"), "Inter, sans-serif"},
		{"shadow string", token.CategoryShadow, token.String("none"), "none"},
		{"z-index", token.CategoryZIndex, token.Number(100), "100"},
		{"z-index auto", token.CategoryZIndex, token.String("auto"), "auto"},
		{"duration number", token.CategoryAnimation, token.Number(200), "200ms"},
		{"duration seconds", token.CategoryAnimation, token.String("0.25s"), "250ms"},
		{"easing", token.CategoryAnimation, token.String("cubic-bezier(0.4, 0, 0.2, 1)"), "cubic-bezier(0.4, 0, 0.2, 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Formatter{}.Format(tt.category, tt.input, platform.DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoxShadow(t *testing.T) {
	got, err := BoxShadow([]token.ShadowLayer{
		{OffsetY: 1, Blur: 2, Color: "#0000001a"},
		{OffsetY: 4, Blur: 8, Spread: -2, Color: "#000", Inset: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "0 1px 2px 0 #0000001A, inset 0 4px 8px -2px #000", got)

	_, err = BoxShadow([]token.ShadowLayer{{Color: "{color.black}"}})
	assert.Error(t, err, "unresolved aliases are not colours")
}

func TestTypography(t *testing.T) {
	got := Typography(token.Typography{FontFamily: "Inter", FontSize: 16, FontWeight: "600", LineHeight: 1.5, LetterSpacing: 0.5})
	assert.Equal(t, map[string]string{
		"font-family":    "Inter",
		"font-size":      "16px",
		"font-weight":    "600",
		"line-height":    "1.5",
		"letter-spacing": "0.5px",
	}, got)

	got = Typography(token.Typography{LineHeight: 24})
	assert.Equal(t, map[string]string{"line-height": "24px"}, got)
}

func TestFormatter_Errors(t *testing.T) {
	tests := []struct {
		name     string
		category token.Category
		input    token.Primitive
	}{
		{"colour number", token.CategoryColor, token.Number(1)},
		{"bad colour", token.CategoryColor, token.String("#12")},
		{"bad dimension", token.CategorySpacing, token.String("wide")},
		{"fractional z-index", token.CategoryZIndex, token.Number(2.5)},
		{"overflowing z-index", token.CategoryZIndex, token.Number(1e20)},
		{"typography shadow", token.CategoryTypography, token.Shadow(token.ShadowLayer{Color: "#000"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Formatter{}.Format(tt.category, tt.input, platform.DefaultOptions())
			require.Error(t, err)
		})
	}
}

func TestFormatter_ErrorKind(t *testing.T) {
	_, err := Formatter{}.Format(token.CategoryColor, token.Number(1), platform.DefaultOptions())
	var fe *platform.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, platform.Web, fe.Platform)
	assert.Equal(t, token.KindNumber, fe.Kind)
}
