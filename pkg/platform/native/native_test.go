package native

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Registered(t *testing.T) {
	f, ok := platform.Get(platform.Native)
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
		{"hex colour", token.CategoryColor, token.String("#3b82f6"), "#3B82F6"},
		{"short hex", token.CategoryColor, token.String("#fff"), "#FFFFFF"},
		{"rgb colour", token.CategoryColor, token.String("rgb(59, 130, 246)"), "#3B82F6"},
		{"translucent colour", token.CategoryColor, token.String("rgba(0, 0, 0, 0.5)"), "#00000080"},
		{"spacing number", token.CategorySpacing, token.Number(16), float64(16)},
		{"spacing px", token.CategorySpacing, token.String("12px"), float64(12)},
		{"spacing rem", token.CategorySpacing, token.String("1.5rem"), float64(24)},
		{"radius percent", token.CategoryRadius, token.String("50%"), "50%"},
		{"breakpoint", token.CategoryBreakpoint, token.Number(768), float64(768)},
		{"font size", token.CategoryTypography, token.Number(14), float64(14)},
		{"font family", token.CategoryTypography, token.String("Inter"), "Inter"},
		{"z-index", token.CategoryZIndex, token.Number(100), 100},
		{"duration number", token.CategoryAnimation, token.Number(200), 200},
		{"duration seconds", token.CategoryAnimation, token.String("0.3s"), 300},
		{"easing", token.CategoryAnimation, token.String("ease-in-out"), "ease-in-out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Formatter{}.Format(tt.category, tt.input, platform.DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatter_RemBase(t *testing.T) {
	got, err := Formatter{}.Format(token.CategorySpacing, token.String("2rem"), platform.Options{RemBase: 10})
	require.NoError(t, err)
	assert.Equal(t, float64(20), got)
}

func TestFormatter_Shadow(t *testing.T) {
	p := token.Shadow(
		token.ShadowLayer{OffsetX: 0, OffsetY: 2, Blur: 8, Color: "rgba(0, 0, 0, 0.25)"},
		token.ShadowLayer{OffsetY: 1, Blur: 2, Color: "#000"},
	)
	got, err := Formatter{}.Format(token.CategoryShadow, p, platform.DefaultOptions())
	require.NoError(t, err)

	sh, ok := got.(Shadow)
	require.True(t, ok)
	assert.Equal(t, "#000000", sh.Color)
	assert.Equal(t, Offset{Width: 0, Height: 2}, sh.Offset)
	assert.InDelta(t, 0.25, sh.Opacity, 0.001)
	assert.Equal(t, float64(4), sh.Radius)
	assert.Equal(t, 4, sh.Elevation)
}

func TestFormatter_Typography(t *testing.T) {
	p := token.Typo(token.Typography{FontFamily: "Inter", FontSize: 16, FontWeight: "600", LineHeight: 1.5})
	got, err := Formatter{}.Format(token.CategoryTypography, p, platform.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, Typography{FontFamily: "Inter", FontSize: 16, FontWeight: "600", LineHeight: 24}, got)

	abs := TypographyFrom(token.Typography{FontSize: 16, LineHeight: 20})
	assert.Equal(t, float64(20), abs.LineHeight)
}

func TestFormatter_Errors(t *testing.T) {
	tests := []struct {
		name     string
		category token.Category
		input    token.Primitive
	}{
		{"colour not a string", token.CategoryColor, token.Number(1)},
		{"bad colour", token.CategoryColor, token.String("blue-ish")},
		{"viewport unit", token.CategorySpacing, token.String("10vh")},
		{"bad dimension", token.CategorySpacing, token.String("wide")},
		{"string shadow", token.CategoryShadow, token.String("0 1px 2px #000")},
		{"inset shadow", token.CategoryShadow, token.Shadow(token.ShadowLayer{Inset: true, Color: "#000"})},
		{"fractional z-index", token.CategoryZIndex, token.Number(1.5)},
		{"string z-index", token.CategoryZIndex, token.String("auto")},
		{"overflowing z-index", token.CategoryZIndex, token.Number(1e20)},
		{"underflowing z-index", token.CategoryZIndex, token.Number(-1e20)},
		{"unknown category", token.Category("size"), token.Number(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Formatter{}.Format(tt.category, tt.input, platform.DefaultOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, platform.ErrFormat))
		})
	}
}
