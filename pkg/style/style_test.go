package style

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/platform/native"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"github.com/leapstack-labs/leaptoken/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureTheme(t *testing.T) *theme.Resolved {
	t.Helper()
	r, err := theme.Compose(token.MustNewSet(
		token.Token{Name: "color.surface.raised", Category: token.CategoryColor, Value: token.String("#ffffff")},
		token.Token{Name: "color.border", Category: token.CategoryColor, Value: token.String("#E5E7EB")},
		token.Token{Name: "color.text", Category: token.CategoryColor, Value: token.String("#111827")},
		token.Token{Name: "spacing.md", Category: token.CategorySpacing, Value: token.Number(16)},
		token.Token{Name: "radius.lg", Category: token.CategoryRadius, Value: token.Number(12)},
		token.Token{Name: "shadow.card", Category: token.CategoryShadow, Value: token.Shadow(
			token.ShadowLayer{OffsetY: 2, Blur: 6, Color: "#00000033"},
		)},
		token.Token{Name: "typography.body", Category: token.CategoryTypography, Value: token.Typo(token.Typography{
			FontFamily: "Inter", FontSize: 16, LineHeight: 1.5,
		})},
		token.Token{Name: "typography.family.mono", Category: token.CategoryTypography, Value: token.String("JetBrains Mono")},
	))
	require.NoError(t, err)
	return r
}

func TestBox_Build(t *testing.T) {
	card := Box{
		Background: "color.surface.raised",
		Border:     "color.border",
		Padding:    "spacing.md",
		Radius:     "radius.lg",
		Shadow:     "shadow.card",
	}
	th := fixtureTheme(t)

	web, err := card.Build(th, platform.Web)
	require.NoError(t, err)
	assert.Equal(t, []string{"background-color", "border-color", "padding", "border-radius", "box-shadow"}, web.Names())
	assert.Equal(t,
		"background-color: #FFFFFF; border-color: #E5E7EB; padding: 16px; border-radius: 12px; box-shadow: 0 2px 6px 0 #00000033;",
		web.CSS())

	nat, err := card.Build(th, platform.Native)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"backgroundColor", "borderColor", "padding", "borderRadius",
		"shadowColor", "shadowOffset", "shadowOpacity", "shadowRadius", "elevation",
	}, nat.Names())

	v, ok := nat.Get("padding")
	require.True(t, ok)
	assert.Equal(t, float64(16), v)

	v, ok = nat.Get("shadowOffset")
	require.True(t, ok)
	assert.Equal(t, native.Offset{Height: 2}, v)

	_, ok = nat.Get("box-shadow")
	assert.False(t, ok)
}

func TestBox_SkipsEmptyFields(t *testing.T) {
	s, err := Box{Padding: "spacing.md"}.Build(fixtureTheme(t), platform.Web)
	require.NoError(t, err)
	assert.Equal(t, []string{"padding"}, s.Names())
}

func TestText_Build(t *testing.T) {
	th := fixtureTheme(t)
	body := Text{Color: "color.text", Typography: "typography.body"}

	web, err := body.Build(th, platform.Web)
	require.NoError(t, err)
	assert.Equal(t, []string{"color", "font-family", "font-size", "line-height"}, web.Names())

	nat, err := body.Build(th, platform.Native)
	require.NoError(t, err)
	assert.Equal(t, []string{"color", "fontFamily", "fontSize", "lineHeight"}, nat.Names())
	lh, _ := nat.Get("lineHeight")
	assert.Equal(t, float64(24), lh)

	mono, err := Text{Typography: "typography.family.mono"}.Build(th, platform.Native)
	require.NoError(t, err)
	fam, ok := mono.Get("fontFamily")
	require.True(t, ok)
	assert.Equal(t, "JetBrains Mono", fam)
}

func TestBuild_Errors(t *testing.T) {
	th := fixtureTheme(t)

	_, err := Box{Background: "color.missing"}.Build(th, platform.Web)
	require.Error(t, err)
	assert.True(t, errors.Is(err, token.ErrUnknownToken))
	assert.Contains(t, err.Error(), "background-color")

	_, err = Text{Color: "color.text"}.Build(th, platform.Platform("watch"))
	assert.True(t, errors.Is(err, platform.ErrUnsupportedPlatform))
}
