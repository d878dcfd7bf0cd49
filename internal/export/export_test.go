package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leapstack-labs/leaptoken/internal/loader"
	"github.com/leapstack-labs/leaptoken/internal/testutil"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"github.com/leapstack-labs/leaptoken/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fixture(t *testing.T) *theme.Resolved {
	t.Helper()
	tokens, err := loader.ParseTokens("base.yaml", []byte(testutil.BaseTokensYAML))
	require.NoError(t, err)
	set, err := token.NewSet(tokens...)
	require.NoError(t, err)
	return theme.FromSet(set)
}

func small(t *testing.T) *token.Set {
	t.Helper()
	return token.MustNewSet(
		token.Token{Name: "color.text", Category: token.CategoryColor, Value: token.String("#111827")},
		token.Token{Name: "zIndex.modal", Category: token.CategoryZIndex, Value: token.Number(100)},
	)
}

func run(t *testing.T, format string, r *theme.Resolved, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, format, r, opts))
	return buf.String()
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"css", "json", "native", "scss", "yaml"}, Formats())

	e, err := Lookup("CSS")
	require.NoError(t, err)
	assert.Equal(t, ".css", e.Extension())

	_, err = Lookup("xml")
	var ufe *UnknownFormatError
	require.True(t, errors.As(err, &ufe))
	assert.Equal(t, "xml", ufe.Format)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.Contains(t, err.Error(), "css, json, native, scss, yaml")
}

func TestKebabAndCamel(t *testing.T) {
	tests := []struct {
		name, varName, camel string
	}{
		{"color.primary.500", "--color-primary-500", "colorPrimary500"},
		{"zIndex.modal", "--z-index-modal", "zIndexModal"},
		{"spacing.x_small", "--spacing-x-small", "spacingXSmall"},
		{"color.surface-raised", "--color-surface-raised", "colorSurfaceRaised"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.varName, VarName(tt.name))
			assert.Equal(t, tt.camel, CamelKey(tt.name))
		})
	}
}

func TestCSS(t *testing.T) {
	base := small(t)
	got := run(t, "css", theme.FromSet(base), Options{})
	want := ":root {\n  --color-text: #111827;\n  --z-index-modal: 100;\n}\n"
	assert.Equal(t, want, got)

	dark, err := theme.Compose(base, theme.Override{
		Name:   "dark",
		Tokens: []token.Token{{Name: "color.text", Value: token.String("#f9fafb")}},
	})
	require.NoError(t, err)
	got = run(t, "css", dark, Options{Selector: "[data-theme=dark]"})
	want = "/* theme: dark */\n[data-theme=dark] {\n  --color-text: #F9FAFB;\n  --z-index-modal: 100;\n}\n"
	assert.Equal(t, want, got)
}

func TestCSS_Fixture(t *testing.T) {
	got := run(t, "css", fixture(t), Options{})
	for _, line := range []string{
		"  --color-button-bg: #3B82F6;",
		"  --spacing-lg: 1.5rem;",
		"  --shadow-card: 0 2px 8px 0 rgba(0, 0, 0, 0.2);",
		"  --typography-body-font-family: Inter;",
		"  --typography-body-line-height: 1.5;",
		"  --animation-duration-fast: 150ms;",
	} {
		assert.Contains(t, got, line+"\n")
	}
}

func TestSCSS(t *testing.T) {
	got := run(t, "scss", fixture(t), Options{})
	assert.Contains(t, got, "$color-primary-500: #3B82F6;\n")
	assert.Contains(t, got, "$typography-body: (\n  font-family: Inter,\n  font-size: 16px,\n  line-height: 1.5,\n);\n")
}

func TestJSON(t *testing.T) {
	set := token.MustNewSet(
		token.Token{Name: "color.primary", Category: token.CategoryColor, Value: token.String("#2563EB")},
		token.Token{Name: "color.primary.500", Category: token.CategoryColor, Value: token.String("#3B82F6")},
		token.Token{Name: "spacing.sm", Category: token.CategorySpacing, Value: token.Number(8)},
	)
	got := run(t, "json", theme.FromSet(set), Options{})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	want := map[string]any{
		"color": map[string]any{
			"primary": map[string]any{"$value": "#2563EB", "500": "#3B82F6"},
		},
		"spacing": map[string]any{"sm": "8px"},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Errorf("json export mismatch (-want +got):\n%s", diff)
	}
}

func TestNative(t *testing.T) {
	got := run(t, "native", fixture(t), Options{RemBase: 10})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))

	assert.Equal(t, "#FAFAFA", decoded["colorSurfaceBase"], "platform value wins")
	assert.Equal(t, 15.0, decoded["spacingLg"], "1.5rem at a 10px base")
	assert.Equal(t, 100.0, decoded["zIndexModal"])
	assert.Equal(t, 150.0, decoded["animationDurationFast"])

	shadow, ok := decoded["shadowCard"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#000000", shadow["shadowColor"])
	assert.Equal(t, 4.0, shadow["shadowRadius"])
}

func TestNative_KeyCollision(t *testing.T) {
	set := token.MustNewSet(
		token.Token{Name: "spacing.x-sm", Category: token.CategorySpacing, Value: token.Number(2)},
		token.Token{Name: "spacing.x_sm", Category: token.CategorySpacing, Value: token.Number(3)},
	)
	var buf bytes.Buffer
	err := Export(&buf, "native", theme.FromSet(set), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `both map to key "spacingXSm"`)
}

func TestCSS_NameCollision(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		tokens  []token.Token
		wantMsg string
	}{
		{
			name:   "camel case and kebab case",
			format: "css",
			tokens: []token.Token{
				{Name: "color.aB", Category: token.CategoryColor, Value: token.String("#000000")},
				{Name: "color.a-b", Category: token.CategoryColor, Value: token.String("#FFFFFF")},
			},
			wantMsg: `both map to "--color-a-b"`,
		},
		{
			name:   "typography property",
			format: "css",
			tokens: []token.Token{
				{Name: "typography.body", Category: token.CategoryTypography, Value: token.Typo(token.Typography{FontSize: 16})},
				{Name: "typography.body-font-size", Category: token.CategoryTypography, Value: token.Number(14)},
			},
			wantMsg: `both map to "--typography-body-font-size"`,
		},
		{
			name:   "scss variable",
			format: "scss",
			tokens: []token.Token{
				{Name: "spacing.x_sm", Category: token.CategorySpacing, Value: token.Number(2)},
				{Name: "spacing.x-sm", Category: token.CategorySpacing, Value: token.Number(3)},
			},
			wantMsg: `both map to "$spacing-x-sm"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Export(&buf, tt.format, theme.FromSet(token.MustNewSet(tt.tokens...)), Options{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Empty(t, buf.String(), "nothing is written on collision")
		})
	}
}

func TestYAML(t *testing.T) {
	got := run(t, "yaml", fixture(t), Options{})

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "16px", decoded["spacing.md"])
	assert.Equal(t, "#3B82F6", decoded["color.button.bg"])
	assert.Equal(t, map[string]any{
		"font-family": "Inter",
		"font-size":   "16px",
		"line-height": "1.5",
	}, decoded["typography.body"])
}

func TestExport_ResolutionErrorIsWrapped(t *testing.T) {
	set := token.MustNewSet(
		token.Token{Name: "color.text", Category: token.CategoryColor, Value: token.String("not-a-colour")},
	)
	var buf bytes.Buffer
	err := Export(&buf, "css", theme.FromSet(set), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export css:")
}
