package commands

import (
	"testing"

	"github.com/leapstack-labs/leaptoken/internal/cli/output"
	clitestutil "github.com/leapstack-labs/leaptoken/internal/cli/testutil"
	"github.com/leapstack-labs/leaptoken/internal/loader"
	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/resolve"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"github.com/leapstack-labs/leaptoken/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureTheme(t *testing.T) *theme.Resolved {
	t.Helper()
	tokens, err := loader.ParseTokens("base.yaml", []byte("color:\n  ink: \"#111111\"\n  link: \"{color.ink}\"\nspacing:\n  md: 16\n  screen: 10vh\n"))
	require.NoError(t, err)
	return theme.FromSet(token.MustNewSet(tokens...))
}

func TestListTokens(t *testing.T) {
	r := fixtureTheme(t)

	infos := listTokens(r, resolve.New(r.Set()), platform.Native, "")
	require.Len(t, infos, 4)
	assert.Equal(t, "color.link", infos[1].Name)
	assert.Equal(t, "{color.ink}", infos[1].Raw)
	assert.Equal(t, "#111111", infos[1].Value)
	assert.Equal(t, "spacing.screen", infos[3].Name)
	assert.Nil(t, infos[3].Value)
	assert.Contains(t, infos[3].Error, "no native equivalent", "one failure does not stop the listing")

	infos = listTokens(r, resolve.New(r.Set()), platform.Web, token.CategorySpacing)
	assert.Len(t, infos, 2)
}

func TestListRenderers(t *testing.T) {
	r := fixtureTheme(t)
	infos := listTokens(r, resolve.New(r.Set()), platform.Web, "")

	t.Run("text", func(t *testing.T) {
		tr := clitestutil.NewTestRenderer(output.ModeText, false)
		listText(tr.Renderer, r, platform.Web, infos)
		out := tr.Output()
		clitestutil.AssertNoANSI(t, out)
		assert.Contains(t, out, "Tokens (4 total)")
		assert.Contains(t, out, "theme: base")
		assert.Contains(t, out, "██ #111111")
	})

	t.Run("markdown", func(t *testing.T) {
		tr := clitestutil.NewTestRenderer(output.ModeMarkdown, false)
		listMarkdown(tr.Renderer, r, platform.Web, infos)
		out := tr.Output()
		clitestutil.AssertValidMarkdown(t, out)
		assert.Contains(t, out, "## Color")
		assert.Contains(t, out, "| color.link | `#111111` | `{color.ink}` |")
	})
}

func TestGroupByCategory(t *testing.T) {
	order, groups := groupByCategory([]output.TokenInfo{
		{Name: "spacing.a", Category: "spacing"},
		{Name: "color.a", Category: "color"},
		{Name: "spacing.b", Category: "spacing"},
	})
	assert.Equal(t, []string{"spacing", "color"}, order)
	assert.Len(t, groups["spacing"], 2)
}

func TestCategoryTitle(t *testing.T) {
	assert.Equal(t, "Color", categoryTitle("color"))
	assert.Equal(t, "ZIndex", categoryTitle("zIndex"))
}
