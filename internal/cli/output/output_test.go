package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode(t *testing.T) {
	tests := map[string]OutputMode{
		"":         ModeAuto,
		"auto":     ModeAuto,
		"TEXT":     ModeText,
		"markdown": ModeMarkdown,
		"md":       ModeMarkdown,
		" json ":   ModeJSON,
		"html":     ModeAuto,
	}
	for in, want := range tests {
		assert.Equal(t, want, Mode(in), in)
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{"auto on terminal", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"explicit json", ModeJSON, true, ModeJSON},
		{"explicit text piped", ModeText, false, ModeText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestMarkdownHelpers(t *testing.T) {
	assert.Equal(t, "## Tokens", FormatHeader(2, "Tokens"))
	assert.Equal(t, "# Tokens", FormatHeader(0, "Tokens"))
	assert.Equal(t, "- **Platform**: web", FormatKeyValue("Platform", "web"))
	assert.Equal(t, "```css\n:root {}\n```", FormatCodeBlock("css", ":root {}\n"))
}

func TestRenderer_PlainWithoutTTY(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	r := NewRendererWithTTY(out, errOut, false, ModeText)

	r.Header(1, "Tokens")
	r.Success("done")
	r.StatusLine("dark", "error", "2 problems")
	r.Warning("careful")
	r.Println(r.Styles().Swatch("#3B82F6"))

	assert.NotContains(t, out.String()+errOut.String(), "\x1b[")
	assert.Contains(t, out.String(), "Tokens\n")
	assert.Contains(t, out.String(), "✓ done\n")
	assert.Contains(t, out.String(), "✗ dark 2 problems\n")
	assert.Contains(t, out.String(), "██")
	assert.Equal(t, "! careful\n", errOut.String())
}

func TestRenderer_Markdown(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeAuto)

	r.Header(2, "Check")
	r.StatusLine("web", "success", "")
	r.StatusLine("native", "error", "")
	r.Table([]string{"Name", "Value"}, [][]string{{"spacing.sm", "8px"}})

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "## Check\n"))
	assert.Contains(t, got, "- web\n")
	assert.Contains(t, got, "- **FAIL** native\n")
	assert.Contains(t, got, "spacing.sm")
	assert.Contains(t, got, "| --- |")
}

func TestRenderer_Table(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeText)
	r.Table([]string{"Name", "Value"}, [][]string{{"spacing.sm", "8px"}})
	assert.Contains(t, out.String(), "spacing.sm")
	assert.Contains(t, out.String(), "┌")
}

func TestRenderer_JSON(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeJSON)
	require.NoError(t, r.JSON(map[string]string{"value": "<b>"}))
	assert.Equal(t, "{\n  \"value\": \"<b>\"\n}\n", out.String())
}
