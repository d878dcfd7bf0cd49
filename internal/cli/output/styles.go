package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	renderer *lipgloss.Renderer

	Bold      lipgloss.Style
	Header    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Muted     lipgloss.Style
	TokenName lipgloss.Style
	Category  lipgloss.Style
}

// NewStyles builds styles for w. Without a TTY every style renders plain
// text.
func NewStyles(w io.Writer, isTTY bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if isTTY {
		r.SetColorProfile(termenv.EnvColorProfile())
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		renderer:  r,
		Bold:      r.NewStyle().Bold(true),
		Header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Success:   r.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:   r.NewStyle().Foreground(lipgloss.Color("11")),
		Error:     r.NewStyle().Foreground(lipgloss.Color("9")),
		Info:      r.NewStyle().Foreground(lipgloss.Color("14")),
		Muted:     r.NewStyle().Foreground(lipgloss.Color("8")),
		TokenName: r.NewStyle().Foreground(lipgloss.Color("13")),
		Category:  r.NewStyle().Italic(true).Foreground(lipgloss.Color("8")),
	}
}

// Swatch renders a small block in the given colour. hex must be a
// "#RRGGBB" value.
func (s *Styles) Swatch(hex string) string {
	return s.renderer.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
}
