package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"golang.org/x/term"
)

// mdRenderer renders assistant prose with glamour. The renderer is cached
// per width since word wrap is baked in at construction.
type mdRenderer struct {
	style    ansi.StyleConfig
	renderer *glamour.TermRenderer
	width    int
}

// newMDRenderer picks a style once: plain when stdout is not a terminal
// (--dump into a pipe), otherwise dark or light by background.
func newMDRenderer(hasDarkBg bool) *mdRenderer {
	var style ansi.StyleConfig
	switch {
	case !term.IsTerminal(int(os.Stdout.Fd())):
		style = styles.NoTTYStyleConfig
	case hasDarkBg:
		style = styles.DarkStyleConfig
	default:
		style = styles.LightStyleConfig
	}
	// Cards draw their own padding.
	margin := uint(0)
	style.Document.Margin = &margin
	return &mdRenderer{style: style}
}

// render returns text as terminal markdown wrapped to width, or text
// unchanged if glamour fails.
func (r *mdRenderer) render(text string, width int) string {
	if width <= 0 || strings.TrimSpace(text) == "" {
		return text
	}
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStyles(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		r.renderer, r.width = renderer, width
	}
	out, err := r.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
