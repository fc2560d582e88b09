package main

import "github.com/charmbracelet/lipgloss"

// Icon pairs a glyph with its style so call sites stay one-liners.
type Icon struct {
	Glyph string
	Style lipgloss.Style
}

// Render returns the styled glyph.
func (i Icon) Render() string {
	return i.Style.Render(i.Glyph)
}

const GlyphEllipsis = "…"

var (
	IconAI        = Icon{"◆", lipgloss.NewStyle().Foreground(ColorAccent)}
	IconHuman     = Icon{"●", lipgloss.NewStyle().Foreground(ColorTextPrimary)}
	IconSystem    = Icon{"○", lipgloss.NewStyle().Foreground(ColorTextDim)}
	IconCall      = Icon{"⚙", lipgloss.NewStyle().Foreground(ColorToolCall)}
	IconResultOk  = Icon{"✓", lipgloss.NewStyle().Foreground(ColorToolOk)}
	IconResultErr = Icon{"✕", lipgloss.NewStyle().Foreground(ColorError)}
	IconExpanded  = Icon{"▾", lipgloss.NewStyle().Foreground(ColorTextDim)}
	IconCollapsed = Icon{"▸", lipgloss.NewStyle().Foreground(ColorTextDim)}
	IconDot       = Icon{"·", lipgloss.NewStyle().Foreground(ColorTextMuted)}
	IconSelected  = Icon{"│", lipgloss.NewStyle().Foreground(ColorAccent)}
)
