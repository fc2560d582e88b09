package main

import "github.com/charmbracelet/lipgloss"

// -- Colors ---------------------------------------------------------------
// AdaptiveColor everywhere. Light values use ANSI 0-15 for accents and the
// 256-color ramp for grays; never ANSI 7/15 on light backgrounds.
//
// | Name          | Light | Dark  |
// |---------------|-------|-------|
// | TextPrimary   |   "0" | "252" |
// | TextSecondary |   "8" | "245" |
// | TextDim       | "242" | "243" |
// | TextMuted     | "245" | "240" |
// | Accent        |   "4" |  "75" |
// | Error         |   "1" | "196" |
// | Border        | "250" |  "60" |
// | ToolCall      |   "3" | "214" |
// | ToolOk        |   "2" | "114" |

var (
	ColorTextPrimary   = ac("0", "252")
	ColorTextSecondary = ac("8", "245")
	ColorTextDim       = ac("242", "243")
	ColorTextMuted     = ac("245", "240")

	ColorAccent = ac("4", "75")
	ColorError  = ac("1", "196")

	ColorBorder = ac("250", "60")

	ColorModelOpus   = ac("1", "204")
	ColorModelSonnet = ac("4", "75")
	ColorModelHaiku  = ac("2", "114")

	ColorToolCall = ac("3", "214")
	ColorToolOk   = ac("2", "114")
	ColorTableKey = ac("5", "177")
)

var (
	StylePrimary       = lipgloss.NewStyle().Foreground(ColorTextPrimary)
	StylePrimaryBold   = lipgloss.NewStyle().Bold(true).Foreground(ColorTextPrimary)
	StyleSecondary     = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	StyleDim           = lipgloss.NewStyle().Foreground(ColorTextDim)
	StyleMuted         = lipgloss.NewStyle().Foreground(ColorTextMuted)
	StyleAccentBold    = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	StyleErrorBold     = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	StyleTableKey      = lipgloss.NewStyle().Foreground(ColorTableKey)
	StyleTableIndex    = lipgloss.NewStyle().Foreground(ColorTextDim)
	StyleTableBorder   = lipgloss.NewStyle().Foreground(ColorBorder)
)

// ac is a shorthand constructor for lipgloss.AdaptiveColor.
func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}
