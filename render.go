package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kylesnowschwartz/tail-tools/parser"
	"github.com/kylesnowschwartz/tail-tools/payload"
)

// -- Layout constants ---------------------------------------------------------

// maxContentWidth is the maximum width for content rendering.
const maxContentWidth = 120

// minRenderWidth is the narrowest width --width accepts.
const minRenderWidth = 40

// statusBarHeight is the number of rendered lines the status bar occupies.
// Rounded border: top + content + bottom = 3 lines.
const statusBarHeight = 3

// cardChrome is the columns a card spends outside its content: the selection
// gutter (2), border (2) and horizontal padding (2).
const cardChrome = 6

// -- Helpers ------------------------------------------------------------------

func chevron(expanded bool) string {
	if expanded {
		return IconExpanded.Render()
	}
	return IconCollapsed.Render()
}

// selectionIndicator returns the left gutter for a card line. Both states
// are two columns wide so selection never changes layout.
func selectionIndicator(selected bool) string {
	if selected {
		return IconSelected.Render() + " "
	}
	return "  "
}

// spaceBetween lays out left and right strings with gap-fill spacing to span width.
func spaceBetween(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

// indentBlock adds a prefix to every line of a block of text.
func indentBlock(text string, indent string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

// contentWidth returns the inner width of a card drawn in width columns.
func contentWidth(width int) int {
	return max(width-cardChrome, minTableWidth)
}

// toggleHint is the expand/collapse affordance under a collapsible body.
func toggleHint(expanded bool, hidden int) string {
	if expanded {
		return chevron(true) + " " + StyleDim.Render("show less")
	}
	if hidden > 0 {
		return chevron(false) + " " + StyleDim.Render(formatCount(hidden, "more item"))
	}
	return chevron(false) + " " + StyleDim.Render("show more")
}

// -- Cards ----------------------------------------------------------------

// renderCard draws one card: a header line and a bordered body, with the
// selection gutter down the left edge.
func (m model) renderCard(c card, width int, selected bool) string {
	cw := contentWidth(width)
	var header, body string
	border := ColorBorder
	switch c.kind {
	case cardCall:
		header, body = m.renderCallCard(c, cw)
		border = ColorToolCall
	case cardResult:
		header, body = m.renderResultCard(c, cw)
		if c.result.IsError {
			border = ColorError
		}
	default:
		header, body = m.renderTextCard(c, cw)
	}
	if selected {
		border = ColorAccent
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(cw + 2). // padding counts toward Width, the border does not
		Render(body)

	ts := StyleDim.Render(formatTime(c.timestamp, m.loc))
	out := spaceBetween(header, ts, cw+4) + "\n" + box
	return indentBlock(out, selectionIndicator(selected))
}

func (m model) renderCallCard(c card, width int) (string, string) {
	header := IconCall.Render() + " " + StylePrimaryBold.Render(c.call.Name)
	if c.call.ID != "" {
		header += "  " + StyleMuted.Render(shortID(c.call.ID))
	}

	args := c.call.Args
	if !args.IsComposite() {
		return header, lipgloss.NewStyle().Width(width).Render(payload.NormalizeNewlines(args.String()))
	}
	view := payload.ViewCall(c.call, m.dates)
	if view.Empty() {
		return header, StyleDim.Render(emptyComposite(args.Kind() == payload.KindArray))
	}
	if m.argsTable && args.Kind() == payload.KindObject {
		return header, renderArgTable(view.Args, width)
	}
	return header, renderRows(view.Rows, args.Kind() == payload.KindArray, width)
}

func (m model) renderResultCard(c card, width int) (string, string) {
	view := m.policy.ViewResult(c.result, m.disclosure.State(c.key, c.fp))

	icon := IconResultOk.Render()
	titleStyle := StylePrimaryBold
	if c.result.IsError {
		icon = IconResultErr.Render()
		titleStyle = StyleErrorBold
	}
	title := "Tool Result"
	if c.result.Name != "" {
		title += ": " + c.result.Name
	}
	header := icon + " " + titleStyle.Render(title)
	if c.result.ToolCallID != "" {
		header += "  " + StyleMuted.Render(shortID(c.result.ToolCallID))
	}
	header += "  " + StyleDim.Render(formatSize(len(view.Copy)))

	var body string
	if view.Structured {
		body = renderRows(view.Rows, view.Seq, width)
	} else {
		body = lipgloss.NewStyle().Width(width).Render(view.Text)
	}
	if view.Offer {
		body += "\n" + toggleHint(view.Expanded, view.Hidden())
	}
	return header, body
}

func (m model) renderTextCard(c card, width int) (string, string) {
	var header string
	switch c.role {
	case parser.KindHuman:
		header = IconHuman.Render() + " " + StylePrimaryBold.Render("You")
	case parser.KindSystem:
		header = IconSystem.Render() + " " + StyleSecondary.Render("System")
	default:
		header = IconAI.Render() + " " + StyleAccentBold.Render("Assistant")
		if c.model != "" {
			name := shortModel(c.model)
			header += "  " + lipgloss.NewStyle().Foreground(modelColor(name)).Render(name)
		}
	}

	expanded := m.expanded(c)
	text := m.policy.VisibleText(c.text, expanded)
	var body string
	switch c.role {
	case parser.KindAI:
		body = m.md.render(text, width)
	case parser.KindSystem:
		body = StyleDim.Width(width).Render(text)
	default:
		body = StylePrimary.Width(width).Render(text)
	}
	if offersToggle(c, m.policy) {
		body += "\n" + toggleHint(expanded, 0)
	}
	return header, body
}

// renderCards draws every card, separated by blank lines.
func (m model) renderCards(width int) string {
	parts := make([]string, len(m.cards))
	for i, c := range m.cards {
		parts[i] = m.renderCard(c, width, m.view == viewList && i == m.cursor && !m.dumping())
	}
	return strings.Join(parts, "\n\n")
}

// dumping reports whether the model renders for --dump (no live terminal).
func (m model) dumping() bool {
	return m.height <= 0
}

// -- Views ----------------------------------------------------------------

func (m model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.view == viewDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m model) viewList() string {
	width := m.clampWidth()
	viewHeight := m.listViewHeight()

	var lines []string
	if len(m.cards) == 0 {
		lines = []string{StyleDim.Render("  waiting for tool activity" + GlyphEllipsis)}
	} else {
		lines = strings.Split(m.renderCards(width), "\n")
	}

	start := min(m.scroll, len(lines))
	end := min(start+viewHeight, len(lines))
	visible := lines[start:end]
	for len(visible) < viewHeight {
		visible = append(visible, "")
	}
	return strings.Join(visible, "\n") + "\n" + m.renderStatusBar(keys.ShortHelp())
}

func (m model) viewDetail() string {
	return m.detail.View() + "\n" + m.renderStatusBar([]key.Binding{keys.Back, keys.Copy, keys.Top, keys.Bottom})
}

// renderDetailContent is the full, never-truncated view of a card: export
// JSON with syntax highlighting for calls and results, markdown for prose.
func (m model) renderDetailContent(c card, width int) string {
	var header string
	switch c.kind {
	case cardCall:
		header, _ = m.renderCallCard(c, width)
	case cardResult:
		header, _ = m.renderResultCard(c, width)
	default:
		header, _ = m.renderTextCard(c, width)
	}
	header = spaceBetween(header, StyleDim.Render(formatTime(c.timestamp, m.loc)), width)

	text := exportText(c)
	var body string
	switch {
	case c.kind == cardText && c.role == parser.KindAI:
		body = m.md.render(text, width)
	case c.kind == cardText:
		body = lipgloss.NewStyle().Width(width).Render(text)
	default:
		if hl, ok := m.hl.highlight(text); ok {
			body = hl
		} else {
			body = text
		}
	}
	return header + "\n\n" + body
}

// -- Status bar ---------------------------------------------------------------

// renderStatusBar renders key hints in a rounded-border box. While tailing,
// a dim "tail" label and the time since the last update lead the bar. Hints
// are cut to fit so the bar stays one line tall.
func (m model) renderStatusBar(bindings []key.Binding) string {
	inner := max(m.width-4, 1) // border and padding
	sep := " " + IconDot.Render() + " "

	var parts []string
	if m.watching {
		tail := "tail"
		if since := formatSince(m.updatedAt, time.Now()); since != "" {
			tail += " " + since
		}
		parts = append(parts, StyleMuted.Render(tail))
	}
	parts = append(parts, StyleMuted.Render(fmt.Sprintf("%d/%d", min(m.cursor+1, len(m.cards)), len(m.cards))))
	if m.flash != "" {
		parts = append(parts, StyleAccentBold.Render(runewidth.Truncate(m.flash, inner/2, GlyphEllipsis)))
	}
	left := strings.Join(parts, sep)

	h := m.help
	h.Width = inner - lipgloss.Width(left) - lipgloss.Width(sep)
	if h.Width > 0 {
		left += sep + h.ShortHelpView(bindings)
	}

	barStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(max(m.width-2, 1)). // border chars take 2 columns
		Padding(0, 1)

	return barStyle.Render(left)
}
