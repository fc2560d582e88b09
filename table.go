package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/kylesnowschwartz/tail-tools/payload"
)

// minTableWidth is the narrowest a nested table is drawn. Below it, rows
// fall back to indented "key: value" lines.
const minTableWidth = 12

// tableChrome is the columns a two-column bordered table spends on borders.
const tableChrome = 3

// renderRows draws rendered payload rows as a bordered two-column table no
// wider than width. Composite values nest as tables inside the value cell.
func renderRows(rows []payload.Row, seq bool, width int) string {
	if len(rows) == 0 {
		return StyleDim.Render(emptyComposite(seq))
	}
	if width < minTableWidth {
		return strings.Join(plainRows(rows, ""), "\n")
	}

	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Label()
	}
	keyW := keyColumnWidth(labels, width)
	valW := width - keyW - tableChrome

	cells := make([][2]string, len(rows))
	for i, r := range rows {
		cells[i] = [2]string{
			runewidth.Truncate(labels[i], keyW, GlyphEllipsis),
			renderNode(r.Value, valW),
		}
	}
	keyStyle := StyleTableKey
	if seq {
		keyStyle = StyleTableIndex
	}
	return kvTable(cells, keyStyle, keyW, valW)
}

// renderArgTable draws the flat argument table: one row per top-level key,
// values already turned into display text.
func renderArgTable(args []payload.ArgRow, width int) string {
	if len(args) == 0 {
		return StyleDim.Render("{}")
	}
	labels := make([]string, len(args))
	for i, a := range args {
		labels[i] = a.Key
	}
	keyW := keyColumnWidth(labels, width)
	valW := max(width-keyW-tableChrome, 1)

	cells := make([][2]string, len(args))
	for i, a := range args {
		cells[i] = [2]string{runewidth.Truncate(a.Key, keyW, GlyphEllipsis), a.Text}
	}
	return kvTable(cells, StyleTableKey, keyW, valW)
}

func renderNode(n payload.Node, width int) string {
	switch n := n.(type) {
	case payload.Leaf:
		return n.Text
	case payload.Table:
		return renderRows(n.Rows, n.Seq, width)
	}
	return ""
}

func kvTable(cells [][2]string, keyStyle lipgloss.Style, keyW, valW int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleTableBorder).
		BorderRow(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle.Width(keyW)
			}
			return StylePrimary.Width(valW)
		})
	for _, c := range cells {
		t.Row(c[0], c[1])
	}
	return t.Render()
}

// keyColumnWidth sizes the key column to the widest label, capped at a third
// of the table.
func keyColumnWidth(labels []string, width int) int {
	limit := max(width/3, 4)
	w := 1
	for _, l := range labels {
		w = max(w, runewidth.StringWidth(l))
	}
	return min(w, limit)
}

// plainRows is the narrow-terminal fallback for renderRows.
func plainRows(rows []payload.Row, indent string) []string {
	var lines []string
	for _, r := range rows {
		switch v := r.Value.(type) {
		case payload.Leaf:
			lines = append(lines, indent+r.Label()+": "+v.Text)
		case payload.Table:
			if len(v.Rows) == 0 {
				lines = append(lines, indent+r.Label()+": "+emptyComposite(v.Seq))
				continue
			}
			lines = append(lines, indent+r.Label()+":")
			lines = append(lines, plainRows(v.Rows, indent+"  ")...)
		}
	}
	return lines
}

func emptyComposite(seq bool) string {
	if seq {
		return "[]"
	}
	return "{}"
}
