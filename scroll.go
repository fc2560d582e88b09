package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// clampWidth returns m.width capped at the configured width, or at
// maxContentWidth when none is set.
func (m model) clampWidth() int {
	limit := m.maxWidth
	if limit <= 0 {
		limit = maxContentWidth
	}
	return min(m.width, limit)
}

// listViewHeight is the number of card lines visible above the status bar.
func (m model) listViewHeight() int {
	h := m.height - statusBarHeight
	if h < 1 {
		h = 1
	}
	return h
}

// computeLineOffsets calculates the starting line of each card in the
// rendered output. Must mirror viewList's rendering to keep scroll accurate.
func (m *model) computeLineOffsets() {
	if m.width == 0 || len(m.cards) == 0 {
		m.lineOffsets, m.cardLines, m.totalRenderedLines = nil, nil, 0
		return
	}
	width := m.clampWidth()

	m.lineOffsets = make([]int, len(m.cards))
	m.cardLines = make([]int, len(m.cards))
	line := 0
	for i, c := range m.cards {
		m.lineOffsets[i] = line
		rendered := m.renderCard(c, width, i == m.cursor)
		m.cardLines[i] = strings.Count(rendered, "\n") + 1
		line += m.cardLines[i]
		if i < len(m.cards)-1 {
			line++ // blank separator line
		}
	}
	last := len(m.cards) - 1
	m.totalRenderedLines = m.lineOffsets[last] + m.cardLines[last]
}

// ensureCursorVisible adjusts scroll so the selected card is in view. Cards
// taller than the viewport are pinned to their top line.
func (m *model) ensureCursorVisible() {
	if len(m.lineOffsets) != len(m.cards) || len(m.cards) == 0 || m.height == 0 {
		return
	}
	viewHeight := m.listViewHeight()

	start := m.lineOffsets[m.cursor]
	end := start + m.cardLines[m.cursor] - 1

	if end >= m.scroll+viewHeight {
		m.scroll = end - viewHeight + 1
	}
	if start < m.scroll || m.cardLines[m.cursor] > viewHeight {
		m.scroll = start
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// clampListScroll caps the list scroll offset so it can't exceed the content.
func (m *model) clampListScroll() {
	maxScroll := m.totalRenderedLines - m.listViewHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// resizeDetail rebuilds the detail viewport for the selected card at the
// current window size, keeping the scroll position where possible.
func (m *model) resizeDetail() {
	c, ok := m.selected()
	if !ok {
		return
	}
	offset := m.detail.YOffset
	width := m.clampWidth()
	m.detail = viewport.New(width, m.listViewHeight())
	m.detail.SetContent(m.renderDetailContent(c, width))
	m.detail.SetYOffset(offset)
}
