package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// copyResultMsg reports the outcome of a clipboard write.
type copyResultMsg struct {
	size int
	err  error
}

// updateList handles key events in the card list view.
func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
		m.ensureCursorVisible()

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()

	case key.Matches(msg, keys.Bottom):
		if len(m.cards) > 0 {
			m.cursor = len(m.cards) - 1
			m.ensureCursorVisible()
		}

	case key.Matches(msg, keys.Top):
		m.cursor = 0
		m.scroll = 0

	case key.Matches(msg, keys.Toggle):
		c, ok := m.selected()
		if !ok || !offersToggle(c, m.policy) {
			return m, nil
		}
		m.disclosure.Toggle(c.key, c.fp)
		m.computeLineOffsets()
		m.ensureCursorVisible()

	case key.Matches(msg, keys.Expand):
		m.expandAll()
		m.computeLineOffsets()
		m.ensureCursorVisible()

	case key.Matches(msg, keys.Collapse):
		m.disclosure.Reset()
		m.computeLineOffsets()
		m.ensureCursorVisible()

	case key.Matches(msg, keys.ArgsView):
		m.argsTable = !m.argsTable
		m.computeLineOffsets()
		m.ensureCursorVisible()

	case key.Matches(msg, keys.Copy):
		c, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.copyCmd(exportText(c))

	case key.Matches(msg, keys.Detail):
		if _, ok := m.selected(); ok {
			m.view = viewDetail
			m.resizeDetail()
			m.detail.GotoTop()
		}

	case key.Matches(msg, keys.HalfDown):
		m.scroll += m.height / 2
		m.clampListScroll()

	case key.Matches(msg, keys.HalfUp):
		m.scroll -= m.height / 2
		if m.scroll < 0 {
			m.scroll = 0
		}
	}
	return m, nil
}

// updateDetail handles key events in the full-screen detail view. Scrolling
// is delegated to the viewport's own key map.
func (m model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Detail):
		m.view = viewList
		return m, nil
	case key.Matches(msg, keys.Copy):
		if c, ok := m.selected(); ok {
			return m, m.copyCmd(exportText(c))
		}
		return m, nil
	case key.Matches(msg, keys.Top):
		m.detail.GotoTop()
		return m, nil
	case key.Matches(msg, keys.Bottom):
		m.detail.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// updateListMouse handles wheel scrolling in the list view.
func (m model) updateListMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll -= 3
		if m.scroll < 0 {
			m.scroll = 0
		}
	case tea.MouseButtonWheelDown:
		m.scroll += 3
		m.clampListScroll()
	}
	return m, nil
}

// copyCmd writes text to the clipboard off the update loop.
func (m model) copyCmd(text string) tea.Cmd {
	copyFn := m.copyFn
	return func() tea.Msg {
		return copyResultMsg{size: len(text), err: copyFn(text)}
	}
}
