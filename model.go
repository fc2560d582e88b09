package main

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kylesnowschwartz/tail-tools/parser"
	"github.com/kylesnowschwartz/tail-tools/payload"
)

type viewState int

const (
	viewList   viewState = iota // card list (main view)
	viewDetail                  // full-screen export of one card
)

// keyMap holds the list-view bindings. The detail view reuses Quit, Copy
// and the scroll keys.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Expand   key.Binding
	Collapse key.Binding
	ArgsView key.Binding
	Copy     key.Binding
	Detail   key.Binding
	HalfDown key.Binding
	HalfUp   key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Expand, k.Collapse, k.ArgsView, k.Copy, k.Detail, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.HalfDown, k.HalfUp, k.Top, k.Bottom, k.Back}}
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
	Toggle:   key.NewBinding(key.WithKeys("tab", " "), key.WithHelp("tab", "toggle")),
	Expand:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand all")),
	Collapse: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse all")),
	ArgsView: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "args view")),
	Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
	Detail:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
	HalfDown: key.NewBinding(key.WithKeys("J", "ctrl+d"), key.WithHelp("J", "page down")),
	HalfUp:   key.NewBinding(key.WithKeys("K", "ctrl+u"), key.WithHelp("K", "page up")),
	Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	Back:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "back")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type model struct {
	cards      []card
	disclosure *payload.DisclosureSet
	policy     payload.Policy
	dates      payload.DateFormatter
	loc        *time.Location
	argsTable  bool // flat args table instead of the recursive tree

	cursor             int
	maxWidth           int // --width
	width              int
	height             int
	scroll             int
	lineOffsets        []int // starting line of each card in rendered output
	cardLines          []int // rendered lines per card
	totalRenderedLines int

	view   viewState
	detail viewport.Model

	md   *mdRenderer
	hl   *jsonHL
	help help.Model

	// flash is a one-line notice in the status bar ("copied", errors).
	flash string

	// Live tailing state
	path      string
	watching  bool
	tailSub   chan tailUpdateMsg
	tailErrc  chan error
	updatedAt time.Time

	log    *slog.Logger
	copyFn func(string) error
}

// initialModel builds a model over msgs. All cards start collapsed unless
// cfg.Expand is set.
func initialModel(msgs []parser.Message, cfg config, hasDarkBg bool) model {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}
	m := model{
		cards:      buildCards(msgs),
		disclosure: payload.NewDisclosureSet(),
		policy:     cfg.Policy(),
		dates:      payload.DateFormatterIn(loc),
		loc:        loc,
		argsTable:  cfg.ArgsView == argsViewTable,
		maxWidth:   cfg.Width,
		md:         newMDRenderer(hasDarkBg),
		hl:         newJSONHL(hasDarkBg),
		help:       help.New(),
		log:        slog.Default(),
		copyFn:     copyToClipboard,
	}
	if cfg.Expand {
		m.expandAll()
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.watching {
		return tea.Batch(
			waitForTailUpdate(m.tailSub),
			waitForWatcherErr(m.tailErrc),
		)
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.computeLineOffsets()
		m.ensureCursorVisible()
		if m.view == viewDetail {
			m.resizeDetail()
		}
		return m, nil

	case tailUpdateMsg:
		m.applyTail(msg)
		return m, waitForTailUpdate(m.tailSub)

	case watcherErrMsg:
		m.log.Warn("watcher error", "path", m.path, "err", msg.err)
		return m, waitForWatcherErr(m.tailErrc)

	case copyResultMsg:
		if msg.err != nil {
			m.log.Warn("copy failed", "err", msg.err)
			m.flash = "copy failed: " + msg.err.Error()
		} else {
			m.flash = "copied " + formatSize(msg.size)
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)

	case tea.MouseMsg:
		if m.view == viewDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		return m.updateListMouse(msg)
	}
	return m, nil
}

// applyTail swaps in the rebuilt card list. Disclosure state is keyed by
// card, so it survives; cards whose payload changed reset to collapsed on
// their own, and state for cards that vanished is dropped.
func (m *model) applyTail(u tailUpdateMsg) {
	wasAtEnd := m.cursor >= len(m.cards)-1
	m.cards = buildCards(u.messages)
	m.disclosure.Prune(cardKeys(m.cards))
	m.updatedAt = u.at

	if wasAtEnd && len(m.cards) > 0 {
		m.cursor = len(m.cards) - 1
	}
	if m.cursor >= len(m.cards) {
		m.cursor = max(len(m.cards)-1, 0)
	}
	m.computeLineOffsets()
	m.ensureCursorVisible()
}

// selected returns the card under the cursor.
func (m model) selected() (card, bool) {
	if m.cursor < 0 || m.cursor >= len(m.cards) {
		return card{}, false
	}
	return m.cards[m.cursor], true
}

// expanded reports the disclosure state of c.
func (m model) expanded(c card) bool {
	return m.disclosure.State(c.key, c.fp).Expanded
}

func (m *model) expandAll() {
	for _, c := range m.cards {
		if offersToggle(c, m.policy) {
			m.disclosure.Set(c.key, c.fp, true)
		}
	}
}
