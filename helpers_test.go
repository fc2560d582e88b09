package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/kylesnowschwartz/tail-tools/parser"
	"github.com/kylesnowschwartz/tail-tools/payload"
)

// sampleTranscript yields five cards: human text, a search call, its
// eight-row result, a failed fetch result and a closing assistant reply.
const sampleTranscript = `{"type":"human","content":"find cats","timestamp":"2026-01-02T10:00:00Z"}
{"type":"ai","content":"","tool_calls":[{"name":"search","id":"call_1","args":{"q":"cats","limit":8}}],"timestamp":"2026-01-02T10:00:01Z"}
{"type":"tool","tool_call_id":"call_1","content":"[\"a\",\"b\",\"c\",\"d\",\"e\",\"f\",\"g\",\"h\"]","timestamp":"2026-01-02T10:00:02Z"}
{"type":"tool","tool_call_id":"call_2","name":"fetch","status":"error","content":"connection refused"}
{"type":"ai","content":"Found eight."}
`

// Card positions in sampleTranscript.
const (
	idxHuman = iota
	idxCall
	idxResult
	idxError
	idxReply
)

// keyMsg constructs a tea.KeyMsg from a string like "j", "tab", "enter".
// Single-character strings map to KeyRunes; named keys get their KeyType.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testConfig() config {
	p := payload.DefaultPolicy
	return config{
		Width:    maxContentWidth,
		ArgsView: argsViewTree,
		MaxLines: p.MaxLines,
		MaxChars: p.MaxChars,
		MaxRows:  p.MaxRows,
		TZ:       "UTC",
	}
}

func sampleMessages(t *testing.T) []parser.Message {
	t.Helper()
	msgs, err := parser.ReadAll(strings.NewReader(sampleTranscript))
	require.NoError(t, err)
	require.Len(t, msgs, 5)
	return msgs
}

// testModel returns a 120x40 model over sampleTranscript with line offsets
// computed and a clipboard stub that records what was copied.
func testModel(t *testing.T) (model, *[]string) {
	t.Helper()
	var copied []string
	m := initialModel(sampleMessages(t), testConfig(), true)
	m.width = 120
	m.height = 40
	m.copyFn = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	m.computeLineOffsets()
	return m, &copied
}

// asModel extracts the model from an Update return value.
func asModel(t tea.Model) model {
	return t.(model)
}

// isQuit reports whether cmd is tea.Quit.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
