package parser

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kylesnowschwartz/tail-tools/payload"
)

// Message is a sealed interface over the three things a transcript shows:
// prose, tool calls and tool results. Bookkeeping entries are dropped, not
// classified.
type Message interface {
	message()
	Time() time.Time
}

// TextMsg is prose from a human, the model or the system prompt.
type TextMsg struct {
	Timestamp time.Time
	Kind      string // KindHuman, KindAI or KindSystem
	Model     string
	Text      string
}

// CallMsg is one tool invocation issued by the model.
type CallMsg struct {
	Timestamp time.Time
	Call      payload.ToolCall
}

// ResultMsg is the content a tool returned.
type ResultMsg struct {
	Timestamp time.Time
	Result    payload.ToolResult
}

func (TextMsg) message()   {}
func (CallMsg) message()   {}
func (ResultMsg) message() {}

func (m TextMsg) Time() time.Time   { return m.Timestamp }
func (m CallMsg) Time() time.Time   { return m.Timestamp }
func (m ResultMsg) Time() time.Time { return m.Timestamp }

// Classify maps an Entry to the messages it contributes, in order. One
// assistant entry can carry prose and several tool calls; one Claude Code
// user entry can carry several tool results. Returns false when nothing in
// the entry is worth showing.
func Classify(e Entry) ([]Message, bool) {
	if e.IsSidechain || noiseEntryTypes[e.Type] {
		return nil, false
	}
	kind := e.Kind()
	if kind == "" {
		return nil, false
	}
	// Claude Code "system" lines are status notices, not prompts.
	if kind == KindSystem && e.UUID != "" {
		return nil, false
	}

	ts := parseTimestamp(e.Timestamp)
	var msgs []Message
	if e.isSession() {
		if kind == KindAI && e.Message.Model == "<synthetic>" {
			return nil, false
		}
		msgs = contentMessages(kind, e.Message.Model, e.Message.Content, e.IsMeta, ts)
	} else {
		msgs = classifyDict(kind, e, ts)
	}
	return msgs, len(msgs) > 0
}

func classifyDict(kind string, e Entry, ts time.Time) []Message {
	if kind == KindTool {
		return []Message{ResultMsg{
			Timestamp: ts,
			Result: payload.ToolResult{
				Name:       e.Name,
				ToolCallID: e.ToolCallID,
				Content:    flattenResult(e.Content),
				IsError:    e.Status == "error",
			},
		}}
	}

	msgs := contentMessages(kind, "", e.Content, e.IsMeta, ts)
	if kind != KindAI {
		return msgs
	}

	// Anthropic-style content can already hold tool_use blocks for the
	// same calls tool_calls lists again.
	seen := make(map[string]bool)
	for _, m := range msgs {
		if c, ok := m.(CallMsg); ok && c.Call.ID != "" {
			seen[c.Call.ID] = true
		}
	}
	calls := 0
	for _, tc := range e.ToolCalls {
		call := tc.toToolCall()
		if call.Name == "" || (call.ID != "" && seen[call.ID]) {
			continue
		}
		msgs = append(msgs, CallMsg{Timestamp: ts, Call: call})
		calls++
	}
	if calls == 0 && len(seen) == 0 {
		msgs = append(msgs, extraToolCalls(e.Extra, ts)...)
	}
	return msgs
}

// contentMessages walks a content value, which is either plain prose or an
// array of blocks, emitting messages in block order. Consecutive text blocks
// merge into one TextMsg.
func contentMessages(kind, model string, content payload.Value, meta bool, ts time.Time) []Message {
	if s, ok := content.Text(); ok {
		if m, ok := prose(kind, model, s, meta, ts); ok {
			return []Message{m}
		}
		return nil
	}

	var msgs []Message
	var text []string
	flush := func() {
		if len(text) == 0 {
			return
		}
		if m, ok := prose(kind, model, strings.Join(text, "\n"), meta, ts); ok {
			msgs = append(msgs, m)
		}
		text = text[:0]
	}

	for _, item := range content.Items() {
		if s, ok := item.Text(); ok {
			text = append(text, s)
			continue
		}
		b := blockFrom(item)
		switch b.Type {
		case "text":
			if b.Text != "" {
				text = append(text, b.Text)
			}
		case "tool_use":
			flush()
			if b.Name == "" {
				continue
			}
			msgs = append(msgs, CallMsg{Timestamp: ts, Call: payload.ToolCall{
				Name: b.Name,
				ID:   b.ID,
				Args: argsOrEmpty(b.Input),
			}})
		case "tool_result":
			flush()
			msgs = append(msgs, ResultMsg{Timestamp: ts, Result: payload.ToolResult{
				ToolCallID: b.ToolUseID,
				Content:    flattenResult(b.Content),
				IsError:    b.IsError,
			}})
		}
		// thinking, image and friends have no card.
	}
	flush()
	return msgs
}

// prose builds a TextMsg, or reports false for text nobody wants to read:
// empty strings, hard noise wrappers and internal (isMeta) human lines.
func prose(kind, model, s string, meta bool, ts time.Time) (TextMsg, bool) {
	if meta && kind == KindHuman {
		return TextMsg{}, false
	}
	if isNoiseText(s) {
		return TextMsg{}, false
	}
	text := SanitizeText(s)
	if text == "" {
		return TextMsg{}, false
	}
	return TextMsg{Timestamp: ts, Kind: kind, Model: model, Text: text}, true
}

func (tc toolCallJSON) toToolCall() payload.ToolCall {
	call := payload.ToolCall{ID: tc.ID, Name: tc.Name, Args: tc.Args}
	if tc.Function != nil {
		if call.Name == "" {
			call.Name = tc.Function.Name
		}
		if call.Args.IsNull() {
			call.Args = decodeArguments(tc.Function.Arguments)
		}
	}
	call.Args = argsOrEmpty(call.Args)
	return call
}

// extraToolCalls reads OpenAI-style calls that older LangChain dumps keep
// under additional_kwargs.tool_calls.
func extraToolCalls(raw json.RawMessage, ts time.Time) []Message {
	if len(raw) == 0 {
		return nil
	}
	var msgs []Message
	gjson.GetBytes(raw, "tool_calls").ForEach(func(_, tc gjson.Result) bool {
		name := tc.Get("function.name").String()
		if name == "" {
			return true
		}
		msgs = append(msgs, CallMsg{Timestamp: ts, Call: payload.ToolCall{
			Name: name,
			ID:   tc.Get("id").String(),
			Args: argsOrEmpty(decodeArguments(tc.Get("function.arguments").String())),
		}})
		return true
	})
	return msgs
}

// decodeArguments parses a JSON-encoded argument string. Arguments that are
// not valid JSON are kept as the raw string.
func decodeArguments(s string) payload.Value {
	if strings.TrimSpace(s) == "" {
		return payload.Object()
	}
	v, err := payload.ParseString(s)
	if err != nil {
		return payload.Str(s)
	}
	return v
}

// argsOrEmpty treats missing arguments as an empty mapping so the call still
// exports as "args": {}.
func argsOrEmpty(v payload.Value) payload.Value {
	if v.IsNull() {
		return payload.Object()
	}
	return v
}

// parseTimestamp parses an ISO 8601 timestamp. Returns zero time on failure.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	// Python's isoformat() without an offset.
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", s); err == nil {
		return t
	}
	return time.Time{}
}
