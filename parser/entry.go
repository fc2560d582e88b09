package parser

import (
	"encoding/json"

	"github.com/kylesnowschwartz/tail-tools/payload"
)

// Message kinds after normalization. LangChain dumps say "ai"/"human", chat
// APIs say "assistant"/"user"; both map here.
const (
	KindAI     = "ai"
	KindHuman  = "human"
	KindTool   = "tool"
	KindSystem = "system"
)

// Entry is one JSONL line of a transcript. Two layouts share it:
//
//   - LangChain message dicts: type/role, content, tool_calls, tool_call_id.
//   - Claude Code session entries: type, uuid, timestamp and a nested message
//     whose content is an array of text, tool_use and tool_result blocks.
//
// Payload fields decode into payload.Value so object key order survives.
type Entry struct {
	Type        string          `json:"type"`
	Role        string          `json:"role"`
	ID          string          `json:"id"`
	UUID        string          `json:"uuid"`
	Name        string          `json:"name"`
	Timestamp   string          `json:"timestamp"`
	IsSidechain bool            `json:"isSidechain"`
	IsMeta      bool            `json:"isMeta"`
	Content     payload.Value   `json:"content"`
	ToolCalls   []toolCallJSON  `json:"tool_calls"`
	ToolCallID  string          `json:"tool_call_id"`
	Status      string          `json:"status"`
	Message     *nestedMessage  `json:"message"`
	Extra       json.RawMessage `json:"additional_kwargs"`
}

// nestedMessage is the "message" object of a Claude Code entry.
type nestedMessage struct {
	Role    string        `json:"role"`
	Model   string        `json:"model"`
	Content payload.Value `json:"content"`
}

// toolCallJSON is one element of a LangChain "tool_calls" list. Some dumps
// use the OpenAI shape with the arguments JSON-encoded under "function".
type toolCallJSON struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Args     payload.Value `json:"args"`
	Function *struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// ParseEntry parses a single JSONL line into an Entry.
// Returns false if the JSON is invalid or the line is not a message at all.
func ParseEntry(line []byte) (Entry, bool) {
	var e Entry
	if err := json.Unmarshal(line, &e); err != nil {
		return Entry{}, false
	}
	if e.Kind() == "" && e.Message == nil {
		return Entry{}, false
	}
	return e, true
}

// Kind returns the normalized message kind, or "" for entries that are not
// chat messages (Claude Code bookkeeping lines, for example).
func (e Entry) Kind() string {
	if k := normalizeKind(e.Type); k != "" {
		return k
	}
	if k := normalizeKind(e.Role); k != "" {
		return k
	}
	if e.Message != nil {
		return normalizeKind(e.Message.Role)
	}
	return ""
}

// isSession reports whether e uses the Claude Code layout.
func (e Entry) isSession() bool {
	return e.Message != nil && e.UUID != ""
}

func normalizeKind(s string) string {
	switch s {
	case "ai", "assistant", "AIMessage", "AIMessageChunk":
		return KindAI
	case "human", "user", "HumanMessage":
		return KindHuman
	case "tool", "ToolMessage", "function":
		return KindTool
	case "system", "SystemMessage":
		return KindSystem
	}
	return ""
}
