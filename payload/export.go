package payload

import (
	"github.com/tidwall/sjson"
)

// ToolCall is an agent-issued tool invocation.
type ToolCall struct {
	Name string
	ID   string // may be empty
	Args Value
}

// ToolResult is the content returned for a tool call. Content is usually a
// string that may hold JSON, but can be any value.
type ToolResult struct {
	Name       string // may be empty
	ToolCallID string // may be empty
	Content    Value
	IsError    bool
}

// ExportToolCall returns the clipboard form of a tool call: {name, id, args}
// indented with two spaces and newline-normalized. An empty id and null args
// are left out, and an unserializable call exports as "".
func ExportToolCall(tc ToolCall) string {
	doc, err := toolCallDocument(tc)
	if err != nil {
		return ""
	}
	v, err := Parse(doc)
	if err != nil {
		return ""
	}
	return NormalizeNewlines(Pretty(v))
}

func toolCallDocument(tc ToolCall) ([]byte, error) {
	doc, err := sjson.SetBytes([]byte(`{}`), "name", tc.Name)
	if err != nil {
		return nil, err
	}
	if tc.ID != "" {
		if doc, err = sjson.SetBytes(doc, "id", tc.ID); err != nil {
			return nil, err
		}
	}
	if tc.Args.IsNull() {
		return doc, nil
	}
	args, err := encode(tc.Args)
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(doc, "args", args)
}

// ExportToolResult returns the clipboard form of a tool result's content:
// indented JSON when it is structured, the plain text otherwise, both
// newline-normalized.
func ExportToolResult(r ToolResult) string {
	return NormalizeNewlines(PlainText(Classify(r.Content)))
}
