package parser

import (
	"regexp"

	"github.com/kylesnowschwartz/tail-tools/payload"
)

const (
	localCommandStdoutTag = "<local-command-stdout>"
	localCommandStderrTag = "<local-command-stderr>"
)

var (
	reCommandName = regexp.MustCompile(`<command-name>/([^<]+)</command-name>`)
	reCommandArgs = regexp.MustCompile(`<command-args>([^<]*)</command-args>`)
	reStdout      = regexp.MustCompile(`(?is)<local-command-stdout>(.*?)</local-command-stdout>`)
	reStderr      = regexp.MustCompile(`(?is)<local-command-stderr>(.*?)</local-command-stderr>`)
)

// noiseEntryTypes are Claude Code entry types that never hold a message.
var noiseEntryTypes = map[string]bool{
	"summary":               true,
	"file-history-snapshot": true,
	"queue-operation":       true,
	"progress":              true,
}

// hardNoiseTags mark text that exists only for the model's benefit. Text
// wrapped entirely in one of them is dropped.
var hardNoiseTags = []string{
	"<local-command-caveat>",
	"<system-reminder>",
}

// contentBlock is one element of an array-valued message content. Tool
// inputs and results stay as payload.Value; they are what gets rendered.
type contentBlock struct {
	Type      string
	ID        string
	Name      string
	Text      string
	Input     payload.Value
	ToolUseID string
	Content   payload.Value
	IsError   bool
}

// blockFrom reads a content block out of an already decoded value.
func blockFrom(v payload.Value) contentBlock {
	str := func(key string) string {
		f, _ := v.Get(key)
		s, _ := f.Text()
		return s
	}
	b := contentBlock{
		Type:      str("type"),
		ID:        str("id"),
		Name:      str("name"),
		Text:      str("text"),
		ToolUseID: str("tool_use_id"),
	}
	b.Input, _ = v.Get("input")
	b.Content, _ = v.Get("content")
	if f, ok := v.Get("is_error"); ok {
		b.IsError = f.Kind() == payload.KindBool && f.String() == "true"
	}
	return b
}
