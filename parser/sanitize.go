package parser

import (
	"regexp"
	"strings"

	"github.com/kylesnowschwartz/tail-tools/payload"
)

var noiseTagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<local-command-caveat>.*?</local-command-caveat>`),
	regexp.MustCompile(`(?is)<system-reminder>.*?</system-reminder>`),
}

var commandTagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<command-name>.*?</command-name>`),
	regexp.MustCompile(`(?is)<command-message>.*?</command-message>`),
	regexp.MustCompile(`(?is)<command-args>.*?</command-args>`),
}

// SanitizeText strips injected XML wrappers from message prose. Slash
// commands collapse to "/name args" and command output to its inner text.
func SanitizeText(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, localCommandStdoutTag) || strings.HasPrefix(trimmed, localCommandStderrTag) {
		if out := commandOutput(trimmed); out != "" {
			return out
		}
	}
	if strings.HasPrefix(trimmed, "<command-name>") || strings.HasPrefix(trimmed, "<command-message>") {
		if display := commandDisplay(trimmed); display != "" {
			return display
		}
	}

	for _, pat := range noiseTagPatterns {
		trimmed = pat.ReplaceAllString(trimmed, "")
	}
	for _, pat := range commandTagPatterns {
		trimmed = pat.ReplaceAllString(trimmed, "")
	}
	return strings.TrimSpace(trimmed)
}

// isNoiseText reports whether s is nothing but a hard noise block.
func isNoiseText(s string) bool {
	trimmed := strings.TrimSpace(s)
	for _, tag := range hardNoiseTags {
		closeTag := strings.Replace(tag, "<", "</", 1)
		if strings.HasPrefix(trimmed, tag) && strings.HasSuffix(trimmed, closeTag) {
			return true
		}
	}
	return strings.HasPrefix(trimmed, "[Request interrupted by user")
}

func commandDisplay(s string) string {
	m := reCommandName.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	name := "/" + strings.TrimSpace(m[1])
	if am := reCommandArgs.FindStringSubmatch(s); am != nil {
		if args := strings.TrimSpace(am[1]); args != "" {
			return name + " " + args
		}
	}
	return name
}

func commandOutput(s string) string {
	if m := reStdout.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reStderr.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// textOf pulls prose out of a message content value: a plain string, or an
// array whose "text" blocks are joined with newlines. Other block types are
// ignored here; tool blocks are handled by Classify.
func textOf(content payload.Value) string {
	if s, ok := content.Text(); ok {
		return s
	}
	var parts []string
	for _, item := range content.Items() {
		if s, ok := item.Text(); ok {
			parts = append(parts, s)
			continue
		}
		typ, _ := item.Get("type")
		if t, _ := typ.Text(); t != "text" {
			continue
		}
		text, _ := item.Get("text")
		if s, _ := text.Text(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// flattenResult turns Claude Code tool_result content into what the result
// card shows. An array made only of text blocks becomes its joined text;
// anything else is passed through untouched.
func flattenResult(content payload.Value) payload.Value {
	items := content.Items()
	if content.Kind() != payload.KindArray || len(items) == 0 {
		return content
	}
	for _, item := range items {
		typ, _ := item.Get("type")
		if t, _ := typ.Text(); t != "text" {
			return content
		}
	}
	return payload.Str(textOf(content))
}
