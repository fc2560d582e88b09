package main

import (
	"bytes"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
)

// jsonHL colors export text in the detail view. Export text is usually
// indented JSON, but opaque results and tool errors are plain text; the
// JSON lexer passes those through mostly uncolored.
type jsonHL struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

func newJSONHL(hasDarkBg bool) *jsonHL {
	styleName := "github"
	if hasDarkBg {
		styleName = "dracula"
	}
	profile := colorprofile.Detect(os.Stdout, os.Environ())
	return &jsonHL{
		lexer:     chroma.Coalesce(lexers.Get("json")),
		formatter: formatters.Get(chromaFormatter(profile)),
		style:     styles.Get(styleName),
	}
}

// highlight returns s with terminal colors, or ("", false) when chroma fails.
func (h *jsonHL) highlight(s string) (string, bool) {
	if h == nil || h.formatter == nil || s == "" {
		return "", false
	}
	iterator, err := h.lexer.Tokenise(nil, s)
	if err != nil {
		return "", false
	}
	var out bytes.Buffer
	if err := h.formatter.Format(&out, h.style, iterator); err != nil {
		return "", false
	}
	return out.String(), true
}

// chromaFormatter maps a color profile to a chroma formatter name. Profiles
// without color get "noop", which passes text through.
func chromaFormatter(profile colorprofile.Profile) string {
	switch profile {
	case colorprofile.TrueColor:
		return "terminal16m"
	case colorprofile.ANSI256:
		return "terminal256"
	case colorprofile.ANSI:
		return "terminal16"
	default:
		return "noop"
	}
}
