package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// shortModel turns "claude-opus-4-6" into "opus4.6". Non-Claude model
// names are short enough already and pass through.
func shortModel(m string) string {
	if !strings.HasPrefix(m, "claude-") {
		return m
	}
	m = strings.TrimPrefix(m, "claude-")
	family, version, ok := strings.Cut(m, "-")
	if !ok {
		return m
	}
	// Keep major-minor only: "4-5-20251001" -> "4.5".
	parts := strings.SplitN(version, "-", 3)
	if len(parts) >= 2 {
		return family + parts[0] + "." + parts[1]
	}
	return family + parts[0]
}

// modelColor picks a header color for a model family.
func modelColor(model string) lipgloss.AdaptiveColor {
	switch {
	case strings.Contains(model, "opus"):
		return ColorModelOpus
	case strings.Contains(model, "sonnet"), strings.HasPrefix(model, "gpt"):
		return ColorModelSonnet
	case strings.Contains(model, "haiku"):
		return ColorModelHaiku
	default:
		return ColorTextSecondary
	}
}

// formatTime renders a timestamp for a card header in loc.
func formatTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("3:04:05 PM")
}

// formatSize renders a byte count: 512 -> "512 B", 2048 -> "2.0 kB".
func formatSize(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// formatCount renders "1 item" / "1,024 items".
func formatCount(n int, noun string) string {
	s := humanize.Comma(int64(n)) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

// formatSince renders how long ago t was, or "" for the zero time.
func formatSince(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// shortID trims long tool-call ids for headers, keeping the tail where the
// unique part usually is.
func shortID(id string) string {
	const keep = 12
	r := []rune(id)
	if len(r) <= keep {
		return id
	}
	return GlyphEllipsis + string(r[len(r)-keep:])
}
