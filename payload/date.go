package payload

import (
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the layout PrettyDate formats matches with.
const DateLayout = "Mon, Jan 2, 2006, 3:04 PM"

// minDateYear rejects values that parse as dates but are almost certainly
// something else (small counters, ids, version numbers).
const minDateYear = 2000

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
// 1e11 seconds is the year 5138; 1e11 milliseconds is 1973.
const epochMillisThreshold = 1e11

// DateFormatter returns the date rendering of v, or false when v does not
// look like a date.
type DateFormatter func(v Value) (string, bool)

// PrettyDate is the default DateFormatter, rendering in the local time zone.
var PrettyDate DateFormatter = DateFormatterIn(time.Local)

// DateFormatterIn returns a DateFormatter that renders times in loc.
func DateFormatterIn(loc *time.Location) DateFormatter {
	return func(v Value) (string, bool) {
		t, ok := looksLikeDate(v, loc)
		if !ok {
			return "", false
		}
		return t.In(loc).Format(DateLayout), true
	}
}

// looksLikeDate accepts date strings (ISO 8601, RFC 1123, "Jan 2 2006", ...)
// and numeric epoch seconds or milliseconds. All-digit strings are rejected:
// they are ids far more often than timestamps.
func looksLikeDate(v Value, loc *time.Location) (time.Time, bool) {
	var t time.Time
	switch v.Kind() {
	case KindNumber:
		f, ok := v.Float()
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return time.Time{}, false
		}
		if f >= epochMillisThreshold {
			t = time.UnixMilli(int64(f))
		} else {
			sec, frac := math.Modf(f)
			t = time.Unix(int64(sec), int64(frac*1e9))
		}
	case KindString:
		s, _ := v.Text()
		s = strings.TrimSpace(s)
		if s == "" || isDigits(s) || !strings.ContainsAny(s, "-/:, ") {
			return time.Time{}, false
		}
		parsed, err := dateparse.ParseIn(s, loc)
		if err != nil {
			return time.Time{}, false
		}
		t = parsed
	default:
		return time.Time{}, false
	}
	if t.Year() < minDateYear || t.Year() > 9999 {
		return time.Time{}, false
	}
	return t, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
