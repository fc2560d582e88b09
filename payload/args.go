package payload

// ArgRow is one top-level argument in the flat argument table.
type ArgRow struct {
	Key  string
	Text string
}

// ArgRows builds the flat argument table for a tool call. Unlike Render it
// does not recurse: strings and numbers show their plain form, anything the
// date formatter recognizes shows as a date, and whatever is left is shown as
// indented JSON. dates may be nil to skip date detection.
func ArgRows(args Value, dates DateFormatter) []ArgRow {
	fields := args.Fields()
	rows := make([]ArgRow, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, ArgRow{Key: f.Key, Text: argText(f.Value, dates)})
	}
	return rows
}

func argText(v Value, dates DateFormatter) string {
	var text string
	if k := v.Kind(); k == KindString || k == KindNumber {
		text = v.String()
	}
	if dates != nil {
		if d, ok := dates(v); ok {
			text = d
		}
	}
	// An empty string falls through here too and shows as "".
	if text == "" {
		text = Pretty(v)
	}
	return NormalizeNewlines(text)
}
