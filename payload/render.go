package payload

import (
	"strconv"
	"strings"
)

// Node is a rendered payload: a Leaf text cell or a nested Table of rows.
type Node interface {
	node()
}

// Leaf is a terminal text cell.
type Leaf struct {
	Text string
}

// Table is an ordered list of rows. Seq is true when the rows came from an
// array and are keyed by index.
type Table struct {
	Seq  bool
	Rows []Row
}

func (Leaf) node()  {}
func (Table) node() {}

// Row is one array element or object entry.
type Row struct {
	Key   string // object key; empty for array rows
	Index int    // array index, or -1 for object rows
	Value Node
}

// Label returns the text shown in the key column.
func (r Row) Label() string {
	if r.Index >= 0 {
		return strconv.Itoa(r.Index)
	}
	return r.Key
}

// NormalizeNewlines turns every literal backslash-n pair into a line break.
// It is a plain textual replace, not an unescape: "\\t" and friends are left
// alone, and real line breaks pass through untouched.
func NormalizeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// Render flattens v into a display tree. Strings get newline normalization;
// other primitives use their plain string form.
func Render(v Value) Node {
	switch v.Kind() {
	case KindString:
		s, _ := v.Text()
		return Leaf{Text: NormalizeNewlines(s)}
	case KindArray:
		return Table{Seq: true, Rows: renderItems(v.Items())}
	case KindObject:
		return Table{Rows: renderFields(v.Fields())}
	default:
		return Leaf{Text: v.String()}
	}
}

// RenderRows returns the top-level rows of a structured value, or nil for a
// primitive.
func RenderRows(v Value) []Row {
	if t, ok := Render(v).(Table); ok {
		return t.Rows
	}
	return nil
}

func renderItems(items []Value) []Row {
	rows := make([]Row, len(items))
	for i, it := range items {
		rows[i] = Row{Index: i, Value: Render(it)}
	}
	return rows
}

func renderFields(fields []Field) []Row {
	rows := make([]Row, len(fields))
	for i, f := range fields {
		rows[i] = Row{Key: f.Key, Index: -1, Value: Render(f.Value)}
	}
	return rows
}

// CountRows returns the number of rows at every level of n, depth first.
func CountRows(n Node) int {
	t, ok := n.(Table)
	if !ok {
		return 0
	}
	total := len(t.Rows)
	for _, r := range t.Rows {
		total += CountRows(r.Value)
	}
	return total
}
