package payload_test

import (
	"testing"

	"github.com/kylesnowschwartz/tail-tools/payload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) payload.Value {
	t.Helper()
	v, err := payload.ParseString(s)
	require.NoError(t, err)
	return v
}

func TestNormalizeNewlines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"literal pair becomes line break", `a\nb`, "a\nb"},
		{"real line break untouched", "a\nb", "a\nb"},
		{"other escapes untouched", `a\tb`, `a\tb`},
		{"every pair replaced", `\n\n`, "\n\n"},
		{"escaped backslash keeps one", `a\\nb`, "a\\\nb"},
		{"no pairs", "plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, payload.NormalizeNewlines(tt.input))
		})
	}
}

func TestRender_Leaves(t *testing.T) {
	tests := []struct {
		name string
		v    payload.Value
		want string
	}{
		{"string", payload.Str("hi"), "hi"},
		{"string with literal newline", payload.Str(`x\ny`), "x\ny"},
		{"integer", payload.Int(10), "10"},
		{"float", payload.Num(0.5), "0.5"},
		{"number literal kept verbatim", payload.NumLiteral("1.50"), "1.50"},
		{"true", payload.Bool(true), "true"},
		{"null", payload.Null(), "null"},
		{"parsed 1.0", mustParse(t, "1.0"), "1"},
		{"parsed exponent", mustParse(t, "1e2"), "100"},
		{"parsed negative zero", mustParse(t, "-0"), "0"},
		{"parsed trailing zero", mustParse(t, "0.10"), "0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, payload.Leaf{Text: tt.want}, payload.Render(tt.v))
		})
	}
}

func TestRender_ToolCallArgsScenario(t *testing.T) {
	args := mustParse(t, `{"limit": 10, "query": "a\\nb"}`)
	rows := payload.RenderRows(args)

	require.Len(t, rows, 2)
	assert.Equal(t, "limit", rows[0].Label())
	assert.Equal(t, payload.Leaf{Text: "10"}, rows[0].Value)
	assert.Equal(t, "query", rows[1].Label())
	assert.Equal(t, payload.Leaf{Text: "a\nb"}, rows[1].Value)
}

func TestRender_PreservesOrder(t *testing.T) {
	v := mustParse(t, `{"zeta":1,"alpha":2,"mid":3}`)
	rows := payload.RenderRows(v)

	var keys []string
	for _, r := range rows {
		keys = append(keys, r.Label())
		assert.Equal(t, -1, r.Index)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
}

func TestRender_SequenceIndexes(t *testing.T) {
	v := mustParse(t, `["a", "a", "b"]`)
	node := payload.Render(v)

	table, ok := node.(payload.Table)
	require.True(t, ok)
	assert.True(t, table.Seq)
	require.Len(t, table.Rows, 3, "duplicates must not be dropped")
	for i, r := range table.Rows {
		assert.Equal(t, i, r.Index)
	}
	assert.Equal(t, "2", table.Rows[2].Label())
}

func TestRender_Nested(t *testing.T) {
	v := mustParse(t, `{"items":[{"id":1,"tags":["x","y"]},{"id":2,"tags":[]}],"meta":{}}`)
	root, ok := payload.Render(v).(payload.Table)
	require.True(t, ok)
	require.Len(t, root.Rows, 2)

	items, ok := root.Rows[0].Value.(payload.Table)
	require.True(t, ok)
	assert.True(t, items.Seq)
	require.Len(t, items.Rows, 2)

	first, ok := items.Rows[0].Value.(payload.Table)
	require.True(t, ok)
	assert.False(t, first.Seq)
	require.Len(t, first.Rows, 2)
	assert.Equal(t, "id", first.Rows[0].Label())

	tags, ok := first.Rows[1].Value.(payload.Table)
	require.True(t, ok)
	require.Len(t, tags.Rows, 2)
	assert.Equal(t, payload.Leaf{Text: "y"}, tags.Rows[1].Value)

	empty, ok := items.Rows[1].Value.(payload.Table).Rows[1].Value.(payload.Table)
	require.True(t, ok)
	assert.Empty(t, empty.Rows)

	meta, ok := root.Rows[1].Value.(payload.Table)
	require.True(t, ok)
	assert.Empty(t, meta.Rows)
}

// rowCountsMatch walks v and its rendering together, checking that every
// level has one row per element or entry, in input order.
func rowCountsMatch(t *testing.T, v payload.Value, n payload.Node) {
	t.Helper()
	switch v.Kind() {
	case payload.KindArray:
		table, ok := n.(payload.Table)
		require.True(t, ok)
		require.Len(t, table.Rows, v.Len())
		for i, it := range v.Items() {
			assert.Equal(t, i, table.Rows[i].Index)
			rowCountsMatch(t, it, table.Rows[i].Value)
		}
	case payload.KindObject:
		table, ok := n.(payload.Table)
		require.True(t, ok)
		require.Len(t, table.Rows, v.Len())
		for i, f := range v.Fields() {
			assert.Equal(t, f.Key, table.Rows[i].Key)
			rowCountsMatch(t, f.Value, table.Rows[i].Value)
		}
	default:
		_, ok := n.(payload.Leaf)
		assert.True(t, ok)
	}
}

func TestRender_RowCountsAtEveryLevel(t *testing.T) {
	docs := []string{
		`[]`,
		`{}`,
		`[1,[2,[3,[4,[5]]]]]`,
		`{"a":{"b":{"c":{"d":[null,true,false,"s",1.5]}}}}`,
		`[{"k":"v"},{"k":"v","k2":[{}]},[[],[[]]]]`,
	}
	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			v := mustParse(t, doc)
			rowCountsMatch(t, v, payload.Render(v))
		})
	}
}

func TestCountRows(t *testing.T) {
	v := mustParse(t, `{"a":[1,2],"b":{"c":3}}`)
	// a, b at the top; 0, 1 under a; c under b.
	assert.Equal(t, 5, payload.CountRows(payload.Render(v)))
	assert.Equal(t, 0, payload.CountRows(payload.Render(payload.Str("x"))))
}
