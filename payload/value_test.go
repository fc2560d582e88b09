package payload_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/kylesnowschwartz/tail-tools/payload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNum_Formatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{-3, "-3"},
		{0.5, "0.5"},
		{1e21, "1e+21"},
		{1e20, "100000000000000000000"},
		{1e-7, "1e-7"},
		{0.000001, "0.000001"},
		{0, "0"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, payload.Num(tt.in).String())
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		_, err := payload.ParseString(`{"a":`)
		require.ErrorIs(t, err, payload.ErrInvalidJSON)
		_, err = payload.Parse([]byte(""))
		require.ErrorIs(t, err, payload.ErrInvalidJSON)
	})

	t.Run("numbers normalized", func(t *testing.T) {
		tests := []struct{ in, want string }{
			{"1.0", "1"},
			{"1.50", "1.5"},
			{"0.10", "0.1"},
			{"1e2", "100"},
			{"1E+2", "100"},
			{"-0", "0"},
			{"-0.0", "0"},
			{"2.5e-7", "2.5e-7"},
			{"1e21", "1e+21"},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, mustParse(t, tt.in).String(), tt.in)
		}
	})

	t.Run("large integers keep their digits", func(t *testing.T) {
		v := mustParse(t, `[12345678901234567890, -9007199254740993, 9007199254740992]`)
		assert.Equal(t, "12345678901234567890", v.Items()[0].String())
		assert.Equal(t, "-9007199254740993", v.Items()[1].String())
		assert.Equal(t, "9007199254740992", v.Items()[2].String())
	})

	t.Run("duplicate keys keep first position and last value", func(t *testing.T) {
		v := mustParse(t, `{"a":1,"b":2,"a":3}`)
		require.Equal(t, 2, v.Len())
		assert.Equal(t, "a", v.Fields()[0].Key)
		got, ok := v.Get("a")
		require.True(t, ok)
		assert.Equal(t, "3", got.String())
	})

	t.Run("escapes decoded", func(t *testing.T) {
		v := mustParse(t, `"tab\there é"`)
		s, ok := v.Text()
		require.True(t, ok)
		assert.Equal(t, "tab\there é", s)
	})
}

func TestValue_JSONRoundTrip(t *testing.T) {
	doc := `{"z":[1,"b",null,{"k":false}],"a":"line\nbreak"}`
	var v payload.Value
	require.NoError(t, json.Unmarshal([]byte(doc), &v))

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, doc, string(out))
}

func TestPretty(t *testing.T) {
	assert.Equal(t, "[]", payload.Pretty(payload.List()))
	assert.Equal(t, "{}", payload.Pretty(payload.Object()))
	assert.Equal(t, `""`, payload.Pretty(payload.Str("")))
	assert.Equal(t, `"<a>"`, payload.Pretty(payload.Str("<a>")), "no HTML escaping")
	assert.Equal(t, "[\n  1,\n  {\n    \"a\": null\n  }\n]",
		payload.Pretty(payload.List(payload.Int(1), payload.Object(payload.F("a", payload.Null())))))
	assert.Empty(t, payload.Pretty(payload.Num(math.NaN())), "non-finite numbers cannot serialize")
	assert.Empty(t, payload.Pretty(payload.List(payload.Num(math.Inf(1)))))
}

func TestValue_Equal(t *testing.T) {
	a := payload.Object(payload.F("x", payload.Int(1)), payload.F("y", payload.Int(2)))
	b := payload.Object(payload.F("y", payload.Int(2)), payload.F("x", payload.Int(1)))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b), "field order matters")
	assert.False(t, payload.Str("1").Equal(payload.Int(1)))
	assert.True(t, payload.Null().Equal(payload.Null()))
}

type named string

func (n named) String() string { return "named:" + string(n) }

func TestFromAny(t *testing.T) {
	t.Run("map keys sorted", func(t *testing.T) {
		v := payload.FromAny(map[string]any{"b": 1, "a": []any{true, nil}, "c": "s"})
		var keys []string
		for _, f := range v.Fields() {
			keys = append(keys, f.Key)
		}
		assert.Equal(t, []string{"a", "b", "c"}, keys)
		assert.Equal(t, `{"a":[true,null],"b":1,"c":"s"}`, v.String())
	})

	t.Run("typed slices and maps", func(t *testing.T) {
		assert.Equal(t, `[1,2]`, payload.FromAny([]int{1, 2}).String())
		assert.Equal(t, `{"1":"x"}`, payload.FromAny(map[int]string{1: "x"}).String())
		assert.True(t, payload.FromAny([]string(nil)).IsNull())
	})

	t.Run("structs go through encoding/json", func(t *testing.T) {
		type point struct {
			X int `json:"x"`
			Y int `json:"y"`
		}
		assert.Equal(t, `{"x":1,"y":2}`, payload.FromAny(point{1, 2}).String())
		assert.Equal(t, `{"x":3,"y":4}`, payload.FromAny(&point{3, 4}).String())
	})

	t.Run("stringers", func(t *testing.T) {
		assert.Equal(t, "named:v", payload.FromAny(named("v")).String())
	})

	t.Run("self reference terminates", func(t *testing.T) {
		m := map[string]any{}
		m["self"] = m
		v := payload.FromAny(m)
		depth := 0
		for v.Kind() == payload.KindObject {
			v, _ = v.Get("self")
			depth++
		}
		assert.Equal(t, payload.KindString, v.Kind())
		assert.Greater(t, depth, payload.MaxDepth-1)
	})
}
