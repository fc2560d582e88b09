// Package payload classifies, renders and discloses opaque tool-call payloads.
//
// Payloads arrive untyped: primitives, JSON-encoded strings, or arbitrary
// nested mappings and sequences. Value is the immutable in-memory form of such
// a payload; Classify decides how to show it, Render flattens it into rows,
// and Policy decides how much of it is visible.
package payload

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the JSON type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable JSON-shaped value. Objects keep their fields in
// insertion order. The zero Value is null.
type Value struct {
	kind   Kind
	b      bool
	text   string // string contents, or the number literal
	items  []Value
	fields []Field
}

// Field is one entry of an object Value.
type Field struct {
	Key   string
	Value Value
}

// F is shorthand for constructing a Field.
func F(key string, v Value) Field {
	return Field{Key: key, Value: v}
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Str wraps a string.
func Str(s string) Value { return Value{kind: KindString, text: s} }

// Num wraps a float64, formatted the way a JavaScript runtime would print it.
func Num(f float64) Value { return Value{kind: KindNumber, text: formatNumber(f)} }

// Int wraps an integer.
func Int(n int64) Value { return Value{kind: KindNumber, text: strconv.FormatInt(n, 10)} }

// NumLiteral wraps a number literal verbatim (e.g. "1.50" or a 20-digit id).
func NumLiteral(lit string) Value { return Value{kind: KindNumber, text: lit} }

// List builds an array Value.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object builds an object Value. A repeated key keeps its first position and
// takes the last value, matching JSON.parse.
func Object(fields ...Field) Value {
	return Value{kind: KindObject, fields: dedupe(fields)}
}

func dedupe(fields []Field) []Field {
	out := make([]Field, 0, len(fields))
	seen := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := seen[f.Key]; ok {
			out[i].Value = f.Value
			continue
		}
		seen[f.Key] = len(out)
		out = append(out, f)
	}
	return out
}

// Kind reports the JSON type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsComposite reports whether v is an array or an object.
func (v Value) IsComposite() bool { return v.kind == KindArray || v.kind == KindObject }

// Len returns the element count of an array or the field count of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.fields)
	}
	return 0
}

// Items returns the elements of an array Value. The slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.items
}

// Fields returns the entries of an object Value in insertion order.
// The slice must not be modified.
func (v Value) Fields() []Field {
	if v.kind != KindObject {
		return nil
	}
	return v.fields
}

// Get returns the value stored under key in an object.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.Fields() {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Text returns the contents of a string Value.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// Float returns the numeric value of a number Value.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		switch v.text {
		case "NaN":
			return math.NaN(), true
		case "Infinity":
			return math.Inf(1), true
		case "-Infinity":
			return math.Inf(-1), true
		}
		return 0, false
	}
	return f, true
}

// String returns the plain string form of v: strings verbatim, primitives as
// their literal, composites as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber, KindString:
		return v.text
	default:
		b, err := encode(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Equal reports whether two values are structurally identical, including
// object field order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber, KindString:
		return v.text == o.text
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Key != o.fields[i].Key || !v.fields[i].Value.Equal(o.fields[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// formatNumber prints f like JavaScript's Number#toString: integral values
// without a fraction, exponent form outside [1e-6, 1e21).
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0" // covers -0
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go pads the exponent to two digits ("1e+06"); JS does not.
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
