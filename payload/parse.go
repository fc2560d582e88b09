package payload

import (
	"errors"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by Parse for input that is not a single valid
// JSON document.
var ErrInvalidJSON = errors.New("payload: invalid JSON")

// Parse decodes a JSON document into a Value. Object keys keep their document
// order, which encoding/json cannot give us through map[string]any.
func Parse(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// ParseString is Parse for string input.
func ParseString(s string) (Value, error) {
	if !gjson.Valid(s) {
		return Value{}, ErrInvalidJSON
	}
	return fromResult(gjson.Parse(s)), nil
}

// fromResult converts a validated gjson result. gjson iterates objects in
// document order, including duplicate keys, which Object collapses.
func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return numberFrom(r.Raw)
	case gjson.String:
		return Str(r.String())
	case gjson.JSON:
		if r.IsArray() {
			items := []Value{}
			r.ForEach(func(_, item gjson.Result) bool {
				items = append(items, fromResult(item))
				return true
			})
			return List(items...)
		}
		var fields []Field
		r.ForEach(func(key, val gjson.Result) bool {
			fields = append(fields, Field{Key: key.String(), Value: fromResult(val)})
			return true
		})
		return Object(fields...)
	}
	return Null()
}

// numberFrom normalizes a number literal to its plain form, so 1.0, 1e0 and
// 1E+0 all read "1". Integer literals past 2^53 keep their digits, which
// float64 would round, and so does anything ParseFloat rejects.
func numberFrom(lit string) Value {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil || (isIntLiteral(lit) && math.Abs(f) > 1<<53) {
		return NumLiteral(lit)
	}
	return Num(f)
}

func isIntLiteral(lit string) bool {
	if len(lit) > 0 && lit[0] == '-' {
		lit = lit[1:]
	}
	if lit == "" {
		return false
	}
	for i := 0; i < len(lit); i++ {
		if lit[i] < '0' || lit[i] > '9' {
			return false
		}
	}
	return true
}
