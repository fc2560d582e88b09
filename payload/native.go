package payload

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// MaxDepth caps how deep FromAny descends into Go values. Go maps and slices
// can reference themselves; JSON input cannot, so Parse needs no such guard.
const MaxDepth = 64

// depthMarker replaces anything nested deeper than MaxDepth.
const depthMarker = "[max depth exceeded]"

// FromAny converts a Go value into a Value. Maps have no insertion order in
// Go, so their keys are sorted; callers that care about order should decode
// with Parse instead. Unknown types go through encoding/json, and anything
// that still cannot be represented becomes its fmt string.
func FromAny(x any) Value {
	return fromAny(x, 0)
}

func fromAny(x any, depth int) Value {
	if depth > MaxDepth {
		return Str(depthMarker)
	}
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return Str(t)
	case json.Number:
		return numberFrom(t.String())
	case json.RawMessage:
		if v, err := Parse(t); err == nil {
			return v
		}
		return Str(string(t))
	case float64:
		return Num(t)
	case float32:
		return Num(float64(t))
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case int32:
		return Int(int64(t))
	case uint64:
		return NumLiteral(strconv.FormatUint(t, 10))
	case []any:
		items := make([]Value, len(t))
		for i, it := range t {
			items[i] = fromAny(it, depth+1)
		}
		return List(items...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: fromAny(t[k], depth+1)}
		}
		return Object(fields...)
	}
	return fromReflect(reflect.ValueOf(x), depth)
}

// fromReflect handles the remaining kinds: other numeric types, typed slices
// and maps, pointers, and structs (through their JSON encoding).
func fromReflect(rv reflect.Value, depth int) Value {
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uintptr:
		return NumLiteral(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return fromAny(rv.Elem().Interface(), depth+1)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null()
		}
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = fromAny(rv.Index(i).Interface(), depth+1)
		}
		return List(items...)
	case reflect.Map:
		if rv.IsNil() {
			return Null()
		}
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			byKey[k] = iter.Value()
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: fromAny(byKey[k].Interface(), depth+1)}
		}
		return Object(fields...)
	}

	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return Str(s.String())
	}
	if b, err := json.Marshal(rv.Interface()); err == nil {
		if v, err := Parse(b); err == nil {
			return v
		}
	}
	return Str(fmt.Sprint(rv.Interface()))
}
