package payload

// Content is a classified payload: exactly one of Primitive, Structured or
// OpaqueText.
type Content interface {
	content()
}

// Primitive is a bare null, boolean or number that was never a string.
type Primitive struct {
	Value Value
}

// Structured is an array or object, either given directly or decoded from a
// JSON string.
type Structured struct {
	Value Value
}

// OpaqueText is a string shown verbatim: it was not JSON, or its JSON was a
// primitive.
type OpaqueText struct {
	Text string
}

func (Primitive) content()  {}
func (Structured) content() {}
func (OpaqueText) content() {}

// Classify decides how raw should be displayed. It never fails: strings that
// do not decode to an array or object stay text.
func Classify(raw Value) Content {
	switch raw.Kind() {
	case KindArray, KindObject:
		return Structured{Value: raw}
	case KindString:
		s, _ := raw.Text()
		decoded, err := ParseString(s)
		if err != nil || !decoded.IsComposite() {
			return OpaqueText{Text: s}
		}
		return Structured{Value: decoded}
	default:
		return Primitive{Value: raw}
	}
}

// IsStructured reports whether c is the Structured variant.
func IsStructured(c Content) bool {
	_, ok := c.(Structured)
	return ok
}

// PlainText returns the string form of classified content, before newline
// normalization: indented JSON for structured content, the text itself for
// opaque text, the literal for primitives.
func PlainText(c Content) string {
	switch c := c.(type) {
	case Structured:
		return Pretty(c.Value)
	case OpaqueText:
		return c.Text
	case Primitive:
		return c.Value.String()
	}
	return ""
}
