package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies which variant of a JSON value a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

var kindNames = [...]string{
	Null:   "null",
	Bool:   "boolean",
	Number: "number",
	String: "string",
	Array:  "array",
	Object: "object",
}

func (k Kind) String() string {
	if k < Null || k > Object {
		return "invalid"
	}
	return kindNames[k]
}

// Member is a single key-value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value: null, boolean, number, string, array or object.
// The zero Value is null. Objects keep their members in insertion order
// and never hold two members with the same key.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	text    string
	items   []Value
	members []Member
}

// NullValue returns the JSON null.
func NullValue() Value { return Value{} }

// BoolValue returns a JSON boolean.
func BoolValue(b bool) Value { return Value{kind: Bool, boolean: b} }

// NumberValue returns a JSON number.
func NumberValue(f float64) Value { return Value{kind: Number, number: f} }

// StringValue returns a JSON string.
func StringValue(s string) Value { return Value{kind: String, text: s} }

// ArrayValue returns a JSON array holding items in order.
func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Array, items: items}
}

// ObjectValue returns a JSON object built from members. A repeated key
// keeps the position of its first occurrence and the value of its last.
func ObjectValue(members ...Member) Value {
	v := Value{kind: Object, members: make([]Member, 0, len(members))}
	for _, m := range members {
		v.Set(m.Key, m.Value)
	}
	return v
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the JSON null.
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean held by v, or false.
func (v Value) Bool() bool { return v.boolean }

// Float returns the number held by v, or 0.
func (v Value) Float() float64 { return v.number }

// Str returns the string held by v, or "".
func (v Value) Str() string { return v.text }

// Items returns the elements of an array, or nil.
func (v Value) Items() []Value { return v.items }

// Members returns the members of an object in order, or nil.
func (v Value) Members() []Member { return v.members }

// Len returns the number of elements of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	}
	return 0
}

// Keys returns the keys of an object in member order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Get returns the value of the member with the given key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether v is an object with a member named key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Index returns the i'th element of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Set assigns the member key of object v. It panics if v is not an object.
func (v *Value) Set(key string, val Value) {
	if v.kind != Object {
		panic(fmt.Sprintf("models: Set on %s value", v.kind))
	}
	for i := range v.members {
		if v.members[i].Key == key {
			v.members[i].Value = val
			return
		}
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Append adds val to the end of array v. It panics if v is not an array.
func (v *Value) Append(val Value) {
	if v.kind != Array {
		panic(fmt.Sprintf("models: Append on %s value", v.kind))
	}
	v.items = append(v.items, val)
}

// Values returns the member values of an object in order.
func (v Value) Values() []Value {
	out := make([]Value, 0, len(v.members))
	for _, m := range v.members {
		out = append(out, m.Value)
	}
	return out
}

// Equal reports whether v and w are structurally equal. Object member
// order is not significant.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.boolean == w.boolean
	case Number:
		return v.number == w.number
	case String:
		return v.text == w.text
	case Array:
		if len(v.items) != len(w.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(w.items[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(v.members) != len(w.members) {
			return false
		}
		for _, m := range v.members {
			o, ok := w.Get(m.Key)
			if !ok || !m.Value.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// Text returns the plain string form of a scalar: strings unquoted,
// numbers in shortest form, and "true", "false" or "null". Arrays and
// objects yield their compact JSON encoding.
func (v Value) Text() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		if v.boolean {
			return "true"
		}
		return "false"
	case Number:
		return FormatNumber(v.number)
	case String:
		return v.text
	}
	return v.JSON()
}

// JSON returns the compact JSON encoding of v.
func (v Value) JSON() string {
	var buf bytes.Buffer
	v.encode(&buf)
	return buf.String()
}

// Indent returns the JSON encoding of v with each level indented by indent.
func (v Value) Indent(indent string) string {
	compact := v.JSON()
	if indent == "" {
		return compact
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(compact), "", indent); err != nil {
		return compact
	}
	return buf.String()
}

// MarshalJSON encodes v compactly, keeping object members in order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.encode(&buf)
	return buf.Bytes(), nil
}

func (v Value) String() string { return v.JSON() }

func (v Value) encode(buf *bytes.Buffer) {
	switch v.kind {
	case Null:
		buf.WriteString("null")
	case Bool, Number:
		buf.WriteString(v.Text())
	case String:
		writeString(buf, v.text)
	case Array:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.encode(buf)
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, m.Key)
			buf.WriteByte(':')
			m.Value.encode(buf)
		}
		buf.WriteByte('}')
	}
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	// Encode terminates its output with a newline.
	buf.Truncate(buf.Len() - 1)
}
