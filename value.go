package mison

import "strconv"

// ValueKind discriminates the variants of a parsed Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k ValueKind) String() string {
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
	}
	return "invalid"
}

// Member is one object entry. Object member order is document order.
type Member struct {
	Key   string
	Value *Value
}

// Value is a node of a fully parsed document tree.
//
// Raw spans are subslices of the buffer given to Parser.Parse and stay
// valid only as long as that buffer is alive and unmodified. Decoded
// strings are owned copies.
type Value struct {
	kind    ValueKind
	raw     []byte
	str     string
	boolean bool
	isInt   bool
	arr     []*Value
	obj     []Member
}

// Kind reports the variant of v.
func (v *Value) Kind() ValueKind { return v.kind }

// Raw returns the exact textual span of v in the input, including the
// surrounding quotes for strings and brackets for containers.
func (v *Value) Raw() []byte { return v.raw }

// Bool returns the value of a KindBool node.
func (v *Value) Bool() bool { return v.boolean }

// Str returns the decoded content of a KindString node, or the decoded
// key-compatible form of any scalar's text.
func (v *Value) Str() string { return v.str }

// IsInt reports whether a KindNumber node has integer syntax (no fraction
// or exponent part).
func (v *Value) IsInt() bool { return v.isInt }

// Int64 converts a KindNumber node's raw text. Conversion is a caller
// concern; the parse itself only records the span and category.
func (v *Value) Int64() (int64, error) {
	return strconv.ParseInt(string(v.raw), 10, 64)
}

// Float64 converts a KindNumber node's raw text.
func (v *Value) Float64() (float64, error) {
	return strconv.ParseFloat(string(v.raw), 64)
}

// Len returns the number of elements or members of a container, zero for
// scalars.
func (v *Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	}
	return 0
}

// Index returns element i of a KindArray node, nil when out of range.
func (v *Value) Index(i int) *Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return nil
	}
	return v.arr[i]
}

// Elements returns the elements of a KindArray node in document order.
func (v *Value) Elements() []*Value { return v.arr }

// Member returns the value of the first member with the given decoded key.
func (v *Value) Member(key string) (*Value, bool) {
	for i := range v.obj {
		if v.obj[i].Key == key {
			return v.obj[i].Value, true
		}
	}
	return nil, false
}

// Members returns the members of a KindObject node in document order.
func (v *Value) Members() []Member { return v.obj }
