package distill

import "fmt"

// Kind classifies the variants of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Field is one entry of a Map value. Maps preserve insertion order and
// field names are unique within one Map.
type Field struct {
	Name  string
	Value *Value
}

// Value is an in-memory JSON value tree. Trees built by the codecs are
// acyclic; the engine never mutates a Value in place, it builds new trees.
type Value struct {
	kind   Kind
	b      bool
	i      int64
	f      float64
	s      string
	elems  []*Value
	fields []Field
}

// Constructors.

func Null() *Value           { return &Value{kind: KindNull} }
func Bool(b bool) *Value     { return &Value{kind: KindBool, b: b} }
func Int(i int64) *Value     { return &Value{kind: KindInt, i: i} }
func Float(f float64) *Value { return &Value{kind: KindFloat, f: f} }
func Text(s string) *Value   { return &Value{kind: KindText, s: s} }

// List builds a list value. The slice is owned by the new value.
func List(elems ...*Value) *Value {
	return &Value{kind: KindList, elems: elems}
}

// Map builds a map value from ordered fields. The slice is owned by the
// new value; callers must not pass duplicate field names.
func Map(fields ...Field) *Value {
	return &Value{kind: KindMap, fields: fields}
}

// Accessors.

func (v *Value) Kind() Kind { return v.kind }

func (v *Value) AsBool() (bool, bool) {
	if v.kind == KindBool {
		return v.b, true
	}
	return false, false
}

func (v *Value) AsInt() (int64, bool) {
	if v.kind == KindInt {
		return v.i, true
	}
	return 0, false
}

func (v *Value) AsFloat() (float64, bool) {
	if v.kind == KindFloat {
		return v.f, true
	}
	return 0, false
}

func (v *Value) AsText() (string, bool) {
	if v.kind == KindText {
		return v.s, true
	}
	return "", false
}

// Elems returns the elements of a list value, or nil for other kinds.
func (v *Value) Elems() []*Value {
	if v.kind == KindList {
		return v.elems
	}
	return nil
}

// Fields returns the ordered fields of a map value, or nil for other kinds.
func (v *Value) Fields() []Field {
	if v.kind == KindMap {
		return v.fields
	}
	return nil
}

// Get looks up a map field by name.
func (v *Value) Get(name string) (*Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Len returns the number of elements or fields of a container, zero otherwise.
func (v *Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.elems)
	case KindMap:
		return len(v.fields)
	default:
		return 0
	}
}

// IsContainer reports whether the value is a list or map.
func (v *Value) IsContainer() bool {
	return v.kind == KindList || v.kind == KindMap
}

// CountNodes returns the total number of nodes in the tree, counting the
// root itself. Used for size accounting before and after distillation.
func CountNodes(v *Value) int {
	if v == nil {
		return 0
	}
	n := 1
	switch v.kind {
	case KindList:
		for _, e := range v.elems {
			n += CountNodes(e)
		}
	case KindMap:
		for _, f := range v.fields {
			n += CountNodes(f.Value)
		}
	}
	return n
}
