package kiwi

// TaggedValue is a sealed interface over the variant set a decoder may
// produce. Only the types in this file implement it. Values are immutable
// once produced by the decoder; nothing in figlift mutates them.
type TaggedValue interface {
	taggedValue()
}

// Bool is a boolean value.
type Bool bool

func (Bool) taggedValue() {}

// Byte is a single unsigned byte.
type Byte uint8

func (Byte) taggedValue() {}

// Int is a signed 32-bit integer.
type Int int32

func (Int) taggedValue() {}

// Uint is an unsigned 32-bit integer.
type Uint uint32

func (Uint) taggedValue() {}

// Float is a 32-bit float. May carry NaN or infinities; projection decides
// what becomes of those.
type Float float32

func (Float) taggedValue() {}

// String is a UTF-8 string value.
type String string

func (String) taggedValue() {}

// Int64 is a signed 64-bit integer.
type Int64 int64

func (Int64) taggedValue() {}

// Uint64 is an unsigned 64-bit integer.
type Uint64 uint64

func (Uint64) taggedValue() {}

// Array is an ordered sequence of tagged values.
type Array []TaggedValue

func (Array) taggedValue() {}

// Enum carries the declared enum type name and the selected variant name.
// Both survive into the projected tree; simplification happens downstream.
type Enum struct {
	Type    string
	Variant string
}

func (Enum) taggedValue() {}

// Object is a keyed value with a declared type name. Field order is the
// decoder's emission order; correctness never depends on it, but figlift
// preserves it for diff-friendly output.
//
// The type name is metadata: it is consulted by root-type discovery and is
// not emitted into the projected field mapping.
type Object struct {
	Type   string
	Fields []Field
}

func (Object) taggedValue() {}

// Field is one name/value pair of an Object.
type Field struct {
	Name  string
	Value TaggedValue
}

// Get returns the value of the named field, or false if absent.
func (o Object) Get(name string) (TaggedValue, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}
