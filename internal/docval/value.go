package docval

// Value is a sealed interface over the JSON-like value types. Only Null,
// Bool, Number, String, Array, and *Object implement it.
type Value interface {
	docValue()
}

// Null is the JSON null value. An explicit type rather than a nil Value so
// that "field present with null" and "field absent" stay distinguishable.
type Null struct{}

func (Null) docValue() {}

// Bool is a JSON boolean.
type Bool bool

func (Bool) docValue() {}

// Number is a JSON number. Always float64; figlift's projection guarantees
// it is finite (NaN and infinities become Null before a Number is made).
type Number float64

func (Number) docValue() {}

// String is a JSON string.
type String string

func (String) docValue() {}

// Array is an ordered sequence of values.
type Array []Value

func (Array) docValue() {}

// Object is a string-keyed mapping that remembers insertion order. Key order
// never affects correctness; it is preserved so repeated conversions of the
// same file serialize identically and diff cleanly.
type Object struct {
	keys   []string
	fields map[string]Value
}

func (*Object) docValue() {}

// NewObject creates an empty ordered object.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

// Set stores a value under key. A new key is appended to the order; an
// existing key keeps its original slot.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.fields[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Get returns the value for key, or false if absent.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Delete removes key, preserving the relative order of the rest.
func (o *Object) Delete(key string) {
	if _, ok := o.fields[key]; !ok {
		return
	}
	delete(o.fields, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.fields)
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not mutate it.
func (o *Object) Keys() []string {
	return o.keys
}

// Clone returns a shallow copy: the key order and field map are fresh, the
// values are shared. Sufficient for figlift because values are never mutated
// after construction, only objects are (via Set/Delete during tree building).
func (o *Object) Clone() *Object {
	dup := &Object{
		keys:   make([]string, len(o.keys)),
		fields: make(map[string]Value, len(o.fields)),
	}
	copy(dup.keys, o.keys)
	for k, v := range o.fields {
		dup.fields[k] = v
	}
	return dup
}
