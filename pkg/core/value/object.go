package value

import (
	"github.com/iancoleman/orderedmap"
)

// Object is a string-keyed mapping that remembers the order in which keys
// were first inserted. Setting an existing key replaces its value in place.
type Object struct {
	m *orderedmap.OrderedMap
}

// NewObjectMap returns an empty Object.
func NewObjectMap() *Object {
	return &Object{m: orderedmap.New()}
}

// Set stores v under key. The last write for a key wins.
func (o *Object) Set(key string, v Value) {
	if o.m == nil {
		o.m = orderedmap.New()
	}
	o.m.Set(key, v)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil || o.m == nil {
		return Value{}, false
	}
	raw, ok := o.m.Get(key)
	if !ok {
		return Value{}, false
	}
	v, ok := raw.(Value)
	return v, ok
}

// Keys returns the keys in insertion order. The slice is a copy.
func (o *Object) Keys() []string {
	if o == nil || o.m == nil {
		return []string{}
	}
	keys := o.m.Keys()
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil || o.m == nil {
		return 0
	}
	return len(o.m.Keys())
}
