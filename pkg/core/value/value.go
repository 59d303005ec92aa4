package value

import (
	"fmt"
	"math/big"
)

// Type represents the tag in the Value tagged union.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeString
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "boolean"
	case TypeInt:
		return "integer"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Value is a tagged union over the JSON value kinds. Only the payload field
// matching Type is meaningful. The zero Value is null.
type Value struct {
	Type Type
	Data uint64 // bool payload

	num  *big.Int
	str  string
	list []Value
	obj  *Object
}

// Null returns the null value.
func Null() Value {
	return Value{Type: TypeNull}
}

// NewBool wraps a boolean.
func NewBool(b bool) Value {
	v := Value{Type: TypeBool}
	if b {
		v.Data = 1
	}
	return v
}

// NewInt wraps n. The Value takes ownership of n.
func NewInt(n *big.Int) Value {
	if n == nil {
		n = new(big.Int)
	}
	return Value{Type: TypeInt, num: n}
}

// NewInt64 wraps a machine integer.
func NewInt64(i int64) Value {
	return NewInt(big.NewInt(i))
}

// NewString wraps s.
func NewString(s string) Value {
	return Value{Type: TypeString, str: s}
}

// NewArray wraps elems. A nil slice yields an empty array.
func NewArray(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Type: TypeArray, list: elems}
}

// NewObject wraps o. A nil object yields an empty object.
func NewObject(o *Object) Value {
	if o == nil {
		o = NewObjectMap()
	}
	return Value{Type: TypeObject, obj: o}
}

// Bool returns the boolean payload. It is false for non-boolean values.
func (v Value) Bool() bool {
	return v.Type == TypeBool && v.Data != 0
}

// BigInt returns the integer payload, or nil if v is not an integer.
func (v Value) BigInt() *big.Int {
	if v.Type != TypeInt {
		return nil
	}
	return v.num
}

// Int64 returns the integer payload and whether it fits in an int64.
func (v Value) Int64() (int64, bool) {
	if v.Type != TypeInt {
		return 0, false
	}
	n := v.intOrZero()
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// intOrZero treats a hand-built integer Value with no payload as 0.
func (v Value) intOrZero() *big.Int {
	if v.num == nil {
		return new(big.Int)
	}
	return v.num
}

// Str returns the string payload.
func (v Value) Str() string {
	return v.str
}

// Array returns the array elements, or nil if v is not an array.
func (v Value) Array() []Value {
	if v.Type != TypeArray {
		return nil
	}
	return v.list
}

// Object returns the object payload, or nil if v is not an object.
func (v Value) Object() *Object {
	if v.Type != TypeObject {
		return nil
	}
	return v.obj
}

// Len returns the number of elements of an array or members of an object,
// the byte length of a string, and 0 otherwise.
func (v Value) Len() int {
	switch v.Type {
	case TypeArray:
		return len(v.list)
	case TypeObject:
		return v.obj.Len()
	case TypeString:
		return len(v.str)
	default:
		return 0
	}
}

// Equal reports deep structural equality. Object member order is ignored.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case TypeNull:
		return true
	case TypeBool:
		return v.Bool() == other.Bool()
	case TypeInt:
		return v.intOrZero().Cmp(other.intOrZero()) == 0
	case TypeString:
		return v.str == other.str
	case TypeArray:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case TypeObject:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		for _, k := range v.obj.Keys() {
			a, _ := v.obj.Get(k)
			b, ok := other.obj.Get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Native converts v to plain Go values: nil, bool, *big.Int, string, []any
// and map[string]any. Integers are copied.
func (v Value) Native() any {
	switch v.Type {
	case TypeBool:
		return v.Bool()
	case TypeInt:
		return new(big.Int).Set(v.intOrZero())
	case TypeString:
		return v.str
	case TypeArray:
		out := make([]any, len(v.list))
		for i, el := range v.list {
			out[i] = el.Native()
		}
		return out
	case TypeObject:
		out := make(map[string]any, v.obj.Len())
		for _, k := range v.obj.Keys() {
			el, _ := v.obj.Get(k)
			out[k] = el.Native()
		}
		return out
	default:
		return nil
	}
}
