// Package value implements the dynamic document node: a single tree type that can be
// null, boolean, integer, float, string, array or object.
//
// Arrays and objects share one ordered entry list. For arrays the entry keys are always
// empty and indexing is positional; for objects keys are kept in insertion order and may
// repeat, lookups return the first match.
//
// Mutating accessors (Index, Key, Push, Resize, ...) promote the receiver to the container
// type they need, discarding whatever it held before. Read-only accessors (At, Get, Find)
// never change the receiver.
package value

import (
	"strconv"
)

// Type is the kind of payload a Value holds
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeArray
	TypeObject
)

// String returns the type name
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Entry is one element of an array or object. Key is empty for array elements.
type Entry struct {
	Key   string
	Value *Value
}

// Value is a document node. The zero Value is null.
//
// Every node owns its children exclusively: values handed to Push, Insert, Set and
// Assign are copied, never shared.
type Value struct {
	typ   Type
	b     bool
	i     int32
	f     float32
	s     string
	nodes []Entry
}

// New creates a value of the given type holding that type's zero payload
func New(t Type) *Value {
	return (&Value{}).SetType(t)
}

// Null creates a null value
func Null() *Value {
	return &Value{}
}

// Bool creates a boolean value
func Bool(b bool) *Value {
	return (&Value{}).SetBool(b)
}

// Int creates an integer value
func Int(i int32) *Value {
	return (&Value{}).SetInt(i)
}

// Uint creates an integer value from an unsigned one, stored as signed
func Uint(u uint32) *Value {
	return (&Value{}).SetUint(u)
}

// Float creates a float value
func Float(f float32) *Value {
	return (&Value{}).SetFloat(f)
}

// String creates a string value
func String(s string) *Value {
	return (&Value{}).SetString(s)
}

// Array creates an array holding copies of items
func Array(items ...*Value) *Value {
	return (&Value{}).SetArray(items...)
}

// Object creates an object from entries. Like Set, a repeated key overwrites the
// earlier entry.
func Object(entries ...Entry) *Value {
	return (&Value{}).SetObject(entries...)
}

// Type returns the payload type. A nil Value reports TypeNull.
func (v *Value) Type() Type {
	if v == nil {
		return TypeNull
	}
	return v.typ
}

func (v *Value) IsNull() bool    { return v.Type() == TypeNull }
func (v *Value) IsBool() bool    { return v.Type() == TypeBool }
func (v *Value) IsInt() bool     { return v.Type() == TypeInt }
func (v *Value) IsFloat() bool   { return v.Type() == TypeFloat }
func (v *Value) IsNumeric() bool { return v.IsInt() || v.IsFloat() }
func (v *Value) IsString() bool  { return v.Type() == TypeString }
func (v *Value) IsArray() bool   { return v.Type() == TypeArray }
func (v *Value) IsObject() bool  { return v.Type() == TypeObject }

// IsContainer reports whether the value is an array or an object
func (v *Value) IsContainer() bool {
	return v.IsArray() || v.IsObject()
}

// SetType switches the value to t. When t differs from the current type the old payload
// is dropped and the zero payload of t takes its place; otherwise nothing changes.
func (v *Value) SetType(t Type) *Value {
	if v.typ == t {
		return v
	}
	*v = Value{typ: t}
	return v
}

// SetNull turns the value into null
func (v *Value) SetNull() *Value {
	return v.SetType(TypeNull)
}

// SetBool turns the value into the boolean b
func (v *Value) SetBool(b bool) *Value {
	v.SetType(TypeBool).b = b
	return v
}

// SetInt turns the value into the integer i
func (v *Value) SetInt(i int32) *Value {
	v.SetType(TypeInt).i = i
	return v
}

// SetUint turns the value into an integer holding u reinterpreted as signed
func (v *Value) SetUint(u uint32) *Value {
	return v.SetInt(int32(u))
}

// SetFloat turns the value into the float f
func (v *Value) SetFloat(f float32) *Value {
	v.SetType(TypeFloat).f = f
	return v
}

// SetString turns the value into the string s
func (v *Value) SetString(s string) *Value {
	v.SetType(TypeString).s = s
	return v
}

// SetArray turns the value into an array holding copies of items
func (v *Value) SetArray(items ...*Value) *Value {
	v.SetType(TypeArray).Clear()
	for _, item := range items {
		v.Push(item)
	}
	return v
}

// SetObject turns the value into an object built by calling Set for every entry
func (v *Value) SetObject(entries ...Entry) *Value {
	v.SetType(TypeObject).Clear()
	for _, e := range entries {
		v.Set(e.Key, e.Value)
	}
	return v
}

// Clone returns a deep copy of the value
func (v *Value) Clone() *Value {
	if v == nil {
		return Null()
	}
	c := &Value{typ: v.typ, b: v.b, i: v.i, f: v.f, s: v.s}
	if v.nodes != nil {
		c.nodes = make([]Entry, len(v.nodes))
		for n, e := range v.nodes {
			c.nodes[n] = Entry{Key: e.Key, Value: e.Value.Clone()}
		}
	}
	return c
}

// Assign replaces the receiver's contents with a deep copy of other
func (v *Value) Assign(other *Value) *Value {
	if other == v {
		return v
	}
	*v = *other.Clone()
	return v
}

// MoveFrom transfers other's payload into the receiver and leaves other null.
// When the receiver lies inside other, it receives a copy of other so the tree
// never ends up containing itself.
func (v *Value) MoveFrom(other *Value) *Value {
	if other == nil {
		return v.SetNull()
	}
	if other == v {
		return v
	}
	if other.contains(v) {
		*v = *other.Clone()
	} else {
		*v = *other
	}
	*other = Value{}
	return v
}

// contains reports whether target is a strict descendant of v
func (v *Value) contains(target *Value) bool {
	for _, e := range v.nodes {
		if e.Value == target || e.Value.contains(target) {
			return true
		}
	}
	return false
}

// AsBool coerces the value to a boolean. Only null, booleans and numbers convert;
// everything else is false.
func (v *Value) AsBool() bool {
	switch v.Type() {
	case TypeBool:
		return v.b
	case TypeInt:
		return v.i != 0
	case TypeFloat:
		return v.f != 0
	}
	return false
}

// AsInt coerces the value to an integer. Floats are truncated toward zero, booleans
// give 0 or 1, everything else besides integers is 0.
func (v *Value) AsInt() int32 {
	switch v.Type() {
	case TypeBool:
		if v.b {
			return 1
		}
	case TypeInt:
		return v.i
	case TypeFloat:
		return int32(v.f)
	}
	return 0
}

// AsFloat coerces the value to a float following the same rules as AsInt
func (v *Value) AsFloat() float32 {
	switch v.Type() {
	case TypeBool:
		if v.b {
			return 1
		}
	case TypeInt:
		return float32(v.i)
	case TypeFloat:
		return v.f
	}
	return 0
}

// AsString coerces the value to text. Null gives "null", floats use six fixed
// decimals, arrays and objects give "".
func (v *Value) AsString() string {
	switch v.Type() {
	case TypeNull:
		return "null"
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeInt:
		return strconv.FormatInt(int64(v.i), 10)
	case TypeFloat:
		return FormatFloat(v.f)
	case TypeString:
		return v.s
	}
	return ""
}

// FormatFloat renders f with six fixed decimals, the text form used for floats everywhere
func FormatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', 6, 32)
}

// Len returns the number of elements of an array or entries of an object, 0 otherwise
func (v *Value) Len() int {
	if !v.IsContainer() {
		return 0
	}
	return len(v.nodes)
}

// Clear removes all elements of an array or object and leaves other values untouched
func (v *Value) Clear() *Value {
	if v.IsContainer() {
		v.nodes = nil
	}
	return v
}

// Equal reports whether both values have the same type and the same contents, entry
// order and keys included.
func (v *Value) Equal(other *Value) bool {
	if v.Type() != other.Type() {
		return false
	}
	switch v.Type() {
	case TypeNull:
		return true
	case TypeBool:
		return v.b == other.b
	case TypeInt:
		return v.i == other.i
	case TypeFloat:
		return v.f == other.f
	case TypeString:
		return v.s == other.s
	}
	if len(v.nodes) != len(other.nodes) {
		return false
	}
	for n := range v.nodes {
		if v.nodes[n].Key != other.nodes[n].Key || !v.nodes[n].Value.Equal(other.nodes[n].Value) {
			return false
		}
	}
	return true
}
