// Package types implements the VM's value system: the tagged Value union,
// the heap-allocated Obj header and its per-kind payloads, and the
// per-module string interning table.
//
// Values are passed by copy; everything heap-allocated goes through Obj,
// whose payload is reached through the typed accessors in this file and in
// obj.go rather than by pattern-matching a raw layout — grounded on
// original_source/include/value.h's `union{bool,ivalue,fvalue,obj}` content
// and spec.md §4.2's "the interpreter never pattern-matches raw layouts"
// rule.
package types

import (
	"fmt"
	"math"
	"unsafe"
)

// Tag identifies which field of a Value is live.
type Tag uint8

const (
	TagEmpty Tag = iota
	TagBool
	TagInt
	TagFloat
	TagObj
)

func (t Tag) String() string {
	switch t {
	case TagEmpty:
		return "Empty"
	case TagBool:
		return "Bool"
	case TagInt:
		return "Int"
	case TagFloat:
		return "Float"
	case TagObj:
		return "Obj"
	default:
		return fmt.Sprintf("Tag(%d)", t)
	}
}

// Value is the VM's tagged union: Empty, Bool, Int, Float, or a reference
// to a heap Obj. Go has no real union, so the payload is modeled as
// separate fields rather than the single 8-byte `content` of
// original_source/include/value.h; only the field matching Tag is
// meaningful.
type Value struct {
	tag Tag
	b   bool
	i   int64
	f   float64
	o   *Obj
}

// Empty is the zero Value — uninitialized locals and void returns.
var Empty = Value{tag: TagEmpty}

func NewBool(b bool) Value    { return Value{tag: TagBool, b: b} }
func NewInt(i int64) Value    { return Value{tag: TagInt, i: i} }
func NewFloat(f float64) Value { return Value{tag: TagFloat, f: f} }
func NewObj(o *Obj) Value     { return Value{tag: TagObj, o: o} }

func (v Value) Tag() Tag { return v.tag }

func (v Value) IsEmpty() bool { return v.tag == TagEmpty }
func (v Value) IsBool() bool  { return v.tag == TagBool }
func (v Value) IsInt() bool   { return v.tag == TagInt }
func (v Value) IsFloat() bool { return v.tag == TagFloat }
func (v Value) IsObj() bool   { return v.tag == TagObj }

// IsNumeric reports whether v is an Int or Float.
func (v Value) IsNumeric() bool { return v.tag == TagInt || v.tag == TagFloat }

// IsObjKind reports whether v is an Obj of the given Kind.
func (v Value) IsObjKind(k Kind) bool { return v.tag == TagObj && v.o.Kind == k }

// AsBool panics if v is not a Bool.
func (v Value) AsBool() bool {
	if v.tag != TagBool {
		panic(fmt.Sprintf("types: AsBool on %s value", v.tag))
	}
	return v.b
}

// AsInt panics if v is not an Int.
func (v Value) AsInt() int64 {
	if v.tag != TagInt {
		panic(fmt.Sprintf("types: AsInt on %s value", v.tag))
	}
	return v.i
}

// AsFloat panics if v is not a Float.
func (v Value) AsFloat() float64 {
	if v.tag != TagFloat {
		panic(fmt.Sprintf("types: AsFloat on %s value", v.tag))
	}
	return v.f
}

// AsObj panics if v is not an Obj.
func (v Value) AsObj() *Obj {
	if v.tag != TagObj {
		panic(fmt.Sprintf("types: AsObj on %s value", v.tag))
	}
	return v.o
}

// Truthy applies the VM's boolean-coercion rule: Empty and zero-valued
// Bool/Int/Float are false, Str/Array/List/Dict are false when empty, every
// other Obj kind is true.
func (v Value) Truthy() bool {
	switch v.tag {
	case TagEmpty:
		return false
	case TagBool:
		return v.b
	case TagInt:
		return v.i != 0
	case TagFloat:
		return v.f != 0
	case TagObj:
		switch v.o.Kind {
		case KindStr:
			return v.o.AsStr().Len() > 0
		case KindArray:
			return len(v.o.AsArray().Elems) > 0
		case KindList:
			return len(v.o.AsList().Elems) > 0
		case KindDict:
			return v.o.AsDict().Len() > 0
		default:
			return true
		}
	default:
		return false
	}
}

// Hash implements spec.md §4.2's Value hashing rule: primitives hash their
// raw bytes, Str reuses its precomputed hash, every other Obj kind hashes
// its heap identity.
func (v Value) Hash() uint64 {
	switch v.tag {
	case TagEmpty:
		return 0
	case TagBool:
		if v.b {
			return 1
		}
		return 0
	case TagInt:
		return uint64(v.i)
	case TagFloat:
		return math.Float64bits(v.f)
	case TagObj:
		if v.o.Kind == KindStr {
			return v.o.AsStr().Hash
		}
		// Heap-address identity hash for non-string Obj kinds: safe
		// because this mark-sweep collector never relocates objects.
		return uint64(uintptr(unsafe.Pointer(v.o)))
	default:
		return 0
	}
}

// Equal implements spec.md §4.2's Value equality rule: same-kind
// primitives compare by value, interned strings compare by identity
// within a module (falling back to byte equality across modules), and
// every other Obj kind compares by identity.
func (v Value) Equal(other Value) bool {
	if v.tag != other.tag {
		return false
	}
	switch v.tag {
	case TagEmpty:
		return true
	case TagBool:
		return v.b == other.b
	case TagInt:
		return v.i == other.i
	case TagFloat:
		return v.f == other.f
	case TagObj:
		if v.o == other.o {
			return true
		}
		if v.o.Kind == KindStr && other.o.Kind == KindStr {
			return v.o.AsStr().Equal(other.o.AsStr())
		}
		return false
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.tag {
	case TagEmpty:
		return "empty"
	case TagBool:
		if v.b {
			return "true"
		}
		return "false"
	case TagInt:
		return fmt.Sprintf("%d", v.i)
	case TagFloat:
		// spec's printing rule formats floats to 8 fractional digits
		// (scenario: PI = 3.14 prints as "3.14000000").
		return fmt.Sprintf("%.8f", v.f)
	case TagObj:
		return v.o.String()
	default:
		return "?"
	}
}
