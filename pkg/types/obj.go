package types

import "fmt"

// Kind identifies an Obj's payload type — grounded on
// original_source/include/obj.h's obj_type enum, extended with ForeignFn/
// ForeignLib for the native-module ABI (spec.md §3).
type Kind uint8

const (
	KindStr Kind = iota
	KindArray
	KindList
	KindDict
	KindRecord
	KindNativeFn
	KindFn
	KindClosure
	KindNativeModule
	KindModule
	KindForeignFn
	KindForeignLib
)

var kindNames = [...]string{
	"Str", "Array", "List", "Dict", "Record", "NativeFn", "Fn", "Closure",
	"NativeModule", "Module", "ForeignFn", "ForeignLib",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Obj is the heap-allocated object header shared by every reference kind.
// Marked and Prev/Next are the GC's intrusive mark bit and owning-list
// links (original_source/include/obj.h: `marked`, `prev`, `next`); Payload
// holds the kind-specific data as `any` rather than a raw union, reached
// through the As* accessors below so callers never switch on the payload's
// concrete type directly.
type Obj struct {
	Kind    Kind
	Marked  bool
	Prev    *Obj
	Next    *Obj
	Payload any
}

func newObj(k Kind, payload any) *Obj {
	return &Obj{Kind: k, Payload: payload}
}

func (o *Obj) mustBe(k Kind) {
	if o.Kind != k {
		panic(fmt.Sprintf("types: expected %s obj, got %s", k, o.Kind))
	}
}

func (o *Obj) AsStr() *Str {
	o.mustBe(KindStr)
	return o.Payload.(*Str)
}

func (o *Obj) AsArray() *Array {
	o.mustBe(KindArray)
	return o.Payload.(*Array)
}

func (o *Obj) AsList() *List {
	o.mustBe(KindList)
	return o.Payload.(*List)
}

func (o *Obj) AsDict() *Dict {
	o.mustBe(KindDict)
	return o.Payload.(*Dict)
}

func (o *Obj) AsRecord() *Record {
	o.mustBe(KindRecord)
	return o.Payload.(*Record)
}

func (o *Obj) AsNativeFn() *NativeFn {
	o.mustBe(KindNativeFn)
	return o.Payload.(*NativeFn)
}

func (o *Obj) AsFn() *Fn {
	o.mustBe(KindFn)
	return o.Payload.(*Fn)
}

func (o *Obj) AsClosure() *Closure {
	o.mustBe(KindClosure)
	return o.Payload.(*Closure)
}

func (o *Obj) AsForeignFn() *ForeignFn {
	o.mustBe(KindForeignFn)
	return o.Payload.(*ForeignFn)
}

func (o *Obj) AsForeignLib() *ForeignLib {
	o.mustBe(KindForeignLib)
	return o.Payload.(*ForeignLib)
}

// AsNativeModule and AsModule are intentionally absent: pkg/module owns
// those payload types and provides its own accessors, to avoid an import
// cycle (pkg/module needs Value for globals; pkg/types must not need
// pkg/module back).

// NewKindedObj builds an Obj for a Kind whose payload type lives outside
// this package — currently KindModule and KindNativeModule, both owned by
// pkg/module. Every other Kind has its own typed New*Obj constructor in
// this package; use those instead where one exists.
func NewKindedObj(k Kind, payload any) *Obj {
	return newObj(k, payload)
}

func (o *Obj) String() string {
	switch o.Kind {
	case KindStr:
		return o.AsStr().String()
	case KindArray:
		return fmt.Sprintf("array(%d)", len(o.AsArray().Elems))
	case KindList:
		return fmt.Sprintf("list(%d)", len(o.AsList().Elems))
	case KindDict:
		return fmt.Sprintf("dict(%d)", o.AsDict().Len())
	case KindRecord:
		return fmt.Sprintf("record(%d)", len(o.AsRecord().Fields))
	case KindFn:
		return fmt.Sprintf("fn %s/%d", o.AsFn().Name, o.AsFn().Arity)
	case KindNativeFn:
		return fmt.Sprintf("native fn %s/%d", o.AsNativeFn().Name, o.AsNativeFn().Arity)
	case KindClosure:
		return fmt.Sprintf("closure %s", o.AsClosure().Meta.Fn.Name)
	default:
		return o.Kind.String()
	}
}
