package types

import "fmt"

// Array is the Obj payload for the Array kind: a fixed-length, contiguous
// Value slice (spec.md §3). Unlike List, Array never grows after creation.
type Array struct {
	Elems []Value
}

// NewArrayObj creates a fixed-length Array obj of size n, all slots Empty.
func NewArrayObj(n int) *Obj {
	return newObj(KindArray, &Array{Elems: make([]Value, n)})
}

// NewArrayObjFrom creates an Array obj whose length and contents are
// copied from elems.
func NewArrayObjFrom(elems []Value) *Obj {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return newObj(KindArray, &Array{Elems: cp})
}

func (a *Array) Len() int { return len(a.Elems) }

func (a *Array) Get(i int) (Value, error) {
	if i < 0 || i >= len(a.Elems) {
		return Empty, fmt.Errorf("array index %d out of range [0,%d)", i, len(a.Elems))
	}
	return a.Elems[i], nil
}

func (a *Array) Set(i int, v Value) error {
	if i < 0 || i >= len(a.Elems) {
		return fmt.Errorf("array index %d out of range [0,%d)", i, len(a.Elems))
	}
	a.Elems[i] = v
	return nil
}
