package types

import "testing"

func TestArrayFixedLengthGetSet(t *testing.T) {
	o := NewArrayObj(3)
	arr := o.AsArray()
	if arr.Len() != 3 {
		t.Fatalf("got len %d, want 3", arr.Len())
	}
	if err := arr.Set(1, NewInt(9)); err != nil {
		t.Fatalf("Set(1, 9): %v", err)
	}
	v, err := arr.Get(1)
	if err != nil || v.AsInt() != 9 {
		t.Fatalf("got %v, %v", v, err)
	}
	if _, err := arr.Get(3); err == nil {
		t.Fatal("Get(3) on a len-3 array should error")
	}
	if err := arr.Set(-1, Empty); err == nil {
		t.Fatal("Set(-1, ...) should error")
	}
}

func TestListGrows(t *testing.T) {
	o := NewListObj(nil)
	l := o.AsList()
	if l.Len() != 0 {
		t.Fatalf("got len %d, want 0", l.Len())
	}
	l.Push(NewInt(1))
	l.Push(NewInt(2))
	if l.Len() != 2 {
		t.Fatalf("got len %d, want 2", l.Len())
	}
	v, err := l.Pop()
	if err != nil || v.AsInt() != 2 {
		t.Fatalf("got %v, %v", v, err)
	}
	if l.Len() != 1 {
		t.Fatalf("got len %d, want 1", l.Len())
	}
	if _, err := NewListObj(nil).AsList().Pop(); err == nil {
		t.Fatal("Pop of an empty list should error")
	}
}

func TestNewArrayObjFromCopiesNotAliases(t *testing.T) {
	src := []Value{NewInt(1), NewInt(2)}
	o := NewArrayObjFrom(src)
	src[0] = NewInt(99)
	if v, _ := o.AsArray().Get(0); v.AsInt() != 1 {
		t.Fatal("NewArrayObjFrom should copy, not alias, the source slice")
	}
}
