package types

import "testing"

func TestValueConstructorsAndPredicates(t *testing.T) {
	if !Empty.IsEmpty() {
		t.Error("Empty.IsEmpty() should be true")
	}
	if v := NewBool(true); !v.IsBool() || !v.AsBool() {
		t.Error("NewBool(true) should be a true Bool")
	}
	if v := NewInt(42); !v.IsInt() || v.AsInt() != 42 {
		t.Errorf("NewInt(42) got %v", v)
	}
	if v := NewFloat(3.5); !v.IsFloat() || v.AsFloat() != 3.5 {
		t.Errorf("NewFloat(3.5) got %v", v)
	}
	obj := NewStrObj("hi")
	if v := NewObj(obj); !v.IsObj() || v.AsObj() != obj {
		t.Errorf("NewObj got %v", v)
	}
}

func TestValueAsPanicsOnWrongTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on AsInt() of a Bool value")
		}
	}()
	NewBool(true).AsInt()
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Empty, false},
		{NewBool(false), false},
		{NewBool(true), true},
		{NewInt(0), false},
		{NewInt(1), true},
		{NewFloat(0), false},
		{NewObj(NewStrObj("")), false},
		{NewObj(NewStrObj("x")), true},
		{NewObj(NewArrayObj(0)), false},
		{NewObj(NewArrayObj(1)), true},
		{NewObj(NewListObj(nil)), false},
		{NewObj(NewRecordObj(nil)), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%v.Truthy() = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestEqualPrimitives(t *testing.T) {
	if !NewInt(5).Equal(NewInt(5)) {
		t.Error("5 == 5 should be true")
	}
	if NewInt(5).Equal(NewFloat(5)) {
		t.Error("Int(5) == Float(5) should be false: different tags")
	}
	if NewInt(5).Equal(NewInt(6)) {
		t.Error("5 == 6 should be false")
	}
}

func TestEqualStringsByInterning(t *testing.T) {
	tbl := NewStringTable()
	a := tbl.Get(tbl.Intern("hello"))
	b := tbl.Get(tbl.Intern("hello"))
	if a != b {
		t.Fatal("interning the same text twice should return the same Obj")
	}
	if !NewObj(a).Equal(NewObj(b)) {
		t.Error("interned strings with equal text should compare equal")
	}

	runtime := NewStrObj("hello")
	if runtime == a {
		t.Fatal("a freshly built runtime string must not alias the interned one")
	}
	if !NewObj(runtime).Equal(NewObj(a)) {
		t.Error("runtime and interned strings with equal bytes should still compare equal")
	}
}

func TestEqualOtherObjKindsByIdentity(t *testing.T) {
	a := NewArrayObj(1)
	b := NewArrayObj(1)
	if NewObj(a).Equal(NewObj(b)) {
		t.Error("two distinct Array objs should not compare equal")
	}
	if !NewObj(a).Equal(NewObj(a)) {
		t.Error("an Array obj should compare equal to itself")
	}
}

func TestHashPrimitivesAndStrings(t *testing.T) {
	if NewInt(7).Hash() != NewInt(7).Hash() {
		t.Error("hash of equal ints should match")
	}
	tbl := NewStringTable()
	s := tbl.Get(tbl.Intern("k"))
	if NewObj(s).Hash() != s.AsStr().Hash {
		t.Error("Value.Hash() of a Str obj should reuse the precomputed Str hash")
	}
}
