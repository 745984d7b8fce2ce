package module

import (
	"testing"

	"github.com/krizos/zs/pkg/types"
)

func TestDefineAndLookupGlobal(t *testing.T) {
	m := New("main", "/tmp/main.zs")
	m.DefineGlobal("PI", false, true)
	g, ok := m.Global("PI")
	if !ok {
		t.Fatal("expected PI to be defined")
	}
	if g.Mutable || !g.Public {
		t.Fatalf("got mutable=%v public=%v, want false,true", g.Mutable, g.Public)
	}
	if _, ok := m.Global("missing"); ok {
		t.Fatal("missing should not resolve")
	}
}

func TestConstPoolsDeduplicate(t *testing.T) {
	m := New("main", "/tmp/main.zs")
	a := m.InternConstInt(7)
	b := m.InternConstInt(7)
	c := m.InternConstInt(8)
	if a != b {
		t.Fatalf("expected same index for repeated literal 7, got %d vs %d", a, b)
	}
	if a == c {
		t.Fatal("expected a distinct index for a distinct literal")
	}
	if m.ConstInt(a) != 7 {
		t.Fatalf("got %d, want 7", m.ConstInt(a))
	}
}

func TestStaticStrInterning(t *testing.T) {
	m := New("main", "/tmp/main.zs")
	i1 := m.InternStaticStr("hello")
	i2 := m.InternStaticStr("hello")
	if i1 != i2 {
		t.Fatal("expected identical text to share one static-str slot")
	}
	if m.StaticStr(i1).AsStr().String() != "hello" {
		t.Fatal("StaticStr should round-trip the interned text")
	}
}

func TestCloneSharesSubModule(t *testing.T) {
	m := New("m", "/tmp/m.zs")
	m.DefineGlobal("X", true, true)

	clone := m.Clone("alias", "/tmp/m.zs")
	if clone.Original {
		t.Fatal("a clone must not be marked original")
	}
	if clone.Sub() != m.Sub() {
		t.Fatal("clone must share the same SubModule as the original")
	}

	m.MarkResolved()
	if !clone.IsResolved() {
		t.Fatal("resolving the original must be visible through the clone's shared submodule")
	}
}

func TestModuleAndNativeModuleObjRoundTrip(t *testing.T) {
	m := New("m", "/tmp/m.zs")
	mo := NewModuleObj(m)
	if AsModule(mo) != m {
		t.Fatal("AsModule should round-trip the same *Module")
	}

	nm := NewNativeModule("math")
	nativeFn := types.NewNativeFnObj("sqrt", 1, func(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
		return types.Empty, nil
	})
	nm.Bind("sqrt", nativeFn)
	nmo := NewNativeModuleObj(nm)
	if AsNativeModule(nmo) != nm {
		t.Fatal("AsNativeModule should round-trip the same *NativeModule")
	}
	if _, ok := AsNativeModule(nmo).Lookup("sqrt"); !ok {
		t.Fatal("expected sqrt to be bound")
	}
}

func TestAsModulePanicsOnWrongKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected AsModule to panic on a non-Module obj")
		}
	}()
	AsModule(types.NewStrObj("not a module"))
}
