package natives

import (
	"testing"

	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
	"github.com/krizos/zs/pkg/vm"
)

func newTestVM() *vm.VM {
	v := vm.New(nil)
	v.Args = []string{"a", "b"}
	return v
}

func TestRegistryBuildsEveryModule(t *testing.T) {
	v := newTestVM()
	reg := New(v)

	want := []string{"io", "math", "os", "time", "random", "hash"}
	got := reg.ModuleNames()
	if len(got) != len(want) {
		t.Fatalf("got %d module names, want %d: %v", len(got), len(want), got)
	}
	for i, name := range want {
		if got[i] != name {
			t.Fatalf("module[%d] = %q, want %q", i, got[i], name)
		}
	}

	if bare := reg.BareNames(); len(bare) != 2 {
		t.Fatalf("got %d bare names, want 2: %v", len(bare), bare)
	}
}

func TestWirePopulatesDeclaredGlobal(t *testing.T) {
	v := newTestVM()
	reg := New(v)

	mod := module.New("m", "m.zs")
	for _, name := range reg.ModuleNames() {
		mod.DefineGlobal(name, false, false)
	}
	reg.Wire(mod)

	g, ok := mod.Global("math")
	if !ok {
		t.Fatal("math global not declared")
	}
	if !g.Value.IsObjKind(types.KindNativeModule) {
		t.Fatalf("math global is %s, want a NativeModule Obj", g.Value.Tag())
	}
}

func TestMathPiReturnsFloat(t *testing.T) {
	v := newTestVM()
	reg := New(v)
	mod := module.New("m", "m.zs")
	mod.DefineGlobal("math", false, false)
	reg.Wire(mod)

	g, _ := mod.Global("math")
	nm := module.AsNativeModule(g.Value.AsObj())

	piFn, ok := nm.Lookup("pi")
	if !ok {
		t.Fatal("math.pi not bound")
	}
	result, err := piFn.AsNativeFn().Func(nil, types.Empty, v)
	if err != nil {
		t.Fatalf("math.pi(): %v", err)
	}
	if !result.IsFloat() {
		t.Fatalf("math.pi() = %s, want a Float", result.Tag())
	}
}
