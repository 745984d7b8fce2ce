// Package natives implements the catalog of built-in native modules spec.md
// §1 deliberately specifies only by interface contract ("io, math, os,
// time, random, etc. — only the interface contract native modules must
// satisfy is specified"). Each module is a *module.NativeModule: a name
// plus a string→NativeFn symbol table (spec.md §3), built once per VM
// and wired into a compiled module's globals exactly like a compiled
// import (spec.md §4.10: "Native modules register themselves into a root
// scope before compilation and expose their symbols as module globals at
// VM startup").
//
// Grounded on original_source/include/native_io.h, native_math.h,
// native_os.h, native_time.h, native_random.h for each module's symbol
// catalog; `hash` is an EXPANSION beyond the distilled spec, built on
// golang.org/x/crypto/blake2b (the same x/crypto dependency the retrieval
// pack's ymm135-go carries) — a scripting runtime's native catalog reaching
// for a content-hash primitive is exactly the kind of domain dependency
// this exercise is meant to wire in.
package natives

import (
	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
	"github.com/krizos/zs/pkg/vm"
)

// Registry owns every native module built for one VM instance plus the
// bare (receiver-less) natives resolved through OP_NGET — spec.md §4.6's
// NGET opcode and §4.10's "module members via global symbols" split.
type Registry struct {
	moduleNames []string
	moduleVals  map[string]types.Value
	bareNames   []string
}

// moduleBuilders lists every native module in registration order, so
// repeated compiles against the same VM see identical symbol assignment.
var moduleBuilders = []struct {
	name  string
	build func(*vm.VM) *module.NativeModule
}{
	{"io", buildIO},
	{"math", buildMath},
	{"os", buildOS},
	{"time", buildTime},
	{"random", buildRandom},
	{"hash", buildHash},
}

// New builds every native module (bound to v for heap-tracked allocation
// and Stdout/Stderr/Args access), binds the bare top-level natives (print,
// exit) directly onto v, and returns a Registry ready to Wire into any
// Module compiled against this VM. Call once per VM, before compiling any
// source that references these names.
func New(v *vm.VM) *Registry {
	r := &Registry{moduleVals: make(map[string]types.Value)}
	for _, b := range moduleBuilders {
		nm := b.build(v)
		obj := v.Track(module.NewNativeModuleObj(nm))
		r.moduleNames = append(r.moduleNames, b.name)
		r.moduleVals[b.name] = types.NewObj(obj)
	}
	r.bareNames = bindBareNatives(v)
	return r
}

// ModuleNames returns every native module's name — feed directly into
// compiler.Options.Globals.
func (r *Registry) ModuleNames() []string { return append([]string(nil), r.moduleNames...) }

// BareNames returns every bare native function's name — feed into
// compiler.Options.NativeFns.
func (r *Registry) BareNames() []string { return append([]string(nil), r.bareNames...) }

// Wire populates mod's pre-declared native-module globals (spec.md §4.10)
// with the NativeModule values this Registry built. Call once per compiled
// Module (root and every import) right after compiler.Compile returns,
// before Run.
func (r *Registry) Wire(mod *module.Module) {
	for name, val := range r.moduleVals {
		if g, ok := mod.Global(name); ok {
			g.Value = val
		}
	}
}

// nf is a small constructor helper every module file in this package uses to build one
// NativeModule symbol, tracking the NativeFn Obj on v's heap.
func nf(v *vm.VM, nm *module.NativeModule, name string, arity uint8, fn func(argv []types.Value, target types.Value, ctx any) (types.Value, error)) {
	obj := v.Track(types.NewNativeFnObj(name, arity, fn))
	nm.Bind(name, obj)
}
