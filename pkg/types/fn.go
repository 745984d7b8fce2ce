package types

// ModuleRef is the minimal view of an owning module that a Fn's bytecode
// needs at execution time: its two constant pools and its static-string
// table. It is an interface, not a direct `*module.Module` field, purely
// to avoid an import cycle — pkg/module needs Value (for globals) and so
// must not be imported back by pkg/types. *module.Module implements this.
type ModuleRef interface {
	ConstInt(idx int) int64
	ConstFloat(idx int) float64
	StaticStr(idx int) *Obj
}

// NativeFn is the Obj payload for the NativeFn kind: a Go-implemented
// builtin or native-module export, spec.md §3.
type NativeFn struct {
	Name   string
	Arity  uint8
	Target Value // receiver for method-style natives; Empty otherwise
	Func   func(argv []Value, target Value, ctx any) (Value, error)
}

func NewNativeFnObj(name string, arity uint8, fn func(argv []Value, target Value, ctx any) (Value, error)) *Obj {
	return newObj(KindNativeFn, &NativeFn{Name: name, Arity: arity, Func: fn})
}

// Fn is the Obj payload for the Fn kind: a compiled function body —
// spec.md §3's "name, arity, bytecode bytes, integer/float constant pools,
// per-opcode source-line table, back-pointer to owning Module."
type Fn struct {
	Name   string
	Arity  uint8
	// NumLocals is the count of local slots the body uses beyond
	// Locals[0] (the callee) and Locals[1..=Arity] (the arguments) — the
	// compiler's scope.Manager counts these while compiling the body
	// (scope.Manager.CurrentFnLocalCount, read before PopFn, minus the
	// callee slot and Arity) so the VM
	// knows how large to make each call's Frame.Locals.
	NumLocals int
	Code      []byte
	Lines     []int // Lines[i] is the source line of the opcode starting at Code[i], valid at opcode-start offsets only
	Module    ModuleRef
}

func NewFnObj(fn *Fn) *Obj { return newObj(KindFn, fn) }

// CaptureSpec is one entry of a MetaClosure's capture schema — spec.md §3's
// "array of {at: u8} entries", extended with FromEnclosingClosure to chain
// captures across more than one level of nesting. A directly nested
// ProcLit captures a local slot of its immediately enclosing frame
// (FromEnclosingClosure == false, At == that frame's local offset); a
// ProcLit nested two or more functions deep from the variable's home frame
// instead reads an already-captured OutValue off the *immediately
// enclosing* Closure instance (FromEnclosingClosure == true, At == that
// enclosing MetaClosure's own CapturedAt index) — the classic upvalue-chain
// construction, since the original home frame may no longer be live by the
// time the inner closure is created.
type CaptureSpec struct {
	FromEnclosingClosure bool
	At                   int
}

// MetaClosure is the immutable capture schema shared by every Closure
// instance created from the same ProcLit: the number of captured slots,
// which outer-frame local index (or enclosing-closure out-value) each one
// reads at creation, and the Fn body itself (spec.md §3).
type MetaClosure struct {
	CapturedAt []CaptureSpec
	Fn         *Fn
}

// Closure is the Obj payload for the Closure kind: a back-pointer to its
// MetaClosure plus this instance's captured OutValues.
type Closure struct {
	Meta *MetaClosure
	Outs []*OutValue
}

func NewClosureObj(meta *MetaClosure, outs []*OutValue) *Obj {
	return newObj(KindClosure, &Closure{Meta: meta, Outs: outs})
}

// OutValue is a captured local — spec.md §3. Per the spec's resolved Open
// Question (capture-by-value at closure creation, DESIGN.md §9), the
// captured value is copied eagerly when the Closure is constructed rather
// than deferred to frame pop; Linked/Prev/Next are carried for field
// parity with spec.md §3 and are never set. At/Value record which local
// was captured and its value at capture time.
type OutValue struct {
	Linked bool
	At     int
	Value  Value
	Prev   *OutValue
	Next   *OutValue
}

// ForeignLib is the Obj payload for the ForeignLib kind: an opaque handle
// to a platform-loaded native library (spec.md §3). No package in this
// repository constructs one.
type ForeignLib struct {
	Path   string
	Handle any // *plugin.Plugin
}

func NewForeignLibObj(path string, handle any) *Obj {
	return newObj(KindForeignLib, &ForeignLib{Path: path, Handle: handle})
}

// ForeignFn is the Obj payload for the ForeignFn kind: one export of a
// ForeignLib.
type ForeignFn struct {
	Name string
	Lib  *ForeignLib
	Func func(argv []Value) (Value, error)
}

func NewForeignFnObj(name string, lib *ForeignLib, fn func(argv []Value) (Value, error)) *Obj {
	return newObj(KindForeignFn, &ForeignFn{Name: name, Lib: lib, Func: fn})
}
