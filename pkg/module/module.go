// Package module implements the compiled-module model spec.md §4.3
// describes: a Module (name, pathname, entry point) wrapping a SubModule
// (the mutable content — globals, static strings, symbol table), with
// shadow-clone sharing when one source is imported under two aliases.
//
// Grounded field-for-field on original_source/include/module.h
// (`Module{original, name, pathname, submodule, allocator}`,
// `SubModule{resolved, symbols, tries, globals, static_strs}`). This
// package provides its own Obj accessors for KindModule/KindNativeModule
// rather than adding them to pkg/types, because pkg/types must not import
// pkg/module back (pkg/types.Fn.Module only needs the narrow ModuleRef
// interface, implemented by *Module below).
package module

import "github.com/krizos/zs/pkg/types"

// SymbolTag identifies what a SubModule symbol-table entry holds —
// original_source/include/module.h's SubModuleSymbolType enum.
type SymbolTag uint8

const (
	SymFn SymbolTag = iota
	SymClosure
	SymNativeModule
	SymModule
)

// Symbol is one entry of a SubModule's symbol array, addressed by the
// 32-bit index OP_SGET embeds. Value holds the referenced Obj for every
// tag except SymClosure, whose Meta instead holds the immutable capture
// schema: SGET of a SymClosure symbol must allocate a brand new Closure
// object per evaluation (capturing the *current* value of each outer
// local), so there is no single shared Obj to point Value at.
type Symbol struct {
	Tag   SymbolTag
	Value *types.Obj
	Meta  *types.MetaClosure
}

// GlobalValue is one slot of a SubModule's global table: the value plus
// enough bookkeeping to enforce mutability and the "declared once" rule.
type GlobalValue struct {
	Value    types.Value
	Mutable  bool
	Public   bool
	Declared bool
}

// SubModule is the mutable content shared by every clone of a Module that
// wraps the same compiled source — spec.md §4.3: "clone destruction must
// not double-free the shared submodule." In Go there is nothing to double-
// free, but the sharing itself (two Module headers, one SubModule) is
// still the mechanism that makes `import "./m.zs" as a; import "./m.zs" as
// b;` observe the same globals and run top-level code once.
type SubModule struct {
	Resolved   bool
	Symbols    []Symbol
	Globals    map[string]*GlobalValue
	StaticStrs *types.StringTable
	ConstInts  []int64
	ConstFlts  []float64
}

func newSubModule() *SubModule {
	return &SubModule{
		Globals:    make(map[string]*GlobalValue),
		StaticStrs: types.NewStringTable(),
	}
}

// Module is a named, addressable compiled unit. Module.original marks the
// module that actually owns compilation output (vs. a shadow clone, which
// shares the same SubModule under a different name/pathname).
type Module struct {
	Name      string
	Pathname  string
	Original  bool
	Entry     *types.Obj // KindFn: the module's top-level function
	submodule *SubModule
}

// New creates a fresh, original module for pathname.
func New(name, pathname string) *Module {
	return &Module{Name: name, Pathname: pathname, Original: true, submodule: newSubModule()}
}

// Clone returns a shadow clone of m under a new name/pathname, sharing m's
// SubModule — spec.md §4.3's "module may be shadow-cloned" rule, used when
// the same source is imported under two different aliases.
func (m *Module) Clone(name, pathname string) *Module {
	return &Module{Name: name, Pathname: pathname, Original: false, Entry: m.Entry, submodule: m.submodule}
}

func (m *Module) Sub() *SubModule { return m.submodule }

// AddSymbol appends a symbol and returns its index for OP_SGET.
func (m *Module) AddSymbol(tag SymbolTag, value *types.Obj) int {
	m.submodule.Symbols = append(m.submodule.Symbols, Symbol{Tag: tag, Value: value})
	return len(m.submodule.Symbols) - 1
}

// AddClosureSymbol appends a SymClosure entry holding a capture schema
// rather than a ready-made Obj — see Symbol's doc comment.
func (m *Module) AddClosureSymbol(meta *types.MetaClosure) int {
	m.submodule.Symbols = append(m.submodule.Symbols, Symbol{Tag: SymClosure, Meta: meta})
	return len(m.submodule.Symbols) - 1
}

func (m *Module) Symbol(idx int) Symbol { return m.submodule.Symbols[idx] }

// SetSymbolFn backfills a symbol reserved by AddSymbol(SymFn, nil) once its
// body has finished compiling — named ProcDecls reserve their slot before
// compiling the body so a recursive call can resolve the name, then fill
// it in here once the Fn value exists.
func (m *Module) SetSymbolFn(idx int, fnObj *types.Obj) {
	m.submodule.Symbols[idx] = Symbol{Tag: SymFn, Value: fnObj}
}

// SetSymbolClosure upgrades a reserved symbol slot to SymClosure once the
// compiler discovers (at the end of the body) that it captured outer
// locals — see Symbol's doc comment.
func (m *Module) SetSymbolClosure(idx int, meta *types.MetaClosure) {
	m.submodule.Symbols[idx] = Symbol{Tag: SymClosure, Meta: meta}
}

// DefineGlobal declares a new named global slot — OP_GDEF. Declaring the
// same name twice is a compile-time error the caller (pkg/compiler) checks
// for before calling this; DefineGlobal itself just overwrites, matching
// the "last write wins during compile" shape of the C submodule->globals
// hash table.
func (m *Module) DefineGlobal(name string, mutable, public bool) {
	m.submodule.Globals[name] = &GlobalValue{Mutable: mutable, Public: public, Declared: true}
}

func (m *Module) Global(name string) (*GlobalValue, bool) {
	g, ok := m.submodule.Globals[name]
	return g, ok
}

// InternConstInt/InternConstFloat add a literal to the constant pool,
// deduplicating so `INT`/`FLOAT` opcodes emitted for the same literal
// value reuse one pool slot — spec.md §4.3's "parallel pools ... addressed
// by 16-bit index."
func (m *Module) InternConstInt(v int64) int {
	for i, existing := range m.submodule.ConstInts {
		if existing == v {
			return i
		}
	}
	m.submodule.ConstInts = append(m.submodule.ConstInts, v)
	return len(m.submodule.ConstInts) - 1
}

func (m *Module) InternConstFloat(v float64) int {
	for i, existing := range m.submodule.ConstFlts {
		if existing == v {
			return i
		}
	}
	m.submodule.ConstFlts = append(m.submodule.ConstFlts, v)
	return len(m.submodule.ConstFlts) - 1
}

// InternStaticStr interns a literal string into this module's static
// string table, returning its index for the STRING opcode.
func (m *Module) InternStaticStr(s string) int {
	return m.submodule.StaticStrs.Intern(s)
}

// The three methods below implement types.ModuleRef, the narrow interface
// pkg/types.Fn.Module is typed as (pkg/types cannot import pkg/module).

func (m *Module) ConstInt(idx int) int64 { return m.submodule.ConstInts[idx] }

func (m *Module) ConstFloat(idx int) float64 { return m.submodule.ConstFlts[idx] }

func (m *Module) StaticStr(idx int) *types.Obj { return m.submodule.StaticStrs.Get(idx) }

// MarkResolved flips SubModule.Resolved, after which the VM must not
// re-execute this module's top-level code — spec.md §4.3 invariant 6.
func (m *Module) MarkResolved() { m.submodule.Resolved = true }

func (m *Module) IsResolved() bool { return m.submodule.Resolved }
