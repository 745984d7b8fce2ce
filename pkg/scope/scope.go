// Package scope implements the compiler's compile-time scope manager:
// spec.md §4.4's scope stack (Block, If/Elif/Else, While, For, Try, Catch,
// Fn, Global) plus the symbol kinds it tracks (Local, Global, NativeFn,
// Fn, Module) and the cross-function free-variable promotion that turns
// an outer local into a closure capture candidate.
//
// Grounded on teacher's pkg/compiler/symbols.go: the outer-chain lookup and
// the "found in an enclosing function → promote to a free variable"
// recursive pattern (teacher's SymbolTable.Resolve/DefineFree) is the same
// shape used here, generalized from PHP's two-scope (global/local) model
// to the spec's eight scope kinds and multi-level capture chaining.
package scope

import "github.com/krizos/zs/pkg/arena"

// Kind identifies what construct pushed a lexical scope.
type Kind uint8

const (
	KindGlobal Kind = iota
	KindFn
	KindBlock
	KindIf
	KindWhile
	KindFor
	KindTry
	KindCatch
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindFn:
		return "fn"
	case KindBlock:
		return "block"
	case KindIf:
		return "if"
	case KindWhile:
		return "while"
	case KindFor:
		return "for"
	case KindTry:
		return "try"
	case KindCatch:
		return "catch"
	default:
		return "?"
	}
}

// SymbolKind identifies what a resolved name refers to — spec.md §4.4's
// "Symbol kinds" list.
type SymbolKind uint8

const (
	SymLocal SymbolKind = iota
	SymGlobal
	SymNativeFn
	SymFn
	SymModule
)

// MaxLocals is spec.md §4.4's "max locals per frame: 255" — a local's
// Offset is emitted as the u8 operand of OP_LSET/OP_LGET.
const MaxLocals = 255

// Symbol is one resolvable name.
type Symbol struct {
	Name        string
	Kind        SymbolKind
	Offset      int // SymLocal: frame slot OP_LSET/OP_LGET addresses; SymFn/SymNativeFn/SymModule: the owning Module's symbol-table index OP_SGET addresses
	Mutable     bool
	Initialized bool
	Arity       int // SymNativeFn/SymFn
	Public      bool
	FnDepth     int // index into Manager.fns at declaration time
}

// CaptureCandidate records one outer local a Fn's closure must capture —
// becomes one entry of its types.MetaClosure.CapturedAt once compiled.
// Direct candidates (the function directly enclosing the variable's home
// frame) capture straight from that frame's local slot (OuterOffset).
// Non-direct candidates — a closure nested two or more functions deep from
// the variable's home — instead chain off the immediately enclosing
// function's own capture of the same name (EnclosingIndex, that function's
// position in its own CapturedAt list), since the original home frame may
// no longer be live by the time this deeper closure is created.
type CaptureCandidate struct {
	Name           string
	Direct         bool
	OuterOffset    int // meaningful when Direct
	EnclosingIndex int // meaningful when !Direct
}

type fnCtx struct {
	localCount   int
	captures     []CaptureCandidate
	captureIndex map[string]int
}

type lexScope struct {
	kind    Kind
	outer   *lexScope
	fnDepth int
	symbols map[string]*Symbol
}

// Manager is the compiler's live scope stack for one compile (one module,
// or one nested module compile for an import).
type Manager struct {
	top   *lexScope
	fns   []*fnCtx
	arena *arena.Arena
}

// New creates a Manager already holding the Global scope, backed by a
// fresh compile-time arena (released by the caller once the module this
// Manager serves has finished compiling).
func New() *Manager {
	m := &Manager{arena: arena.New()}
	m.fns = append(m.fns, newFnCtx())
	m.top = &lexScope{kind: KindGlobal, symbols: make(map[string]*Symbol)}
	return m
}

// newFnCtx starts localCount at 1: every Frame's Locals[0] is reserved for
// the callable itself (spec.md §3 invariant 4 / pkg/vm.NewFrame), so the
// first slot a DeclareLocal call hands out — a parameter, for a Fn scope —
// must be offset 1, not 0.
func newFnCtx() *fnCtx {
	return &fnCtx{localCount: 1, captureIndex: make(map[string]int)}
}

// Arena exposes the Manager's identifier-byte arena, released wholesale
// by the caller once compilation of this Manager's module finishes.
func (m *Manager) Arena() *arena.Arena { return m.arena }

func (m *Manager) currentFnDepth() int { return len(m.fns) - 1 }

// PushScope opens a new lexical scope of kind, nested under the current
// one. Use PushFn instead when kind == KindFn.
func (m *Manager) PushScope(kind Kind) {
	if kind == KindFn {
		panic("scope: use PushFn to open a Fn scope")
	}
	m.top = &lexScope{kind: kind, outer: m.top, fnDepth: m.currentFnDepth(), symbols: make(map[string]*Symbol)}
}

// PopScope closes the innermost lexical scope.
func (m *Manager) PopScope() {
	m.top = m.top.outer
}

// PushFn opens a new Fn scope and a fresh local counter — spec.md §4.4:
// "Push a Fn scope resets the local counter."
func (m *Manager) PushFn() {
	m.fns = append(m.fns, newFnCtx())
	m.top = &lexScope{kind: KindFn, outer: m.top, fnDepth: m.currentFnDepth(), symbols: make(map[string]*Symbol)}
}

// CurrentFnLocalCount returns the total number of local slots the
// innermost Fn scope has allocated so far, including the reserved
// callee slot 0 and its parameters. The compiler reads this just before
// PopFn and subtracts 1+Arity to get types.Fn.NumLocals (the slots
// pkg/vm.NewFrame must add beyond the callee+arguments region).
func (m *Manager) CurrentFnLocalCount() int {
	return m.fns[len(m.fns)-1].localCount
}

// PopFn closes the innermost Fn scope, restoring the enclosing local
// counter, and returns the capture list the compiler must bake into this
// function's MetaClosure (empty if it captured nothing, in which case the
// compiler should emit a plain Fn symbol rather than a Closure).
func (m *Manager) PopFn() []CaptureCandidate {
	fc := m.fns[len(m.fns)-1]
	m.fns = m.fns[:len(m.fns)-1]
	m.top = m.top.outer
	return fc.captures
}

// DeclareLocal defines name as a local in the current Fn's frame. Returns
// an error once MaxLocals is exceeded (the u8 frame offset would overflow).
func (m *Manager) DeclareLocal(name string, mutable bool) (*Symbol, error) {
	fc := m.fns[len(m.fns)-1]
	if fc.localCount > MaxLocals {
		return nil, errTooManyLocals(name)
	}
	sym := &Symbol{
		Name:        m.arena.AllocString(name),
		Kind:        SymLocal,
		Offset:      fc.localCount,
		Mutable:     mutable,
		Initialized: true,
		FnDepth:     m.currentFnDepth(),
	}
	fc.localCount++
	m.top.symbols[sym.Name] = sym
	return sym, nil
}

// DeclareGlobal defines name as a global — spec.md §4.4: "Declaring a
// global within the Global scope allocates a named slot in the module's
// global table." The caller (pkg/compiler) still owns writing the slot
// into module.Module; this only makes the name resolvable for the rest of
// the compile.
func (m *Manager) DeclareGlobal(name string, mutable, public bool) *Symbol {
	sym := &Symbol{
		Name:        m.arena.AllocString(name),
		Kind:        SymGlobal,
		Mutable:     mutable,
		Initialized: true,
		Public:      public,
		FnDepth:     m.currentFnDepth(),
	}
	// Globals resolve lexically from wherever they're declared, but their
	// storage is module-wide, so they're recorded directly on the Global
	// scope regardless of how deep m.top currently is.
	g := m.top
	for g.outer != nil {
		g = g.outer
	}
	g.symbols[sym.Name] = sym
	return sym
}

// DeclareFn/DeclareNativeFn/DeclareModule register a name resolving to a
// compiled Fn, a bound native function, or an imported module symbol.
func (m *Manager) DeclareFn(name string, arity int) *Symbol {
	sym := &Symbol{Name: m.arena.AllocString(name), Kind: SymFn, Arity: arity, FnDepth: m.currentFnDepth()}
	m.top.symbols[sym.Name] = sym
	return sym
}

func (m *Manager) DeclareNativeFn(name string, arity int) *Symbol {
	sym := &Symbol{Name: m.arena.AllocString(name), Kind: SymNativeFn, Arity: arity, FnDepth: m.currentFnDepth()}
	m.top.symbols[sym.Name] = sym
	return sym
}

func (m *Manager) DeclareModule(name string) *Symbol {
	sym := &Symbol{Name: m.arena.AllocString(name), Kind: SymModule, FnDepth: m.currentFnDepth()}
	m.top.symbols[sym.Name] = sym
	return sym
}

// IsDefinedInCurrentScope reports whether name is already declared in the
// innermost lexical scope (not outer ones) — used to reject redeclaration
// within the same block.
func (m *Manager) IsDefinedInCurrentScope(name string) bool {
	_, ok := m.top.symbols[name]
	return ok
}

// InGlobalScope reports whether the innermost scope is the module's
// top-level Global scope (not nested in any Fn/Block/If/...).
func (m *Manager) InGlobalScope() bool {
	return m.top.kind == KindGlobal
}

// Resolve looks up name outward through the scope chain. A Local symbol
// found in an enclosing function (not the current one) is promoted to a
// capture candidate in every Fn scope between its home and the current
// one, mirroring teacher's recursive free-variable promotion.
func (m *Manager) Resolve(name string) (*Symbol, bool) {
	for s := m.top; s != nil; s = s.outer {
		if sym, ok := s.symbols[name]; ok {
			if sym.Kind == SymLocal {
				m.promoteCapture(sym)
			}
			return sym, true
		}
	}
	return nil, false
}

// CaptureIndex returns the position name occupies in the innermost Fn's
// own capture list (populated by Resolve's promotion pass the moment a
// not-yet-captured outer local is first referenced) — the compiler uses
// this to emit OGET/OSET's operand right after calling Resolve on the
// same name. Panics if name was never promoted into the current Fn,
// which would indicate a compiler bug (OGET emitted without a prior
// Resolve establishing the capture).
func (m *Manager) CaptureIndex(name string) int {
	fc := m.fns[len(m.fns)-1]
	idx, ok := fc.captureIndex[name]
	if !ok {
		panic("scope: CaptureIndex called for a name not captured by the current function: " + name)
	}
	return idx
}

func (m *Manager) promoteCapture(sym *Symbol) {
	cur := m.currentFnDepth()
	if sym.FnDepth >= cur {
		return
	}
	for depth := sym.FnDepth + 1; depth <= cur; depth++ {
		fc := m.fns[depth]
		if _, already := fc.captureIndex[sym.Name]; already {
			continue
		}
		cand := CaptureCandidate{Name: sym.Name}
		if depth == sym.FnDepth+1 {
			cand.Direct = true
			cand.OuterOffset = sym.Offset
		} else {
			cand.EnclosingIndex = m.fns[depth-1].captureIndex[sym.Name]
		}
		fc.captureIndex[sym.Name] = len(fc.captures)
		fc.captures = append(fc.captures, cand)
	}
}
