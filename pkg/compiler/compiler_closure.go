package compiler

import (
	"github.com/krizos/zs/pkg/ast"
	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
	"github.com/krizos/zs/pkg/vm"
)

// compileProcBody compiles one function body (named ProcDecl or anonymous
// ProcLit) into its own bytecode and registers it as a module symbol,
// returning that symbol's index for the caller to OP_SGET.
//
// The symbol slot is reserved *before* the body is compiled (AddSymbol
// with a nil Value) so a self-referencing name bound into scope ahead of
// the body resolves via a plain OP_SGET rather than needing a two-pass
// compile; it's backfilled with the real Fn/MetaClosure once PopFn
// reveals whether the body captured any outer locals.
func (c *compiler) compileProcBody(name string, params []string, body *ast.Block, line int) (int, error) {
	symIdx := c.mod.AddSymbol(module.SymFn, nil)
	if name != "" {
		// Offset doubles as the module symbol-table index for SymFn (see
		// scope.Symbol's doc comment), so a recursive self-call inside
		// the body resolves via OP_SGET, not a global lookup — this
		// works whether the decl is at top level or nested, where no
		// global table entry exists at all.
		sym := c.scope.DeclareFn(name, len(params))
		sym.Offset = symIdx
	}

	c.scope.PushFn()
	c.fnDepth++
	savedLoops := c.loops
	c.loops = nil

	for _, p := range params {
		if _, err := c.scope.DeclareLocal(p, true); err != nil {
			c.scope.PopFn()
			c.fnDepth--
			c.loops = savedLoops
			return 0, errf(line, "%s", err)
		}
	}

	be := newEmitter()
	bodyErr := c.compileStmts(be, body.Stmts)
	numLocals := c.scope.CurrentFnLocalCount() - 1 - len(params)
	captures := c.scope.PopFn()
	c.fnDepth--
	c.loops = savedLoops
	if bodyErr != nil {
		return 0, bodyErr
	}

	// Every body falls off the end returning Empty unless it already
	// returned explicitly — spec.md §4.7's implicit "return empty" rule.
	be.op(vm.OpEmpty, line)
	be.op(vm.OpRet, line)

	fn := &types.Fn{
		Name:      nameOr(name, "<anonymous>"),
		Arity:     uint8(len(params)),
		NumLocals: numLocals,
		Code:      be.code,
		Lines:     be.lines,
		Module:    c.mod,
	}

	if len(captures) == 0 {
		c.mod.SetSymbolFn(symIdx, types.NewFnObj(fn))
		return symIdx, nil
	}

	specs := make([]types.CaptureSpec, len(captures))
	for i, cand := range captures {
		if cand.Direct {
			specs[i] = types.CaptureSpec{FromEnclosingClosure: false, At: cand.OuterOffset}
		} else {
			specs[i] = types.CaptureSpec{FromEnclosingClosure: true, At: cand.EnclosingIndex}
		}
	}
	meta := &types.MetaClosure{CapturedAt: specs, Fn: fn}
	c.mod.SetSymbolClosure(symIdx, meta)
	return symIdx, nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
