package compiler

import (
	"strings"

	gomodule "golang.org/x/mod/module"

	"github.com/krizos/zs/pkg/ast"
	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/scope"
	"github.com/krizos/zs/pkg/vm"
)

func (c *compiler) compileStmt(e *emitter, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		if err := c.compileExpr(e, s.X); err != nil {
			return err
		}
		e.op(vm.OpPop, s.Line())
		return nil
	case *ast.VarDecl:
		return c.compileVarDecl(e, s)
	case *ast.Block:
		return c.compileBlockScoped(e, s)
	case *ast.If:
		return c.compileIf(e, s)
	case *ast.While:
		return c.compileWhile(e, s)
	case *ast.For:
		return c.compileFor(e, s)
	case *ast.Try:
		return c.compileTry(e, s)
	case *ast.Throw:
		return c.compileThrow(e, s)
	case *ast.Return:
		return c.compileReturn(e, s)
	case *ast.Break:
		return c.compileBreak(e, s)
	case *ast.Continue:
		return c.compileContinue(e, s)
	case *ast.Import:
		return c.compileImport(e, s)
	case *ast.ProcDecl:
		return c.compileProcDecl(e, s)
	default:
		return errf(stmt.Line(), "compiler: unhandled statement %T", stmt)
	}
}

// compileBlockScoped opens a fresh Block scope for s, so locals declared
// inside it don't leak into the surrounding scope's name resolution
// (spec.md §4.4: "Block ... nested arbitrarily").
func (c *compiler) compileBlockScoped(e *emitter, s *ast.Block) error {
	c.scope.PushScope(scope.KindBlock)
	defer c.scope.PopScope()
	return c.compileStmts(e, s.Stmts)
}

func (c *compiler) compileStmts(e *emitter, stmts []ast.Stmt) error {
	for _, st := range stmts {
		if err := c.compileStmt(e, st); err != nil {
			return err
		}
	}
	return nil
}

// compileVarDecl implements spec.md §4.4's "declaring a global within the
// Global scope allocates a named slot in the module's global table;
// elsewhere it allocates the next local frame slot" — generalized so that
// any VarDecl reached while c.fnDepth == 0 is a global regardless of how
// many non-Fn block scopes (If/While/Try bodies at top level) it's nested
// under, since those don't reset fnDepth. The language has no immutable-
// binding syntax actually wired into the parser (token.LET is lexed but no
// parser rule accepts it; only token.MUT starts a declaration and
// ast.VarDecl carries no Mutable field), so every
// declared variable is compiled as mutable.
func (c *compiler) compileVarDecl(e *emitter, s *ast.VarDecl) error {
	if c.scope.IsDefinedInCurrentScope(s.Name) {
		return errf(s.Line(), "%q is already declared in this scope", s.Name)
	}
	if s.Value != nil {
		if err := c.compileExpr(e, s.Value); err != nil {
			return err
		}
	} else {
		e.op(vm.OpEmpty, s.Line())
	}
	if c.inGlobalScope() {
		c.mod.DefineGlobal(s.Name, true, s.Public)
		c.scope.DeclareGlobal(s.Name, true, s.Public)
		idx := c.internStr(s.Name)
		e.opI16(vm.OpGDef, s.Line(), idx)
		return nil
	}
	sym, err := c.scope.DeclareLocal(s.Name, true)
	if err != nil {
		return errf(s.Line(), "%s", err)
	}
	e.opU8(vm.OpLSet, s.Line(), uint8(sym.Offset))
	e.op(vm.OpPop, s.Line())
	return nil
}

func (c *compiler) compileIf(e *emitter, s *ast.If) error {
	var endJumps []int

	if err := c.compileExpr(e, s.Cond); err != nil {
		return err
	}
	jifPos := e.jump(vm.OpJif, s.Line())
	c.scope.PushScope(scope.KindIf)
	if err := c.compileStmts(e, s.Then.Stmts); err != nil {
		return err
	}
	c.scope.PopScope()
	endJumps = append(endJumps, e.jump(vm.OpJmp, s.Line()))
	e.patchJump(jifPos)

	for _, elif := range s.Elifs {
		if err := c.compileExpr(e, elif.Cond); err != nil {
			return err
		}
		nextJif := e.jump(vm.OpJif, elif.Body.Line())
		c.scope.PushScope(scope.KindIf)
		if err := c.compileStmts(e, elif.Body.Stmts); err != nil {
			return err
		}
		c.scope.PopScope()
		endJumps = append(endJumps, e.jump(vm.OpJmp, elif.Body.Line()))
		e.patchJump(nextJif)
	}

	if s.Else != nil {
		c.scope.PushScope(scope.KindIf)
		if err := c.compileStmts(e, s.Else.Stmts); err != nil {
			return err
		}
		c.scope.PopScope()
	}

	for _, pos := range endJumps {
		e.patchJump(pos)
	}
	return nil
}

func (c *compiler) compileWhile(e *emitter, s *ast.While) error {
	condStart := e.here()
	if err := c.compileExpr(e, s.Cond); err != nil {
		return err
	}
	exitJump := e.jump(vm.OpJif, s.Line())

	lc := &loopCtx{continueTarget: condStart}
	c.loops = append(c.loops, lc)
	c.scope.PushScope(scope.KindWhile)
	err := c.compileStmts(e, s.Body.Stmts)
	c.scope.PopScope()
	c.loops = c.loops[:len(c.loops)-1]
	if err != nil {
		return err
	}

	e.jumpBackTo(vm.OpJmp, s.Line(), condStart)
	e.patchJump(exitJump)
	for _, pos := range lc.breakJumps {
		e.patchJump(pos)
	}
	return nil
}

func (c *compiler) compileFor(e *emitter, s *ast.For) error {
	c.scope.PushScope(scope.KindFor)
	defer c.scope.PopScope()

	if s.Init != nil {
		if err := c.compileStmt(e, s.Init); err != nil {
			return err
		}
	}

	condStart := e.here()
	var exitJump int
	hasCond := s.Cond != nil
	if hasCond {
		if err := c.compileExpr(e, s.Cond); err != nil {
			return err
		}
		exitJump = e.jump(vm.OpJif, s.Line())
	}

	lc := &loopCtx{continueTarget: -1}
	c.loops = append(c.loops, lc)
	bodyErr := c.compileStmts(e, s.Body.Stmts)
	if bodyErr != nil {
		c.loops = c.loops[:len(c.loops)-1]
		return bodyErr
	}

	postStart := e.here()
	lc.continueTarget = postStart
	for _, pos := range lc.continueJumps {
		e.patchJump(pos)
	}
	if s.Post != nil {
		if err := c.compileStmt(e, s.Post); err != nil {
			c.loops = c.loops[:len(c.loops)-1]
			return err
		}
	}
	c.loops = c.loops[:len(c.loops)-1]

	e.jumpBackTo(vm.OpJmp, s.Line(), condStart)
	if hasCond {
		e.patchJump(exitJump)
	}
	for _, pos := range lc.breakJumps {
		e.patchJump(pos)
	}
	return nil
}

// compileTry lowers Try/Catch onto OpTryO/OpTryC/unwinding — spec.md
// §4.7's inline try/catch (no Go panic/recover): TRYO pushes an exception
// frame recording the catch IP and the operand/frame-stack depths to
// truncate back to; a THROW reached anywhere in Body (directly, or inside
// a callee the VM unwinds through) resumes execution at the catch IP with
// the thrown value already pushed as the catch variable's slot.
func (c *compiler) compileTry(e *emitter, s *ast.Try) error {
	tryoPos := e.jump(vm.OpTryO, s.Line())
	c.scope.PushScope(scope.KindTry)
	if err := c.compileStmts(e, s.Body.Stmts); err != nil {
		return err
	}
	c.scope.PopScope()
	e.op(vm.OpTryC, s.Line())
	skipCatch := e.jump(vm.OpJmp, s.Line())

	e.patchJump(tryoPos)
	c.scope.PushScope(scope.KindCatch)
	sym, err := c.scope.DeclareLocal(s.CatchVar, true)
	if err != nil {
		c.scope.PopScope()
		return errf(s.Line(), "%s", err)
	}
	e.opU8(vm.OpLSet, s.Line(), uint8(sym.Offset))
	e.op(vm.OpPop, s.Line())
	if err := c.compileStmts(e, s.Catch.Stmts); err != nil {
		c.scope.PopScope()
		return err
	}
	c.scope.PopScope()

	e.patchJump(skipCatch)
	return nil
}

func (c *compiler) compileThrow(e *emitter, s *ast.Throw) error {
	if s.Value == nil {
		e.opU8(vm.OpThrow, s.Line(), 0)
		return nil
	}
	if err := c.compileExpr(e, s.Value); err != nil {
		return err
	}
	e.opU8(vm.OpThrow, s.Line(), 1)
	return nil
}

func (c *compiler) compileReturn(e *emitter, s *ast.Return) error {
	if s.Value != nil {
		if err := c.compileExpr(e, s.Value); err != nil {
			return err
		}
	} else {
		e.op(vm.OpEmpty, s.Line())
	}
	e.op(vm.OpRet, s.Line())
	return nil
}

func (c *compiler) compileBreak(e *emitter, s *ast.Break) error {
	if len(c.loops) == 0 {
		return errf(s.Line(), "break outside a loop")
	}
	lc := c.loops[len(c.loops)-1]
	pos := e.jump(vm.OpJmp, s.Line())
	lc.breakJumps = append(lc.breakJumps, pos)
	return nil
}

func (c *compiler) compileContinue(e *emitter, s *ast.Continue) error {
	if len(c.loops) == 0 {
		return errf(s.Line(), "continue outside a loop")
	}
	lc := c.loops[len(c.loops)-1]
	if lc.continueTarget < 0 {
		lc.continueJumps = append(lc.continueJumps, e.jump(vm.OpJmp, s.Line()))
		return nil
	}
	e.jumpBackTo(vm.OpJmp, s.Line(), lc.continueTarget)
	return nil
}

// compileImport binds the resolved module under its alias as a SymModule
// symbol — spec.md §4.4's SymModule kind, addressed by OP_SGET from
// anywhere in the module (the same "resolved at compile time, valid
// regardless of textual order" shape a named Fn's own symbol uses). A
// top-level import additionally mirrors the module value into the
// global table as a private global, so a further `import`er of *this*
// module that names it through Access gets a "not public" error.
func (c *compiler) compileImport(e *emitter, s *ast.Import) error {
	if c.opts.Resolve == nil {
		return errf(s.Line(), "imports are not supported in this compile")
	}
	if !strings.HasPrefix(s.Path, ".") && !strings.HasPrefix(s.Path, "/") {
		if err := gomodule.CheckImportPath(s.Path); err != nil {
			return errf(s.Line(), "import %q: %s", s.Path, err)
		}
	}
	imported, err := c.opts.Resolve(s.Path)
	if err != nil {
		return errf(s.Line(), "import %q: %s", s.Path, err)
	}
	alias := s.Alias
	if alias == "" {
		alias = imported.Name
	}
	if c.scope.IsDefinedInCurrentScope(alias) {
		return errf(s.Line(), "%q is already declared in this scope", alias)
	}
	symIdx := c.mod.AddSymbol(module.SymModule, module.NewModuleObj(imported))
	sym := c.scope.DeclareModule(alias)
	sym.Offset = symIdx

	if c.inGlobalScope() {
		c.mod.DefineGlobal(alias, false, false)
		nameIdx := c.internStr(alias)
		e.opI32(vm.OpSGet, s.Line(), int32(symIdx))
		e.opI16(vm.OpGDef, s.Line(), nameIdx)
	}
	return nil
}

// compileProcDecl lowers a named function declaration. compileProcBody
// already binds the name to a SymFn symbol (Offset = its module symbol
// index) in the enclosing scope, valid from anywhere in the module via
// OP_SGET regardless of textual order — so a nested ProcDecl needs no
// runtime instructions at all. A top-level ProcDecl additionally mirrors
// the value into the module's global table (DefineGlobal + GDEF) purely
// so cross-module `import`ers can reach it through Access/Public, the
// same mechanism a top-level VarDecl uses.
func (c *compiler) compileProcDecl(e *emitter, s *ast.ProcDecl) error {
	idx, err := c.compileProcBody(s.Name, s.Params, s.Body, s.Line())
	if err != nil {
		return err
	}
	if c.inGlobalScope() {
		c.mod.DefineGlobal(s.Name, false, s.Public)
		nameIdx := c.internStr(s.Name)
		e.opI32(vm.OpSGet, s.Line(), int32(idx))
		e.opI16(vm.OpGDef, s.Line(), nameIdx)
	}
	return nil
}
