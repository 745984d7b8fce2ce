package compiler

import (
	"github.com/krizos/zs/pkg/ast"
	"github.com/krizos/zs/pkg/scope"
	"github.com/krizos/zs/pkg/vm"
)

func (c *compiler) compileExpr(e *emitter, expr ast.Expr) error {
	switch x := expr.(type) {
	case *ast.IntLit:
		idx := c.mod.InternConstInt(x.Value)
		e.opI16(vm.OpInt, x.Line(), int16(idx))
		return nil
	case *ast.FloatLit:
		idx := c.mod.InternConstFloat(x.Value)
		e.opI16(vm.OpFloat, x.Line(), int16(idx))
		return nil
	case *ast.StringLit:
		idx := c.internStr(x.Value)
		e.opI16(vm.OpString, x.Line(), idx)
		return nil
	case *ast.BoolLit:
		if x.Value {
			e.op(vm.OpTrue, x.Line())
		} else {
			e.op(vm.OpFalse, x.Line())
		}
		return nil
	case *ast.EmptyLit:
		e.op(vm.OpEmpty, x.Line())
		return nil
	case *ast.Ident:
		return c.compileIdentLoad(e, x)
	case *ast.Binary:
		return c.compileBinary(e, x)
	case *ast.Logical:
		return c.compileLogical(e, x)
	case *ast.Unary:
		return c.compileUnary(e, x)
	case *ast.Call:
		return c.compileCall(e, x)
	case *ast.Access:
		if err := c.compileExpr(e, x.X); err != nil {
			return err
		}
		idx := c.internStr(x.Name)
		e.opI16(vm.OpAccess, x.Line(), idx)
		return nil
	case *ast.Index:
		if err := c.compileExpr(e, x.X); err != nil {
			return err
		}
		if err := c.compileExpr(e, x.Idx); err != nil {
			return err
		}
		e.op(vm.OpIndex, x.Line())
		return nil
	case *ast.ArrayLit:
		return c.compileArrayLit(e, x)
	case *ast.ListLit:
		return c.compileListLit(e, x)
	case *ast.DictLit:
		return c.compileDictLit(e, x)
	case *ast.RecordLit:
		return c.compileRecordLit(e, x)
	case *ast.ProcLit:
		idx, err := c.compileProcBody("", x.Params, x.Body, x.Line())
		if err != nil {
			return err
		}
		e.opI32(vm.OpSGet, x.Line(), int32(idx))
		return nil
	case *ast.Assign:
		return c.compileAssign(e, x)
	case *ast.Is:
		return c.compileIs(e, x)
	default:
		return errf(expr.Line(), "compiler: unhandled expression %T", expr)
	}
}

// compileIdentLoad resolves name and emits the load matching its
// SymbolKind — spec.md §4.4's five symbol kinds, each addressing a
// different opcode/operand pair.
func (c *compiler) compileIdentLoad(e *emitter, x *ast.Ident) error {
	sym, ok := c.scope.Resolve(x.Name)
	if !ok {
		return errf(x.Line(), "undefined name %q", x.Name)
	}
	switch sym.Kind {
	case scope.SymLocal:
		if sym.FnDepth != c.fnDepth {
			// promoted to a capture candidate by Resolve; read the
			// current function's own out-value slot instead of the
			// (no-longer-addressable) original frame's local.
			idx := c.localCaptureOutIndex(sym.Name)
			e.opU8(vm.OpOGet, x.Line(), uint8(idx))
			return nil
		}
		e.opU8(vm.OpLGet, x.Line(), uint8(sym.Offset))
		return nil
	case scope.SymGlobal:
		idx := c.internStr(x.Name)
		e.opI16(vm.OpGGet, x.Line(), idx)
		return nil
	case scope.SymNativeFn:
		idx := c.internStr(x.Name)
		e.opI16(vm.OpNGet, x.Line(), idx)
		return nil
	case scope.SymFn, scope.SymModule:
		e.opI32(vm.OpSGet, x.Line(), int32(sym.Offset))
		return nil
	default:
		return errf(x.Line(), "compiler: unresolved symbol kind for %q", x.Name)
	}
}

// localCaptureOutIndex finds name's position in the current Fn's capture
// list — populated incrementally by scope.Manager.Resolve's promotion
// pass, which appends a CaptureCandidate for every not-yet-captured outer
// local the moment it's first referenced from a nested Fn. The index a
// fully-compiled MetaClosure.CapturedAt assigns the name is exactly that
// append order, so re-deriving it here (rather than threading scope
// internals across packages) keeps OGET's operand in lockstep with
// compileProcBody's later CaptureSpec construction.
func (c *compiler) localCaptureOutIndex(name string) int {
	return c.scope.CaptureIndex(name)
}

func (c *compiler) compileBinary(e *emitter, x *ast.Binary) error {
	if err := c.compileExpr(e, x.Left); err != nil {
		return err
	}
	if err := c.compileExpr(e, x.Right); err != nil {
		return err
	}
	op, ok := binOpcodes[x.Op]
	if !ok {
		return errf(x.Line(), "compiler: unhandled binary operator %q", x.Op)
	}
	e.op(op, x.Line())
	return nil
}

var binOpcodes = map[ast.BinOp]vm.Op{
	ast.OpAdd:    vm.OpAdd,
	ast.OpSub:    vm.OpSub,
	ast.OpMul:    vm.OpMul,
	ast.OpDiv:    vm.OpDiv,
	ast.OpMod:    vm.OpMod,
	ast.OpBAnd:   vm.OpBAnd,
	ast.OpBOr:    vm.OpBOr,
	ast.OpBXor:   vm.OpBXor,
	ast.OpLShift: vm.OpLSh,
	ast.OpRShift: vm.OpRSh,
	ast.OpLt:     vm.OpLt,
	ast.OpGt:     vm.OpGt,
	ast.OpLe:     vm.OpLe,
	ast.OpGe:     vm.OpGe,
	ast.OpEq:     vm.OpEq,
	ast.OpNe:     vm.OpNe,
}

// compileLogical lowers short-circuit &&/|| via JIF/JIT rather than the
// eager OR/AND opcodes, per spec.md's resolved Open Question on
// short-circuit evaluation (DESIGN.md).
func (c *compiler) compileLogical(e *emitter, x *ast.Logical) error {
	if err := c.compileExpr(e, x.Left); err != nil {
		return err
	}
	switch x.Op {
	case "&&":
		shortCircuit := e.jump(vm.OpJif, x.Line())
		if err := c.compileExpr(e, x.Right); err != nil {
			return err
		}
		end := e.jump(vm.OpJmp, x.Line())
		e.patchJump(shortCircuit)
		e.op(vm.OpFalse, x.Line())
		e.patchJump(end)
		return nil
	case "||":
		shortCircuit := e.jump(vm.OpJit, x.Line())
		if err := c.compileExpr(e, x.Right); err != nil {
			return err
		}
		end := e.jump(vm.OpJmp, x.Line())
		e.patchJump(shortCircuit)
		e.op(vm.OpTrue, x.Line())
		e.patchJump(end)
		return nil
	default:
		return errf(x.Line(), "compiler: unhandled logical operator %q", x.Op)
	}
}

func (c *compiler) compileUnary(e *emitter, x *ast.Unary) error {
	if err := c.compileExpr(e, x.X); err != nil {
		return err
	}
	switch x.Op {
	case ast.OpNeg:
		e.op(vm.OpNNot, x.Line())
	case ast.OpNot:
		e.op(vm.OpNot, x.Line())
	case ast.OpBNot:
		e.op(vm.OpBNot, x.Line())
	case ast.OpNumNot:
		e.op(vm.OpNNot, x.Line())
	default:
		return errf(x.Line(), "compiler: unhandled unary operator %q", x.Op)
	}
	return nil
}

func (c *compiler) compileCall(e *emitter, x *ast.Call) error {
	if len(x.Args) > 255 {
		return errf(x.Line(), "too many call arguments (max 255)")
	}
	if err := c.compileExpr(e, x.Callee); err != nil {
		return err
	}
	for _, a := range x.Args {
		if err := c.compileExpr(e, a); err != nil {
			return err
		}
	}
	e.opU8(vm.OpCall, x.Line(), uint8(len(x.Args)))
	return nil
}

// compileArrayLit emits the ARRAY/IARRAY two-phase sequence: ARRAY
// allocates a fixed-length container that stays on top of the operand
// stack, then one IARRAY per element folds a popped value into it at a
// literal index — spec.md §4.6's Initializers group.
func (c *compiler) compileArrayLit(e *emitter, x *ast.ArrayLit) error {
	if len(x.Elems) > 65535 {
		return errf(x.Line(), "array literal too large")
	}
	e.opU16(vm.OpArray, x.Line(), uint16(len(x.Elems)))
	for i, elem := range x.Elems {
		if err := c.compileExpr(e, elem); err != nil {
			return err
		}
		e.opI16(vm.OpIArray, elem.Line(), int16(i))
	}
	return nil
}

func (c *compiler) compileListLit(e *emitter, x *ast.ListLit) error {
	e.op(vm.OpList, x.Line())
	for _, elem := range x.Elems {
		if err := c.compileExpr(e, elem); err != nil {
			return err
		}
		e.op(vm.OpIList, elem.Line())
	}
	return nil
}

func (c *compiler) compileDictLit(e *emitter, x *ast.DictLit) error {
	e.op(vm.OpDict, x.Line())
	for _, pair := range x.Pairs {
		if err := c.compileExpr(e, pair.Key); err != nil {
			return err
		}
		if err := c.compileExpr(e, pair.Value); err != nil {
			return err
		}
		e.op(vm.OpIDict, pair.Value.Line())
	}
	return nil
}

func (c *compiler) compileRecordLit(e *emitter, x *ast.RecordLit) error {
	if len(x.Fields) > 65535 {
		return errf(x.Line(), "record literal too large")
	}
	e.opU16(vm.OpRecord, x.Line(), uint16(len(x.Fields)))
	for _, f := range x.Fields {
		if err := c.compileExpr(e, f.Value); err != nil {
			return err
		}
		idx := c.internStr(f.Name)
		e.opI16(vm.OpIRecord, f.Value.Line(), idx)
	}
	return nil
}

// compileAssign dispatches on the target's shape — spec.md §4.6's
// Assign-into-container group distinguishes plain-name assignment (LSET/
// OSET/GSET, no container involved) from Index/Access assignment (ASET/
// PUT, which must first evaluate the container and, for Index, the key).
func (c *compiler) compileAssign(e *emitter, x *ast.Assign) error {
	switch t := x.Target.(type) {
	case *ast.Ident:
		sym, ok := c.scope.Resolve(t.Name)
		if !ok {
			return errf(x.Line(), "undefined name %q", t.Name)
		}
		if !sym.Mutable {
			return errf(x.Line(), "cannot assign to immutable name %q", t.Name)
		}
		if err := c.compileExpr(e, x.Value); err != nil {
			return err
		}
		switch sym.Kind {
		case scope.SymLocal:
			if sym.FnDepth != c.fnDepth {
				idx := c.localCaptureOutIndex(sym.Name)
				e.opU8(vm.OpOSet, x.Line(), uint8(idx))
				return nil
			}
			e.opU8(vm.OpLSet, x.Line(), uint8(sym.Offset))
			return nil
		case scope.SymGlobal:
			idx := c.internStr(t.Name)
			e.opI16(vm.OpGSet, x.Line(), idx)
			return nil
		default:
			return errf(x.Line(), "cannot assign to %q", t.Name)
		}
	case *ast.Index:
		if err := c.compileExpr(e, t.X); err != nil {
			return err
		}
		if err := c.compileExpr(e, t.Idx); err != nil {
			return err
		}
		if err := c.compileExpr(e, x.Value); err != nil {
			return err
		}
		e.op(vm.OpASet, x.Line())
		return nil
	case *ast.Access:
		if err := c.compileExpr(e, t.X); err != nil {
			return err
		}
		if err := c.compileExpr(e, x.Value); err != nil {
			return err
		}
		idx := c.internStr(t.Name)
		e.opI16(vm.OpPut, x.Line(), idx)
		return nil
	default:
		return errf(x.Line(), "invalid assignment target")
	}
}

var kindCodes = map[string]vm.KindCode{
	"Empty":    vm.KCEmpty,
	"Bool":     vm.KCBool,
	"Int":      vm.KCInt,
	"Float":    vm.KCFloat,
	"Str":      vm.KCStr,
	"Array":    vm.KCArray,
	"List":     vm.KCList,
	"Dict":     vm.KCDict,
	"Record":   vm.KCRecord,
	"Callable": vm.KCCallable,
}

func (c *compiler) compileIs(e *emitter, x *ast.Is) error {
	code, ok := kindCodes[x.KindName]
	if !ok {
		return errf(x.Line(), "unknown kind name %q", x.KindName)
	}
	if err := c.compileExpr(e, x.X); err != nil {
		return err
	}
	e.opU8(vm.OpIs, x.Line(), uint8(code))
	return nil
}
