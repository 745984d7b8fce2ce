package vm

import (
	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
)

// execVariable handles spec.md §4.6's Locals/outs/globals group: frame
// locals, closure out-values, module globals, native-function lookup, and
// module-symbol reference (SGET), including the per-evaluation Closure
// construction spec.md §4.7 describes.
func (vm *VM) execVariable(frame *Frame, op Op, code []byte, opStart int) error {
	mod := frame.Fn.Module.(*module.Module)

	switch op {
	case OpLSet:
		off := int(readU8(code, opStart))
		frame.Locals[off] = vm.peek(0)
		return nil
	case OpLGet:
		off := int(readU8(code, opStart))
		return vm.push(frame, frame.Locals[off])

	case OpOSet:
		idx := int(readU8(code, opStart))
		if frame.Closure == nil || idx >= len(frame.Closure.Outs) {
			return vm.fatalf(frame, "out-value index %d out of range", idx)
		}
		frame.Closure.Outs[idx].Value = vm.peek(0)
		return nil
	case OpOGet:
		idx := int(readU8(code, opStart))
		if frame.Closure == nil || idx >= len(frame.Closure.Outs) {
			return vm.fatalf(frame, "out-value index %d out of range", idx)
		}
		return vm.push(frame, frame.Closure.Outs[idx].Value)

	case OpGDef:
		idx := int(readI16(code, opStart))
		name := mod.StaticStr(idx).AsStr().String()
		val := vm.pop()
		g, ok := mod.Global(name)
		if !ok {
			return vm.fatalf(frame, "global %q not declared at compile time", name)
		}
		g.Value = val
		return nil
	case OpGASet:
		idx := int(readI16(code, opStart))
		name := mod.StaticStr(idx).AsStr().String()
		g, ok := mod.Global(name)
		if !ok {
			return vm.fatalf(frame, "global %q not declared at compile time", name)
		}
		g.Public = true
		return nil
	case OpGSet:
		idx := int(readI16(code, opStart))
		name := mod.StaticStr(idx).AsStr().String()
		g, ok := mod.Global(name)
		if !ok {
			return vm.fatalf(frame, "global %q not declared at compile time", name)
		}
		if !g.Mutable {
			return vm.userErrorf(frame, "cannot assign to immutable global %q", name)
		}
		g.Value = vm.peek(0)
		return nil
	case OpGGet:
		idx := int(readI16(code, opStart))
		name := mod.StaticStr(idx).AsStr().String()
		g, ok := mod.Global(name)
		if !ok {
			return vm.fatalf(frame, "global %q not declared at compile time", name)
		}
		return vm.push(frame, g.Value)

	case OpNGet:
		idx := int(readI16(code, opStart))
		name := mod.StaticStr(idx).AsStr().String()
		fn, ok := vm.Natives[name]
		if !ok {
			return vm.fatalf(frame, "native function %q not bound", name)
		}
		return vm.push(frame, types.NewObj(fn))

	case OpSGet:
		idx := int(readI32(code, opStart))
		return vm.execSGet(frame, mod, idx)
	}
	return vm.fatalf(frame, "unreachable variable opcode %s", op)
}

// execSGet resolves OP_SGET against mod's symbol table. Fn/Module/
// NativeModule symbols return their shared Obj directly; a SymClosure
// symbol instead builds a brand new Closure every time, capturing each
// referenced local/out-value's *current* value — spec.md §4.7 and the
// capture-by-value resolution of the closure-capture Open Question
// (DESIGN.md §9).
func (vm *VM) execSGet(frame *Frame, mod *module.Module, idx int) error {
	sym := mod.Symbol(idx)
	if sym.Tag != module.SymClosure {
		return vm.push(frame, types.NewObj(sym.Value))
	}

	outs := make([]*types.OutValue, len(sym.Meta.CapturedAt))
	for i, spec := range sym.Meta.CapturedAt {
		var v types.Value
		if !spec.FromEnclosingClosure {
			v = frame.Locals[spec.At]
		} else {
			if frame.Closure == nil || spec.At >= len(frame.Closure.Outs) {
				return vm.fatalf(frame, "closure capture index %d out of range", spec.At)
			}
			v = frame.Closure.Outs[spec.At].Value
		}
		outs[i] = &types.OutValue{At: spec.At, Value: v}
	}
	closureObj := vm.track(types.NewClosureObj(sym.Meta, outs))
	return vm.push(frame, types.NewObj(closureObj))
}
