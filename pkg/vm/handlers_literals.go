package vm

import "github.com/krizos/zs/pkg/types"

// execLiteral handles spec.md §4.6's Primitives and Initializers opcode
// groups: pushing scalar/constant-pool values and building arrays, lists,
// dicts, and records.
//
// A literal container is built in two phases on the operand stack: the
// opening opcode (ARRAY/LIST/DICT/RECORD) pushes a fresh, empty container
// and leaves it on top; each following I-prefixed opcode pops one pending
// element/pair the compiler just evaluated and folds it into that same
// container, which stays on top throughout — "consumes pending element(s)
// from stack" per spec.md §4.6. This differs from ASET/PUT
// (handlers_object.go), which mutate an *already-referenced* container and
// leave the assigned value (not the container) on top, because those
// model assignment expressions rather than literal construction.
func (vm *VM) execLiteral(frame *Frame, op Op, code []byte, opStart int) error {
	mod := frame.Fn.Module

	switch op {
	case OpEmpty:
		return vm.push(frame, types.Empty)
	case OpFalse:
		return vm.push(frame, types.NewBool(false))
	case OpTrue:
		return vm.push(frame, types.NewBool(true))
	case OpCInt:
		return vm.push(frame, types.NewInt(int64(readU8(code, opStart))))
	case OpInt:
		idx := int(readI16(code, opStart))
		return vm.push(frame, types.NewInt(mod.ConstInt(idx)))
	case OpFloat:
		idx := int(readI16(code, opStart))
		return vm.push(frame, types.NewFloat(mod.ConstFloat(idx)))
	case OpString:
		idx := int(readI16(code, opStart))
		return vm.push(frame, types.NewObj(mod.StaticStr(idx)))

	case OpArray:
		n := int(readU16(code, opStart))
		arr := vm.track(types.NewArrayObj(n))
		return vm.push(frame, types.NewObj(arr))
	case OpList:
		lst := vm.track(types.NewListObj(nil))
		return vm.push(frame, types.NewObj(lst))
	case OpDict:
		d := vm.track(types.NewDictObj())
		return vm.push(frame, types.NewObj(d))
	case OpRecord:
		r := vm.track(types.NewRecordObj(nil))
		return vm.push(frame, types.NewObj(r))

	case OpIArray:
		idx := int(readI16(code, opStart))
		val := vm.pop()
		arr := vm.peek(0).AsObj().AsArray()
		if err := arr.Set(idx, val); err != nil {
			return vm.fatalf(frame, "%s", err)
		}
		return nil
	case OpIList:
		val := vm.pop()
		lst := vm.peek(0).AsObj().AsList()
		lst.Push(val)
		return nil
	case OpIDict:
		val := vm.pop()
		key := vm.pop()
		d := vm.peek(0).AsObj().AsDict()
		d.Set(key, val)
		return nil
	case OpIRecord:
		idx := int(readI16(code, opStart))
		val := vm.pop()
		rec := vm.peek(0).AsObj().AsRecord()
		name := mod.StaticStr(idx).AsStr().String()
		rec.Set(name, val)
		return nil
	}
	return vm.fatalf(frame, "unreachable literal opcode %s", op)
}
