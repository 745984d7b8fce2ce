package vm

import "github.com/krizos/zs/pkg/types"

// execIs implements OP_IS: pop a value, test its runtime kind against the
// KindCode embedded as the opcode's u8 operand, push the bool result.
func (vm *VM) execIs(frame *Frame, code []byte, opStart int) error {
	kc := KindCode(readU8(code, opStart))
	v := vm.pop()

	var result bool
	switch kc {
	case KCEmpty:
		result = v.IsEmpty()
	case KCBool:
		result = v.IsBool()
	case KCInt:
		result = v.IsInt()
	case KCFloat:
		result = v.IsFloat()
	case KCStr:
		result = v.IsObjKind(types.KindStr)
	case KCArray:
		result = v.IsObjKind(types.KindArray)
	case KCList:
		result = v.IsObjKind(types.KindList)
	case KCDict:
		result = v.IsObjKind(types.KindDict)
	case KCRecord:
		result = v.IsObjKind(types.KindRecord)
	case KCCallable:
		result = v.IsObj() && isCallableKind(v.AsObj().Kind)
	default:
		return vm.fatalf(frame, "invalid IS kind code %d", kc)
	}
	return vm.push(frame, types.NewBool(result))
}

func isCallableKind(k types.Kind) bool {
	switch k {
	case types.KindNativeFn, types.KindFn, types.KindClosure, types.KindForeignFn:
		return true
	default:
		return false
	}
}
