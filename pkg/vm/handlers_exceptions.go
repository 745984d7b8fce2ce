package vm

import "github.com/krizos/zs/pkg/types"

// execException handles spec.md §4.6's exception-handling group. TRYO
// pushes an exception frame marking the catch IP and the operand/frame
// depths to restore on unwind (vm.unwind in vm.go does the actual
// truncate-and-jump, triggered from dispatch's fault handling rather than
// from here); TRYC pops it once the try body completes without
// faulting. THROW raises a fault carrying either the popped expression
// value (`throw expr;`) or Empty (a bare `throw;`).
func (vm *VM) execException(frame *Frame, op Op, code []byte, opStart int) error {
	switch op {
	case OpTryO:
		offset := int(readI16(code, opStart))
		vm.exc = append(vm.exc, excFrame{
			catchIP:    opStart + 2 + offset,
			stackTop:   len(vm.operand),
			frameDepth: len(vm.frames),
		})
		return nil
	case OpTryC:
		if len(vm.exc) == 0 {
			return vm.fatalf(frame, "TRYC with no active try")
		}
		vm.exc = vm.exc[:len(vm.exc)-1]
		return nil
	case OpThrow:
		hasValue := readU8(code, opStart)
		v := types.Empty
		if hasValue != 0 {
			v = vm.pop()
		}
		return vm.scriptThrow(frame, v)
	}
	return vm.fatalf(frame, "unreachable exception opcode %s", op)
}
