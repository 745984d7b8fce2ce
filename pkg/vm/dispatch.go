package vm

// exec executes a single decoded instruction. frame is the current frame,
// op the just-decoded opcode, and opStart the byte offset of op's operand
// (already advanced past by the caller). Handlers live in the
// handlers_*.go files grouped by spec.md §4.6's opcode families.
func (vm *VM) exec(frame *Frame, op Op, opStart int) error {
	code := frame.Fn.Code

	switch op {
	case OpEmpty, OpFalse, OpTrue, OpCInt, OpInt, OpFloat, OpString,
		OpArray, OpList, OpDict, OpRecord, OpIArray, OpIList, OpIDict, OpIRecord:
		return vm.execLiteral(frame, op, code, opStart)

	case OpConcat, OpMulStr, OpAdd, OpSub, OpMul, OpDiv, OpMod,
		OpBNot, OpLSh, OpRSh, OpBAnd, OpBXor, OpBOr:
		return vm.execArith(frame, op)

	case OpLt, OpGt, OpLe, OpGe, OpEq, OpNe:
		return vm.execCompare(frame, op)

	case OpOr, OpAnd, OpNot, OpNNot:
		return vm.execLogic(frame, op)

	case OpLSet, OpLGet, OpOSet, OpOGet, OpGDef, OpGASet, OpGSet, OpGGet, OpNGet, OpSGet:
		return vm.execVariable(frame, op, code, opStart)

	case OpASet, OpPut, OpAccess, OpIndex:
		return vm.execObject(frame, op, code, opStart)

	case OpIs:
		return vm.execIs(frame, code, opStart)

	case OpPop:
		vm.pop()
		return nil
	case OpJmp:
		frame.IP = opStart + 2 + int(readI16(code, opStart))
		return nil
	case OpJif:
		cond := vm.pop()
		if !cond.Truthy() {
			frame.IP = opStart + 2 + int(readI16(code, opStart))
		}
		return nil
	case OpJit:
		cond := vm.pop()
		if cond.Truthy() {
			frame.IP = opStart + 2 + int(readI16(code, opStart))
		}
		return nil

	case OpCall:
		return vm.execCall(frame, code, opStart)
	case OpRet:
		result := vm.pop()
		vm.returnFromFrame(result)
		return nil

	case OpTryO, OpTryC, OpThrow:
		return vm.execException(frame, op, code, opStart)

	case OpHlt:
		vm.exitCode = 0
		vm.halted = true
		return errHalt

	default:
		return vm.fatalf(frame, "invalid opcode %d", byte(op))
	}
}
