package vm

import "github.com/krizos/zs/pkg/types"

// execLogic handles spec.md §4.6's Logical group. Per DESIGN.md's
// resolution of the OR/AND Open Question, short-circuit `&&`/`||` are
// lowered by the compiler via JIF/JIT at parse time (compiler_expr.go);
// OR/AND themselves are strict and boolean-only here, matching the
// spec's preferred fix. NNOT is numeric negation (`-x` desugared through
// the same opcode Unary(OpNumNot) targets), distinct from NOT's boolean
// complement.
func (vm *VM) execLogic(frame *Frame, op Op) error {
	if op == OpNot {
		a := vm.pop()
		if !a.IsBool() {
			return vm.userErrorf(frame, "! requires a bool operand, got %s", kindName(a))
		}
		return vm.push(frame, types.NewBool(!a.AsBool()))
	}
	if op == OpNNot {
		a := vm.pop()
		switch {
		case a.IsInt():
			return vm.push(frame, types.NewInt(-a.AsInt()))
		case a.IsFloat():
			return vm.push(frame, types.NewFloat(-a.AsFloat()))
		default:
			return vm.userErrorf(frame, "unary - requires a numeric operand, got %s", kindName(a))
		}
	}

	b := vm.pop()
	a := vm.pop()
	if !a.IsBool() || !b.IsBool() {
		return vm.userErrorf(frame, "%s requires bool operands, got %s and %s", op, kindName(a), kindName(b))
	}
	switch op {
	case OpOr:
		return vm.push(frame, types.NewBool(a.AsBool() || b.AsBool()))
	case OpAnd:
		return vm.push(frame, types.NewBool(a.AsBool() && b.AsBool()))
	}
	return vm.fatalf(frame, "unreachable logic opcode %s", op)
}
