package vm

import "github.com/krizos/zs/pkg/types"

// execCompare handles spec.md §4.6's Comparison group. EQ/NE use
// types.Value.Equal (§4.2's equality rule: primitives by value, strings by
// interned identity with a byte-equality fallback, other objects by
// identity); LT/GT/LE/GE are numeric- and string-ordered only.
func (vm *VM) execCompare(frame *Frame, op Op) error {
	b := vm.pop()
	a := vm.pop()

	if op == OpEq {
		return vm.push(frame, types.NewBool(a.Equal(b)))
	}
	if op == OpNe {
		return vm.push(frame, types.NewBool(!a.Equal(b)))
	}

	var cmp int
	switch {
	case a.IsNumeric() && b.IsNumeric():
		x, y := asFloat(a), asFloat(b)
		switch {
		case x < y:
			cmp = -1
		case x > y:
			cmp = 1
		}
	case a.IsObjKind(types.KindStr) && b.IsObjKind(types.KindStr):
		cmp = a.AsObj().AsStr().Compare(b.AsObj().AsStr())
	default:
		return vm.userErrorf(frame, "comparison requires matching numeric or str operands, got %s and %s", kindName(a), kindName(b))
	}

	var result bool
	switch op {
	case OpLt:
		result = cmp < 0
	case OpGt:
		result = cmp > 0
	case OpLe:
		result = cmp <= 0
	case OpGe:
		result = cmp >= 0
	}
	return vm.push(frame, types.NewBool(result))
}
