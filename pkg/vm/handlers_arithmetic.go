package vm

import (
	"strings"

	"github.com/krizos/zs/pkg/types"
)

// execArith handles spec.md §4.6's Concat/mul, Arithmetic, and Bitwise
// opcode groups. Arithmetic opcodes are polymorphic over int/float:
// int⊕int stays int, any float operand promotes the result to float
// (§4.6); bitwise and MOD are integer-only.
func (vm *VM) execArith(frame *Frame, op Op) error {
	if op == OpBNot {
		a := vm.pop()
		if !a.IsInt() {
			return vm.userErrorf(frame, "bitwise not requires an int operand, got %s", kindName(a))
		}
		return vm.push(frame, types.NewInt(^a.AsInt()))
	}

	b := vm.pop()
	a := vm.pop()

	switch op {
	case OpConcat:
		return vm.execConcat(frame, a, b)
	case OpMulStr:
		return vm.execMulStr(frame, a, b)
	}

	// `+` is ADD's only spelling in this language (there is no separate
	// concat operator token), so ADD itself must fall through to the
	// CONCAT path whenever either operand is a Str/Array/List — spec.md
	// §4.5's "string/array/list concatenation uses OP_CONCAT" describes the
	// semantics `+` lowers to, not a second surface operator. Mirrors the
	// original's ADD opcode handler, which dispatches to its concat path on
	// the same operand check before falling through to numeric addition.
	if op == OpAdd && (isConcatable(a) || isConcatable(b)) {
		return vm.execConcat(frame, a, b)
	}
	// Likewise `*` is MUL's only spelling, so a str×int operand pair lowers
	// to string repetition (spec.md §4.5's "int×string and string×int use
	// OP_MULSTR") rather than raising a type error.
	if op == OpMul && isMulStrPair(a, b) {
		return vm.execMulStr(frame, a, b)
	}

	if op >= OpLSh && op <= OpBOr {
		if !a.IsInt() || !b.IsInt() {
			return vm.userErrorf(frame, "bitwise op requires int operands, got %s and %s", kindName(a), kindName(b))
		}
		x, y := a.AsInt(), b.AsInt()
		switch op {
		case OpLSh:
			return vm.push(frame, types.NewInt(x<<uint(y)))
		case OpRSh:
			return vm.push(frame, types.NewInt(x>>uint(y)))
		case OpBAnd:
			return vm.push(frame, types.NewInt(x&y))
		case OpBXor:
			return vm.push(frame, types.NewInt(x^y))
		case OpBOr:
			return vm.push(frame, types.NewInt(x|y))
		}
	}

	if !a.IsNumeric() || !b.IsNumeric() {
		return vm.userErrorf(frame, "arithmetic requires numeric operands, got %s and %s", kindName(a), kindName(b))
	}

	if op == OpMod {
		if !a.IsInt() || !b.IsInt() {
			return vm.userErrorf(frame, "mod requires int operands, got %s and %s", kindName(a), kindName(b))
		}
		if b.AsInt() == 0 {
			return vm.userErrorf(frame, "mod by zero")
		}
		return vm.push(frame, types.NewInt(a.AsInt()%b.AsInt()))
	}

	if a.IsInt() && b.IsInt() {
		x, y := a.AsInt(), b.AsInt()
		switch op {
		case OpAdd:
			return vm.push(frame, types.NewInt(x+y))
		case OpSub:
			return vm.push(frame, types.NewInt(x-y))
		case OpMul:
			return vm.push(frame, types.NewInt(x*y))
		case OpDiv:
			if y == 0 {
				return vm.userErrorf(frame, "division by zero")
			}
			return vm.push(frame, types.NewInt(x/y))
		}
	}

	x, y := asFloat(a), asFloat(b)
	switch op {
	case OpAdd:
		return vm.push(frame, types.NewFloat(x+y))
	case OpSub:
		return vm.push(frame, types.NewFloat(x-y))
	case OpMul:
		return vm.push(frame, types.NewFloat(x*y))
	case OpDiv:
		if y == 0 {
			return vm.userErrorf(frame, "division by zero")
		}
		return vm.push(frame, types.NewFloat(x/y))
	}
	return vm.fatalf(frame, "unreachable arithmetic opcode %s", op)
}

// isConcatable reports whether v is one of the three kinds OP_CONCAT
// accepts (spec.md §4.5) — used to route a `+` with such an operand to
// execConcat instead of numeric addition.
func isConcatable(v types.Value) bool {
	return v.IsObjKind(types.KindStr) || v.IsObjKind(types.KindArray) || v.IsObjKind(types.KindList)
}

// isMulStrPair reports whether (a, b) is a str/int pair in either order —
// the operand shape OP_MULSTR accepts (spec.md §4.5's "int×string and
// string×int use OP_MULSTR").
func isMulStrPair(a, b types.Value) bool {
	return (a.IsObjKind(types.KindStr) && b.IsInt()) || (b.IsObjKind(types.KindStr) && a.IsInt())
}

func asFloat(v types.Value) float64 {
	if v.IsInt() {
		return float64(v.AsInt())
	}
	return v.AsFloat()
}

func kindName(v types.Value) string {
	if v.IsObj() {
		return v.AsObj().Kind.String()
	}
	return v.Tag().String()
}

func (vm *VM) execConcat(frame *Frame, a, b types.Value) error {
	switch {
	case a.IsObjKind(types.KindStr) && b.IsObjKind(types.KindStr):
		concatenated := a.AsObj().AsStr().String() + b.AsObj().AsStr().String()
		o := vm.track(types.NewStrObj(concatenated))
		return vm.push(frame, types.NewObj(o))
	case a.IsObjKind(types.KindArray) && b.IsObjKind(types.KindArray):
		elems := append(append([]types.Value{}, a.AsObj().AsArray().Elems...), b.AsObj().AsArray().Elems...)
		o := vm.track(types.NewArrayObjFrom(elems))
		return vm.push(frame, types.NewObj(o))
	case a.IsObjKind(types.KindList) && b.IsObjKind(types.KindList):
		elems := append(append([]types.Value{}, a.AsObj().AsList().Elems...), b.AsObj().AsList().Elems...)
		o := vm.track(types.NewListObj(elems))
		return vm.push(frame, types.NewObj(o))
	default:
		return vm.userErrorf(frame, "concat requires matching str/array/list operands, got %s and %s", kindName(a), kindName(b))
	}
}

func (vm *VM) execMulStr(frame *Frame, a, b types.Value) error {
	var s *types.Str
	var n int64
	switch {
	case a.IsObjKind(types.KindStr) && b.IsInt():
		s, n = a.AsObj().AsStr(), b.AsInt()
	case b.IsObjKind(types.KindStr) && a.IsInt():
		s, n = b.AsObj().AsStr(), a.AsInt()
	default:
		return vm.userErrorf(frame, "mulstr requires a str and an int operand, got %s and %s", kindName(a), kindName(b))
	}
	if n < 0 {
		return vm.userErrorf(frame, "mulstr requires a non-negative count, got %d", n)
	}
	result := strings.Repeat(s.String(), int(n))
	o := vm.track(types.NewStrObj(result))
	return vm.push(frame, types.NewObj(o))
}
