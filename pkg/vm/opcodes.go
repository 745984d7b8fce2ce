// Package vm implements the stack-based bytecode interpreter spec.md §4.7
// describes: three stacks (value, frame, exception), a tight decode-
// execute dispatch loop, and per-concern handler files for arithmetic,
// comparison, logic, control flow, closures, and container/object access.
//
// Grounded on teacher's pkg/vm/opcodes.go, instruction.go, frame.go and
// the handlers_*.go file-per-concern split: same naming convention and
// file layout, remapped from PHP's Zend opcode set to the stack-machine
// opcode groups spec.md §4.6 defines.
package vm

import "fmt"

// Op identifies a single bytecode instruction. Operand widths are fixed
// per opcode (spec.md §4.6) so the dispatch loop can decode without a
// side table.
type Op uint8

const (
	OpEmpty Op = iota
	OpFalse
	OpTrue
	OpCInt    // u8 immediate
	OpInt     // i16 int-constant-pool index
	OpFloat   // i16 float-constant-pool index
	OpString  // i16 static-string index
	OpArray   // u16 length — pushes a fresh fixed-length Array
	OpList    // (no operand) — pushes a fresh empty List
	OpDict    // (no operand) — pushes a fresh empty Dict
	OpRecord  // u16 field-count hint — pushes a fresh empty Record
	OpIArray  // i16 element index — pops a value, sets array[idx], array stays on top
	OpIList   // (no operand) — pops a value, appends to list, list stays on top
	OpIDict   // (no operand) — pops value then key, dict.Set(key,val), dict stays on top
	OpIRecord // i16 static-string index (field name) — pops a value, record.Set(name,val), record stays on top

	OpConcat
	OpMulStr

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod

	OpBNot // unary
	OpLSh
	OpRSh
	OpBAnd
	OpBXor
	OpBOr

	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe

	OpOr
	OpAnd
	OpNot  // unary
	OpNNot // unary numeric negate

	OpLSet // u8 local offset — peek, store, value stays on top
	OpLGet // u8 local offset
	OpOSet // u8 out-value index — peek, store, value stays on top
	OpOGet // u8 out-value index
	OpGDef // i16 static-string index — pop value, define global
	OpGASet // i16 static-string index — flip global's access to Public, no stack effect
	OpGSet // i16 static-string index — peek, store, value stays on top
	OpGGet // i16 static-string index
	OpNGet // i16 static-string index — push a bound native-function/builtin value
	OpSGet // i32 module symbol index — push a Fn/Closure/Module/NativeModule value

	OpASet // (no operand) — pop value, pop index, pop+discard container, push value
	OpPut  // i16 static-string index — pop value, pop+discard container (Record), push value

	OpPop
	OpJmp // i16 relative offset
	OpJif // i16 relative offset — pop cond, jump if falsy
	OpJit // i16 relative offset — pop cond, jump if truthy

	OpCall // u8 argc
	OpRet

	OpAccess // i16 static-string index
	OpIndex  // (no operand)

	OpIs // u8 kind code

	OpTryO // i16 relative offset to the catch IP
	OpTryC
	OpThrow // u8 has-value flag

	OpHlt
)

var opNames = [...]string{
	"EMPTY", "FALSE", "TRUE", "CINT", "INT", "FLOAT", "STRING",
	"ARRAY", "LIST", "DICT", "RECORD", "IARRAY", "ILIST", "IDICT", "IRECORD",
	"CONCAT", "MULSTR",
	"ADD", "SUB", "MUL", "DIV", "MOD",
	"BNOT", "LSH", "RSH", "BAND", "BXOR", "BOR",
	"LT", "GT", "LE", "GE", "EQ", "NE",
	"OR", "AND", "NOT", "NNOT",
	"LSET", "LGET", "OSET", "OGET", "GDEF", "GASET", "GSET", "GGET", "NGET", "SGET",
	"ASET", "PUT",
	"POP", "JMP", "JIF", "JIT",
	"CALL", "RET",
	"ACCESS", "INDEX",
	"IS",
	"TRYO", "TRYC", "THROW",
	"HLT",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// KindCode is the runtime-kind tag spec.md §4.6's IS opcode tests against.
type KindCode uint8

const (
	KCEmpty KindCode = iota
	KCBool
	KCInt
	KCFloat
	KCStr
	KCArray
	KCList
	KCDict
	KCRecord
	KCCallable
)
