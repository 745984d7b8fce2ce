package vm

import "encoding/binary"

// operandSize reports how many operand bytes follow an opcode byte —
// spec.md §4.6: "operand widths are fixed per opcode." Used by the
// dispatch loop to advance ip and by disassembly/line-table tooling.
func operandSize(op Op) int {
	switch op {
	case OpCInt, OpLSet, OpLGet, OpOSet, OpOGet, OpCall, OpIs, OpThrow:
		return 1
	case OpInt, OpFloat, OpString, OpArray, OpRecord, OpIArray, OpIRecord,
		OpGDef, OpGASet, OpGSet, OpGGet, OpNGet, OpAccess, OpPut,
		OpJmp, OpJif, OpJit, OpTryO:
		return 2
	case OpSGet:
		return 4
	default:
		return 0
	}
}

// readU8 reads an unsigned byte operand at code[ip].
func readU8(code []byte, ip int) uint8 { return code[ip] }

// readI16 reads a signed little-endian 16-bit operand at code[ip].
func readI16(code []byte, ip int) int16 {
	return int16(binary.LittleEndian.Uint16(code[ip:]))
}

// readU16 reads an unsigned little-endian 16-bit operand at code[ip].
func readU16(code []byte, ip int) uint16 {
	return binary.LittleEndian.Uint16(code[ip:])
}

// readI32 reads a signed little-endian 32-bit operand at code[ip].
func readI32(code []byte, ip int) int32 {
	return int32(binary.LittleEndian.Uint32(code[ip:]))
}
