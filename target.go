package main

// target.go - The outbound target-CPU primitive interface
//
// The core never encodes machine instructions itself. It lowers every
// operation into calls on this interface and assumes the target backend
// renders them correctly for its CPU. Storage operands are opaque
// symbolic location strings; the only manipulation the core performs on
// them is the +N displacement for big-endian byte selection (see
// engine.Displace) and the #N immediate convention produced by imm().
//
// Primitives are parameterized by bit-width suffix (8/16/32) the way
// every 8/16-bit backend in this family exposes them. Boolean results
// (comparisons, bit tests) follow the all-ones/zero convention: 0xFF in
// the result byte for true, 0x00 for false.

import "fmt"

// booleanTrue is the byte value comparison primitives store for "true"
const booleanTrue = 0xFF

// ISA is the abstract target-CPU instruction interface
type ISA interface {
	// Remark inserts a comment into the emitted listing
	Remark(text string)

	// Labels and jumps
	Label(name string)
	Jump(label string)
	JumpIfZero8(loc, label string)
	JumpIfNonZero8(loc, label string)

	// Width-suffixed copies; sources may be immediates (#N)
	Move8(src, dst string)
	Move16(src, dst string)
	Move32(src, dst string)

	// Integer arithmetic, result location last
	Add8(a, b, result string)
	Add16(a, b, result string)
	Add32(a, b, result string)
	Sub8(a, b, result string)
	Sub16(a, b, result string)
	Sub32(a, b, result string)
	// Multiplies are narrow-to-wide: the result is twice the operand
	// width (8x8 -> 16, 16x16 -> 32).
	Mul8(a, b, result string, signed bool)
	Mul16(a, b, result string, signed bool)
	Div8(a, b, result, remainder string, signed bool)
	Div16(a, b, result, remainder string, signed bool)
	Div32(a, b, result, remainder string, signed bool)

	// Bitwise
	And8(a, b, result string)
	And16(a, b, result string)
	And32(a, b, result string)
	Or8(a, b, result string)
	Or16(a, b, result string)
	Or32(a, b, result string)
	Xor8(a, b, result string)
	Xor16(a, b, result string)
	Xor32(a, b, result string)

	// Comparisons store a boolean (all-ones/zero) byte into result
	CompareEqual8(a, b, result string)
	CompareEqual16(a, b, result string)
	CompareEqual32(a, b, result string)
	Less8(a, b, result string, signed bool)
	Less16(a, b, result string, signed bool)
	Less32(a, b, result string, signed bool)
	Greater8(a, b, result string, signed bool)
	Greater16(a, b, result string, signed bool)
	Greater32(a, b, result string, signed bool)

	// In-place two's complement negation
	Negate8(loc string)
	Negate16(loc string)
	Negate32(loc string)

	// Single-bit access; pos counts from the least significant bit
	BitTest(loc string, pos int, result string)
	BitSet(loc string, pos int)
	BitClear(loc string, pos int)

	// Increment/decrement, 8 and 16 bit only
	Inc8(loc string)
	Inc16(loc string)
	Dec8(loc string)
	Dec16(loc string)

	// Bulk memory; count is a symbolic location or an immediate
	MemCopy(src, dst, count string)
	// MemCopyTo copies into dst displaced by a runtime byte offset
	MemCopyTo(src, dst, dstOffset, count string)
	MemCompare(a, b, count, result string)
	MemLess(a, b, count, result string)
	MemGreater(a, b, count, result string)

	// Indirect element access: size bytes at base+offset, offset being
	// a 16-bit symbolic location or an immediate
	ReadIndirect(base, offset, dst string, size int)
	WriteIndirect(src, base, offset string, size int)
	// Register-indexed fast paths for small one-dimensional arrays
	IndexedRead8(base, index, dst string)
	IndexedWrite8(src, base, index string)
	IndexedRead16(base, index, dst string)
	IndexedWrite16(src, base, index string)

	// Dynamic-string descriptor management
	DStringAlloc(desc, size string)
	DStringFree(desc string)
	DStringResize(desc, size string)
	DStringLength(desc, result string)

	// Precision-tagged floating point
	FloatAdd(p Precision, a, b, result string)
	FloatSub(p Precision, a, b, result string)
	FloatMul(p Precision, a, b, result string)
	FloatDiv(p Precision, a, b, result string)
	FloatCompareEqual(p Precision, a, b, result string)
	FloatLess(p Precision, a, b, result string)
	FloatGreater(p Precision, a, b, result string)
	FloatToInt(p Precision, src, dst string, width int, signed bool)
	IntToFloat(p Precision, src, dst string, width int, signed bool)
}

// imm renders an integer as an immediate operand location
func imm(value int64) string {
	return fmt.Sprintf("#%d", value)
}
